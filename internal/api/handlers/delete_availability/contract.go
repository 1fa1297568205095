package delete_availability

import (
	"context"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	Delete(ctx context.Context, req *models.DeleteAvailabilityRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
