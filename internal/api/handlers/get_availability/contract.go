package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	GetByDate(ctx context.Context, providerID int64, date time.Time) (*models.AvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
