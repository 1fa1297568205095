package travelservice

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Estimator источник времени в пути, оборачиваемый кэшем
type Estimator interface {
	EstimateTravelMinutes(ctx context.Context, origin, destination domain.Location, departure time.Time) (int, error)
}
