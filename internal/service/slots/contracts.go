package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// TravelEstimator внешний сервис оценки времени в пути
type TravelEstimator interface {
	// EstimateTravelMinutes возвращает время в пути в минутах при выезде в departure
	EstimateTravelMinutes(ctx context.Context, origin, destination domain.Location, departure time.Time) (int, error)
}

// Recorder принимает метрики расчёта слотов
type Recorder interface {
	ObserveSlotSearch(kind string, d time.Duration)
	ObserveStage(stage string, candidates int)
	ObserveTravelLookup(result string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopRecorder struct{}

func (noopRecorder) ObserveSlotSearch(string, time.Duration)   {}
func (noopRecorder) ObserveStage(string, int)                  {}
func (noopRecorder) ObserveTravelLookup(string, time.Duration) {}
