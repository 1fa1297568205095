package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByProviderAndDate получает активные бронирования провайдера на день
	GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time, blockType *domain.AvailabilityType) ([]*domain.AvailabilityBlock, error)
}

// SlotsService интерфейс сервиса расчёта слотов
type SlotsService interface {
	GetAvailableSlots(ctx context.Context, q *models.Query) ([]time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
