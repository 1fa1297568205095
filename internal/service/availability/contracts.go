package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error)
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time, blockType *domain.AvailabilityType) ([]*domain.AvailabilityBlock, error)
	Update(ctx context.Context, block *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TxManager выполняет функцию в транзакции
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
