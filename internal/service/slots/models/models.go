package models

import (
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// Query входные данные расчёта доступных слотов.
// Все времена должны быть в одной временной зоне.
type Query struct {
	Window               domain.AvailabilityWindow // Окно доступности провайдера
	Bookings             []*domain.Booking         // Бронирования провайдера на этот день (только чтение)
	ClientLocation       domain.Location           // Адрес клиента
	Duration             domain.DurationSpec       // Один сеанс или цепочка
	DefaultBufferMinutes int                       // Базовый буфер между визитами
	RequestedGroupID     *string                   // Группа, к которой относится новое бронирование
	ExtraDepartureBuffer int                       // Дополнительное время на отъезд, минуты
	ProviderID           *int64                    // Провайдер (для логов и метрик)
}

// RequestedContext синтетическое бронирование, представляющее запрашиваемый визит
// при расчёте буферов
func (q *Query) RequestedContext() *domain.Booking {
	return &domain.Booking{
		GroupID:              q.RequestedGroupID,
		Location:             q.ClientLocation,
		ExtraDepartureBuffer: q.ExtraDepartureBuffer,
	}
}
