package models

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// Request модели

// CreateAvailabilityRequest запрос на создание окна доступности
type CreateAvailabilityRequest struct {
	UserID     int64                   `json:"-"`
	ProviderID int64                   `json:"-"`
	Date       time.Time               `json:"-"`
	StartTime  types.TimeString        `json:"start"`
	EndTime    types.TimeString        `json:"end"`
	Type       domain.AvailabilityType `json:"type"`
	Force      bool                    `json:"-"` // Игнорировать конфликты с бронированиями
}

// UpdateAvailabilityRequest запрос на обновление окна доступности
// Все поля опциональны - обновляются только переданные значения
type UpdateAvailabilityRequest struct {
	UserID    int64                    `json:"-"`
	StartTime *types.TimeString        `json:"start,omitempty"`
	EndTime   *types.TimeString        `json:"end,omitempty"`
	Type      *domain.AvailabilityType `json:"type,omitempty"`
	Force     bool                     `json:"-"`
}

// ApplyTo применяет изменения к окну
func (r *UpdateAvailabilityRequest) ApplyTo(block *domain.AvailabilityBlock) {
	if r.StartTime != nil {
		block.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		block.EndTime = *r.EndTime
	}
	if r.Type != nil {
		block.Type = *r.Type
	}
}

// DeleteAvailabilityRequest запрос на удаление окна доступности
type DeleteAvailabilityRequest struct {
	UserID int64
	ID     int64
	Force  bool
}

// Response модели

// AvailabilityResponse ответ с данными окна доступности
type AvailabilityResponse struct {
	ID         int64                   `json:"id"`
	ProviderID int64                   `json:"providerId"`
	Date       string                  `json:"date"`
	StartTime  types.TimeString        `json:"start"`
	EndTime    types.TimeString        `json:"end"`
	Type       domain.AvailabilityType `json:"type"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// AvailabilityListResponse ответ со списком окон
type AvailabilityListResponse struct {
	Blocks []AvailabilityResponse `json:"blocks"`
}

// ConflictBooking бронирование, мешающее изменению расписания
type ConflictBooking struct {
	ID        int64            `json:"id"`
	StartTime types.TimeString `json:"start"`
	EndTime   types.TimeString `json:"end"`
	Address   string           `json:"address"`
}

// Методы конвертации

// FromDomain конвертирует domain модель в DTO
func FromDomain(b *domain.AvailabilityBlock) *AvailabilityResponse {
	if b == nil {
		return nil
	}

	return &AvailabilityResponse{
		ID:         b.ID,
		ProviderID: b.ProviderID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Type:       b.Type,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainList конвертирует список окон
func FromDomainList(blocks []*domain.AvailabilityBlock) *AvailabilityListResponse {
	result := &AvailabilityListResponse{Blocks: make([]AvailabilityResponse, 0, len(blocks))}
	for _, b := range blocks {
		result.Blocks = append(result.Blocks, *FromDomain(b))
	}
	return result
}

// FromConflicts конвертирует конфликтующие бронирования
func FromConflicts(bookings []*domain.Booking) []ConflictBooking {
	result := make([]ConflictBooking, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, ConflictBooking{
			ID:        b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Address:   b.Location.Address,
		})
	}
	return result
}
