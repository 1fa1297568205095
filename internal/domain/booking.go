package domain

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Booking represents a committed visit of a provider at a client location
type Booking struct {
	ID          int64
	ProviderID  int64
	ClientID    int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Location    Location

	// Group bookings: one visit serving several related appointments
	GroupID              *string
	IsLastInGroup        bool
	ExtraDepartureBuffer int // minutes

	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the provider's time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// StartsAt returns the start instant on the booking date
func (b *Booking) StartsAt() time.Time {
	return b.StartTime.On(b.BookingDate)
}

// EndsAt returns the end instant on the booking date
func (b *Booking) EndsAt() time.Time {
	return b.EndTime.On(b.BookingDate)
}

// HasGroup returns true if the booking belongs to a group visit
func (b *Booking) HasGroup() bool {
	return b.GroupID != nil && *b.GroupID != ""
}

// SameGroup returns true if both bookings carry the same non-empty group id
func (b *Booking) SameGroup(other *Booking) bool {
	return b.HasGroup() && other.HasGroup() && *b.GroupID == *other.GroupID
}

// BookingsFilter фильтр для выборки бронирований провайдера
type BookingsFilter struct {
	ProviderID      int64     // Обязательный параметр
	Date            time.Time // День (без времени)
	From            *types.TimeString
	To              *types.TimeString
	IncludeInactive bool
}
