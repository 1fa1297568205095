package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// AvailabilityType describes how a block of the provider's day can be used
type AvailabilityType string

const (
	AvailabilityAutobook    AvailabilityType = "autobook"
	AvailabilityUnavailable AvailabilityType = "unavailable"
)

// IsValid reports whether t is a known availability type
func (t AvailabilityType) IsValid() bool {
	return t == AvailabilityAutobook || t == AvailabilityUnavailable
}

// AvailabilityBlock is a stored open (or closed) interval of a provider's day
type AvailabilityBlock struct {
	ID         int64
	ProviderID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Type       AvailabilityType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Window resolves the block into instants on its date
func (a *AvailabilityBlock) Window() (AvailabilityWindow, error) {
	if err := a.StartTime.Validate(); err != nil {
		return AvailabilityWindow{}, err
	}
	if err := a.EndTime.Validate(); err != nil {
		return AvailabilityWindow{}, err
	}
	if !a.StartTime.IsBefore(a.EndTime) {
		return AvailabilityWindow{}, fmt.Errorf("availability %s-%s is not chronological", a.StartTime, a.EndTime)
	}
	return AvailabilityWindow{
		Date:  a.Date,
		Start: a.StartTime.On(a.Date),
		End:   a.EndTime.On(a.Date),
	}, nil
}

// Covers returns true if the booking lies within the block
func (a *AvailabilityBlock) Covers(b *Booking) bool {
	return !b.StartTime.IsBefore(a.StartTime) && !b.EndTime.IsAfter(a.EndTime)
}

// Overlaps returns true if the booking intersects the block
func (a *AvailabilityBlock) Overlaps(b *Booking) bool {
	return b.StartTime.IsBefore(a.EndTime) && b.EndTime.IsAfter(a.StartTime)
}

// AvailabilityWindow is the provider's open interval on one day
type AvailabilityWindow struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}
