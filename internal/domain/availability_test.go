package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

func TestAvailabilityBlock_Window(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	block := &AvailabilityBlock{Date: date, StartTime: "09:00", EndTime: "17:30", Type: AvailabilityAutobook}

	w, err := block.Window()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 6, 10, 17, 30, 0, 0, time.UTC), w.End)
	assert.Equal(t, date, w.Date)
}

func TestAvailabilityBlock_WindowErrors(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := (&AvailabilityBlock{Date: date, StartTime: "17:00", EndTime: "09:00"}).Window()
	assert.Error(t, err)

	_, err = (&AvailabilityBlock{Date: date, StartTime: "9am", EndTime: "17:00"}).Window()
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestAvailabilityBlock_CoversAndOverlaps(t *testing.T) {
	block := &AvailabilityBlock{StartTime: "09:00", EndTime: "13:00"}

	tests := []struct {
		name         string
		start, end   types.TimeString
		wantCovers   bool
		wantOverlaps bool
	}{
		{name: "inside", start: "10:00", end: "11:00", wantCovers: true, wantOverlaps: true},
		{name: "exact", start: "09:00", end: "13:00", wantCovers: true, wantOverlaps: true},
		{name: "crosses end", start: "12:30", end: "13:30", wantOverlaps: true},
		{name: "touches end", start: "13:00", end: "14:00"},
		{name: "before", start: "07:00", end: "08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.wantCovers, block.Covers(b))
			assert.Equal(t, tt.wantOverlaps, block.Overlaps(b))
		})
	}
}

func TestAvailabilityType_IsValid(t *testing.T) {
	assert.True(t, AvailabilityAutobook.IsValid())
	assert.True(t, AvailabilityUnavailable.IsValid())
	assert.False(t, AvailabilityType("busy").IsValid())
}

func TestLocation_SameAddress(t *testing.T) {
	assert.True(t, Location{Address: " 1 Main St "}.SameAddress(Location{Address: "1 Main St"}))
	assert.False(t, Location{Address: "1 Main St"}.SameAddress(Location{Address: "2 Main St"}))
}
