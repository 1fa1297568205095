package slots

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
)

func TestFilterOccupied_BufferedBooking(t *testing.T) {
	cands := slices.Collect(candidates(at(t, "09:00"), at(t, "13:00"), 30*time.Minute, time.Hour))
	bookings := []*domain.Booking{booking(1, "10:00", "11:00", "12 Oak St")}
	requested := &domain.Booking{Location: domain.Location{Address: "40 Elm Ave"}}

	got := filterOccupied(cands, bookings, time.Hour, requested, 15)

	// занятое время с буфером: [09:45, 11:15)
	assert.Equal(t, []string{"11:30", "12:00"}, hhmm(got))
}

func TestFilterOccupied_TouchingIsNotOverlap(t *testing.T) {
	cands := []time.Time{at(t, "08:45"), at(t, "11:15")}
	bookings := []*domain.Booking{booking(1, "10:00", "11:00", "12 Oak St")}

	got := filterOccupied(cands, bookings, time.Hour, &domain.Booking{}, 15)

	assert.Equal(t, []string{"08:45", "11:15"}, hhmm(got))
}

func TestFilterOccupied_SameGroupSameAddressNoBuffer(t *testing.T) {
	cands := []time.Time{at(t, "09:00"), at(t, "11:00")}
	existing := inGroup(booking(1, "10:00", "11:00", "12 Oak St"), "family-1")
	requested := &domain.Booking{GroupID: ptr.Ptr("family-1"), Location: domain.Location{Address: "12 Oak St"}}

	got := filterOccupied(cands, []*domain.Booking{existing}, time.Hour, requested, 15)
	assert.Equal(t, []string{"09:00", "11:00"}, hhmm(got))

	stranger := &domain.Booking{Location: domain.Location{Address: "12 Oak St"}}
	got = filterOccupied(cands, []*domain.Booking{existing}, time.Hour, stranger, 15)
	assert.Empty(t, got)
}

func TestFilterOccupied_NoBookings(t *testing.T) {
	cands := []time.Time{at(t, "09:00"), at(t, "09:30")}
	assert.Equal(t, cands, filterOccupied(cands, nil, time.Hour, &domain.Booking{}, 15))
}
