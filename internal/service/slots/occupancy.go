package slots

import (
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

type occupiedInterval struct {
	start time.Time
	end   time.Time
}

// filterOccupied убирает кандидатов, пересекающихся с занятым временем бронирований.
// Занятое время бронирования: [начало - буфер, конец + буфер], где буфер считается
// между запрашиваемым визитом (requested) и этим бронированием.
//
// Пересечение строгое: слот 11:15-12:15 и занятое время до 11:15 не пересекаются.
func filterOccupied(
	cands []time.Time,
	bookings []*domain.Booking,
	baseline time.Duration,
	requested *domain.Booking,
	defaultBuffer int,
) []time.Time {
	occupied := make([]occupiedInterval, 0, len(bookings))
	for _, b := range bookings {
		buffer := minutes(BufferBetween(requested, b, defaultBuffer, bookings))
		occupied = append(occupied, occupiedInterval{
			start: b.StartsAt().Add(-buffer),
			end:   b.EndsAt().Add(buffer),
		})
	}

	free := make([]time.Time, 0, len(cands))
	for _, slotStart := range cands {
		slotEnd := slotStart.Add(baseline)

		conflict := false
		for _, occ := range occupied {
			if slotStart.Before(occ.end) && slotEnd.After(occ.start) {
				conflict = true
				break
			}
		}

		if !conflict {
			free = append(free, slotStart)
		}
	}

	return free
}
