package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

const (
	lookupOK      = "ok"
	lookupError   = "error"
	lookupTimeout = "timeout"
)

// travelValidator проверяет, что провайдер успевает приехать к клиенту после
// предыдущего визита и уехать к следующему
type travelValidator struct {
	estimator TravelEstimator
	params    Params
	logger    Logger
	recorder  Recorder
}

// travelCheck данные одного расчёта, общие для всех кандидатов
type travelCheck struct {
	bookings      []*domain.Booking // активные, отсортированы по началу
	requested     *domain.Booking
	client        domain.Location
	duration      time.Duration
	defaultBuffer int
}

// validate возвращает вердикт по слоту. Ошибка возвращается только при отмене
// родительского контекста, сбой оценки времени в пути делает слот недоступным.
func (v *travelValidator) validate(ctx context.Context, slotStart time.Time, c *travelCheck) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prev, next := neighbours(c.bookings, slotStart)
	buffer := minutes(max(c.defaultBuffer, 0))

	// Проверка приезда от предыдущего визита
	if prev != nil {
		departure := prev.EndsAt().Add(buffer)
		travel, err := v.lookup(ctx, prev.Location, c.client, departure)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			v.logger.Warn("TravelCheck: slot %s rejected, arrival lookup from booking id=%d failed: %v",
				slotStart.Format(domain.TimeFormat), prev.ID, err)
			return false, nil
		}

		requiredArrival := slotStart.Add(-minutes(v.params.ArrivalMarginMinutes))
		if departure.Add(travel).After(requiredArrival) {
			return false, nil
		}
	}

	// Проверка отъезда к следующему визиту
	if next != nil {
		dynamicBuffer := minutes(BufferBetween(c.requested, next, c.defaultBuffer, c.bookings))
		slotEndWithBuffer := slotStart.Add(c.duration).Add(dynamicBuffer)

		travel, err := v.lookup(ctx, c.client, next.Location, slotEndWithBuffer)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			v.logger.Warn("TravelCheck: slot %s rejected, departure lookup to booking id=%d failed: %v",
				slotStart.Format(domain.TimeFormat), next.ID, err)
			return false, nil
		}

		requiredDeparture := next.StartsAt().Add(-minutes(v.params.DepartureMarginMinutes))
		if slotEndWithBuffer.Add(travel).After(requiredDeparture) {
			return false, nil
		}
	}

	return true, nil
}

// lookup запрашивает время в пути с отдельным таймаутом на каждый вызов
func (v *travelValidator) lookup(ctx context.Context, origin, destination domain.Location, departure time.Time) (time.Duration, error) {
	if v.estimator == nil {
		v.recorder.ObserveTravelLookup(lookupError, 0)
		return 0, ErrNoEstimator
	}

	callCtx, cancel := context.WithTimeout(ctx, v.params.TravelTimeout)
	defer cancel()

	started := time.Now()
	mins, err := v.estimator.EstimateTravelMinutes(callCtx, origin, destination, departure)
	elapsed := time.Since(started)

	switch {
	case err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		v.recorder.ObserveTravelLookup(lookupTimeout, elapsed)
		return 0, fmt.Errorf("travel lookup timed out after %s: %w", v.params.TravelTimeout, err)
	case err != nil:
		v.recorder.ObserveTravelLookup(lookupError, elapsed)
		return 0, err
	case mins < 0:
		v.recorder.ObserveTravelLookup(lookupError, elapsed)
		return 0, fmt.Errorf("%w: %d minutes", ErrInvalidTravelTime, mins)
	}

	v.recorder.ObserveTravelLookup(lookupOK, elapsed)
	return minutes(mins), nil
}

// neighbours находит предыдущий визит (самый поздний конец не позже начала слота)
// и следующий визит (самое раннее начало строго после начала слота)
func neighbours(bookings []*domain.Booking, slotStart time.Time) (prev, next *domain.Booking) {
	for _, b := range bookings {
		end := b.EndsAt()
		if !end.After(slotStart) && (prev == nil || !end.Before(prev.EndsAt())) {
			prev = b
		}

		start := b.StartsAt()
		if start.After(slotStart) && (next == nil || start.Before(next.StartsAt())) {
			next = b
		}
	}
	return prev, next
}
