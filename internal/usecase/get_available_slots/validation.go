package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := validateDuration(req.Duration); err != nil {
		return err
	}

	if req.ExtraDepartureBuffer < 0 || req.ExtraDepartureBuffer > domain.MaxExtraBufferMins {
		return fmt.Errorf("%w: extraDepartureBuffer must be between 0 and %d", ErrInvalidInput, domain.MaxExtraBufferMins)
	}

	return validateLocation(req.ClientLocation)
}

// validateDuration проверяет длительность каждого сеанса и количество сеансов в цепочке
func validateDuration(d domain.DurationSpec) error {
	if err := d.ValidateRange(domain.MinSessionMinutes, domain.MaxSessionMinutes); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(d.Sessions()) > domain.MaxChainSessions {
		return fmt.Errorf("%w: at most %d sessions allowed", ErrInvalidInput, domain.MaxChainSessions)
	}

	return nil
}

// validateLocation проверяет адрес и координаты клиента. Координаты необязательны,
// но задаются парой.
func validateLocation(l domain.Location) error {
	if len(l.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address is too long", ErrInvalidInput)
	}

	if (l.Lat == nil) != (l.Lng == nil) {
		return fmt.Errorf("%w: lat and lng must be provided together", ErrInvalidInput)
	}

	if l.HasCoordinates() {
		if *l.Lat < -90 || *l.Lat > 90 {
			return fmt.Errorf("%w: invalid latitude", ErrInvalidInput)
		}
		if *l.Lng < -180 || *l.Lng > 180 {
			return fmt.Errorf("%w: invalid longitude", ErrInvalidInput)
		}
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	now = now.In(date.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}

// isSameDay проверяет, что два момента относятся к одному дню в часовом поясе date
func isSameDay(date, now time.Time) bool {
	now = now.In(date.Location())
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
