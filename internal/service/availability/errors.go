package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

var (
	// ErrAvailabilityNotFound возвращается, когда окно доступности не найдено
	ErrAvailabilityNotFound = errors.New("availability not found")

	// ErrAccessDenied возвращается, когда пользователь не является владельцем расписания
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOverlap возвращается, когда окно пересекается с другим окном того же типа
	ErrOverlap = errors.New("availability overlaps an existing block")

	// ErrHasBookings возвращается, когда изменение затрагивает существующие бронирования
	ErrHasBookings = errors.New("availability has bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ConflictError содержит бронирования, которые окажутся вне доступного времени
type ConflictError struct {
	Bookings []*domain.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d affected", ErrHasBookings, len(e.Bookings))
}

func (e *ConflictError) Unwrap() error {
	return ErrHasBookings
}
