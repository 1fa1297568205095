package get_available_slots

import "errors"

var (
	// ErrNoAvailability возвращается, когда у провайдера нет окна автозаписи на дату
	ErrNoAvailability = errors.New("no availability found for the requested date")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
