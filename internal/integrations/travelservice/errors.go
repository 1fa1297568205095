package travelservice

import "errors"

var (
	// ErrMissingCoordinates возвращается, если у точки маршрута нет координат
	ErrMissingCoordinates = errors.New("travelservice client: location has no coordinates")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("travelservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("travelservice client: invalid response")

	// ErrRouteNotFound возвращается, если сервис не смог построить маршрут
	ErrRouteNotFound = errors.New("travelservice client: route not found")
)
