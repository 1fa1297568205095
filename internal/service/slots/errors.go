package slots

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных расчёта
	// (неверное время, окно не по хронологии, неположительная длительность)
	ErrValidation = errors.New("slots: validation error")

	// ErrNoEstimator возвращается, когда сервис оценки времени в пути не настроен
	ErrNoEstimator = errors.New("slots: travel estimator is not configured")

	// ErrInvalidTravelTime возвращается, когда оценка времени в пути отрицательная
	ErrInvalidTravelTime = errors.New("slots: invalid travel time estimate")
)
