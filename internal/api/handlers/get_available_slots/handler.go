package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "нельзя получить слоты на прошедшую дату"
	msgInvalidDuration    = "некорректная длительность визита"
	msgInvalidCoordinates = "координаты lat и lng должны быть числами"
	msgInvalidBuffer      = "некорректный дополнительный буфер после визита"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgNoAvailability     = "у провайдера нет доступного времени на выбранную дату"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration | sessionDurations, lat, lng, address, groupId, extraDepartureBuffer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем providerId из URL
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid provider ID: %s", vars["providerId"])
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Формируем запрос к use case из query параметров
	useCaseReq, err := ToUseCaseRequest(providerID, r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/available-slots - Invalid query: provider_id=%d, error=%v", providerID, err)
		handlers.RespondBadRequest(w, queryErrorMessage(err))
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /providers/{id}/available-slots - Date in past: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/available-slots - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getAvailableSlots.ErrNoAvailability):
			h.logger.Warn("GET /providers/{id}/available-slots - No availability: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgNoAvailability)

		default:
			h.logger.Error("GET /providers/{id}/available-slots - Failed to get slots: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /providers/{id}/available-slots - Slots retrieved successfully: provider_id=%d, slots_count=%d",
		providerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

func queryErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingDate):
		return msgMissingDate
	case errors.Is(err, errInvalidDate):
		return msgInvalidDate
	case errors.Is(err, errInvalidDuration):
		return msgInvalidDuration
	case errors.Is(err, errInvalidCoordinates):
		return msgInvalidCoordinates
	case errors.Is(err, errInvalidBuffer):
		return msgInvalidBuffer
	default:
		return msgInvalidRequest
	}
}
