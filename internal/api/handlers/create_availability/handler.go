package create_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные окна доступности"
	msgOverlap            = "окно пересекается с существующим окном того же типа"
	msgHasBookings        = "на это время уже есть бронирования"
)

type Handler struct {
	service  AvailabilityService
	location *time.Location
	logger   Logger
}

func NewHandler(service AvailabilityService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /providers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Декодируем body
	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, providerID, h.location)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		var conflict *availability.ConflictError
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/availability - Access denied: user_id=%d, provider_id=%d", userID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/availability - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, availability.ErrOverlap):
			h.logger.Warn("POST /providers/{id}/availability - Overlap: provider_id=%d, %s-%s", providerID, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgOverlap, nil)

		case errors.As(err, &conflict):
			h.logger.Warn("POST /providers/{id}/availability - Bookings affected: provider_id=%d, count=%d", providerID, len(conflict.Bookings))
			handlers.RespondConflict(w, msgHasBookings, models.FromConflicts(conflict.Bookings))

		default:
			h.logger.Error("POST /providers/{id}/availability - Failed to create availability: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/availability - Availability created: id=%d, provider_id=%d", result.ID, providerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
