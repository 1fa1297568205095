package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
)

const (
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgAvailabilityNotFound  = "окно доступности не найдено"
	msgForbidden             = "доступ запрещен"
	msgInvalidData           = "некорректные данные окна доступности"
	msgOverlap               = "окно пересекается с существующим окном того же типа"
	msgHasBookings           = "изменение затрагивает существующие бронирования"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /availability/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	availabilityID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит, что пользователь владеет окном
	result, err := h.service.Update(r.Context(), availabilityID, req.ToServiceRequest(userID))
	if err != nil {
		var conflict *availability.ConflictError
		switch {
		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("PUT /availability/{id} - Availability not found: id=%d", availabilityID)
			handlers.RespondNotFound(w, msgAvailabilityNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /availability/{id} - Access denied: id=%d, user_id=%d", availabilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /availability/{id} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, availability.ErrOverlap):
			h.logger.Warn("PUT /availability/{id} - Overlap: id=%d", availabilityID)
			handlers.RespondConflict(w, msgOverlap, nil)

		case errors.As(err, &conflict):
			h.logger.Warn("PUT /availability/{id} - Bookings affected: id=%d, count=%d", availabilityID, len(conflict.Bookings))
			handlers.RespondConflict(w, msgHasBookings, models.FromConflicts(conflict.Bookings))

		default:
			h.logger.Error("PUT /availability/{id} - Failed to update availability: id=%d, error=%v", availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{id} - Availability updated: id=%d", availabilityID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
