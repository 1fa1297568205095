package delete_availability

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
	msgInvalidForce          = "параметр force должен быть true или false"
	msgAvailabilityNotFound  = "окно доступности не найдено"
	msgForbidden             = "доступ запрещен"
	msgHasBookings           = "в этом окне есть бронирования"
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

// Handle DELETE /api/v1/availability/{availabilityId}?force=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	availabilityID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		force, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("DELETE /availability/{id} - Invalid force flag: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidForce)
			return
		}
	}

	err = h.service.Delete(r.Context(), &models.DeleteAvailabilityRequest{
		UserID: userID,
		ID:     availabilityID,
		Force:  force,
	})
	if err != nil {
		var conflict *availability.ConflictError
		switch {
		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /availability/{id} - Availability not found: id=%d", availabilityID)
			handlers.RespondNotFound(w, msgAvailabilityNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: id=%d, user_id=%d", availabilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.As(err, &conflict):
			h.logger.Warn("DELETE /availability/{id} - Bookings affected: id=%d, count=%d", availabilityID, len(conflict.Bookings))
			handlers.RespondConflict(w, msgHasBookings, models.FromConflicts(conflict.Bookings))

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete availability: id=%d, error=%v", availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Availability deleted: id=%d, force=%t", availabilityID, force)
	w.WriteHeader(http.StatusNoContent)
}
