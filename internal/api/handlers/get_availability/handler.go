package get_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VisitScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/providers/{providerId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetByDate(r.Context(), providerID, date)
	if err != nil {
		h.logger.Error("GET /providers/{id}/availability - Failed to get availability: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Availability retrieved: provider_id=%d, blocks_count=%d",
		providerID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
