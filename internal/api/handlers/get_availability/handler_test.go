package get_availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByDate(ctx context.Context, providerID int64, date time.Time) (*models.AvailabilityListResponse, error) {
	args := m.Called(ctx, providerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityListResponse), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/providers/{providerId}/availability", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	date := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetByDate", mock.Anything, int64(3), date).Return(&models.AvailabilityListResponse{
			Blocks: []models.AvailabilityResponse{{ID: 1, ProviderID: 3, Date: "2030-06-10", StartTime: "09:00", EndTime: "17:00", Type: "autobook"}},
		}, nil)

		rec := serve(NewHandler(svc, time.UTC, logger.NewNop()), "/providers/3/availability?date=2030-06-10")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"start":"09:00"`)
		svc.AssertExpectations(t)
	})

	t.Run("missing date", func(t *testing.T) {
		rec := serve(NewHandler(&mockService{}, time.UTC, logger.NewNop()), "/providers/3/availability")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), msgMissingDate)
	})

	t.Run("invalid provider", func(t *testing.T) {
		rec := serve(NewHandler(&mockService{}, time.UTC, logger.NewNop()), "/providers/x/availability?date=2030-06-10")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetByDate", mock.Anything, int64(3), date).Return(nil, errors.New("db down"))

		rec := serve(NewHandler(svc, time.UTC, logger.NewNop()), "/providers/3/availability?date=2030-06-10")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
