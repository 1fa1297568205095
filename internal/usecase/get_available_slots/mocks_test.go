package get_available_slots

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots/models"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, providerID, date)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

type mockAvailabilityRepo struct{ mock.Mock }

func (m *mockAvailabilityRepo) GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time, blockType *domain.AvailabilityType) ([]*domain.AvailabilityBlock, error) {
	args := m.Called(ctx, providerID, date, blockType)
	blocks, _ := args.Get(0).([]*domain.AvailabilityBlock)
	return blocks, args.Error(1)
}

type mockSlotsService struct{ mock.Mock }

func (m *mockSlotsService) GetAvailableSlots(ctx context.Context, q *models.Query) ([]time.Time, error) {
	args := m.Called(ctx, q)
	slots, _ := args.Get(0).([]time.Time)
	return slots, args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
