package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

var (
	moscow  = time.FixedZone("MSK", 3*60*60)
	day     = time.Date(2025, 6, 10, 0, 0, 0, 0, moscow)
	morning = time.Date(2025, 6, 9, 8, 0, 0, 0, moscow)
)

type fixture struct {
	bookings     *mockBookingRepo
	availability *mockAvailabilityRepo
	slots        *mockSlotsService
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings:     &mockBookingRepo{},
		availability: &mockAvailabilityRepo{},
		slots:        &mockSlotsService{},
	}
	f.uc = NewUseCase(f.bookings, f.availability, f.slots, 15, nopLogger{})
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func block(start, end string, t domain.AvailabilityType) *domain.AvailabilityBlock {
	return &domain.AvailabilityBlock{
		ProviderID: 7,
		Date:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Type:       t,
	}
}

func clock(hhmm string) time.Time {
	return types.TimeString(hhmm).On(day)
}

func validRequest() *Request {
	return &Request{
		ProviderID:     7,
		Date:           day,
		Duration:       domain.Single(60),
		ClientLocation: domain.Location{Address: "Tverskaya 1", Lat: ptr.Ptr(55.76), Lng: ptr.Ptr(37.61)},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(morning)
	req := validRequest()
	req.RequestedGroupID = ptr.Ptr("family")
	req.ExtraDepartureBuffer = 10

	bookings := []*domain.Booking{{ID: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed}}

	f.availability.On("GetByProviderAndDate", mock.Anything, int64(7), day, (*domain.AvailabilityType)(nil)).
		Return([]*domain.AvailabilityBlock{block("09:00", "13:00", domain.AvailabilityAutobook)}, nil)
	f.bookings.On("GetActiveByProviderAndDate", mock.Anything, int64(7), day).Return(bookings, nil)
	f.slots.On("GetAvailableSlots", mock.Anything, mock.MatchedBy(func(q *models.Query) bool {
		return q.Window.Start.Equal(clock("09:00")) &&
			q.Window.End.Equal(clock("13:00")) &&
			q.DefaultBufferMinutes == 15 &&
			q.ExtraDepartureBuffer == 10 &&
			*q.RequestedGroupID == "family" &&
			*q.ProviderID == 7 &&
			len(q.Bookings) == 1 && q.Bookings[0].BookingDate.Equal(day)
	})).Return([]time.Time{clock("11:30"), clock("12:00")}, nil)

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:30", "12:00"}, resp.Slots)
	assert.Equal(t, int64(7), resp.ProviderID)
	f.slots.AssertExpectations(t)
}

func TestExecute_SplitsAroundUnavailableBlocks(t *testing.T) {
	f := newFixture(morning)

	f.availability.On("GetByProviderAndDate", mock.Anything, int64(7), day, (*domain.AvailabilityType)(nil)).
		Return([]*domain.AvailabilityBlock{
			block("09:00", "17:00", domain.AvailabilityAutobook),
			block("12:00", "13:00", domain.AvailabilityUnavailable),
		}, nil)
	f.bookings.On("GetActiveByProviderAndDate", mock.Anything, int64(7), day).Return([]*domain.Booking{}, nil)
	f.slots.On("GetAvailableSlots", mock.Anything, mock.MatchedBy(func(q *models.Query) bool {
		return q.Window.Start.Equal(clock("09:00"))
	})).Return([]time.Time{clock("09:00"), clock("11:00")}, nil).Once()
	f.slots.On("GetAvailableSlots", mock.Anything, mock.MatchedBy(func(q *models.Query) bool {
		return q.Window.Start.Equal(clock("13:00"))
	})).Return([]time.Time{clock("13:00")}, nil).Once()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "11:00", "13:00"}, resp.Slots)
	f.slots.AssertExpectations(t)
}

func TestExecute_TodaySkipsPastSlots(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 10, 10, 15, 0, 0, moscow))

	f.availability.On("GetByProviderAndDate", mock.Anything, int64(7), day, (*domain.AvailabilityType)(nil)).
		Return([]*domain.AvailabilityBlock{block("09:00", "13:00", domain.AvailabilityAutobook)}, nil)
	f.bookings.On("GetActiveByProviderAndDate", mock.Anything, int64(7), day).Return([]*domain.Booking{}, nil)
	f.slots.On("GetAvailableSlots", mock.Anything, mock.Anything).
		Return([]time.Time{clock("09:00"), clock("10:00"), clock("10:30"), clock("11:00")}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:30", "11:00"}, resp.Slots)
}

func TestExecute_NoAvailability(t *testing.T) {
	tests := []struct {
		name   string
		blocks []*domain.AvailabilityBlock
	}{
		{name: "no blocks", blocks: []*domain.AvailabilityBlock{}},
		{name: "only unavailable", blocks: []*domain.AvailabilityBlock{block("09:00", "17:00", domain.AvailabilityUnavailable)}},
		{name: "fully closed", blocks: []*domain.AvailabilityBlock{
			block("09:00", "12:00", domain.AvailabilityAutobook),
			block("08:00", "12:30", domain.AvailabilityUnavailable),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(morning)
			f.availability.On("GetByProviderAndDate", mock.Anything, int64(7), day, (*domain.AvailabilityType)(nil)).
				Return(tt.blocks, nil)

			_, err := f.uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrNoAvailability)
			f.bookings.AssertNotCalled(t, "GetActiveByProviderAndDate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "provider", mutate: func(r *Request) { r.ProviderID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "too short", mutate: func(r *Request) { r.Duration = domain.Single(20) }},
		{name: "too long", mutate: func(r *Request) { r.Duration = domain.Single(181) }},
		{name: "chain session too long", mutate: func(r *Request) { r.Duration = domain.Chain(60, 200) }},
		{name: "too many sessions", mutate: func(r *Request) { r.Duration = domain.Chain(30, 30, 30, 30, 30, 30, 30) }},
		{name: "empty chain", mutate: func(r *Request) { r.Duration = domain.Chain() }},
		{name: "negative extra buffer", mutate: func(r *Request) { r.ExtraDepartureBuffer = -1 }},
		{name: "lat without lng", mutate: func(r *Request) { r.ClientLocation.Lng = nil }},
		{name: "latitude out of range", mutate: func(r *Request) { r.ClientLocation.Lat = ptr.Ptr(91.0) }},
		{name: "longitude out of range", mutate: func(r *Request) { r.ClientLocation.Lng = ptr.Ptr(-181.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(morning)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			f.availability.AssertNotCalled(t, "GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 11, 0, 30, 0, 0, moscow))

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Errors(t *testing.T) {
	autobook := []*domain.AvailabilityBlock{block("09:00", "13:00", domain.AvailabilityAutobook)}

	t.Run("availability repository", func(t *testing.T) {
		f := newFixture(morning)
		f.availability.On("GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db down"))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("malformed block", func(t *testing.T) {
		f := newFixture(morning)
		f.availability.On("GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*domain.AvailabilityBlock{block("13:00", "09:00", domain.AvailabilityAutobook)}, nil)

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("booking repository", func(t *testing.T) {
		f := newFixture(morning)
		f.availability.On("GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(autobook, nil)
		f.bookings.On("GetActiveByProviderAndDate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("slots validation", func(t *testing.T) {
		f := newFixture(morning)
		f.availability.On("GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(autobook, nil)
		f.bookings.On("GetActiveByProviderAndDate", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
		f.slots.On("GetAvailableSlots", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: booking id=3 start", slots.ErrValidation))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(morning)
		f.availability.On("GetByProviderAndDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(autobook, nil)
		f.bookings.On("GetActiveByProviderAndDate", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
		f.slots.On("GetAvailableSlots", mock.Anything, mock.Anything).Return(nil, context.Canceled)

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrInternal)
	})
}
