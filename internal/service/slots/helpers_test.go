package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

var testDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

type estimatorFunc func(ctx context.Context, origin, destination domain.Location, departure time.Time) (int, error)

func (f estimatorFunc) EstimateTravelMinutes(ctx context.Context, origin, destination domain.Location, departure time.Time) (int, error) {
	return f(ctx, origin, destination, departure)
}

func constantTravel(mins int) estimatorFunc {
	return func(context.Context, domain.Location, domain.Location, time.Time) (int, error) {
		return mins, nil
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := types.NewTimeStringFromString(hhmm)
	require.NoError(t, err)
	return ts.On(testDay)
}

func hhmm(times []time.Time) []string {
	out := make([]string, len(times))
	for i, tm := range times {
		out[i] = tm.Format(domain.TimeFormat)
	}
	return out
}

func booking(id int64, start, end, address string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ProviderID:  1,
		BookingDate: testDay,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		Location:    domain.Location{Address: address, Lat: ptr.Ptr(34.0), Lng: ptr.Ptr(-118.0)},
		Status:      domain.StatusConfirmed,
	}
}

func inGroup(b *domain.Booking, group string) *domain.Booking {
	b.GroupID = ptr.Ptr(group)
	return b
}

func window(t *testing.T, start, end string) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{Date: testDay, Start: at(t, start), End: at(t, end)}
}
