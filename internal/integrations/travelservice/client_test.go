package travelservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
)

var (
	home   = domain.Location{Address: "home", Lat: ptr.Ptr(55.751244), Lng: ptr.Ptr(37.618423)}
	office = domain.Location{Address: "office", Lat: ptr.Ptr(55.7558), Lng: ptr.Ptr(37.6173)}
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", time.Second, 100, 10, logger.NewNop())
}

func TestClient_EstimateTravelMinutes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "short distance ignores traffic",
			body: `{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":12000},"duration":{"value":1201},"duration_in_traffic":{"value":3000}}]}]}`,
			want: 21,
		},
		{
			name: "long distance uses traffic",
			body: `{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":41000},"duration":{"value":2400},"duration_in_traffic":{"value":3000}}]}]}`,
			want: 50,
		},
		{
			name: "long distance without traffic data",
			body: `{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":41000},"duration":{"value":2400}}]}]}`,
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))
				assert.Equal(t, "driving", r.URL.Query().Get("mode"))
				assert.Equal(t, "55.751244,37.618423", r.URL.Query().Get("origins"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := client.EstimateTravelMinutes(context.Background(), home, office, time.Now().Add(time.Hour))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_DepartureTime(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	var got []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query().Get("departure_time"))
		_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":1},"duration":{"value":60}}]}]}`))
	})

	_, err := client.EstimateTravelMinutes(context.Background(), home, office, future)
	require.NoError(t, err)
	_, err = client.EstimateTravelMinutes(context.Background(), home, office, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	assert.Equal(t, []string{strconv.FormatInt(future.Unix(), 10), "now"}, got)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "http error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInvalidResponse},
		{name: "api status", status: http.StatusOK, body: `{"status":"REQUEST_DENIED","error_message":"bad key"}`, wantErr: ErrInvalidResponse},
		{name: "no route", status: http.StatusOK, body: `{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`, wantErr: ErrRouteNotFound},
		{name: "empty rows", status: http.StatusOK, body: `{"status":"OK","rows":[]}`, wantErr: ErrInvalidResponse},
		{name: "malformed json", status: http.StatusOK, body: `{`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.EstimateTravelMinutes(context.Background(), home, office, time.Now())

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_MissingCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	_, err := client.EstimateTravelMinutes(context.Background(), domain.Location{Address: "nowhere"}, office, time.Now())

	assert.ErrorIs(t, err, ErrMissingCoordinates)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.EstimateTravelMinutes(ctx, home, office, time.Now())

	assert.ErrorIs(t, err, ErrInternal)
}
