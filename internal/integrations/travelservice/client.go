package travelservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
)

// TrafficThresholdKm начиная с этого расстояния используется время с учётом пробок
const TrafficThresholdKm = 40

// Client клиент Distance Matrix API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
	now        func() time.Time
}

// NewClient создает новый экземпляр клиента.
// rps и burst ограничивают частоту исходящих запросов.
func NewClient(baseURL, apiKey string, timeout time.Duration, rps float64, burst int, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
		now:     time.Now,
	}
}

// EstimateTravelMinutes возвращает время в пути на автомобиле в минутах, округлённое вверх
func (c *Client) EstimateTravelMinutes(ctx context.Context, origin, destination domain.Location, departure time.Time) (int, error) {
	if !origin.HasCoordinates() || !destination.HasCoordinates() {
		return 0, fmt.Errorf("%w: origin=%q destination=%q", ErrMissingCoordinates, origin.Address, destination.Address)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(origin, destination, departure), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var matrix DistanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return travelMinutes(&matrix)
}

func (c *Client) requestURL(origin, destination domain.Location, departure time.Time) string {
	// API принимает только время отправления в будущем
	departureParam := "now"
	if departure.After(c.now()) {
		departureParam = strconv.FormatInt(departure.Unix(), 10)
	}

	q := url.Values{}
	q.Set("origins", formatLatLng(origin))
	q.Set("destinations", formatLatLng(destination))
	q.Set("mode", "driving")
	q.Set("departure_time", departureParam)
	q.Set("key", c.apiKey)

	return c.baseURL + "?" + q.Encode()
}

// travelMinutes выбирает длительность из ответа: для дальних поездок с учётом пробок
func travelMinutes(matrix *DistanceMatrixResponse) (int, error) {
	if matrix.Status != statusOK {
		return 0, fmt.Errorf("%w: status=%s: %s", ErrInvalidResponse, matrix.Status, matrix.ErrorMessage)
	}
	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("%w: empty matrix", ErrInvalidResponse)
	}

	el := matrix.Rows[0].Elements[0]
	if el.Status != statusOK {
		return 0, fmt.Errorf("%w: element status=%s", ErrRouteNotFound, el.Status)
	}
	if el.Distance == nil || el.Duration == nil {
		return 0, fmt.Errorf("%w: distance or duration is missing", ErrInvalidResponse)
	}

	seconds := el.Duration.Value
	if float64(el.Distance.Value)/1000 > TrafficThresholdKm && el.DurationInTraffic != nil {
		seconds = el.DurationInTraffic.Value
	}

	return int((seconds + 59) / 60), nil
}

func formatLatLng(l domain.Location) string {
	return strconv.FormatFloat(*l.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(*l.Lng, 'f', 6, 64)
}
