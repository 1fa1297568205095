package get_available_slots

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_available_slots"
)

var (
	errMissingDate        = errors.New("date is required")
	errInvalidDate        = errors.New("invalid date")
	errInvalidDuration    = errors.New("invalid duration")
	errInvalidCoordinates = errors.New("invalid coordinates")
	errInvalidBuffer      = errors.New("invalid extra departure buffer")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date             string   `json:"date"`
	ProviderID       int64    `json:"providerId"`
	DurationMinutes  int      `json:"durationMinutes"`
	SessionDurations []int    `json:"sessionDurations,omitempty"`
	Slots            []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	result := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ProviderID:      resp.ProviderID,
		DurationMinutes: resp.Duration.Baseline(),
		Slots:           slots,
	}
	if resp.Duration.IsChain() {
		result.SessionDurations = resp.Duration.Sessions()
	}
	return result
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Дата интерпретируется в часовом поясе сервиса.
func ToUseCaseRequest(providerID int64, query url.Values, loc *time.Location) (*getAvailableSlots.Request, error) {
	dateStr := query.Get("date")
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, errInvalidDate
	}

	duration, err := parseDuration(query)
	if err != nil {
		return nil, err
	}

	location, err := parseLocation(query)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		ProviderID:     providerID,
		Date:           date,
		Duration:       duration,
		ClientLocation: location,
	}

	if groupID := strings.TrimSpace(query.Get("groupId")); groupID != "" {
		req.RequestedGroupID = &groupID
	}

	if raw := query.Get("extraDepartureBuffer"); raw != "" {
		extra, err := strconv.Atoi(raw)
		if err != nil || extra < 0 {
			return nil, errInvalidBuffer
		}
		req.ExtraDepartureBuffer = extra
	}

	return req, nil
}

// parseDuration читает sessionDurations=90,60 (цепочка) или duration=60 (один сеанс)
func parseDuration(query url.Values) (domain.DurationSpec, error) {
	if raw := query.Get("sessionDurations"); raw != "" {
		parts := strings.Split(raw, ",")
		sessions := make([]int, 0, len(parts))
		for _, p := range parts {
			m, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return domain.DurationSpec{}, errInvalidDuration
			}
			sessions = append(sessions, m)
		}
		// Список сеансов всегда цепочка, даже из одного элемента
		return domain.Chain(sessions...), nil
	}

	raw := query.Get("duration")
	if raw == "" {
		return domain.Single(domain.DefaultSessionMinutes), nil
	}
	m, err := strconv.Atoi(raw)
	if err != nil {
		return domain.DurationSpec{}, errInvalidDuration
	}
	return domain.Single(m), nil
}

func parseLocation(query url.Values) (domain.Location, error) {
	location := domain.Location{Address: strings.TrimSpace(query.Get("address"))}

	latStr, lngStr := query.Get("lat"), query.Get("lng")
	if latStr == "" && lngStr == "" {
		return location, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Location{}, errInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return domain.Location{}, errInvalidCoordinates
	}
	location.Lat = &lat
	location.Lng = &lng
	return location, nil
}
