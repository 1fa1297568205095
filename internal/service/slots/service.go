package slots

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots/models"
)

// Service рассчитывает доступные для записи слоты провайдера на день
type Service struct {
	travel   *travelValidator
	params   Params
	logger   Logger
	recorder Recorder
}

// NewService создает новый экземпляр сервиса. recorder может быть nil.
func NewService(estimator TravelEstimator, params Params, logger Logger, recorder Recorder) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	params = params.withDefaults()

	return &Service{
		travel: &travelValidator{
			estimator: estimator,
			params:    params,
			logger:    logger,
			recorder:  recorder,
		},
		params:   params,
		logger:   logger,
		recorder: recorder,
	}
}

// GetAvailableSlots возвращает доступные начала визитов в хронологическом порядке.
//
// Конвейер: генерация кандидатов -> фильтр занятости с буферами ->
// проверка цепочки (для нескольких сеансов) или проверка времени в пути (для одного).
// Бронирования из запроса не изменяются.
func (s *Service) GetAvailableSlots(ctx context.Context, q *models.Query) ([]time.Time, error) {
	started := time.Now()

	if err := validateQuery(q); err != nil {
		return nil, err
	}

	bookings := activeSorted(q.Bookings)
	requested := q.RequestedContext()
	baseline := minutes(q.Duration.Baseline())

	// 1. Кандидаты с фиксированным шагом
	generated := slices.Collect(candidates(q.Window.Start, q.Window.End, minutes(s.params.IntervalMinutes), baseline))
	s.recorder.ObserveStage("generated", len(generated))

	// 2. Фильтр занятости
	free := filterOccupied(generated, bookings, baseline, requested, q.DefaultBufferMinutes)
	s.recorder.ObserveStage("occupancy", len(free))

	// 3. Цепочка или время в пути
	var (
		result []time.Time
		err    error
	)
	if q.Duration.IsChain() {
		result = s.filterChains(free, q)
	} else {
		result, err = s.filterByTravel(ctx, free, &travelCheck{
			bookings:      bookings,
			requested:     requested,
			client:        q.ClientLocation,
			duration:      baseline,
			defaultBuffer: q.DefaultBufferMinutes,
		})
		if err != nil {
			return nil, err
		}
	}
	s.recorder.ObserveStage("final", len(result))
	s.recorder.ObserveSlotSearch(q.Duration.Kind().String(), time.Since(started))

	s.logger.Info("GetAvailableSlots: provider=%s, date=%s, duration=%s: generated=%d, free=%d, feasible=%d",
		providerLabel(q.ProviderID), q.Window.Date.Format(domain.DateFormat), q.Duration,
		len(generated), len(free), len(result))

	return result, nil
}

func (s *Service) filterChains(cands []time.Time, q *models.Query) []time.Time {
	sessions := q.Duration.Sessions()
	result := make([]time.Time, 0, len(cands))
	for _, slot := range cands {
		if chainFits(slot, sessions, q.DefaultBufferMinutes, s.params.Hours, s.params.ChainGranularityMinutes) {
			result = append(result, slot)
		}
	}
	return result
}

// filterByTravel проверяет кандидатов параллельно, не более MaxConcurrentLookups одновременно.
// Вердикты пишутся по индексу кандидата, поэтому порядок результата не зависит
// от порядка завершения проверок.
func (s *Service) filterByTravel(ctx context.Context, cands []time.Time, check *travelCheck) ([]time.Time, error) {
	verdicts := make([]bool, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.params.MaxConcurrentLookups)

	for i, slot := range cands {
		g.Go(func() error {
			ok, err := s.travel.validate(gctx, slot, check)
			if err != nil {
				return err
			}
			verdicts[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("GetAvailableSlots: travel validation aborted: %v", err)
		return nil, err
	}

	result := make([]time.Time, 0, len(cands))
	for i, ok := range verdicts {
		if ok {
			result = append(result, cands[i])
		}
	}
	return result, nil
}

// validateQuery проверяет входные данные до генерации слотов
func validateQuery(q *models.Query) error {
	if q == nil {
		return fmt.Errorf("%w: query is required", ErrValidation)
	}
	if q.Window.Start.IsZero() || q.Window.End.IsZero() {
		return fmt.Errorf("%w: availability window is required", ErrValidation)
	}
	if !q.Window.End.After(q.Window.Start) {
		return fmt.Errorf("%w: availability window %s-%s is not chronological", ErrValidation,
			q.Window.Start.Format(domain.TimeFormat), q.Window.End.Format(domain.TimeFormat))
	}
	if err := q.Duration.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if q.DefaultBufferMinutes < 0 {
		return fmt.Errorf("%w: default buffer must not be negative", ErrValidation)
	}
	if q.ExtraDepartureBuffer < 0 {
		return fmt.Errorf("%w: extra departure buffer must not be negative", ErrValidation)
	}

	for _, b := range q.Bookings {
		if b == nil {
			return fmt.Errorf("%w: nil booking", ErrValidation)
		}
		if err := b.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: booking id=%d start: %v", ErrValidation, b.ID, err)
		}
		if err := b.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: booking id=%d end: %v", ErrValidation, b.ID, err)
		}
		if !b.StartTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: booking id=%d %s-%s is not chronological", ErrValidation, b.ID, b.StartTime, b.EndTime)
		}
	}

	return nil
}

// activeSorted возвращает копию с активными бронированиями, отсортированную по началу
func activeSorted(bookings []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	slices.SortStableFunc(active, func(a, b *domain.Booking) int {
		return cmp.Compare(a.StartsAt().UnixNano(), b.StartsAt().UnixNano())
	})
	return active
}

func providerLabel(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
