package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/slots/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

// UseCase use case для получения доступных слотов провайдера
type UseCase struct {
	bookingRepo          BookingRepository
	availabilityRepo     AvailabilityRepository
	slotsService         SlotsService
	defaultBufferMinutes int
	timeProvider         TimeProvider
	logger               Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	slotsService SlotsService,
	defaultBufferMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:          bookingRepo,
		availabilityRepo:     availabilityRepo,
		slotsService:         slotsService,
		defaultBufferMinutes: defaultBufferMinutes,
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, duration=%s",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.Duration)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем окна доступности на дату
	blocks, err := uc.availabilityRepo.GetByProviderAndDate(ctx, req.ProviderID, req.Date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	windows, err := buildWindows(blocks, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: stored availability is malformed: %v", err)
		return nil, fmt.Errorf("%w: malformed availability: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no autobook availability for provider=%d on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return nil, ErrNoAvailability
	}

	// 4. Получаем бронирования на эту дату
	bookings, err := uc.bookingRepo.GetActiveByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		b.BookingDate = req.Date
	}

	// 5. Рассчитываем слоты по каждому окну, окна не пересекаются и отсортированы
	result := make([]types.TimeString, 0)
	for _, w := range windows {
		found, err := uc.slotsService.GetAvailableSlots(ctx, &models.Query{
			Window:               w,
			Bookings:             bookings,
			ClientLocation:       req.ClientLocation,
			Duration:             req.Duration,
			DefaultBufferMinutes: uc.defaultBufferMinutes,
			RequestedGroupID:     req.RequestedGroupID,
			ExtraDepartureBuffer: req.ExtraDepartureBuffer,
			ProviderID:           &req.ProviderID,
		})
		if err != nil {
			if errors.Is(err, slots.ErrValidation) {
				uc.logger.Warn("GetAvailableSlots: rejected by slots service: %v", err)
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			uc.logger.Error("GetAvailableSlots: failed to calculate slots: %v", err)
			return nil, fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
		}

		for _, slot := range found {
			// Сегодня прошедшие слоты не предлагаем
			if isSameDay(req.Date, now) && slot.Before(now) {
				continue
			}
			result = append(result, types.NewTimeString(slot))
		}
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for provider=%d, date=%s",
		len(result), req.ProviderID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		ProviderID: req.ProviderID,
		Duration:   req.Duration,
		Slots:      result,
	}, nil
}
