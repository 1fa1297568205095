package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/availability"
	"github.com/m04kA/SMC-VisitScheduler/internal/service/availability/models"
	"github.com/m04kA/SMC-VisitScheduler/pkg/ptr"
)

// Service сервис для управления окнами доступности провайдера
type Service struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	txManager        TxManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByDate получает окна доступности провайдера на дату
// Публичный метод - доступен всем
func (s *Service) GetByDate(ctx context.Context, providerID int64, date time.Time) (*models.AvailabilityListResponse, error) {
	s.logger.Info("GetByDate: fetching availability for provider=%d, date=%s", providerID, date.Format(domain.DateFormat))

	blocks, err := s.availabilityRepo.GetByProviderAndDate(ctx, providerID, date, nil)
	if err != nil {
		s.logger.Error("GetByDate: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainList(blocks), nil
}

// Create создает окно доступности
// Доступно только самому провайдеру.
// Окно unavailable поверх существующих бронирований создаётся только с Force.
func (s *Service) Create(ctx context.Context, req *models.CreateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Create: creating %s availability %s-%s on %s for provider=%d by user=%d",
		req.Type, req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat), req.ProviderID, req.UserID)

	if req.UserID != req.ProviderID {
		s.logger.Warn("Create: user=%d is not provider=%d", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	block := &domain.AvailabilityBlock{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.Type,
	}
	if err := validateBlock(block); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.AvailabilityBlock
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, block); err != nil {
			return err
		}

		if block.Type == domain.AvailabilityUnavailable {
			affected, err := s.bookingsIn(ctx, block)
			if err != nil {
				return err
			}
			if err := s.conflict("Create", affected, req.Force); err != nil {
				return err
			}
		}

		var err error
		created, err = s.availabilityRepo.Create(ctx, block)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logError("Create", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created availability id=%d", created.ID)
	return models.FromDomain(created), nil
}

// Update обновляет окно доступности
// Если после изменения бронирования окажутся вне доступного времени,
// возвращается ConflictError со списком бронирований (без Force).
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: updating availability id=%d by user=%d", id, req.UserID)

	var updated *domain.AvailabilityBlock
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		current, err := s.getOwned(ctx, id, req.UserID)
		if err != nil {
			return err
		}

		next := *current
		req.ApplyTo(&next)
		if err := validateBlock(&next); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, &next); err != nil {
			return err
		}

		affected, err := s.affectedByUpdate(ctx, current, &next)
		if err != nil {
			return err
		}
		if err := s.conflict("Update", affected, req.Force); err != nil {
			return err
		}

		updated, err = s.availabilityRepo.Update(ctx, &next)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				return ErrAvailabilityNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logError("Update", err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated availability id=%d", id)
	return models.FromDomain(updated), nil
}

// Delete удаляет окно доступности
// Окно autobook с бронированиями удаляется только с Force.
func (s *Service) Delete(ctx context.Context, req *models.DeleteAvailabilityRequest) error {
	s.logger.Info("Delete: deleting availability id=%d by user=%d, force=%t", req.ID, req.UserID, req.Force)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		block, err := s.getOwned(ctx, req.ID, req.UserID)
		if err != nil {
			return err
		}

		if block.Type == domain.AvailabilityAutobook {
			affected, err := s.bookingsIn(ctx, block)
			if err != nil {
				return err
			}
			if err := s.conflict("Delete", affected, req.Force); err != nil {
				return err
			}
		}

		if err := s.availabilityRepo.Delete(ctx, req.ID); err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				return ErrAvailabilityNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logError("Delete", err)
		return err
	}

	s.logger.Info("Delete: successfully deleted availability id=%d", req.ID)
	return nil
}

// Вспомогательные методы

// getOwned получает окно и проверяет, что оно принадлежит пользователю
func (s *Service) getOwned(ctx context.Context, id, userID int64) (*domain.AvailabilityBlock, error) {
	block, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if block.ProviderID != userID {
		return nil, ErrAccessDenied
	}

	return block, nil
}

// checkOverlap проверяет, что окно не пересекается с другими окнами того же типа
func (s *Service) checkOverlap(ctx context.Context, block *domain.AvailabilityBlock) error {
	existing, err := s.availabilityRepo.GetByProviderAndDate(ctx, block.ProviderID, block.Date, ptr.Ptr(block.Type))
	if err != nil {
		return fmt.Errorf("%w: GetByProviderAndDate - repository error: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.ID == block.ID {
			continue
		}
		if block.StartTime.IsBefore(other.EndTime) && block.EndTime.IsAfter(other.StartTime) {
			return fmt.Errorf("%w: id=%d %s-%s", ErrOverlap, other.ID, other.StartTime, other.EndTime)
		}
	}

	return nil
}

// bookingsIn возвращает активные бронирования, пересекающиеся с окном
func (s *Service) bookingsIn(ctx context.Context, block *domain.AvailabilityBlock) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{
		ProviderID: block.ProviderID,
		Date:       block.Date,
		From:       ptr.Ptr(block.StartTime),
		To:         ptr.Ptr(block.EndTime),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// affectedByUpdate определяет бронирования, которые станут недоступными после изменения окна:
// для autobook - бывшие внутри старого окна и не покрытые новым,
// для unavailable - попадающие в новое окно.
func (s *Service) affectedByUpdate(ctx context.Context, current, next *domain.AvailabilityBlock) ([]*domain.Booking, error) {
	if next.Type == domain.AvailabilityUnavailable {
		return s.bookingsIn(ctx, next)
	}

	if current.Type != domain.AvailabilityAutobook {
		return nil, nil
	}

	inside, err := s.bookingsIn(ctx, current)
	if err != nil {
		return nil, err
	}

	affected := make([]*domain.Booking, 0)
	for _, b := range inside {
		if !next.Covers(b) {
			affected = append(affected, b)
		}
	}
	return affected, nil
}

// conflict возвращает ConflictError, если есть затронутые бронирования и не указан force
func (s *Service) conflict(op string, affected []*domain.Booking, force bool) error {
	if len(affected) == 0 {
		return nil
	}
	if force {
		s.logger.Warn("%s: forced despite %d affected bookings", op, len(affected))
		return nil
	}
	return &ConflictError{Bookings: affected}
}

func (s *Service) logError(op string, err error) {
	switch {
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: %v", op, err)
	default:
		s.logger.Warn("%s: %v", op, err)
	}
}

// validateBlock проверяет тип и время окна
func validateBlock(block *domain.AvailabilityBlock) error {
	if block.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !block.Type.IsValid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalidInput, domain.AvailabilityAutobook, domain.AvailabilityUnavailable)
	}
	if err := block.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	if err := block.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}
	if !block.StartTime.IsBefore(block.EndTime) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	return nil
}
