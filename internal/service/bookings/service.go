package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/infra/events"
	bookingRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/booking"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
)

// Service handles booking reads and status transitions
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewService creates the bookings service
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List returns bookings matching the filter. Cancelled bookings are excluded
// unless requested explicitly or the status filter is "cancelled".
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Confirm moves a pending booking to confirmed
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.lockBooking(txCtx, "Confirm", id)
		if err != nil {
			return err
		}
		if !b.CanBeConfirmed() {
			s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", id, b.Status)
			return ErrCannotConfirm
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			return s.mapRepoError("Confirm", id, err)
		}

		b.Status = domain.StatusConfirmed
		booking = b
		return nil
	})
	if err != nil {
		s.metrics.ObserveBooking("confirm", resultLabel(err))
		return nil, err
	}

	s.metrics.ObserveBooking("confirm", "ok")
	s.logger.Info("Confirm: booking id=%d confirmed", id)
	s.afterTransition(ctx, events.BookingConfirmed, booking)
	s.notifier.BookingConfirmed(ctx, booking)

	return models.FromDomainBooking(booking), nil
}

// Cancel moves a pending or confirmed booking to cancelled. The slot becomes
// free for subsequent availability queries.
func (s *Service) Cancel(ctx context.Context, id int64, reason *string) (*models.BookingResponse, error) {
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if utf8.RuneCountInString(trimmed) > domain.MaxCancellationReasonLength {
			return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
				ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
		if trimmed == "" {
			reason = nil
		} else {
			reason = &trimmed
		}
	}

	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.lockBooking(txCtx, "Cancel", id)
		if err != nil {
			return err
		}
		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, b.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, id, reason); err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		now := time.Now()
		b.Status = domain.StatusCancelled
		b.CancellationReason = reason
		b.CancelledAt = &now
		booking = b
		return nil
	})
	if err != nil {
		s.metrics.ObserveBooking("cancel", resultLabel(err))
		return nil, err
	}

	s.metrics.ObserveBooking("cancel", "ok")
	s.logger.Info("Cancel: booking id=%d cancelled", id)
	s.afterTransition(ctx, events.BookingCancelled, booking)
	s.notifier.BookingCancelled(ctx, booking)

	return models.FromDomainBooking(booking), nil
}

func (s *Service) lockBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return b, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) afterTransition(ctx context.Context, key string, b *domain.Booking) {
	err := s.publisher.Publish(ctx, key, events.BookingEvent{
		BookingID:       b.ID,
		Status:          string(b.Status),
		Date:            b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		OccurredAt:      time.Now(),
	})
	if err != nil {
		s.logger.Warn("%s: publish event for id=%d: %v", key, b.ID, err)
	}
}

func resultLabel(err error) string {
	if errors.Is(err, ErrInternal) {
		return "error"
	}
	return "rejected"
}
