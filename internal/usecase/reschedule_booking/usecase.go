package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/domain/availability"
	"github.com/whalechillz/mas-win-sub025/internal/infra/events"
	bookingRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/booking"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
	"github.com/whalechillz/mas-win-sub025/pkg/txmanager"
)

const operation = "reschedule"

// UseCase moves an active booking to a new date/time. The booking itself is
// excluded from occupancy so it never collides with its own old interval.
type UseCase struct {
	bookingRepo BookingRepository
	loader      RulesLoader
	txManager   TransactionManager
	notifier    Notifier
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase creates the reschedule booking use case
func NewUseCase(
	bookingRepo BookingRepository,
	loader RulesLoader,
	txManager TransactionManager,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		loader:      loader,
		txManager:   txManager,
		notifier:    notifier,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking(operation, "invalid")
		return nil, err
	}

	date := domain.DateIn(req.Date, uc.loader.Location())

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if !current.CanBeUpdated() {
			return fmt.Errorf("%w: status=%s", ErrCannotReschedule, current.Status)
		}

		rules, err := uc.loader.Load(txCtx, date, &current.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		duration := ptr.Deref(req.DurationMinutes, current.DurationMinutes)

		if err := availability.Check(rules.Input(date, duration), req.StartTime); err != nil {
			return mapAvailabilityError(err)
		}

		if err := uc.bookingRepo.UpdateSchedule(txCtx, current.ID, date, req.StartTime, duration); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		updated := *current
		updated.BookingDate = date
		updated.StartTime = req.StartTime
		updated.DurationMinutes = duration
		result = &updated
		return nil
	})
	if err != nil {
		err = mapTxError(err)
		uc.observe(err)
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("RescheduleBooking: id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("RescheduleBooking: id=%d rejected: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(operation, "ok")
	uc.logger.Info("RescheduleBooking: id=%d moved to %s %s (%d min)",
		result.ID, date.Format(domain.DateFormat), result.StartTime, result.DurationMinutes)

	uc.notifier.BookingRescheduled(ctx, result)
	if err := uc.publisher.Publish(ctx, events.BookingRescheduled, events.BookingEvent{
		BookingID:       result.ID,
		Status:          string(result.Status),
		Date:            date.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
		DurationMinutes: result.DurationMinutes,
		OccurredAt:      time.Now(),
	}); err != nil {
		uc.logger.Warn("RescheduleBooking: publish event for id=%d: %v", result.ID, err)
	}

	return result, nil
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrOverlap):
		return ErrSlotNotAvailable
	case errors.Is(err, availability.ErrDateRestricted):
		return fmt.Errorf("%w: %v", ErrDateNotBookable, err)
	case errors.Is(err, availability.ErrOutsideOperatingHours):
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	case errors.Is(err, availability.ErrTooSoon):
		return fmt.Errorf("%w: %v", ErrTooLateToBook, err)
	case errors.Is(err, availability.ErrInvalidDuration):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrCannotReschedule),
		errors.Is(err, ErrDateNotBookable),
		errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrTooLateToBook),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, txmanager.ErrSerialization),
		errors.Is(err, bookingRepo.ErrSlotNotAvailable),
		txmanager.IsSerializationFailure(err):
		return fmt.Errorf("%w: concurrent booking detected", ErrSlotNotAvailable)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(err error) {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.ObserveBooking(operation, "conflict")
	case errors.Is(err, ErrInternal):
		uc.metrics.ObserveBooking(operation, "error")
	default:
		uc.metrics.ObserveBooking(operation, "rejected")
	}
}
