package create_booking

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

const operation = "create"

// UseCase creates a booking after re-checking availability inside a
// serializable transaction, so two concurrent requests cannot both win the slot.
type UseCase struct {
	bookingRepo BookingRepository
	loader      RulesLoader
	txManager   TransactionManager
	notifier    Notifier
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase creates the create booking use case
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
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking(operation, "invalid")
		return nil, err
	}

	date := domain.DateIn(req.Date, uc.loader.Location())
	uc.logger.Info("CreateBooking: date=%s start=%s", date.Format(domain.DateFormat), req.StartTime)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		rules, err := uc.loader.Load(txCtx, date, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		duration := ptr.Deref(req.DurationMinutes, rules.Settings.DefaultDurationMinutes)

		if err := availability.Check(rules.Input(date, duration), req.StartTime); err != nil {
			return mapAvailabilityError(err)
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			BookingDate:     date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			Status:          req.Status,
			Notes:           req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		err = mapTxError(err)
		uc.observe(err)
		uc.logAttemptFailure(date, req, err)
		return nil, err
	}

	uc.metrics.ObserveBooking(operation, "ok")
	uc.logger.Info("CreateBooking: created id=%d %s %s (%d min)",
		result.ID, date.Format(domain.DateFormat), result.StartTime, result.DurationMinutes)

	uc.notifier.BookingCreated(ctx, result)
	if err := uc.publisher.Publish(ctx, events.BookingCreated, events.BookingEvent{
		BookingID:       result.ID,
		Status:          string(result.Status),
		Date:            date.Format(domain.DateFormat),
		StartTime:       result.StartTime.String(),
		DurationMinutes: result.DurationMinutes,
		OccurredAt:      time.Now(),
	}); err != nil {
		uc.logger.Warn("CreateBooking: publish event for id=%d: %v", result.ID, err)
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

// mapTxError folds database-detected conflicts into ErrSlotNotAvailable
func mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable),
		errors.Is(err, ErrInvalidInput),
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

func (uc *UseCase) logAttemptFailure(date time.Time, req *Request, err error) {
	if errors.Is(err, ErrInternal) {
		uc.logger.Error("CreateBooking: date=%s start=%s: %v", date.Format(domain.DateFormat), req.StartTime, err)
		return
	}
	uc.logger.Warn("CreateBooking: date=%s start=%s rejected: %v", date.Format(domain.DateFormat), req.StartTime, err)
}
