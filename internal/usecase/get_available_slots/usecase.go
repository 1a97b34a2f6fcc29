package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/domain/availability"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
)

// UseCase lists bookable start times for a date
type UseCase struct {
	loader RulesLoader
	logger Logger
}

// NewUseCase creates the available slots use case
func NewUseCase(loader RulesLoader, logger Logger) *UseCase {
	return &UseCase{loader: loader, logger: logger}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateIn(req.Date, uc.loader.Location())

	rules, err := uc.loader.Load(ctx, date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	duration := ptr.Deref(req.DurationMinutes, rules.Settings.DefaultDurationMinutes)

	day, err := availability.Compute(rules.Input(date, duration))
	if errors.Is(err, availability.ErrInvalidDuration) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: compute date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s duration=%d slots=%d restriction=%q",
		date.Format(domain.DateFormat), duration, len(day.Slots), day.Restriction)

	return &Response{
		Date:            date,
		DurationMinutes: duration,
		Slots:           day.Slots,
		Restriction:     day.Restriction,
	}, nil
}
