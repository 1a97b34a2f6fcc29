package get_next_available_date

import (
	"context"
	"fmt"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/domain/availability"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
)

// UseCase finds the first date with at least one free slot
type UseCase struct {
	loader RulesLoader
	logger Logger
}

// NewUseCase creates the next available date use case
func NewUseCase(loader RulesLoader, logger Logger) *UseCase {
	return &UseCase{loader: loader, logger: logger}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.DurationMinutes != nil && (*req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxDurationMinutes) {
		return nil, fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	settings, err := uc.loader.Settings(ctx)
	if err != nil {
		uc.logger.Error("GetNextAvailableDate: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	horizon := domain.DefaultNextAvailableHorizon
	if settings.HasAdvanceLimit() {
		horizon = settings.MaxAdvanceDays
	}

	from := uc.loader.Today()
	to := from.AddDate(0, 0, horizon)

	rules, err := uc.loader.LoadRange(ctx, from, to, nil)
	if err != nil {
		uc.logger.Error("GetNextAvailableDate: load %s..%s: %v",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	duration := ptr.Deref(req.DurationMinutes, rules.Settings.DefaultDurationMinutes)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day, err := availability.Compute(rules.Input(date, duration))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if !day.IsEmpty() {
			uc.logger.Info("GetNextAvailableDate: duration=%d -> %s (%d slots)",
				duration, date.Format(domain.DateFormat), len(day.Slots))
			return &Response{Date: date, DurationMinutes: duration, Slots: day.Slots}, nil
		}
	}

	uc.logger.Warn("GetNextAvailableDate: nothing free within %d days for duration=%d", horizon, duration)
	return nil, ErrNoAvailableDate
}
