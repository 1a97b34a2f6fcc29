package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	settingsRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/settings"
	"github.com/whalechillz/mas-win-sub025/internal/service/settings/models"
)

// Service manages the operating rule set: settings, weekly hours and blocks
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	logger    Logger
}

// NewService creates the booking settings service
func NewService(repo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{repo: repo, txManager: txManager, logger: logger}
}

// Get returns the stored settings, or the defaults when none were saved yet
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	hours, err := s.repo.ListHours(ctx)
	if err != nil {
		s.logger.Error("Get: failed to list hours: %v", err)
		return nil, fmt.Errorf("%w: Get - list hours: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings, hours), nil
}

// Update applies a partial update to settings and optionally replaces the hours
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	var hours []*domain.OperatingHours
	if req.Hours != nil {
		var err error
		if hours, err = toDomainHours(*req.Hours); err != nil {
			s.logger.Warn("Update: invalid hours: %v", err)
			return nil, err
		}
	}

	var (
		saved      *domain.BookingSettings
		savedHours []*domain.OperatingHours
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.loadSettings(txCtx)
		if err != nil {
			return err
		}

		applyUpdate(&current, req)
		if err := validateSettings(current); err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return err
		}

		saved, err = s.repo.UpsertSettings(txCtx, &current)
		if err != nil {
			return fmt.Errorf("%w: Update - upsert settings: %v", ErrInternal, err)
		}

		if hours != nil {
			if err := s.repo.ReplaceHours(txCtx, hours); err != nil {
				return fmt.Errorf("%w: Update - replace hours: %v", ErrInternal, err)
			}
		}

		savedHours, err = s.repo.ListHours(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Update - list hours: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Update: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Update: settings saved (step=%d, default=%d, hours=%d)",
		saved.SlotStepMinutes, saved.DefaultDurationMinutes, len(savedHours))
	return models.FromDomainSettings(*saved, savedHours), nil
}

// ListBlocks returns the blocks in [from, to]
func (s *Service) ListBlocks(ctx context.Context, from, to time.Time) ([]*models.BlockResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	blocks, err := s.repo.ListBlocksBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlocks: %v", err)
		return nil, fmt.Errorf("%w: ListBlocks - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, models.FromDomainBlock(b))
	}
	return out, nil
}

// CreateBlock stores an unavailable window. Existing bookings are not touched.
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	iv, err := domain.NewInterval(req.StartTime, req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if iv.End > 24*60 {
		return nil, fmt.Errorf("%w: block must end before midnight", ErrInvalidInput)
	}

	block, err := s.repo.CreateBlock(ctx, &domain.BookingBlock{
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		IsVirtual:       req.IsVirtual,
		Reason:          req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlock: %v", err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: id=%d %s %s (%d min, virtual=%t)",
		block.ID, block.Date.Format(domain.DateFormat), block.StartTime, block.DurationMinutes, block.IsVirtual)
	return models.FromDomainBlock(block), nil
}

func (s *Service) DeleteBlock(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBlock(ctx, id); err != nil {
		if errors.Is(err, settingsRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: block id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: block id=%d deleted", id)
	return nil
}

func (s *Service) loadSettings(ctx context.Context) (domain.BookingSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return domain.DefaultBookingSettings(), nil
	}
	if err != nil {
		s.logger.Error("loadSettings: %v", err)
		return domain.BookingSettings{}, fmt.Errorf("%w: load settings: %v", ErrInternal, err)
	}
	return *settings, nil
}

func applyUpdate(s *domain.BookingSettings, req *models.UpdateSettingsRequest) {
	if req.DisableSameDayBooking != nil {
		s.DisableSameDayBooking = *req.DisableSameDayBooking
	}
	if req.DisableWeekendBooking != nil {
		s.DisableWeekendBooking = *req.DisableWeekendBooking
	}
	if req.MinAdvanceHours != nil {
		s.MinAdvanceHours = *req.MinAdvanceHours
	}
	if req.MaxAdvanceDays != nil {
		s.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.SlotStepMinutes != nil {
		s.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.DefaultDurationMinutes != nil {
		s.DefaultDurationMinutes = *req.DefaultDurationMinutes
	}
}

func validateSettings(s domain.BookingSettings) error {
	if s.SlotStepMinutes < domain.MinSlotStepMinutes || s.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if s.DefaultDurationMinutes <= 0 || s.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxDurationMinutes)
	}
	if s.MinAdvanceHours < 0 || s.MinAdvanceHours > domain.MaxAdvanceHoursLimit {
		return fmt.Errorf("%w: minAdvanceHours must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceHoursLimit)
	}
	if s.MaxAdvanceDays < 0 || s.MaxAdvanceDays > domain.MaxAdvanceDaysLimit {
		return fmt.Errorf("%w: maxAdvanceDays must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceDaysLimit)
	}
	return nil
}

func toDomainHours(in []models.OperatingHoursDTO) ([]*domain.OperatingHours, error) {
	out := make([]*domain.OperatingHours, 0, len(in))
	for i, h := range in {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: hours[%d].dayOfWeek must be 0..6", ErrInvalidInput, i)
		}
		oh := &domain.OperatingHours{
			DayOfWeek:   time.Weekday(h.DayOfWeek),
			StartTime:   h.StartTime,
			EndTime:     h.EndTime,
			IsAvailable: h.IsAvailable,
		}
		w, err := oh.Window()
		if err != nil {
			return nil, fmt.Errorf("%w: hours[%d]: %v", ErrInvalidInput, i, err)
		}
		if w.End <= w.Start {
			return nil, fmt.Errorf("%w: hours[%d]: end must be after start", ErrInvalidInput, i)
		}
		out = append(out, oh)
	}
	return out, nil
}
