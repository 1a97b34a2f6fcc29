package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
	"github.com/whalechillz/mas-win-sub025/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

const (
	settingsTable = "booking_settings"
	hoursTable    = "booking_hours"
	blocksTable   = "booking_blocks"
)

// Repository stores the operating rule set: settings, weekly hours and blocks
type Repository struct {
	db DBExecutor
}

// NewRepository creates the booking settings repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings returns the singleton settings row
func (r *Repository) GetSettings(ctx context.Context) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"disable_same_day_booking",
		"disable_weekend_booking",
		"min_advance_hours",
		"max_advance_days",
		"slot_step_minutes",
		"default_duration_minutes",
		"updated_at",
	).
		From(settingsTable).
		Where(squirrel.Eq{"id": domain.BookingSettingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s         domain.BookingSettings
		maxDays   sql.NullInt64
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.DisableSameDayBooking,
		&s.DisableWeekendBooking,
		&s.MinAdvanceHours,
		&maxDays,
		&s.SlotStepMinutes,
		&s.DefaultDurationMinutes,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %w", ErrScanRow, err)
	}

	// NULL means unlimited
	s.MaxAdvanceDays = int(maxDays.Int64)
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// UpsertSettings writes the singleton row
func (r *Repository) UpsertSettings(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var maxDays interface{}
	if s.HasAdvanceLimit() {
		maxDays = s.MaxAdvanceDays
	}

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns(
			"id",
			"disable_same_day_booking",
			"disable_weekend_booking",
			"min_advance_hours",
			"max_advance_days",
			"slot_step_minutes",
			"default_duration_minutes",
		).
		Values(
			domain.BookingSettingsID,
			s.DisableSameDayBooking,
			s.DisableWeekendBooking,
			s.MinAdvanceHours,
			maxDays,
			s.SlotStepMinutes,
			s.DefaultDurationMinutes,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			disable_same_day_booking = EXCLUDED.disable_same_day_booking,
			disable_weekend_booking = EXCLUDED.disable_weekend_booking,
			min_advance_hours = EXCLUDED.min_advance_hours,
			max_advance_days = EXCLUDED.max_advance_days,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %w", ErrExecQuery, err)
	}
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// ListHours returns all weekly windows ordered by weekday and start
func (r *Repository) ListHours(ctx context.Context) ([]*domain.OperatingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "day_of_week", "start_time", "end_time", "is_available").
		From(hoursTable).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.OperatingHours, 0)
	for rows.Next() {
		var (
			h   domain.OperatingHours
			day int
		)
		if err := rows.Scan(&h.ID, &day, &h.StartTime, &h.EndTime, &h.IsAvailable); err != nil {
			return nil, fmt.Errorf("%w: ListHours - scan row: %w", ErrScanRow, err)
		}
		h.DayOfWeek = time.Weekday(day)
		hours = append(hours, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceHours swaps the whole weekly schedule. Call inside a transaction.
func (r *Repository) ReplaceHours(ctx context.Context, hours []*domain.OperatingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(hoursTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - execute delete: %w", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert(hoursTable).Columns("day_of_week", "start_time", "end_time", "is_available")
	for _, h := range hours {
		insert = insert.Values(int(h.DayOfWeek), h.StartTime, h.EndTime, h.IsAvailable)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceHours - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceHours - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListBlocks returns blocks of one date, virtual ones included
func (r *Repository) ListBlocks(ctx context.Context, date time.Time) ([]*domain.BookingBlock, error) {
	return r.listBlocks(ctx, squirrel.Eq{"date": date.Format(domain.DateFormat)})
}

// ListBlocksBetween returns blocks in [from, to]
func (r *Repository) ListBlocksBetween(ctx context.Context, from, to time.Time) ([]*domain.BookingBlock, error) {
	return r.listBlocks(ctx, squirrel.And{
		squirrel.GtOrEq{"date": from.Format(domain.DateFormat)},
		squirrel.LtOrEq{"date": to.Format(domain.DateFormat)},
	})
}

func (r *Repository) listBlocks(ctx context.Context, where squirrel.Sqlizer) ([]*domain.BookingBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "start_time", "duration_minutes", "is_virtual", "reason", "created_at").
		From(blocksTable).
		Where(where).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BookingBlock, 0)
	for rows.Next() {
		var (
			b         domain.BookingBlock
			reason    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.Date, &b.StartTime, &b.DurationMinutes, &b.IsVirtual, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlocks - scan row: %w", ErrScanRow, err)
		}
		if reason.Valid {
			v := reason.String
			b.Reason = &v
		}
		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateBlock inserts a block
func (r *Repository) CreateBlock(ctx context.Context, b *domain.BookingBlock) (*domain.BookingBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blocksTable).
		Columns("date", "start_time", "duration_minutes", "is_virtual", "reason").
		Values(b.Date.Format(domain.DateFormat), b.StartTime, b.DurationMinutes, b.IsVirtual, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %w", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time

	return b, nil
}

// DeleteBlock removes a block
func (r *Repository) DeleteBlock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(blocksTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %w", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %w", ErrExecQuery, err)
	}
	if n == 0 {
		return ErrBlockNotFound
	}

	return nil
}
