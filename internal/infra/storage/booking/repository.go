package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
	"github.com/whalechillz/mas-win-sub025/pkg/psqlbuilder"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

const table = "bookings"

// exclusion_violation raised by bookings_no_overlap
const codeExclusionViolation = "23P01"

var columns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository stores bookings
type Repository struct {
	db DBExecutor
}

// NewRepository creates the bookings repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. Uses the transaction from ctx when present.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_name",
			"customer_phone",
			"customer_email",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerEmail,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create: %w", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID returns a booking by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List returns bookings matching the filter.
//
// A single-day filter is ordered by start time and, inside a transaction, locks the
// returned rows with FOR UPDATE; that is how create and reschedule serialize on a date.
// Other filters are ordered newest first.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": filter.DateTo.Format(domain.DateFormat)})
	}
	if filter.Phone != nil {
		builder = builder.Where(squirrel.Eq{"customer_phone": *filter.Phone})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		active := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			active[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"status": active})
	}

	if filter.SingleDay() {
		builder = builder.OrderBy("start_time ASC")
	} else {
		builder = builder.OrderBy("booking_date DESC", "start_time DESC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	if dbmetrics.IsInTransaction(ctx) && filter.SingleDay() {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateSchedule moves a booking to a new date/start/duration
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, start types.TimeString, durationMinutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booking_date", date.Format(domain.DateFormat)).
		Set("start_time", start).
		Set("duration_minutes", durationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: UpdateSchedule: %w", ErrSlotNotAvailable, err)
		}
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateSchedule")
}

// UpdateStatus sets a new status
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// Cancel marks the booking cancelled. The row is kept for history.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		email, notes, reason sql.NullString
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerPhone,
		&email,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Status,
		&notes,
		&reason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CustomerEmail = nullString(email)
	b.Notes = nullString(notes)
	b.CancellationReason = nullString(reason)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}
