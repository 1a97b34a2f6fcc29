package campaign

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
)

type DBExecutor = dbmetrics.DBExecutor

const table = "channel_sms"

var columns = []string{
	"id",
	"message_text",
	"message_type",
	"recipient_numbers",
	"image_url",
	"short_link",
	"solapi_group_id",
	"status",
	"success_count",
	"fail_count",
	"sent_count",
	"scheduled_at",
	"sent_at",
	"note",
	"created_at",
	"updated_at",
}

// Repository stores campaign messages
type Repository struct {
	db DBExecutor
}

// NewRepository creates the campaign repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a campaign
func (r *Repository) Create(ctx context.Context, m *domain.CampaignMessage) (*domain.CampaignMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"message_text",
			"message_type",
			"recipient_numbers",
			"image_url",
			"short_link",
			"status",
			"scheduled_at",
			"note",
		).
		Values(
			m.MessageText,
			m.MessageType,
			pq.Array(m.RecipientNumbers),
			m.ImageURL,
			m.ShortLink,
			m.Status,
			m.ScheduledAt,
			m.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}

// GetByID returns a campaign; inside a transaction the row is locked
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CampaignMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	m, err := scanCampaign(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan campaign: %w", ErrScanRow, err)
	}

	return m, nil
}

// List returns campaigns matching the filter, newest first
func (r *Repository) List(ctx context.Context, filter domain.CampaignFilter) ([]*domain.CampaignMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.WithGroupIDs {
		builder = builder.Where(squirrel.And{
			squirrel.NotEq{"solapi_group_id": nil},
			squirrel.NotEq{"solapi_group_id": ""},
		})
	}
	if filter.DueBefore != nil {
		builder = builder.Where(squirrel.LtOrEq{"scheduled_at": *filter.DueBefore})
	}
	if filter.SentFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"sent_at": *filter.SentFrom})
	}
	if filter.SentTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"sent_at": *filter.SentTo})
	}

	builder = builder.OrderBy("created_at DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
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

	out := make([]*domain.CampaignMessage, 0)
	for rows.Next() {
		m, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}

// ListLinkedGroupIDs returns every group id referenced by any campaign
func (r *Repository) ListLinkedGroupIDs(ctx context.Context) (map[string]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("solapi_group_id").
		From(table).
		Where(squirrel.NotEq{"solapi_group_id": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLinkedGroupIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLinkedGroupIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	linked := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: ListLinkedGroupIDs - scan row: %w", ErrScanRow, err)
		}
		for _, id := range domain.ParseGroupIDs(raw) {
			linked[id] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLinkedGroupIDs - rows error: %w", ErrScanRow, err)
	}

	return linked, nil
}

// Update rewrites the editable content of a campaign
func (r *Repository) Update(ctx context.Context, m *domain.CampaignMessage) error {
	return r.update(ctx, "Update", m.ID, map[string]interface{}{
		"message_text":      m.MessageText,
		"message_type":      m.MessageType,
		"recipient_numbers": pq.Array(m.RecipientNumbers),
		"image_url":         m.ImageURL,
		"short_link":        m.ShortLink,
		"status":            m.Status,
		"scheduled_at":      m.ScheduledAt,
		"note":              m.Note,
	})
}

// MarkDispatched stores the outcome of a successful gateway batch
func (r *Repository) MarkDispatched(ctx context.Context, id int64, groupIDs []string, sentCount int, sentAt time.Time, imageURL *string) error {
	values := map[string]interface{}{
		"solapi_group_id": domain.JoinGroupIDs(groupIDs),
		"status":          domain.CampaignSent,
		"sent_count":      sentCount,
		"sent_at":         sentAt,
	}
	if imageURL != nil {
		values["image_url"] = *imageURL
	}
	return r.update(ctx, "MarkDispatched", id, values)
}

// UpdateCounts overwrites the stored counts and status with a reconciled projection
func (r *Repository) UpdateCounts(ctx context.Context, id int64, counts domain.StoredCounts, status domain.CampaignStatus) error {
	return r.update(ctx, "UpdateCounts", id, map[string]interface{}{
		"sent_count":    counts.Sent,
		"success_count": counts.Success,
		"fail_count":    counts.Fail,
		"status":        status,
	})
}

// SetStatus changes the status and optionally the note
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.CampaignStatus, note *string) error {
	values := map[string]interface{}{"status": status}
	if note != nil {
		values["note"] = *note
	}
	return r.update(ctx, "SetStatus", id, values)
}

// MarkFailed sets status failed with a note and clears the schedule so the
// scheduled job does not pick the campaign up again
func (r *Repository) MarkFailed(ctx context.Context, id int64, note string) error {
	return r.update(ctx, "MarkFailed", id, map[string]interface{}{
		"status":       domain.CampaignFailed,
		"note":         note,
		"scheduled_at": nil,
	})
}

// SetGroupIDs replaces the stored group ids
func (r *Repository) SetGroupIDs(ctx context.Context, id int64, groupIDs []string) error {
	return r.update(ctx, "SetGroupIDs", id, map[string]interface{}{
		"solapi_group_id": domain.JoinGroupIDs(groupIDs),
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if n == 0 {
		return ErrCampaignNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*domain.CampaignMessage, error) {
	var (
		m                     domain.CampaignMessage
		recipients            []string
		imageURL, shortLink   sql.NullString
		groupID, note         sql.NullString
		scheduledAt, sentAt   sql.NullTime
		createdAt, updatedAt  sql.NullTime
		success, fail, sentCt sql.NullInt64
	)

	err := row.Scan(
		&m.ID,
		&m.MessageText,
		&m.MessageType,
		pq.Array(&recipients),
		&imageURL,
		&shortLink,
		&groupID,
		&m.Status,
		&success,
		&fail,
		&sentCt,
		&scheduledAt,
		&sentAt,
		&note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.RecipientNumbers = recipients
	m.ImageURL = nullString(imageURL)
	m.ShortLink = nullString(shortLink)
	m.GroupIDs = domain.ParseGroupIDs(groupID.String)
	m.Note = nullString(note)
	m.SuccessCount = int(success.Int64)
	m.FailCount = int(fail.Int64)
	m.SentCount = int(sentCt.Int64)
	m.ScheduledAt = nullTime(scheduledAt)
	m.SentAt = nullTime(sentAt)
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
