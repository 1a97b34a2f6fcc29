package messagelog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

var (
	ErrExecQuery = errors.New("messagelog.repository: failed to execute query")
	ErrScanRow   = errors.New("messagelog.repository: failed to scan row")
)

const table = "message_logs"

// Repository writes per-recipient send logs through a pgx pool.
// Logs are bulk-loaded with COPY, which database/sql cannot do.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the message log repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Connect opens the bulk pool
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("messagelog: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("messagelog: ping: %w", err)
	}
	return pool, nil
}

// SentPhones returns the phones already handed to the gateway for a campaign
func (r *Repository) SentPhones(ctx context.Context, contentID int64) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT customer_phone FROM `+table+` WHERE content_id = $1`, contentID)
	if err != nil {
		return nil, fmt.Errorf("%w: SentPhones - execute query: %w", ErrExecQuery, err)
	}

	phones, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: SentPhones - collect rows: %w", ErrScanRow, err)
	}

	out := make(map[string]struct{}, len(phones))
	for _, p := range phones {
		out[p] = struct{}{}
	}
	return out, nil
}

// Insert bulk-loads the logs with COPY
func (r *Repository) Insert(ctx context.Context, logs []domain.MessageLog) (int64, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{table},
		[]string{"content_id", "customer_phone", "solapi_group_id", "sent_at"},
		pgx.CopyFromSlice(len(logs), func(i int) ([]any, error) {
			l := logs[i]
			return []any{l.ContentID, l.Phone, l.GroupID, l.SentAt}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: Insert - copy: %w", ErrExecQuery, err)
	}

	return n, nil
}
