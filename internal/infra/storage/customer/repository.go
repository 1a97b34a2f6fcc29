package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
	"github.com/whalechillz/mas-win-sub025/pkg/psqlbuilder"
)

var (
	ErrBuildQuery = errors.New("customer.repository: failed to build query")
	ErrExecQuery  = errors.New("customer.repository: failed to execute query")
	ErrScanRow    = errors.New("customer.repository: failed to scan row")
)

// Repository reads the customer book
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates the customer repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// OptedOut returns the subset of phones whose owners refused marketing messages.
// Phones are compared in normalized digit form.
func (r *Repository) OptedOut(ctx context.Context, phones []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if len(phones) == 0 {
		return out, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("regexp_replace(phone, '[^0-9]', '', 'g')").
		From("customers").
		Where(squirrel.Eq{"opt_out": true}).
		Where(squirrel.Eq{"regexp_replace(phone, '[^0-9]', '', 'g')": phones}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: OptedOut - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OptedOut - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("%w: OptedOut - scan row: %w", ErrScanRow, err)
		}
		out[phone] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: OptedOut - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}
