package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// execOnly fails every ExecContext with err; queries are not used by UpdateSchedule
type execOnly struct {
	err   error
	query string
}

func (e *execOnly) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	e.query = query
	return nil, e.err
}

func (e *execOnly) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (e *execOnly) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestIsExclusionViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion", &pq.Error{Code: "23P01"}, true},
		{"wrapped exclusion", fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"}), true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isExclusionViolation(tc.err))
		})
	}
}

func TestUpdateSchedule_OverlapMapsToSlotNotAvailable(t *testing.T) {
	db := &execOnly{err: &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}}
	repo := NewRepository(db)

	err := repo.UpdateSchedule(context.Background(), 1, time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC), types.TimeString("10:00"), 60)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Contains(t, db.query, "UPDATE bookings")
}

func TestUpdateSchedule_OtherErrorsStayExecErrors(t *testing.T) {
	db := &execOnly{err: errors.New("connection reset")}
	repo := NewRepository(db)

	err := repo.UpdateSchedule(context.Background(), 1, time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC), types.TimeString("10:00"), 60)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
}
