package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &sql.DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operation("  INSERT INTO bookings"))
	assert.Equal(t, "update", operation("update channel_sms\nSET status = $1"))
	assert.Equal(t, "other", operation("LOCK TABLE bookings"))
}
