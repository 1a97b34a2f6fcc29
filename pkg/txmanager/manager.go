package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
)

var (
	// ErrBeginTx is returned when a transaction cannot be opened
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx is returned when commit fails for a reason other than serialization
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization is returned when PostgreSQL aborts a serializable transaction
	// (40001) or picks it as a deadlock victim (40P01)
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// TxBeginner opens transactions; satisfied by *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs callbacks inside a transaction carried by the context.
// Nested calls reuse the outer transaction.
type TransactionManager struct {
	db TxBeginner
}

func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do runs fn in a READ COMMITTED transaction
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable runs fn in a SERIALIZABLE transaction
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly runs fn in a read-only transaction
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: commit: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure reports whether err carries PostgreSQL code 40001 or 40P01
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
