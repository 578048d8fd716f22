// Package txmanager runs functions inside database transactions, exposing the
// open transaction to repositories through the context (see pkg/dbexec).
// Serializable transactions are retried on serialization failures, so callers
// must keep the supplied function free of non-idempotent side effects.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
)

const (
	maxSerializableAttempts = 3
	retryBackoff            = 25 * time.Millisecond

	// Postgres error code for serialization_failure
	pqSerializationFailure = "40001"
)

// ErrTransaction wraps begin/commit failures.
var ErrTransaction = errors.New("txmanager: transaction error")

// TransactionManager begins transactions on any dbexec.TxBeginner
// (an instrumented dbmetrics.DB or a bare *sql.DB via dbexec.SQLBeginner).
type TransactionManager struct {
	db dbexec.TxBeginner
}

// NewTransactionManager wraps the given beginner.
func NewTransactionManager(db dbexec.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// NewFromSQL is a convenience constructor for a bare *sql.DB.
func NewFromSQL(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: dbexec.SQLBeginner{DB: db}}
}

// Do runs fn inside a read-committed transaction.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable runs fn inside a serializable transaction, retrying up to
// maxSerializableAttempts times when Postgres reports a serialization
// failure. Losing contenders of a slot race surface here as retries and then
// as whatever error fn returns on the fresh state.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		lastErr = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !isSerializationFailure(lastErr) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return lastErr
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	if err := fn(dbexec.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback after %v: %v", ErrTransaction, err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure
	}
	return false
}
