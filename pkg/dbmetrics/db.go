// Package dbmetrics wraps *sql.DB so every statement is timed and counted in
// Prometheus, and periodically exports connection-pool gauges.
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
	"github.com/gleamnails/GN-BookingService/pkg/metrics"
)

// PoolStatsInterval is how often pool gauges are refreshed.
const PoolStatsInterval = 15 * time.Second

// DB is an instrumented database handle. It satisfies dbexec.DBExecutor and
// dbexec.TxBeginner, so repositories and transaction managers can take it in
// place of *sql.DB.
type DB struct {
	db *sql.DB
	m  *metrics.Metrics
}

// Wrap instruments db with the given collectors.
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, m: m}
}

// WrapWithDefault instruments db and starts the pool-stats loop, which runs
// until stopCh is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, service string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, nil)
	return row
}

// BeginTx starts a transaction whose statements are also instrumented.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbexec.TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &instrumentedTx{tx: tx, m: d.m}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	kind := statementKind(query)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	d.m.DBQueriesTotal.WithLabelValues(kind, outcome).Inc()
	d.m.DBQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(PoolStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.m.DBPoolOpenConnections.Set(float64(stats.OpenConnections))
			d.m.DBPoolInUse.Set(float64(stats.InUse))
			d.m.DBPoolIdle.Set(float64(stats.Idle))
		}
	}
}

type instrumentedTx struct {
	tx *sql.Tx
	m  *metrics.Metrics
}

func (t *instrumentedTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe(query, start, err)
	return res, err
}

func (t *instrumentedTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe(query, start, err)
	return rows, err
}

func (t *instrumentedTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe(query, start, nil)
	return row
}

func (t *instrumentedTx) Commit() error   { return t.tx.Commit() }
func (t *instrumentedTx) Rollback() error { return t.tx.Rollback() }

func (t *instrumentedTx) observe(query string, start time.Time, err error) {
	kind := statementKind(query)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	t.m.DBQueriesTotal.WithLabelValues(kind, outcome).Inc()
	t.m.DBQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func statementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
