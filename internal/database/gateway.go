package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/metrics"
	"github.com/osse101/GameVault_Go/internal/observability"
)

// Querier executes statements. Both *Gateway and *Tx implement it so
// repository helpers can run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is the subset of *pgxpool.Pool the gateway needs.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Gateway is the single entry point to PostgreSQL. It times every statement,
// reports slow executions and failures, and classifies storage errors.
type Gateway struct {
	conn     Conn
	reporter observability.Reporter
	slow     time.Duration
	now      func() time.Time
}

// NewGateway wraps conn. A non-positive slowThreshold falls back to the default.
func NewGateway(conn Conn, reporter observability.Reporter, slowThreshold time.Duration) *Gateway {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	if reporter == nil {
		reporter = observability.Nop{}
	}
	return &Gateway{
		conn:     conn,
		reporter: reporter,
		slow:     slowThreshold,
		now:      time.Now,
	}
}

// Reporter returns the collaborator failures are sent to.
func (g *Gateway) Reporter() observability.Reporter {
	return g.reporter
}

// Ping checks connectivity.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.conn.Ping(ctx); err != nil {
		err = fmt.Errorf("%w: %w", errConnectivity, err)
		g.reporter.ReportError(ctx, err, OpPing)
		return err
	}
	return nil
}

// Close releases the pool.
func (g *Gateway) Close() {
	g.conn.Close()
}

// Exec runs an auto-committed statement.
func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	label := statementLabel(sql)
	start := g.now()
	tag, err := g.conn.Exec(ctx, sql, args...)
	g.observe(ctx, label, start)
	if err != nil {
		return tag, g.fail(ctx, label, classify(err, false))
	}
	return tag, nil
}

// Query runs an auto-committed query. The statement is timed until the rows
// are closed, and errors surfacing from Scan or Err are classified and
// reported like any other failure.
func (g *Gateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	label := statementLabel(sql)
	start := g.now()
	rows, err := g.conn.Query(ctx, sql, args...)
	if err != nil {
		g.observe(ctx, label, start)
		return nil, g.fail(ctx, label, classify(err, false))
	}
	return &timedRows{Rows: rows, gw: g, ctx: ctx, label: label, start: start, report: true}, nil
}

// QueryRow runs an auto-committed single-row query. Timing and error
// handling happen when the row is scanned.
func (g *Gateway) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	label := statementLabel(sql)
	return &timedRow{
		row:    g.conn.QueryRow(ctx, sql, args...),
		gw:     g,
		ctx:    ctx,
		label:  label,
		start:  g.now(),
		report: true,
	}
}

// Begin starts a transaction. Statements on the returned Tx are timed and
// classified, but failures are left for the caller to report once with its
// own operation label.
func (g *Gateway) Begin(ctx context.Context) (*Tx, error) {
	tx, err := g.conn.Begin(ctx)
	if err != nil {
		return nil, classify(fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err), false)
	}
	return &Tx{tx: tx, gw: g}, nil
}

// WithTx runs fn inside one transaction on one connection. It commits when fn
// returns nil and rolls back otherwise. A panic inside fn rolls back and is
// re-raised. Every failure is reported under label before it is returned.
func (g *Gateway) WithTx(ctx context.Context, label string, fn func(tx *Tx) error) (err error) {
	tx, err := g.Begin(ctx)
	if err != nil {
		return g.fail(ctx, label, err)
	}

	defer func() {
		if p := recover(); p != nil {
			SafeRollback(ctx, tx)
			g.reporter.ReportError(ctx, fmt.Errorf("%s: %v", ErrMsgPanicInTransaction, p), label)
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		SafeRollback(ctx, tx)
		return g.fail(ctx, label, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return g.fail(ctx, label, err)
	}
	return nil
}

// InTx is WithTx for functions that produce a value.
func InTx[T any](ctx context.Context, g *Gateway, label string, fn func(tx *Tx) (T, error)) (T, error) {
	var out T
	err := g.WithTx(ctx, label, func(tx *Tx) error {
		v, err := fn(tx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func (g *Gateway) observe(ctx context.Context, label string, start time.Time) {
	d := g.now().Sub(start)
	metrics.StatementDuration.WithLabelValues(label).Observe(d.Seconds())
	if d > g.slow {
		g.reporter.ReportSlowOperation(ctx, label, d)
	}
}

func (g *Gateway) fail(ctx context.Context, label string, err error) error {
	if !errors.Is(err, pgx.ErrNoRows) {
		g.reporter.ReportError(ctx, err, label)
	}
	return err
}

// Tx is a transaction-scoped Querier. Locking reads are ordinary
// SELECT ... FOR UPDATE statements executed on it.
type Tx struct {
	tx pgx.Tx
	gw *Gateway
}

// Exec runs a statement inside the transaction.
func (t *Tx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	start := t.gw.now()
	tag, err := t.tx.Exec(ctx, sql, args...)
	t.gw.observe(ctx, statementLabel(sql), start)
	return tag, classify(err, true)
}

// Query runs a query inside the transaction. Iteration errors are classified
// as TransactionAborted or ConnectivityFailure.
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	label := statementLabel(sql)
	start := t.gw.now()
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		t.gw.observe(ctx, label, start)
		return nil, classify(err, true)
	}
	return &timedRows{Rows: rows, gw: t.gw, ctx: ctx, label: label, start: start, inTx: true}, nil
}

// QueryRow runs a single-row query inside the transaction.
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &timedRow{
		row:   t.tx.QueryRow(ctx, sql, args...),
		gw:    t.gw,
		ctx:   ctx,
		label: statementLabel(sql),
		start: t.gw.now(),
		inTx:  true,
	}
}

// Commit commits. A failed commit is a TransactionAborted.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return err
		}
		return classify(fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err), true)
	}
	return nil
}

// Rollback aborts the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// timedRow defers timing until Scan, which is when pgx actually reads the result.
type timedRow struct {
	row    pgx.Row
	gw     *Gateway
	ctx    context.Context
	label  string
	start  time.Time
	inTx   bool
	report bool
}

func (r *timedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.gw.observe(r.ctx, r.label, r.start)
	if err == nil {
		return nil
	}
	err = classify(err, r.inTx)
	if r.report {
		return r.gw.fail(r.ctx, r.label, err)
	}
	return err
}

// timedRows measures a query until Close and routes errors raised while
// reading the result through classify. pgx reports server-side and
// mid-stream failures only there, after Query itself has succeeded.
type timedRows struct {
	pgx.Rows
	gw       *Gateway
	ctx      context.Context
	label    string
	start    time.Time
	inTx     bool
	report   bool
	closed   bool
	reported bool
}

func (r *timedRows) Scan(dest ...any) error {
	if err := r.Rows.Scan(dest...); err != nil {
		return r.failure(err)
	}
	return nil
}

func (r *timedRows) Err() error {
	if err := r.Rows.Err(); err != nil {
		return r.failure(err)
	}
	return nil
}

func (r *timedRows) Close() {
	r.Rows.Close()
	if r.closed {
		return
	}
	r.closed = true
	r.gw.observe(r.ctx, r.label, r.start)
}

// failure classifies err and reports it at most once per result set.
func (r *timedRows) failure(err error) error {
	err = classify(err, r.inTx)
	if r.report && !r.reported {
		r.reported = true
		return r.gw.fail(r.ctx, r.label, err)
	}
	return err
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx interface {
	Rollback(ctx context.Context) error
}) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgFailedToRollback, "error", err)
	}
}
