package database

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// recordingReporter captures everything the gateway reports
type recordingReporter struct {
	mu     sync.Mutex
	errors []reportedError
	slow   []string
}

type reportedError struct {
	err       error
	operation string
}

func (r *recordingReporter) ReportError(_ context.Context, err error, operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, reportedError{err: err, operation: operation})
}

func (r *recordingReporter) ReportSlowOperation(_ context.Context, label string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slow = append(r.slow, label)
}

type fakeRow struct {
	err error
	val int
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 1 {
		if p, ok := dest[0].(*int); ok {
			*p = r.val
		}
	}
	return nil
}

// fakeRows yields vals and then fails with err, the way pgx reports errors
// that arrive after the query was sent
type fakeRows struct {
	pgx.Rows
	vals    []int
	pos     int
	err     error
	scanErr error
	closed  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.vals) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if p, ok := dest[0].(*int); ok {
		*p = r.vals[r.pos-1]
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed++ }

func readInts(rows pgx.Rows) ([]int, error) {
	defer rows.Close()
	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// fakeTx embeds pgx.Tx so only the methods the gateway uses need bodies
type fakeTx struct {
	pgx.Tx
	execErr    error
	commitErr  error
	committed  bool
	rolledBack bool
	rowErr     error
	rows       *fakeRows
	statements []string
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.statements = append(t.statements, sql)
	return pgconn.NewCommandTag("UPDATE 1"), t.execErr
}

func (t *fakeTx) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	t.statements = append(t.statements, sql)
	if t.execErr != nil {
		return nil, t.execErr
	}
	return t.rows, nil
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	t.statements = append(t.statements, sql)
	return fakeRow{err: t.rowErr, val: 1}
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed || t.rolledBack {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeConn struct {
	execErr  error
	rowErr   error
	beginErr error
	rows     *fakeRows
	tx       *fakeTx
}

func (c *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), c.execErr
}

func (c *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if c.execErr != nil {
		return nil, c.execErr
	}
	return c.rows, nil
}

func (c *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{err: c.rowErr, val: 42}
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	if c.tx == nil {
		c.tx = &fakeTx{}
	}
	return c.tx, nil
}

func (c *fakeConn) Ping(context.Context) error { return c.execErr }
func (c *fakeConn) Close() {}

// steppingClock advances by step on every reading
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}

func newTestGateway(conn Conn, step time.Duration) (*Gateway, *recordingReporter) {
	rep := &recordingReporter{}
	gw := NewGateway(conn, rep, 500*time.Millisecond)
	gw.now = steppingClock(step)
	return gw, rep
}

func TestGateway_Exec(t *testing.T) {
	t.Run("fast statement reports nothing", func(t *testing.T) {
		gw, rep := newTestGateway(&fakeConn{}, time.Millisecond)

		tag, err := gw.Exec(context.Background(), "INSERT INTO settings VALUES ($1)", 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), tag.RowsAffected())
		assert.Empty(t, rep.errors)
		assert.Empty(t, rep.slow)
	})

	t.Run("slow statement is reported but succeeds", func(t *testing.T) {
		gw, rep := newTestGateway(&fakeConn{}, 600*time.Millisecond)

		_, err := gw.Exec(context.Background(), "UPDATE players\n   SET money = 0")

		require.NoError(t, err)
		require.Len(t, rep.slow, 1)
		assert.Equal(t, "UPDATE players SET money = 0", rep.slow[0])
	})

	t.Run("failure is reported and returned", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: PgCodeUniqueViolation, ConstraintName: "players_handle_key"}
		gw, rep := newTestGateway(&fakeConn{execErr: pgErr}, time.Millisecond)

		_, err := gw.Exec(context.Background(), "INSERT INTO players")

		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
		assert.Equal(t, "players_handle_key", ConstraintName(err))
		require.Len(t, rep.errors, 1)
		assert.Equal(t, "INSERT INTO players", rep.errors[0].operation)
	})

	t.Run("network failure is a connectivity failure", func(t *testing.T) {
		netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		gw, _ := newTestGateway(&fakeConn{execErr: netErr}, time.Millisecond)

		_, err := gw.Exec(context.Background(), "SELECT 1")

		assert.ErrorIs(t, err, domain.ErrConnectivityFailure)
	})
}

func TestGateway_QueryRow(t *testing.T) {
	t.Run("scan fills destination", func(t *testing.T) {
		gw, _ := newTestGateway(&fakeConn{}, time.Millisecond)

		var v int
		require.NoError(t, gw.QueryRow(context.Background(), "SELECT 42").Scan(&v))
		assert.Equal(t, 42, v)
	})

	t.Run("no rows is a normal miss", func(t *testing.T) {
		gw, rep := newTestGateway(&fakeConn{rowErr: pgx.ErrNoRows}, time.Millisecond)

		var v int
		err := gw.QueryRow(context.Background(), "SELECT id FROM players WHERE id = $1", 1).Scan(&v)

		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.Empty(t, rep.errors)
	})
}

func TestGateway_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("rows are read and timed until close", func(t *testing.T) {
		rows := &fakeRows{vals: []int{1, 2, 3}}
		gw, rep := newTestGateway(&fakeConn{rows: rows}, 0)
		now := time.Unix(0, 0)
		gw.now = func() time.Time { return now }

		r, err := gw.Query(ctx, "SELECT id FROM players")
		require.NoError(t, err)
		assert.Empty(t, rep.slow)

		now = now.Add(time.Second)
		got, err := readInts(r)
		r.Close()

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, got)
		assert.Equal(t, 2, rows.closed)
		assert.Empty(t, rep.errors)
		assert.Equal(t, []string{"SELECT id FROM players"}, rep.slow)
	})

	t.Run("send failure is reported", func(t *testing.T) {
		gw, rep := newTestGateway(&fakeConn{execErr: errors.New("syntax error")}, time.Millisecond)

		_, err := gw.Query(ctx, "SELEC 1")

		require.Error(t, err)
		require.Len(t, rep.errors, 1)
		assert.Equal(t, "SELEC 1", rep.errors[0].operation)
	})

	t.Run("dropped connection while iterating is a reported connectivity failure", func(t *testing.T) {
		rows := &fakeRows{vals: []int{1}, err: io.ErrUnexpectedEOF}
		gw, rep := newTestGateway(&fakeConn{rows: rows}, time.Millisecond)

		r, err := gw.Query(ctx, "SELECT id FROM inventory_stacks")
		require.NoError(t, err)
		_, err = readInts(r)

		assert.ErrorIs(t, err, domain.ErrConnectivityFailure)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.Len(t, rep.errors, 1)
		assert.Equal(t, "SELECT id FROM inventory_stacks", rep.errors[0].operation)
	})

	t.Run("repeated Err calls report once", func(t *testing.T) {
		rows := &fakeRows{err: &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}}
		gw, rep := newTestGateway(&fakeConn{rows: rows}, time.Millisecond)

		r, err := gw.Query(ctx, "SELECT * FROM activity_logs")
		require.NoError(t, err)
		_, err = readInts(r)
		require.Error(t, err)
		require.Error(t, r.Err())

		assert.Len(t, rep.errors, 1)
	})

	t.Run("scan failure is reported", func(t *testing.T) {
		rows := &fakeRows{vals: []int{1}, scanErr: errors.New("cannot scan NULL into *int")}
		gw, rep := newTestGateway(&fakeConn{rows: rows}, time.Millisecond)

		r, err := gw.Query(ctx, "SELECT quantity FROM inventory_stacks")
		require.NoError(t, err)
		_, err = readInts(r)

		require.Error(t, err)
		assert.Len(t, rep.errors, 1)
	})

	t.Run("iteration failure inside a transaction aborts it", func(t *testing.T) {
		tx := &fakeTx{rows: &fakeRows{vals: []int{7}, err: errors.New("division by zero")}}
		gw, rep := newTestGateway(&fakeConn{tx: tx}, time.Millisecond)

		err := gw.WithTx(ctx, "inventory.transfer", func(tx *Tx) error {
			r, err := tx.Query(ctx, "SELECT quantity FROM inventory_stacks FOR UPDATE")
			if err != nil {
				return err
			}
			_, err = readInts(r)
			return err
		})

		assert.ErrorIs(t, err, domain.ErrTransactionAborted)
		assert.True(t, tx.rolledBack)
		require.Len(t, rep.errors, 1)
		assert.Equal(t, "inventory.transfer", rep.errors[0].operation)
	})
}

func TestGateway_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		conn := &fakeConn{}
		gw, rep := newTestGateway(conn, time.Millisecond)

		err := gw.WithTx(ctx, "ledger.adjust_cash", func(tx *Tx) error {
			var v int
			if err := tx.QueryRow(ctx, "SELECT money FROM players WHERE id = $1 FOR UPDATE", 1).Scan(&v); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, "UPDATE players SET money = $1", v+1)
			return err
		})

		require.NoError(t, err)
		assert.True(t, conn.tx.committed)
		assert.False(t, conn.tx.rolledBack)
		assert.Len(t, conn.tx.statements, 2)
		assert.Empty(t, rep.errors)
	})

	t.Run("domain error rolls back and passes through", func(t *testing.T) {
		conn := &fakeConn{}
		gw, rep := newTestGateway(conn, time.Millisecond)

		err := gw.WithTx(ctx, "ledger.adjust_cash", func(tx *Tx) error {
			return domain.ErrInsufficientFunds
		})

		assert.Equal(t, domain.ErrInsufficientFunds, err)
		assert.True(t, conn.tx.rolledBack)
		assert.False(t, conn.tx.committed)
		require.Len(t, rep.errors, 1)
		assert.Equal(t, "ledger.adjust_cash", rep.errors[0].operation)
	})

	t.Run("storage failure inside tx is TransactionAborted", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23514", Message: "check constraint"}
		conn := &fakeConn{tx: &fakeTx{execErr: pgErr}}
		gw, rep := newTestGateway(conn, time.Millisecond)

		err := gw.WithTx(ctx, "inventory.add", func(tx *Tx) error {
			_, err := tx.Exec(ctx, "UPDATE inventory_stacks SET quantity = -1")
			return err
		})

		assert.ErrorIs(t, err, domain.ErrTransactionAborted)
		var target *pgconn.PgError
		assert.ErrorAs(t, err, &target)
		assert.True(t, conn.tx.rolledBack)
		assert.Len(t, rep.errors, 1, "reported once by WithTx, not per statement")
	})

	t.Run("commit failure is TransactionAborted", func(t *testing.T) {
		conn := &fakeConn{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
		gw, rep := newTestGateway(conn, time.Millisecond)

		err := gw.WithTx(ctx, "ledger.transfer", func(tx *Tx) error { return nil })

		assert.ErrorIs(t, err, domain.ErrTransactionAborted)
		assert.Len(t, rep.errors, 1)
	})

	t.Run("begin failure is reported", func(t *testing.T) {
		conn := &fakeConn{beginErr: context.DeadlineExceeded}
		gw, rep := newTestGateway(conn, time.Millisecond)

		called := false
		err := gw.WithTx(ctx, "player.create", func(tx *Tx) error {
			called = true
			return nil
		})

		assert.ErrorIs(t, err, domain.ErrConnectivityFailure)
		assert.False(t, called)
		assert.Len(t, rep.errors, 1)
	})

	t.Run("panic rolls back and re-panics", func(t *testing.T) {
		conn := &fakeConn{}
		gw, rep := newTestGateway(conn, time.Millisecond)

		assert.PanicsWithValue(t, "boom", func() {
			_ = gw.WithTx(ctx, "vehicle.create", func(tx *Tx) error {
				panic("boom")
			})
		})
		assert.True(t, conn.tx.rolledBack)
		assert.Len(t, rep.errors, 1)
	})
}

func TestInTx(t *testing.T) {
	gw, _ := newTestGateway(&fakeConn{}, time.Millisecond)

	v, err := InTx(context.Background(), gw, "read", func(tx *Tx) (int, error) {
		var n int
		err := tx.QueryRow(context.Background(), "SELECT 1").Scan(&n)
		return n, err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = InTx(context.Background(), gw, "read", func(tx *Tx) (int, error) {
		return 0, domain.ErrPlayerNotFound
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil, true))
	assert.Equal(t, pgx.ErrNoRows, classify(pgx.ErrNoRows, true))
	assert.Equal(t, domain.ErrItemNotFound, classify(domain.ErrItemNotFound, true))
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: "08006"}, false), domain.ErrConnectivityFailure)
	assert.ErrorIs(t, classify(errors.New("closed pool"), false), domain.ErrConnectivityFailure)
	assert.ErrorIs(t, classify(&pgconn.PgError{Code: "40001"}, true), domain.ErrTransactionAborted)

	outside := &pgconn.PgError{Code: "23514"}
	assert.Equal(t, error(outside), classify(outside, false))

	already := classify(&pgconn.PgError{Code: "40001"}, true)
	assert.Equal(t, already, classify(already, true))
}

func TestStatementLabel(t *testing.T) {
	assert.Equal(t, "SELECT id FROM players WHERE handle = $1",
		statementLabel("\n\tSELECT id\n\tFROM players\n\tWHERE handle = $1\n"))

	long := statementLabel("SELECT " + string(make([]byte, 200)))
	assert.LessOrEqual(t, len(long), maxLabelLength)
}
