package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.InitLoggerWithWriter(logger.Config{Level: "debug", Format: "text"}, &buf)
	return &buf
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrPlayerNotFound, KindNotFound},
		{fmt.Errorf("%w: cash", domain.ErrInsufficientFunds), KindInsufficientFunds},
		{domain.ErrInsufficientQuantity, KindInsufficientQuantity},
		{domain.ErrInvalidAmount, KindInvalidInput},
		{domain.ErrDuplicateHandle, KindDuplicate},
		{fmt.Errorf("%w: dial", domain.ErrConnectivityFailure), KindConnectivity},
		{domain.ErrTransactionAborted, KindTransactionAborted},
		{context.DeadlineExceeded, KindCanceled},
		{assert.AnError, KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), tt.err.Error())
	}
}

func TestSlogReporter_ReportError(t *testing.T) {
	buf := captureLogs(t)
	r := NewSlogReporter()

	r.ReportError(context.Background(), domain.ErrInsufficientFunds, "ledger.adjust_cash")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), LogMsgOperationRejected)

	buf.Reset()
	r.ReportError(context.Background(), assert.AnError, "player.create")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "operation=player.create")

	buf.Reset()
	r.ReportError(context.Background(), nil, "noop")
	assert.Empty(t, buf.String())
}

func TestSlogReporter_ReportSlowOperation(t *testing.T) {
	buf := captureLogs(t)

	NewSlogReporter().ReportSlowOperation(context.Background(), "inventory.add", 750*time.Millisecond)

	assert.Contains(t, buf.String(), LogMsgSlowOperation)
	assert.Contains(t, buf.String(), "duration_ms=750")
}

func TestRecent_KeepsNewestInOrder(t *testing.T) {
	r := NewRecent(3)
	ctx := context.Background()

	r.ReportError(ctx, domain.ErrPlayerNotFound, "a")
	r.ReportSlowOperation(ctx, "b", time.Second)
	r.ReportError(ctx, domain.ErrInsufficientFunds, "c")
	r.ReportError(ctx, errors.New("boom"), "d")
	r.ReportError(ctx, nil, "ignored")

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "b", snap[0].Operation)
	assert.True(t, snap[0].Slow)
	assert.Equal(t, "c", snap[1].Operation)
	assert.Equal(t, KindInsufficientFunds, snap[1].Kind)
	assert.Equal(t, "d", snap[2].Operation)
	assert.Equal(t, KindInternal, snap[2].Kind)

	errs := r.Errors()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0].Err(), domain.ErrInsufficientFunds)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewRecent(5), NewRecent(5)
	m := Multi{a, b}

	m.ReportError(context.Background(), domain.ErrItemNotFound, "inventory.remove")
	m.ReportSlowOperation(context.Background(), "SELECT 1", time.Second)

	assert.Len(t, a.Snapshot(), 2)
	assert.Len(t, b.Snapshot(), 2)
}
