package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/GameVault_Go/internal/domain"
)

var errConnectivity = domain.ErrConnectivityFailure

// classify wraps storage failures in the domain taxonomy. Misses, domain
// errors and already-classified errors pass through untouched.
func classify(err error, inTx bool) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, domain.ErrConnectivityFailure) ||
		errors.Is(err, domain.ErrTransactionAborted) ||
		domain.IsBusinessError(err) {
		return err
	}
	if isConnectivityError(err) {
		return fmt.Errorf("%w: %w", domain.ErrConnectivityFailure, err)
	}
	if inTx {
		return fmt.Errorf("%w: %w", domain.ErrTransactionAborted, err)
	}
	return err
}

func isConnectivityError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception, 57P: operator intervention
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P")
	}
	return strings.Contains(err.Error(), ErrMsgClosedPool)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgCodeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgCodeForeignKeyViolation
}

// IsNumericOutOfRange reports whether err is an integer or numeric overflow.
func IsNumericOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgCodeNumericOutOfRange
}

// ConstraintName returns the violated constraint, or "" when err is not a PgError.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// statementLabel reduces SQL text to a short single-line label for metrics
// and slow-operation reports.
func statementLabel(sql string) string {
	label := strings.Join(strings.Fields(sql), " ")
	if len(label) > maxLabelLength {
		label = label[:maxLabelLength]
	}
	return label
}
