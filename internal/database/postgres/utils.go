package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
)

// parseMoney converts the text form of a NUMERIC column.
func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", ErrMsgInvalidMoneyValue, s, err)
	}
	return d, nil
}

func parseBalance(cash, bank string) (domain.Balance, error) {
	c, err := parseMoney(cash)
	if err != nil {
		return domain.Balance{}, err
	}
	b, err := parseMoney(bank)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.Balance{Cash: c, Bank: b}, nil
}

// missing maps a pgx miss onto the given not-found sentinel.
func missing(err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return err
}

// mustAffect turns a zero-row write into the given not-found sentinel.
func mustAffect(rows int64, notFound error) error {
	if rows == 0 {
		return notFound
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// setBuilder accumulates "col = $n" assignments for a partial UPDATE.
type setBuilder struct {
	sets []string
	args []any
}

func (b *setBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *setBuilder) empty() bool {
	return len(b.sets) == 0
}

// build returns the statement with the id bound as the last parameter.
func (b *setBuilder) build(table string, id int64) (string, []any) {
	args := append(b.args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(b.sets, ", "), len(args))
	return sql, args
}

// nullableID stores 0 as NULL for optional foreign keys.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// runner is satisfied by *database.Gateway and *database.Tx
type runner = database.Querier

// collectRows scans every row with scan and closes rows.
func collectRows[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// queryAll runs a query on q and scans every row.
func queryAll[T any](ctx context.Context, q runner, scan func(pgx.Row) (*T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scan)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
