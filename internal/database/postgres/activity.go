package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/GameVault_Go/internal/database"
	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// ActivityRepository implements repository.Activity
type ActivityRepository struct {
	gw *database.Gateway
}

// NewActivityRepository creates a new PostgreSQL activity log repository
func NewActivityRepository(gw *database.Gateway) *ActivityRepository {
	return &ActivityRepository{gw: gw}
}

var _ repository.Activity = (*ActivityRepository)(nil)

// Insert stores one entry
func (r *ActivityRepository) Insert(ctx context.Context, entry domain.ActivityLog) (int64, error) {
	var detailsJSON []byte
	if len(entry.Details) > 0 {
		var err error
		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeJSON, err)
		}
	}

	var id int64
	err := r.gw.QueryRow(ctx, `
		INSERT INTO activity_logs (player_id, action, details)
		VALUES ($1, $2, $3)
		RETURNING id`,
		entry.PlayerID, entry.Action, detailsJSON).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, domain.ErrPlayerNotFound
		}
		return 0, err
	}
	return id, nil
}

// Query retrieves entries matching filter, newest first
func (r *ActivityRepository) Query(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, player_id, action, details, created_at
		FROM activity_logs
		WHERE 1=1`)

	args := []any{}
	argNum := 1

	if filter.PlayerID != nil {
		fmt.Fprintf(&queryBuilder, " AND player_id = $%d", argNum)
		args = append(args, *filter.PlayerID)
		argNum++
	}

	if filter.Action != "" {
		fmt.Fprintf(&queryBuilder, " AND action = $%d", argNum)
		args = append(args, filter.Action)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")
	fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
	args = append(args, clampLimit(filter.Limit))

	return queryAll(ctx, r.gw, scanActivity, queryBuilder.String(), args...)
}

// DeleteOlderThan removes entries created before cutoff
func (r *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.gw.Exec(ctx, `DELETE FROM activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanActivity(row pgx.Row) (*domain.ActivityLog, error) {
	var (
		entry       domain.ActivityLog
		detailsJSON []byte
	)
	if err := row.Scan(&entry.ID, &entry.PlayerID, &entry.Action, &detailsJSON, &entry.CreatedAt); err != nil {
		return nil, err
	}
	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &entry.Details); err != nil {
			return nil, err
		}
	}
	return &entry, nil
}
