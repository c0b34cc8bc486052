package repository

import (
	"context"
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
)

// Activity defines persistence for the activity log
type Activity interface {
	Insert(ctx context.Context, entry domain.ActivityLog) (int64, error)
	Query(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
