// Package activity records domain events as audit rows and prunes old ones.
package activity

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/event"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Service handles activity logging
type Service interface {
	// Subscribe registers the logger for every event type that maps to an action
	Subscribe(bus event.Bus)
	Log(ctx context.Context, playerID *int64, action string, details map[string]any) (int64, error)
	Recent(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)
	// Cleanup removes rows older than retentionDays and returns how many went
	Cleanup(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.Activity
	now  func() time.Time
}

// NewService creates a new activity service
func NewService(repo repository.Activity) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) {
	types := make([]string, 0, len(domain.ActionForEvent))
	for t := range domain.ActionForEvent {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		bus.Subscribe(event.Type(t), s.handleEvent)
	}
}

func (s *service) Log(ctx context.Context, playerID *int64, action string, details map[string]any) (int64, error) {
	if strings.TrimSpace(action) == "" {
		return 0, fmt.Errorf("%w: action is required", domain.ErrInvalidInput)
	}
	return s.repo.Insert(ctx, domain.ActivityLog{
		PlayerID: playerID,
		Action:   action,
		Details:  details,
	})
}

func (s *service) Recent(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultQueryLimit
	case filter.Limit > MaxQueryLimit:
		filter.Limit = MaxQueryLimit
	}
	return s.repo.Query(ctx, filter)
}

func (s *service) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("%w: retention must be positive, got %d", domain.ErrInvalidInput, retentionDays)
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}

// handleEvent turns a domain event into an activity row
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	action, ok := domain.ActionForEvent[string(evt.Type)]
	if !ok {
		return nil
	}

	playerID, details := describe(ctx, evt)
	if details == nil {
		details = map[string]any{}
	}
	details[DetailEventID] = evt.ID

	if _, err := s.Log(ctx, playerID, action, details); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "player_id", playerID)
	return nil
}

// describe extracts the subject player and the details of a typed payload
func describe(ctx context.Context, evt event.Event) (*int64, map[string]any) {
	switch {
	case strings.HasPrefix(string(evt.Type), "player."):
		p, err := event.DecodePayload[event.PlayerPayloadV1](evt.Payload)
		if err != nil {
			break
		}
		details := make(map[string]any, len(p.Details)+1)
		for k, v := range p.Details {
			details[k] = v
		}
		details[DetailHandle] = p.Handle
		id := p.PlayerID
		return &id, details

	case strings.HasPrefix(string(evt.Type), "vehicle."):
		p, err := event.DecodePayload[event.VehiclePayloadV1](evt.Payload)
		if err != nil {
			break
		}
		details := map[string]any{
			DetailVehicleID: p.VehicleID,
			DetailModel:     p.Model,
			DetailPlate:     p.Plate,
		}
		if p.PreviousID != nil {
			details[DetailPreviousOwner] = *p.PreviousID
		}
		return p.OwnerID, details

	case strings.HasPrefix(string(evt.Type), "ban."):
		p, err := event.DecodePayload[event.BanPayloadV1](evt.Payload)
		if err != nil {
			break
		}
		details := map[string]any{
			DetailBanID:  p.BanID,
			DetailReason: p.Reason,
		}
		if p.AdminID != nil {
			details[DetailAdminID] = *p.AdminID
		}
		if p.ExpiresAt != nil {
			details[DetailExpiresAt] = p.ExpiresAt.UTC().Format(time.RFC3339)
		}
		return p.PlayerID, details
	}

	logger.FromContext(ctx).Debug(LogMsgUnknownPayload, "type", evt.Type)
	return nil, nil
}
