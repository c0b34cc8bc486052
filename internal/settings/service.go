// Package settings exposes typed server settings backed by the settings table.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/logger"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/repository"
)

// Service reads and writes typed settings. Typed getters never fail: a
// missing, unreadable or differently typed setting yields the default.
type Service interface {
	Get(ctx context.Context, key string, def domain.SettingValue) domain.SettingValue
	Number(ctx context.Context, key string, def float64) float64
	Bool(ctx context.Context, key string, def bool) bool
	Text(ctx context.Context, key string, def string) string
	// Structured decodes into dst and reports whether it did. dst is left
	// untouched otherwise, so it should already hold the default.
	Structured(ctx context.Context, key string, dst any) bool

	Set(ctx context.Context, key string, value domain.SettingValue) error
	GetAll(ctx context.Context) ([]domain.Setting, error)
	Delete(ctx context.Context, key string) error
	// SeedDefaults inserts every default whose key is absent and returns how many were added
	SeedDefaults(ctx context.Context) (int, error)
}

// SchemaChecker validates structured values for the keys it knows
type SchemaChecker interface {
	Has(key string) bool
	Validate(key string, data []byte) error
}

// Option configures the service
type Option func(*service)

// WithSchemas makes Set reject values that do not match the schema for their key
func WithSchemas(c SchemaChecker) Option {
	return func(s *service) { s.schemas = c }
}

type service struct {
	repo     repository.Setting
	reporter observability.Reporter
	defaults map[string]domain.SettingValue
	schemas  SchemaChecker
}

// NewService creates a settings service seeding domain.DefaultSettings
func NewService(repo repository.Setting, reporter observability.Reporter, opts ...Option) Service {
	if reporter == nil {
		reporter = observability.Nop{}
	}
	s := &service{
		repo:     repo,
		reporter: reporter,
		defaults: domain.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, key string, def domain.SettingValue) domain.SettingValue {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			logger.FromContext(ctx).Warn(LogMsgSettingFallback, "key", key, "error", err)
		}
		return def
	}
	return setting.Value
}

func (s *service) lookup(ctx context.Context, key string, kind domain.SettingKind) (domain.SettingValue, bool) {
	v := s.Get(ctx, key, domain.SettingValue{})
	if v.Kind == "" {
		return v, false
	}
	if v.Kind != kind {
		logger.FromContext(ctx).Warn(LogMsgSettingKindMismatch, "key", key, "want", kind, "got", v.Kind)
		return v, false
	}
	return v, true
}

func (s *service) Number(ctx context.Context, key string, def float64) float64 {
	v, ok := s.lookup(ctx, key, domain.SettingNumber)
	if !ok {
		return def
	}
	n, _ := v.Number()
	return n
}

func (s *service) Bool(ctx context.Context, key string, def bool) bool {
	v, ok := s.lookup(ctx, key, domain.SettingBool)
	if !ok {
		return def
	}
	b, _ := v.Bool()
	return b
}

func (s *service) Text(ctx context.Context, key string, def string) string {
	v, ok := s.lookup(ctx, key, domain.SettingText)
	if !ok {
		return def
	}
	t, _ := v.Text()
	return t
}

func (s *service) Structured(ctx context.Context, key string, dst any) bool {
	v, ok := s.lookup(ctx, key, domain.SettingStructured)
	if !ok {
		return false
	}
	if err := v.Structured(dst); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSettingFallback, "key", key, "error", err)
		return false
	}
	return true
}

func (s *service) Set(ctx context.Context, key string, value domain.SettingValue) error {
	if err := validateKey(key); err != nil {
		return s.fail(ctx, OpSet, err)
	}
	if _, err := domain.DecodeSettingValue(value.Kind, value.Encode()); err != nil {
		return s.fail(ctx, OpSet, err)
	}
	if err := s.checkSchema(key, value); err != nil {
		return s.fail(ctx, OpSet, err)
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgSettingChanged, "key", key, "kind", value.Kind, "value", value.Encode())
	return nil
}

func (s *service) GetAll(ctx context.Context) ([]domain.Setting, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *service) SeedDefaults(ctx context.Context) (int, error) {
	keys := make([]string, 0, len(s.defaults))
	for k := range s.defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	inserted := 0
	for _, k := range keys {
		ok, err := s.repo.InsertIfAbsent(ctx, k, s.defaults[k])
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", k, err)
		}
		if ok {
			inserted++
		}
	}
	logger.FromContext(ctx).Info(LogMsgSettingsSeeded, "inserted", inserted, "known", len(keys))
	return inserted, nil
}

func (s *service) fail(ctx context.Context, op string, err error) error {
	s.reporter.ReportError(ctx, err, op)
	return err
}

func (s *service) checkSchema(key string, value domain.SettingValue) error {
	if s.schemas == nil || !s.schemas.Has(key) {
		return nil
	}
	if value.Kind != domain.SettingStructured {
		return fmt.Errorf("%w: %s must be structured, got %s", domain.ErrInvalidInput, key, value.Kind)
	}
	return s.schemas.Validate(key, []byte(value.Encode()))
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: setting key is required", domain.ErrInvalidInput)
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: setting key longer than %d", domain.ErrInvalidInput, MaxKeyLength)
	}
	return nil
}
