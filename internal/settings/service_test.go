package settings

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/observability"
	"github.com/osse101/GameVault_Go/internal/validation"
)

type spawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func TestTypedGetters(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, nil)

	structured, err := domain.StructuredValue(spawnPoint{X: 1.5, Y: -2})
	require.NoError(t, err)
	require.NoError(t, svc.Set(ctx, "tax_rate", domain.NumberValue(0.07)))
	require.NoError(t, svc.Set(ctx, "weather_sync", domain.BoolValue(false)))
	require.NoError(t, svc.Set(ctx, "motd", domain.TextValue("welcome")))
	require.NoError(t, svc.Set(ctx, "spawn", structured))

	assert.Equal(t, 0.07, svc.Number(ctx, "tax_rate", 0.05))
	assert.False(t, svc.Bool(ctx, "weather_sync", true))
	assert.Equal(t, "welcome", svc.Text(ctx, "motd", ""))

	var sp spawnPoint
	assert.True(t, svc.Structured(ctx, "spawn", &sp))
	assert.Equal(t, spawnPoint{X: 1.5, Y: -2}, sp)
}

func TestTypedGetters_FallBackToDefault(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, nil)
	require.NoError(t, svc.Set(ctx, "motd", domain.TextValue("welcome")))

	t.Run("missing key", func(t *testing.T) {
		assert.Equal(t, 42.0, svc.Number(ctx, "nope", 42))
		assert.True(t, svc.Bool(ctx, "nope", true))
	})

	t.Run("kind mismatch", func(t *testing.T) {
		assert.Equal(t, 1.0, svc.Number(ctx, "motd", 1))
		def := spawnPoint{X: 9}
		assert.False(t, svc.Structured(ctx, "motd", &def))
		assert.Equal(t, spawnPoint{X: 9}, def)
	})

	t.Run("storage failure", func(t *testing.T) {
		failing := &MockRepository{}
		failing.On("Get", ctx, "starting_money").Return(nil, domain.ErrConnectivityFailure)

		assert.Equal(t, 1000.0, NewService(failing, nil).Number(ctx, "starting_money", 1000))
	})
}

func TestSet(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts the typed value", func(t *testing.T) {
		repo := &MockRepository{}
		repo.On("Upsert", ctx, "paycheck_amount", domain.NumberValue(750)).Return(nil).Once()

		require.NoError(t, NewService(repo, nil).Set(ctx, "paycheck_amount", domain.NumberValue(750)))
		repo.AssertExpectations(t)
	})

	t.Run("invalid key is reported", func(t *testing.T) {
		repo := &MockRepository{}
		rec := observability.NewRecent(5)
		svc := NewService(repo, rec)

		assert.ErrorIs(t, svc.Set(ctx, "", domain.TextValue("x")), domain.ErrInvalidInput)
		assert.ErrorIs(t, svc.Set(ctx, strings.Repeat("k", MaxKeyLength+1), domain.TextValue("x")), domain.ErrInvalidInput)
		assert.Len(t, rec.Errors(), 2)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("untyped value is rejected", func(t *testing.T) {
		repo := &MockRepository{}

		err := NewService(repo, nil).Set(ctx, "k", domain.SettingValue{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSet_SchemaValidation(t *testing.T) {
	ctx := context.Background()
	schemas, err := validation.NewSchemaValidator()
	require.NoError(t, err)

	t.Run("matching value is stored", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, nil, WithSchemas(schemas))
		v, err := domain.StructuredValue([]map[string]float64{{"x": 1, "y": 2, "z": 3}})
		require.NoError(t, err)

		require.NoError(t, svc.Set(ctx, domain.SettingSpawnPoints, v))

		var points []map[string]float64
		assert.True(t, svc.Structured(ctx, domain.SettingSpawnPoints, &points))
		assert.Len(t, points, 1)
	})

	t.Run("mismatch is rejected and reported", func(t *testing.T) {
		repo := &MockRepository{}
		rec := observability.NewRecent(5)
		svc := NewService(repo, rec, WithSchemas(schemas))
		v, err := domain.StructuredValue([]map[string]float64{{"x": 1}})
		require.NoError(t, err)

		err = svc.Set(ctx, domain.SettingSpawnPoints, v)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Len(t, rec.Errors(), 1)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("schema key requires a structured value", func(t *testing.T) {
		repo := &MockRepository{}
		svc := NewService(repo, nil, WithSchemas(schemas))

		err := svc.Set(ctx, domain.SettingWhitelist, domain.TextValue("alice"))

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("keys without schema are unconstrained", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, nil, WithSchemas(schemas))

		assert.NoError(t, svc.Set(ctx, "motd", domain.TextValue("hi")))
	})
}

func TestSeedDefaults_OnlyMissingKeys(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, nil)
	require.NoError(t, svc.Set(ctx, domain.SettingStartingMoney, domain.NumberValue(250)))

	inserted, err := svc.SeedDefaults(ctx)

	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultSettings())-1, inserted)
	assert.Equal(t, 250.0, svc.Number(ctx, domain.SettingStartingMoney, 0), "existing value kept")
	assert.Equal(t, 5000.0, svc.Number(ctx, domain.SettingStartingBank, 0))
	assert.Equal(t, 0.05, svc.Number(ctx, domain.SettingTaxRate, 0))
	assert.True(t, svc.Bool(ctx, domain.SettingTimeSync, false))

	again, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestSeedDefaults_StopsOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{}
	repo.On("InsertIfAbsent", ctx, mock.Anything, mock.Anything).Return(false, domain.ErrConnectivityFailure).Once()

	_, err := NewService(repo, nil).SeedDefaults(ctx)

	assert.ErrorIs(t, err, domain.ErrConnectivityFailure)
	repo.AssertNumberOfCalls(t, "InsertIfAbsent", 1)
}

func TestGetAllAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo, nil)
	require.NoError(t, svc.Set(ctx, "a", domain.BoolValue(true)))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	raw, err := json.Marshal(all[0].Value)
	require.NoError(t, err)
	assert.JSONEq(t, "true", string(raw))

	require.NoError(t, svc.Delete(ctx, "a"))
	assert.ErrorIs(t, svc.Delete(ctx, "a"), domain.ErrNotFound)
}
