package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GameVault_Go/internal/domain"
	"github.com/osse101/GameVault_Go/internal/event"
)

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	mockBus := new(MockEventBus)
	for et := range domain.ActionForEvent {
		mockBus.On("Subscribe", event.Type(et), mock.Anything).Return().Once()
	}

	NewService(mockRepo).Subscribe(mockBus)

	mockBus.AssertExpectations(t)
	mockBus.AssertNumberOfCalls(t, "Subscribe", len(domain.ActionForEvent))
}

func TestService_EventsBecomeRows(t *testing.T) {
	ctx := context.Background()
	owner, prev := int64(7), int64(3)
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		evt      event.Event
		action   string
		playerID *int64
		details  map[string]any
	}{
		{
			name:     "player login",
			evt:      event.NewPlayerEvent(domain.EventTypePlayerLoggedIn, &domain.Player{ID: 7, Handle: "soc-1"}, map[string]any{"ip": "1.2.3.4"}),
			action:   domain.ActionLoggedIn,
			playerID: &owner,
			details:  map[string]any{"ip": "1.2.3.4", DetailHandle: "soc-1"},
		},
		{
			name:     "vehicle transfer",
			evt:      event.NewVehicleEvent(domain.EventTypeVehicleTransferred, &domain.Vehicle{ID: 9, OwnerID: &owner, Model: "sultan", Plate: "ABC123"}, &prev),
			action:   domain.ActionVehicleTransferred,
			playerID: &owner,
			details: map[string]any{
				DetailVehicleID: int64(9), DetailModel: "sultan", DetailPlate: "ABC123", DetailPreviousOwner: prev,
			},
		},
		{
			name:     "temporary ban",
			evt:      event.NewBanEvent(domain.EventTypePlayerBanned, &domain.Ban{ID: 2, PlayerID: &owner, Reason: "griefing", ExpiresAt: &expires}),
			action:   domain.ActionBanned,
			playerID: &owner,
			details: map[string]any{
				DetailBanID: int64(2), DetailReason: "griefing", DetailExpiresAt: "2026-01-02T03:04:05Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			svc := NewService(mockRepo).(*service)

			want := map[string]any{DetailEventID: tt.evt.ID}
			for k, v := range tt.details {
				want[k] = v
			}
			mockRepo.On("Insert", ctx, domain.ActivityLog{PlayerID: tt.playerID, Action: tt.action, Details: want}).
				Return(int64(1), nil).Once()

			require.NoError(t, svc.handleEvent(ctx, tt.evt))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_HandleEvent_UnknownTypeIgnored(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	require.NoError(t, svc.handleEvent(context.Background(), event.Event{Type: "item.sold"}))
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_HandleEvent_MalformedPayloadStillLogged(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	mockRepo.On("Insert", ctx, mock.MatchedBy(func(e domain.ActivityLog) bool {
		return e.Action == domain.ActionDied && e.PlayerID == nil
	})).Return(int64(1), nil).Once()

	require.NoError(t, svc.handleEvent(ctx, event.Event{ID: "x", Type: domain.EventTypePlayerDied, Payload: "garbage"}))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_StorageFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	mockRepo.On("Insert", ctx, mock.Anything).Return(int64(0), domain.ErrConnectivityFailure)

	err := svc.handleEvent(ctx, event.NewPlayerEvent(domain.EventTypePlayerSaved, &domain.Player{ID: 1}, nil))

	assert.ErrorIs(t, err, domain.ErrConnectivityFailure)
}

func TestService_Log_RequiresAction(t *testing.T) {
	mockRepo := new(MockRepository)

	_, err := NewService(mockRepo).Log(context.Background(), nil, " ", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_Recent_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("Query", ctx, domain.ActivityFilter{Limit: DefaultQueryLimit}).Return([]domain.ActivityLog{}, nil).Once()
	mockRepo.On("Query", ctx, domain.ActivityFilter{Action: domain.ActionDied, Limit: MaxQueryLimit}).Return([]domain.ActivityLog{{ID: 1}}, nil).Once()

	_, err := svc.Recent(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	rows, err := svc.Recent(ctx, domain.ActivityFilter{Action: domain.ActionDied, Limit: 10_000})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	mockRepo.AssertExpectations(t)
}

func TestService_Cleanup(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mockRepo.On("DeleteOlderThan", ctx, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).Return(int64(5), nil).Once()

	count, err := svc.Cleanup(ctx, 30)

	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	_, err = svc.Cleanup(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_Process(t *testing.T) {
	mockRepo := new(MockRepository)
	job := NewCleanupJob(NewService(mockRepo), 10)

	mockRepo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(100), nil).Once()
	assert.NoError(t, job.Process(context.Background()))

	mockRepo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(0), errors.New("down")).Once()
	assert.Error(t, job.Process(context.Background()))

	assert.Equal(t, JobNameCleanup, job.Name())
	mockRepo.AssertExpectations(t)
}
