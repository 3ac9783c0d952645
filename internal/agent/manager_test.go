package agent

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/sahayak-ai/sahayak/internal/domain"
	"github.com/sahayak-ai/sahayak/internal/eligibility"
	"github.com/sahayak-ai/sahayak/internal/llm"
)

func newTestManager(mock *llm.MockClient, cfg ManagerConfig) *Manager {
	engine := eligibility.NewEngine(testCatalog())
	return NewManager(mock, engine, cfg, zap.NewNop())
}

func TestManager_CreateAndProcessTurn(t *testing.T) {
	mock := llm.NewMockClient()
	m := newTestManager(mock, ManagerConfig{})

	id := m.Create()
	assert.Equal(t, 1, m.Len())

	result, err := m.ProcessTurn(context.Background(), id, "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TurnNumber)
	assert.Equal(t, mock.ReplyResponse, result.ReplyText)
}

func TestManager_UnknownConversation(t *testing.T) {
	m := newTestManager(llm.NewMockClient(), ManagerConfig{})

	_, err := m.ProcessTurn(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, _, err = m.Profile(uuid.New())
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, err = m.Summary(uuid.New())
	assert.ErrorIs(t, err, ErrConversationNotFound)

	assert.ErrorIs(t, m.ResolveContradictions(uuid.New()), ErrConversationNotFound)
	assert.ErrorIs(t, m.Remove(uuid.New()), ErrConversationNotFound)
}

func TestManager_ConversationsAreIsolated(t *testing.T) {
	mock := llm.NewMockClient()
	m := newTestManager(mock, ManagerConfig{})
	ctx := context.Background()

	first := m.Create()
	second := m.Create()

	mock.ExtractResponse = domain.ProfileFacts{Age: intp(35)}
	_, err := m.ProcessTurn(ctx, first, "I am 35")
	require.NoError(t, err)

	profile, _, err := m.Profile(first)
	require.NoError(t, err)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 35, *profile.Age)

	other, _, err := m.Profile(second)
	require.NoError(t, err)
	assert.Nil(t, other.Age, "facts must not leak across conversations")
}

func TestManager_Remove(t *testing.T) {
	m := newTestManager(llm.NewMockClient(), ManagerConfig{})

	id := m.Create()
	require.NoError(t, m.Remove(id))
	assert.Equal(t, 0, m.Len())

	_, err := m.ProcessTurn(context.Background(), id, "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestManager_SweepEvictsIdleConversations(t *testing.T) {
	m := newTestManager(llm.NewMockClient(), ManagerConfig{SessionTTL: 30 * time.Minute})

	idle := m.Create()
	active := m.Create()

	// Move the clock 31 minutes ahead, then touch only the active one.
	base := time.Now()
	m.now = func() time.Time { return base.Add(31 * time.Minute) }
	_, err := m.ProcessTurn(context.Background(), active, "still here")
	require.NoError(t, err)

	evicted := m.Sweep()
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, m.Len())

	_, err = m.ProcessTurn(context.Background(), idle, "hello?")
	assert.ErrorIs(t, err, ErrConversationNotFound)
	_, err = m.ProcessTurn(context.Background(), active, "hello")
	assert.NoError(t, err)
}

func TestManager_SweepKeepsFreshConversations(t *testing.T) {
	m := newTestManager(llm.NewMockClient(), ManagerConfig{SessionTTL: 30 * time.Minute})

	m.Create()
	m.Create()

	assert.Equal(t, 0, m.Sweep())
	assert.Equal(t, 2, m.Len())
}

func TestManager_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := newTestManager(llm.NewMockClient(), ManagerConfig{})
	m.SetSweepInterval(10 * time.Millisecond)

	m.Start()
	time.Sleep(30 * time.Millisecond)
	m.Stop()
}
