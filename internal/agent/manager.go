package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahayak-ai/sahayak/internal/domain"
	"github.com/sahayak-ai/sahayak/internal/eligibility"
)

// Defaults for ManagerConfig, from the source system's 30 minute
// conversation timeout.
const (
	DefaultSessionTTL    = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
)

var ErrConversationNotFound = errors.New("conversation not found")

// ManagerConfig bounds the conversation registry.
type ManagerConfig struct {
	Controller    ControllerConfig
	SessionTTL    time.Duration // idle time before a conversation is evicted
	SweepInterval time.Duration
}

func (c *ManagerConfig) applyDefaults() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}
}

type session struct {
	controller *Controller
	lastActive time.Time
}

// Manager owns every live conversation, keyed by id. Conversations share
// nothing but the read-only catalog, so distinct conversations may run
// fully in parallel. An externally driven sweep evicts idle entries on a
// fixed schedule, keeping cleanup deterministic.
type Manager struct {
	llm    domain.LLMClient
	engine *eligibility.Engine
	logger *zap.Logger
	cfg    ManagerConfig

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	now    func() time.Time
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewManager creates the registry. The engine (and through it the
// catalog) is shared read-only across all conversations.
func NewManager(llm domain.LLMClient, engine *eligibility.Engine, cfg ManagerConfig, logger *zap.Logger) *Manager {
	cfg.applyDefaults()
	return &Manager{
		llm:      llm,
		engine:   engine,
		logger:   logger,
		cfg:      cfg,
		sessions: make(map[uuid.UUID]*session),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// SetSweepInterval overrides the sweep cadence; call before Start.
func (m *Manager) SetSweepInterval(d time.Duration) {
	m.cfg.SweepInterval = d
}

// Create registers a new conversation and returns its id.
func (m *Manager) Create() uuid.UUID {
	id := uuid.New()
	ctrl := NewController(id, m.llm, m.engine, m.cfg.Controller, m.logger)

	m.mu.Lock()
	m.sessions[id] = &session{controller: ctrl, lastActive: m.now()}
	m.mu.Unlock()

	m.logger.Info("conversation created", zap.String("conversation_id", id.String()))
	return id
}

// get returns the controller and refreshes the idle clock.
func (m *Manager) get(id uuid.UUID) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	sess.lastActive = m.now()
	return sess.controller, nil
}

// ProcessTurn runs one turn of the identified conversation.
func (m *Manager) ProcessTurn(ctx context.Context, id uuid.UUID, userText string) (domain.TurnResult, error) {
	ctrl, err := m.get(id)
	if err != nil {
		return domain.TurnResult{}, err
	}
	return ctrl.ProcessTurn(ctx, userText), nil
}

// Profile returns the conversation's profile snapshot and open
// contradictions.
func (m *Manager) Profile(id uuid.UUID) (domain.UserProfile, []domain.Contradiction, error) {
	ctrl, err := m.get(id)
	if err != nil {
		return domain.UserProfile{}, nil, err
	}
	return ctrl.Profile(), ctrl.Contradictions(), nil
}

// Summary reports the conversation's progress.
func (m *Manager) Summary(id uuid.UUID) (Summary, error) {
	ctrl, err := m.get(id)
	if err != nil {
		return Summary{}, err
	}
	return ctrl.Summarize(), nil
}

// ResolveContradictions clears a conversation's contradiction log after
// explicit user confirmation.
func (m *Manager) ResolveContradictions(id uuid.UUID) error {
	ctrl, err := m.get(id)
	if err != nil {
		return err
	}
	ctrl.ResolveContradictions()
	return nil
}

// Remove ends a conversation and discards its state.
func (m *Manager) Remove(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrConversationNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("conversation removed", zap.String("conversation_id", id.String()))
	return nil
}

// Len reports the number of live conversations.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Start runs the idle-conversation sweeper in a background goroutine.
func (m *Manager) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.cfg.SweepInterval)
		defer ticker.Stop()

		m.logger.Info("session sweeper started",
			zap.Duration("interval", m.cfg.SweepInterval),
			zap.Duration("ttl", m.cfg.SessionTTL))

		for {
			select {
			case <-ticker.C:
				m.Sweep()
			case <-m.stopCh:
				m.logger.Info("session sweeper stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the sweeper.
func (m *Manager) Stop() {
	close(m.stopCh)
	m.wg.Wait()
}

// Sweep evicts every conversation idle longer than the TTL and returns
// how many were removed. Exported so tests and operators can trigger a
// deterministic sweep.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted int
	for id, sess := range m.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
			m.logger.Info("idle conversation evicted",
				zap.String("conversation_id", id.String()),
				zap.Time("last_active", sess.lastActive))
		}
	}
	return evicted
}
