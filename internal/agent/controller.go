// Package agent runs the planner-executor-evaluator loop for one
// conversation and manages the registry of live conversations.
package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahayak-ai/sahayak/internal/domain"
	"github.com/sahayak-ai/sahayak/internal/eligibility"
	"github.com/sahayak-ai/sahayak/internal/planner"
	"github.com/sahayak-ai/sahayak/internal/profile"
)

// State is the controller's position in the turn loop.
type State string

const (
	StateIdle       State = "idle"
	StatePlanning   State = "planning"
	StateExecuting  State = "executing"
	StateEvaluating State = "evaluating"
)

// Defaults for ControllerConfig.
const (
	DefaultMaxTurns      = 20
	DefaultTopSchemes    = 3
	DefaultHistoryWindow = 10
)

// apologyReply is what the user sees when a capability call fails
// outright. The conversation stays open so they can simply try again.
const apologyReply = "Sorry, something went wrong on my side. Please say that again."

// ControllerConfig bounds one conversation.
type ControllerConfig struct {
	MaxTurns      int // hard turn ceiling
	TopSchemes    int // eligible schemes passed to reply generation
	HistoryWindow int // messages of context given to capabilities
}

func (c *ControllerConfig) applyDefaults() {
	if c.MaxTurns <= 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if c.TopSchemes <= 0 {
		c.TopSchemes = DefaultTopSchemes
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
}

// Controller sequences the turns of a single conversation. Turns are
// strictly sequential: the profile store is not safe for concurrent
// writers, so a mutex serializes ProcessTurn.
type Controller struct {
	id      uuid.UUID
	llm     domain.LLMClient
	profile *profile.Store
	engine  *eligibility.Engine
	planner *planner.Planner
	logger  *zap.Logger
	cfg     ControllerConfig

	mu      sync.Mutex
	state   State
	turn    int
	history []domain.Message
}

// NewController creates the controller for one conversation.
func NewController(id uuid.UUID, llm domain.LLMClient, engine *eligibility.Engine, cfg ControllerConfig, logger *zap.Logger) *Controller {
	cfg.applyDefaults()
	return &Controller{
		id:      id,
		llm:     llm,
		profile: profile.NewStore(),
		engine:  engine,
		planner: planner.New(),
		logger:  logger.With(zap.String("conversation_id", id.String())),
		cfg:     cfg,
		state:   StateIdle,
	}
}

// ID returns the conversation id.
func (c *Controller) ID() uuid.UUID { return c.id }

// ProcessTurn runs one full plan-execute-evaluate cycle for the user's
// message. It never returns an error for capability failures; those are
// absorbed into an apologetic reply with the conversation kept open.
func (c *Controller) ProcessTurn(ctx context.Context, userText string) domain.TurnResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turn++
	turn := c.turn
	c.appendMessage("user", userText)

	// Plan. Advisory only: any failure falls back to a default plan.
	c.state = StatePlanning
	plan := c.plan(ctx, userText)
	plan.TurnNumber = turn

	// Execute.
	c.state = StateExecuting
	exec, execErr := c.execute(ctx, userText)
	if execErr != nil {
		c.logger.Warn("turn execution failed, sending apology",
			zap.Int("turn", turn),
			zap.Error(execErr))
		c.appendMessage("assistant", apologyReply)
		c.state = StateIdle
		return domain.TurnResult{
			ReplyText:      apologyReply,
			ShouldContinue: true,
			TurnNumber:     turn,
		}
	}

	// Evaluate.
	c.state = StateEvaluating
	eval := c.evaluate(ctx, plan, exec.summary)

	c.appendMessage("assistant", exec.summary.ReplyText)
	c.state = StateIdle

	shouldContinue := eval.ContinueConversation
	if turn >= c.cfg.MaxTurns {
		// Turn ceiling overrides whatever the evaluator said.
		shouldContinue = false
	}

	c.logger.Info("turn completed",
		zap.Int("turn", turn),
		zap.Int("eligible", exec.summary.EligibleCount),
		zap.Int("new_contradictions", exec.summary.NewContradictions),
		zap.String("quality", string(eval.Quality)),
		zap.Bool("should_continue", shouldContinue))

	return domain.TurnResult{
		ReplyText:         exec.summary.ReplyText,
		EligibleSchemes:   exec.eligible,
		PendingQuestions:  exec.summary.PendingQuestions,
		NewContradictions: exec.contradictions,
		ShouldContinue:    shouldContinue,
		TurnNumber:        turn,
	}
}

func (c *Controller) plan(ctx context.Context, userText string) *domain.TurnState {
	plan, err := c.llm.PlanTurn(ctx, domain.PlanInput{
		Utterance: userText,
		Profile:   c.profile.Snapshot(),
		History:   c.recentHistory(),
	})
	if err != nil {
		c.logger.Debug("plan fallback", zap.Error(err))
		return defaultPlan()
	}
	return plan
}

func defaultPlan() *domain.TurnState {
	return &domain.TurnState{
		Goal:             "help the user find eligible schemes",
		CurrentStep:      "collecting information",
		PlannedNextSteps: []string{"gather missing facts", "check eligibility"},
	}
}

type executionResult struct {
	summary        domain.ExecutionSummary
	eligible       []domain.EligibilityResult
	contradictions []domain.Contradiction
}

// execute runs extraction, merge, eligibility, question planning and reply
// generation in order. Only a transport-level capability failure returns
// an error; unparseable extraction output degrades to "no facts".
func (c *Controller) execute(ctx context.Context, userText string) (*executionResult, error) {
	facts, err := c.llm.ExtractFacts(ctx, userText, c.recentHistory())
	switch {
	case errors.Is(err, domain.ErrUnparseable):
		c.logger.Debug("extraction output unparseable, treating as no facts")
		facts = domain.ProfileFacts{}
	case err != nil:
		return nil, err
	}

	snapshot, fresh := c.profile.Merge(facts)
	if len(fresh) > 0 {
		c.logger.Info("contradictions detected", zap.Int("count", len(fresh)))
	}

	report := c.engine.Evaluate(snapshot)

	var questions []string
	if len(report.Eligible) == 0 {
		questions = c.planner.NextQuestions(snapshot)
	}

	top := report.Eligible
	if len(top) > c.cfg.TopSchemes {
		top = top[:c.cfg.TopSchemes]
	}

	reply, err := c.llm.GenerateReply(ctx, domain.GenerationInput{
		Utterance:        userText,
		Profile:          snapshot,
		ExtractedFacts:   facts,
		TopSchemes:       top,
		PendingQuestions: questions,
		Contradictions:   c.profile.Contradictions(),
	})
	if err != nil {
		return nil, err
	}

	return &executionResult{
		summary: domain.ExecutionSummary{
			ReplyText:         reply,
			ExtractedFacts:    facts,
			EligibleCount:     len(report.Eligible),
			TopSchemes:        top,
			PendingQuestions:  questions,
			NewContradictions: len(fresh),
		},
		eligible:       report.Eligible,
		contradictions: fresh,
	}, nil
}

// evaluate asks the evaluator capability for a verdict and falls back to
// the documented conservative default on any failure.
func (c *Controller) evaluate(ctx context.Context, plan *domain.TurnState, exec domain.ExecutionSummary) *domain.TurnEvaluation {
	eval, err := c.llm.EvaluateTurn(ctx, plan, exec)
	if err != nil {
		c.logger.Debug("evaluation fallback", zap.Error(err))
		return defaultEvaluation()
	}
	if !domain.ValidTurnQuality(string(eval.Quality)) {
		eval.Quality = domain.QualitySatisfactory
	}
	return eval
}

func defaultEvaluation() *domain.TurnEvaluation {
	return &domain.TurnEvaluation{
		Achieved:             false,
		Quality:              domain.QualitySatisfactory,
		NextAction:           "continue gathering information",
		ContinueConversation: true,
	}
}

// Profile returns a read-only snapshot of the collected facts.
func (c *Controller) Profile() domain.UserProfile {
	return c.profile.Snapshot()
}

// Contradictions returns the open contradiction log.
func (c *Controller) Contradictions() []domain.Contradiction {
	return c.profile.Contradictions()
}

// ResolveContradictions clears the contradiction log after the user
// confirmed the correct values.
func (c *Controller) ResolveContradictions() {
	c.profile.ResolveContradictions()
}

// Summary describes the conversation so far.
type Summary struct {
	ConversationID string             `json:"conversation_id"`
	TurnCount      int                `json:"turn_count"`
	Profile        domain.UserProfile `json:"profile"`
	Contradictions int                `json:"contradictions"`
	Clarifications []string           `json:"clarifications,omitempty"`
}

// Summarize reports turn count, profile and open contradictions.
func (c *Controller) Summarize() Summary {
	c.mu.Lock()
	turns := c.turn
	c.mu.Unlock()

	return Summary{
		ConversationID: c.id.String(),
		TurnCount:      turns,
		Profile:        c.profile.Snapshot(),
		Contradictions: len(c.profile.Contradictions()),
		Clarifications: c.profile.Clarifications(),
	}
}

func (c *Controller) appendMessage(role, content string) {
	c.history = append(c.history, domain.Message{Role: role, Content: content})
}

// recentHistory returns the trailing context window.
func (c *Controller) recentHistory() []domain.Message {
	if len(c.history) <= c.cfg.HistoryWindow {
		return append([]domain.Message(nil), c.history...)
	}
	return append([]domain.Message(nil), c.history[len(c.history)-c.cfg.HistoryWindow:]...)
}
