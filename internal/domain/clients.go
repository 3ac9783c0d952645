package domain

import (
	"context"
	"errors"
)

// ErrUnparseable signals that a capability returned output that could not
// be validated as the expected structure. Callers map it to a documented
// default instead of surfacing an error to the user.
var ErrUnparseable = errors.New("capability response is not well-formed")

// PlanInput is the context handed to the planning capability.
type PlanInput struct {
	Utterance string
	Profile   UserProfile
	History   []Message
}

// GenerationInput is the context handed to the reply-generation capability.
type GenerationInput struct {
	Utterance        string
	Profile          UserProfile
	ExtractedFacts   ProfileFacts
	TopSchemes       []EligibilityResult
	PendingQuestions []string
	Contradictions   []Contradiction
}

// LLMClient is the reasoning-service boundary consumed by the turn
// controller. Implementations return ErrUnparseable when the model's
// output fails strict structural validation; any other error is a
// transport failure and is handled at the turn boundary.
type LLMClient interface {
	PlanTurn(ctx context.Context, input PlanInput) (*TurnState, error)
	ExtractFacts(ctx context.Context, utterance string, history []Message) (ProfileFacts, error)
	GenerateReply(ctx context.Context, input GenerationInput) (string, error)
	EvaluateTurn(ctx context.Context, plan *TurnState, exec ExecutionSummary) (*TurnEvaluation, error)
}
