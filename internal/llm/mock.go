package llm

import (
	"context"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

// MockClient is a configurable LLM client for testing and offline use.
// Set the response fields to control what each method returns.
type MockClient struct {
	PlanResponse     *domain.TurnState
	PlanError        error
	ExtractResponse  domain.ProfileFacts
	ExtractError     error
	ReplyResponse    string
	ReplyError       error
	EvaluateResponse *domain.TurnEvaluation
	EvaluateError    error

	// Call tracking for assertions
	PlanCalls     []domain.PlanInput
	ExtractCalls  []string
	ReplyCalls    []domain.GenerationInput
	EvaluateCalls []domain.ExecutionSummary
}

func NewMockClient() *MockClient {
	return &MockClient{
		PlanResponse: &domain.TurnState{
			Goal:             "Help the user find eligible schemes",
			CurrentStep:      "collecting information",
			PlannedNextSteps: []string{"gather more facts", "check eligibility"},
		},
		ReplyResponse: "Thank you. Could you tell me a bit more about yourself?",
		EvaluateResponse: &domain.TurnEvaluation{
			Achieved:             true,
			Quality:              domain.QualityGood,
			ContinueConversation: true,
		},
	}
}

func (c *MockClient) PlanTurn(ctx context.Context, input domain.PlanInput) (*domain.TurnState, error) {
	c.PlanCalls = append(c.PlanCalls, input)
	if c.PlanError != nil {
		return nil, c.PlanError
	}
	plan := *c.PlanResponse
	return &plan, nil
}

func (c *MockClient) ExtractFacts(ctx context.Context, utterance string, history []domain.Message) (domain.ProfileFacts, error) {
	c.ExtractCalls = append(c.ExtractCalls, utterance)
	if c.ExtractError != nil {
		return domain.ProfileFacts{}, c.ExtractError
	}
	return c.ExtractResponse, nil
}

func (c *MockClient) GenerateReply(ctx context.Context, input domain.GenerationInput) (string, error) {
	c.ReplyCalls = append(c.ReplyCalls, input)
	if c.ReplyError != nil {
		return "", c.ReplyError
	}
	return c.ReplyResponse, nil
}

func (c *MockClient) EvaluateTurn(ctx context.Context, plan *domain.TurnState, exec domain.ExecutionSummary) (*domain.TurnEvaluation, error) {
	c.EvaluateCalls = append(c.EvaluateCalls, exec)
	if c.EvaluateError != nil {
		return nil, c.EvaluateError
	}
	eval := *c.EvaluateResponse
	return &eval, nil
}

// Reset clears recorded calls and restores default responses.
func (c *MockClient) Reset() {
	*c = *NewMockClient()
}
