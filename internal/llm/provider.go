// Package llm implements the capability boundary to external reasoning
// services: planning, fact extraction, reply generation and turn
// evaluation, each a completion against a provider-specific API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

// Provider names accepted by NewClient.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderCerebras  = "cerebras"
	ProviderMock      = "mock"
)

// completer is one provider's raw text-completion call.
type completer interface {
	complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// NewClient creates an LLM client for the named provider. API key is
// required for every provider except mock.
func NewClient(provider, apiKey string) (domain.LLMClient, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return &Client{completer: newOpenAICompleter(apiKey)}, nil

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return &Client{completer: newAnthropicCompleter(apiKey)}, nil

	case ProviderCerebras:
		if apiKey == "" {
			return nil, fmt.Errorf("CEREBRAS_API_KEY is required for Cerebras provider")
		}
		return &Client{completer: newCerebrasCompleter(apiKey)}, nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: openai, anthropic, cerebras, mock)", provider)
	}
}

// Client implements domain.LLMClient on top of any completer. The prompt
// construction and response validation are identical across providers.
type Client struct {
	completer completer
}

func (c *Client) PlanTurn(ctx context.Context, input domain.PlanInput) (*domain.TurnState, error) {
	prompt := fmt.Sprintf(planPrompt,
		renderHistory(input.History),
		renderJSON(input.Profile),
		input.Utterance,
	)

	raw, err := c.completer.complete(ctx, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("plan turn: %w", err)
	}

	var plan struct {
		Goal        string   `json:"goal"`
		CurrentStep string   `json:"current_step"`
		NextSteps   []string `json:"next_steps"`
		Risks       []string `json:"risks"`
	}
	if err := parseResponse(raw, &plan); err != nil {
		return nil, err
	}

	return &domain.TurnState{
		Goal:             plan.Goal,
		CurrentStep:      plan.CurrentStep,
		PlannedNextSteps: plan.NextSteps,
		IdentifiedRisks:  plan.Risks,
	}, nil
}

func (c *Client) ExtractFacts(ctx context.Context, utterance string, history []domain.Message) (domain.ProfileFacts, error) {
	prompt := fmt.Sprintf(extractPrompt, renderHistory(history), utterance)

	raw, err := c.completer.complete(ctx, prompt, 0.2)
	if err != nil {
		return domain.ProfileFacts{}, fmt.Errorf("extract facts: %w", err)
	}

	var facts domain.ProfileFacts
	if err := parseResponse(raw, &facts); err != nil {
		return domain.ProfileFacts{}, err
	}
	return facts, nil
}

func (c *Client) GenerateReply(ctx context.Context, input domain.GenerationInput) (string, error) {
	var clarifications []string
	for _, ct := range input.Contradictions {
		clarifications = append(clarifications,
			fmt.Sprintf("%s was reported as %v earlier and %v now", ct.Field, ct.PreviousValue, ct.NewValue))
	}

	prompt := fmt.Sprintf(replyPrompt,
		renderJSON(input.Profile),
		renderJSON(input.ExtractedFacts),
		renderJSON(input.TopSchemes),
		renderLines(clarifications),
		renderLines(input.PendingQuestions),
		input.Utterance,
	)

	reply, err := c.completer.complete(ctx, prompt, 0.7)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func (c *Client) EvaluateTurn(ctx context.Context, plan *domain.TurnState, exec domain.ExecutionSummary) (*domain.TurnEvaluation, error) {
	prompt := fmt.Sprintf(evaluatePrompt, renderJSON(plan), renderJSON(exec))

	raw, err := c.completer.complete(ctx, prompt, 0.5)
	if err != nil {
		return nil, fmt.Errorf("evaluate turn: %w", err)
	}

	var eval domain.TurnEvaluation
	if err := parseResponse(raw, &eval); err != nil {
		return nil, err
	}
	if !domain.ValidTurnQuality(string(eval.Quality)) {
		eval.Quality = domain.QualitySatisfactory
	}
	return &eval, nil
}

func renderHistory(history []domain.Message) string {
	if len(history) == 0 {
		return "(start of conversation)"
	}
	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderLines(lines []string) string {
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}

func renderJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
