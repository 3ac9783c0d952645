package domain

// Message is one entry of the conversation history passed to capabilities.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// TurnState is the advisory plan for a single turn. It is produced at the
// start of a turn, consumed within it and discarded; only the turn number
// survives between turns.
type TurnState struct {
	TurnNumber       int      `json:"turn_number"`
	Goal             string   `json:"goal"`
	CurrentStep      string   `json:"current_step"`
	PlannedNextSteps []string `json:"next_steps,omitempty"`
	IdentifiedRisks  []string `json:"risks,omitempty"`
}

// TurnQuality grades how well a turn served the user.
type TurnQuality string

const (
	QualityExcellent    TurnQuality = "excellent"
	QualityGood         TurnQuality = "good"
	QualitySatisfactory TurnQuality = "satisfactory"
	QualityPoor         TurnQuality = "poor"
)

// ValidTurnQuality reports whether q is a recognized quality grade.
func ValidTurnQuality(q string) bool {
	switch TurnQuality(q) {
	case QualityExcellent, QualityGood, QualitySatisfactory, QualityPoor:
		return true
	}
	return false
}

// TurnEvaluation is the evaluator capability's verdict on an executed turn.
type TurnEvaluation struct {
	Achieved             bool        `json:"achieved"`
	Quality              TurnQuality `json:"quality"`
	Issues               []string    `json:"issues,omitempty"`
	NextAction           string      `json:"next_action,omitempty"`
	ContinueConversation bool        `json:"continue_conversation"`
}

// ExecutionSummary condenses what the execute phase did, for the evaluator.
type ExecutionSummary struct {
	ReplyText         string              `json:"reply_text"`
	ExtractedFacts    ProfileFacts        `json:"extracted_facts"`
	EligibleCount     int                 `json:"eligible_count"`
	TopSchemes        []EligibilityResult `json:"top_schemes,omitempty"`
	PendingQuestions  []string            `json:"pending_questions,omitempty"`
	NewContradictions int                 `json:"new_contradictions"`
}

// TurnResult is what one processed turn hands back to the transport layer.
type TurnResult struct {
	ReplyText         string              `json:"reply_text"`
	EligibleSchemes   []EligibilityResult `json:"eligible_schemes"`
	PendingQuestions  []string            `json:"pending_questions,omitempty"`
	NewContradictions []Contradiction     `json:"new_contradictions,omitempty"`
	ShouldContinue    bool                `json:"should_continue"`
	TurnNumber        int                 `json:"turn_number"`
}
