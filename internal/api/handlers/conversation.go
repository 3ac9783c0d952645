package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sahayak-ai/sahayak/internal/agent"
	"github.com/sahayak-ai/sahayak/internal/domain"
)

type ConversationHandler struct {
	manager *agent.Manager
}

func NewConversationHandler(manager *agent.Manager) *ConversationHandler {
	return &ConversationHandler{manager: manager}
}

type createConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

type turnRequest struct {
	Message string `json:"message"`
}

type turnResponse struct {
	Reply             string                      `json:"reply"`
	EligibleSchemes   []domain.EligibilityResult  `json:"eligible_schemes,omitempty"`
	PendingQuestions  []string                    `json:"pending_questions,omitempty"`
	NewContradictions []contradictionResponse     `json:"new_contradictions,omitempty"`
	ShouldContinue    bool                        `json:"should_continue"`
	TurnNumber        int                         `json:"turn_number"`
}

type contradictionResponse struct {
	Field         string `json:"field"`
	PreviousValue any    `json:"previous_value"`
	NewValue      any    `json:"new_value"`
	DetectedAt    string `json:"detected_at"`
}

type profileResponse struct {
	Profile        domain.UserProfile      `json:"profile"`
	Contradictions []contradictionResponse `json:"contradictions,omitempty"`
}

// Create starts a new conversation.
// POST /v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.manager.Create()
	writeJSON(w, http.StatusCreated, createConversationResponse{ConversationID: id.String()})
}

// ProcessTurn runs one turn of the conversation.
// POST /v1/conversations/{id}/turns
func (h *ConversationHandler) ProcessTurn(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.manager.ProcessTurn(r.Context(), id, req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process turn")
		return
	}

	writeJSON(w, http.StatusOK, turnResponse{
		Reply:             result.ReplyText,
		EligibleSchemes:   result.EligibleSchemes,
		PendingQuestions:  result.PendingQuestions,
		NewContradictions: toContradictionResponses(result.NewContradictions),
		ShouldContinue:    result.ShouldContinue,
		TurnNumber:        result.TurnNumber,
	})
}

// GetProfile returns the facts collected so far.
// GET /v1/conversations/{id}/profile
func (h *ConversationHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	profile, contradictions, err := h.manager.Profile(id)
	if err != nil {
		if errors.Is(err, agent.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Profile:        profile,
		Contradictions: toContradictionResponses(contradictions),
	})
}

// GetSummary reports the conversation's progress.
// GET /v1/conversations/{id}/summary
func (h *ConversationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	summary, err := h.manager.Summary(id)
	if err != nil {
		if errors.Is(err, agent.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get summary")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ResolveContradictions clears the conversation's contradiction log.
// POST /v1/conversations/{id}/contradictions/resolve
func (h *ConversationHandler) ResolveContradictions(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	if err := h.manager.ResolveContradictions(id); err != nil {
		if errors.Is(err, agent.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to resolve contradictions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

// Delete ends the conversation and discards its state.
// DELETE /v1/conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	if err := h.manager.Remove(id); err != nil {
		if errors.Is(err, agent.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func conversationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return uuid.Nil, false
	}
	return id, true
}

func toContradictionResponses(contradictions []domain.Contradiction) []contradictionResponse {
	if len(contradictions) == 0 {
		return nil
	}
	out := make([]contradictionResponse, 0, len(contradictions))
	for _, c := range contradictions {
		out = append(out, contradictionResponse{
			Field:         c.Field,
			PreviousValue: c.PreviousValue,
			NewValue:      c.NewValue,
			DetectedAt:    c.DetectedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}
