package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahayak-ai/sahayak/internal/agent"
	"github.com/sahayak-ai/sahayak/internal/application"
	"github.com/sahayak-ai/sahayak/internal/catalog"
	"github.com/sahayak-ai/sahayak/internal/domain"
)

type ApplicationHandler struct {
	manager *agent.Manager
	apps    application.Client
	schemes []domain.SchemeRule
}

func NewApplicationHandler(manager *agent.Manager, apps application.Client, schemes []domain.SchemeRule) *ApplicationHandler {
	return &ApplicationHandler{manager: manager, apps: apps, schemes: schemes}
}

type submitApplicationRequest struct {
	SchemeID  string   `json:"scheme_id"`
	Documents []string `json:"documents,omitempty"`
}

type submitApplicationResponse struct {
	*application.Receipt
	RequiredDocuments []string `json:"required_documents,omitempty"`
}

// Submit applies for a scheme using the conversation's collected profile.
// POST /v1/conversations/{id}/applications
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := conversationID(w, r)
	if !ok {
		return
	}

	var req submitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SchemeID == "" {
		writeError(w, http.StatusBadRequest, "scheme_id is required")
		return
	}

	scheme, ok2 := catalog.ByID(h.schemes, req.SchemeID)
	if !ok2 {
		writeError(w, http.StatusNotFound, "scheme not found")
		return
	}

	profile, _, err := h.manager.Profile(id)
	if err != nil {
		if errors.Is(err, agent.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	receipt, err := h.apps.Submit(r.Context(), application.Submission{
		SchemeID:   scheme.ID,
		SchemeName: scheme.Name,
		Profile:    profile,
		Documents:  req.Documents,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to submit application")
		return
	}

	writeJSON(w, http.StatusCreated, submitApplicationResponse{
		Receipt:           receipt,
		RequiredDocuments: application.RequiredDocuments(scheme.ID),
	})
}

// Status reports where a submitted application stands.
// GET /v1/conversations/{id}/applications/{ref}
func (h *ApplicationHandler) Status(w http.ResponseWriter, r *http.Request) {
	if _, ok := conversationID(w, r); !ok {
		return
	}

	ref := chi.URLParam(r, "ref")
	report, err := h.apps.Status(r.Context(), ref)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			writeError(w, http.StatusNotFound, "application not found")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to check application status")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
