package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahayak-ai/sahayak/internal/application"
	"github.com/sahayak-ai/sahayak/internal/catalog"
	"github.com/sahayak-ai/sahayak/internal/domain"
)

type SchemeHandler struct {
	schemes []domain.SchemeRule
}

func NewSchemeHandler(schemes []domain.SchemeRule) *SchemeHandler {
	return &SchemeHandler{schemes: schemes}
}

type schemeResponse struct {
	domain.SchemeRule
	RequiredDocuments []string `json:"required_documents,omitempty"`
}

type listSchemesResponse struct {
	Schemes []domain.SchemeRule `json:"schemes"`
	Count   int                 `json:"count"`
}

// List returns the full catalog in declared order.
// GET /v1/schemes
func (h *SchemeHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listSchemesResponse{
		Schemes: h.schemes,
		Count:   len(h.schemes),
	})
}

// GetByID returns one scheme with its required documents.
// GET /v1/schemes/{id}
func (h *SchemeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scheme, ok := catalog.ByID(h.schemes, id)
	if !ok {
		writeError(w, http.StatusNotFound, "scheme not found")
		return
	}

	writeJSON(w, http.StatusOK, schemeResponse{
		SchemeRule:        scheme,
		RequiredDocuments: application.RequiredDocuments(scheme.ID),
	})
}
