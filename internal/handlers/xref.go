package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"xref-api/internal/contextutil"
	"xref-api/internal/service"
)

// XrefHandler handles HTTP requests for cross-reference operations.
type XrefHandler struct {
	svc service.XrefService
}

// NewXrefHandler creates a new XrefHandler.
func NewXrefHandler(svc service.XrefService) *XrefHandler {
	return &XrefHandler{svc: svc}
}

// Types returns the reference flavor table in order.
func (h *XrefHandler) Types(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListTypes())
}

// Labels returns the label index for a document. The index is rebuilt
// from the stored content on every call.
func (h *XrefHandler) Labels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	index, err := h.svc.BuildIndex(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to build label index")
		return
	}
	writeJSON(w, http.StatusOK, index)
}

// ResolveResponse represents a resolved label position.
type ResolveResponse struct {
	Label  string `json:"label"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Resolve returns the position of the first declaration of the label
// named in the "label" query parameter.
func (h *XrefHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.URL.Query().Get("label")

	pos, err := h.svc.Resolve(ctx, chi.URLParam(r, "id"), name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to resolve label")
		return
	}
	writeJSON(w, http.StatusOK, ResolveResponse{
		Label:  name,
		Offset: pos.Offset,
		Line:   pos.Line,
		Column: pos.Column,
	})
}

// Infer returns the default reference flavor for the label named in the
// "label" query parameter.
func (h *XrefHandler) Infer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.svc.Infer(ctx, chi.URLParam(r, "id"), r.URL.Query().Get("label"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to infer reference type")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ValidateRequest represents the payload for validating one reference
// marker against a document.
type ValidateRequest struct {
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
}

// Validate checks a reference marker's label path against the document's
// current index. Each label gets its own validity result.
func (h *XrefHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.svc.Validate(ctx, chi.URLParam(r, "id"), req.Type, req.Labels)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to validate marker")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Markers runs the activation pass: every reference marker found in the
// document is validated against one index snapshot.
func (h *XrefHandler) Markers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reports, err := h.svc.Activate(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to activate markers")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
