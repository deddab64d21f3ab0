package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"xref-api/internal/contextutil"
	"xref-api/internal/storage"
)

// DocumentsHandler handles HTTP requests for document management.
type DocumentsHandler struct {
	store storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(store storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{store: store}
}

// DocumentRequest represents the payload for creating or updating a document.
type DocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DocumentResponse represents a document in HTTP responses. Content is
// omitted in listings.
type DocumentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content,omitempty"`
	Hash      string `json:"hash"`
	UpdatedAt string `json:"updated_at"`
}

func toDocumentResponse(doc *storage.Document, withContent bool) DocumentResponse {
	resp := DocumentResponse{
		ID:        doc.ID,
		Name:      doc.Name,
		Hash:      doc.Hash,
		UpdatedAt: doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if withContent {
		resp.Content = doc.Content
	}
	return resp
}

// Create stores a document, replacing any existing document of the same
// name.
func (h *DocumentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		logger.WarnContext(ctx, "empty document name")
		writeError(w, http.StatusBadRequest, "Document name is required")
		return
	}

	sum := sha256.Sum256([]byte(req.Content))
	doc := &storage.Document{
		Name:    req.Name,
		Content: req.Content,
		Hash:    hex.EncodeToString(sum[:]),
	}
	if err := h.store.Upsert(ctx, doc); err != nil {
		logger.ErrorContext(ctx, "failed to store document", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store document")
		return
	}

	logger.InfoContext(ctx, "document stored", "id", doc.ID, "name", doc.Name, "bytes", len(req.Content))
	writeJSON(w, http.StatusCreated, toDocumentResponse(doc, false))
}

// List returns all stored documents without content.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	docs, err := h.store.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc, false))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one document including its content.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	doc, err := h.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load document", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load document")
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc, true))
}

// Delete removes one document.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	err := h.store.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete document", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	logger.InfoContext(ctx, "document deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
