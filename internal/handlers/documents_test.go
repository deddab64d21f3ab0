package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"xref-api/internal/storage"
	"xref-api/internal/storage/mocks"
)

func TestDocumentsHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc *storage.Document) error {
			if doc.Name != "paper.org" {
				t.Errorf("Upsert name = %q, want paper.org", doc.Name)
			}
			if doc.Hash == "" {
				t.Error("Upsert called without content hash")
			}
			doc.ID = "generated-id"
			doc.UpdatedAt = time.Now()
			return nil
		})

	h := NewDocumentsHandler(store)
	body := strings.NewReader(`{"name":"paper.org","content":"\\label{fig1}"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got DocumentResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.ID != "generated-id" || got.Name != "paper.org" {
		t.Errorf("body = %+v", got)
	}
	if got.Content != "" {
		t.Error("create response should not echo content")
	}
}

func TestDocumentsHandler_CreateMissingName(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)

	h := NewDocumentsHandler(store)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", strings.NewReader(`{"content":"x"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDocumentsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return([]*storage.Document{
		{ID: "a", Name: "alpha.org", Hash: "h1", UpdatedAt: time.Now()},
		{ID: "b", Name: "beta.org", Hash: "h2", UpdatedAt: time.Now()},
	}, nil)

	h := NewDocumentsHandler(store)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []DocumentResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "alpha.org" || got[1].Name != "beta.org" {
		t.Errorf("body = %+v", got)
	}
}

func TestDocumentsHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().GetByID(gomock.Any(), "a").Return(&storage.Document{
		ID:        "a",
		Name:      "alpha.org",
		Content:   "<<target>>",
		Hash:      "h1",
		UpdatedAt: time.Now(),
	}, nil)

	h := NewDocumentsHandler(store)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/documents/a", nil), "id", "a")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got DocumentResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.Content != "<<target>>" {
		t.Errorf("Content = %q, want document body included", got.Content)
	}
}

func TestDocumentsHandler_GetNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	h := NewDocumentsHandler(store)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/documents/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDocumentsHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "a").Return(nil)

	h := NewDocumentsHandler(store)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/documents/a", nil), "id", "a")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestDocumentsHandler_DeleteNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "missing").Return(storage.ErrNotFound)

	h := NewDocumentsHandler(store)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/documents/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
