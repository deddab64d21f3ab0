package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks xref-api/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// GetByID gets a document by ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Document, error)
	// GetByName gets a document by its unique name. Returns nil and ErrNotFound if not found.
	GetByName(ctx context.Context, name string) (*Document, error)
	// ListAll returns all documents without their content, ordered by name.
	ListAll(ctx context.Context) ([]*Document, error)
	// Upsert inserts a new document or updates an existing one by name.
	Upsert(ctx context.Context, doc *Document) error
	// Delete removes a document by ID. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByID gets a document by ID.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	return r.get(ctx,
		"SELECT id, name, content, hash, updated_at FROM documents WHERE id = ?", id)
}

// GetByName gets a document by its unique name.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByName(ctx context.Context, name string) (*Document, error) {
	return r.get(ctx,
		"SELECT id, name, content, hash, updated_at FROM documents WHERE name = ?", name)
}

func (r *DocumentRepo) get(ctx context.Context, query string, arg any) (*Document, error) {
	var doc Document
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&doc.ID, &doc.Name, &doc.Content, &doc.Hash, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.UpdatedAt, err = parseTimestamp(updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListAll returns all documents ordered by name. Content is omitted so
// listing stays cheap for large corpora.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, hash, updated_at FROM documents ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*Document
	for rows.Next() {
		var doc Document
		var updatedAtStr string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Hash, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		doc.UpdatedAt, err = parseTimestamp(updatedAtStr)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return docs, nil
}

// Upsert inserts a new document or updates an existing one.
// If the document doesn't exist (by name), generates a new UUID.
// If it exists, updates content, hash and updated_at while preserving the ID.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	// Check if document exists to determine if we need to generate a UUID
	existing, err := r.GetByName(ctx, doc.Name)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing == nil && doc.ID == "" {
		doc.ID = uuid.New().String()
	} else if existing != nil {
		// Preserve existing ID
		doc.ID = existing.ID
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, content, hash, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (name) DO UPDATE SET
		 content = excluded.content, hash = excluded.hash, updated_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.Name, doc.Content, doc.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	// Mirror the CURRENT_TIMESTAMP written by the statement so callers
	// can report the write time without re-reading the row.
	doc.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a document by ID.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// parseTimestamp parses a SQLite DATETIME string.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite might use a different format depending on how the value was written
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}
	return t, nil
}
