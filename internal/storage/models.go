package storage

import "time"

// Document represents a stored plain-text document in the database.
// Content is the full text; every cross-reference query re-reads it and
// scans fresh, so nothing derived from it is ever persisted.
type Document struct {
	ID        string // UUID
	Name      string // Unique document name (relative path for corpus files)
	Content   string // Full document text
	Hash      string // SHA256 hex string of the content
	UpdatedAt time.Time
}
