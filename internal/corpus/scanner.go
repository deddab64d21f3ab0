// Package corpus syncs a directory of plain-text documents into the
// document store so that cross-reference queries can address them by
// name. Only raw content is stored; labels are never extracted here,
// every query scans fresh.
package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"xref-api/internal/storage"
)

// textExtensions are the file extensions treated as documents.
var textExtensions = map[string]bool{
	".org":      true,
	".md":       true,
	".markdown": true,
	".tex":      true,
	".txt":      true,
}

// Scanner walks a corpus root and upserts changed documents.
type Scanner struct {
	store storage.DocumentStore
	root  string
}

// NewScanner creates a Scanner for the given root directory.
func NewScanner(store storage.DocumentStore, root string) *Scanner {
	return &Scanner{store: store, root: root}
}

// Sync walks the corpus root and stores every document whose content
// hash changed since the last sync. It returns the number of documents
// written. Unreadable files are logged and skipped; they never abort
// the sync.
func (s *Scanner) Sync(ctx context.Context) (int, error) {
	written := 0
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		// Check for context cancellation between files
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			// Skip hidden directories (editor state, VCS metadata)
			if d.Name() != "." && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}

		if !textExtensions[filepath.Ext(path)] {
			return nil
		}

		relPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		changed, err := s.syncFile(ctx, path, relPath)
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable document", "path", relPath, "error", err)
			return nil
		}
		if changed {
			written++
		}
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("failed to scan corpus %s: %w", s.root, err)
	}
	return written, nil
}

// syncFile stores one file unless its content hash matches the stored
// document.
func (s *Scanner) syncFile(ctx context.Context, absPath, relPath string) (bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return false, err
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.store.GetByName(ctx, relPath)
	if err != nil && err != storage.ErrNotFound {
		return false, err
	}
	if existing != nil && existing.Hash == hash {
		return false, nil
	}

	doc := &storage.Document{
		Name:    relPath,
		Content: string(content),
		Hash:    hash,
	}
	if err := s.store.Upsert(ctx, doc); err != nil {
		return false, err
	}
	slog.DebugContext(ctx, "document stored", "name", relPath, "bytes", len(content))
	return true, nil
}
