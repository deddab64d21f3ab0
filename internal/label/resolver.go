package label

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLabelNotFound is returned when resolution requests a name with no
// declaration in the document. It is reported to the caller and never
// fatal; no navigation target is produced.
var ErrLabelNotFound = errors.New("label not found")

// Resolver locates label declarations by re-scanning the document text.
// Resolution is idempotent: repeated calls against unchanged text return
// the same position.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver backed by the given recognizer
// registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve returns the position of the first declaration whose captured
// name equals name, compared case-insensitively. When the same name is
// declared more than once (two recognizer syntaxes on one anchor, or a
// genuine duplicate) the earliest offset wins.
func (r *Resolver) Resolve(text, name string) (Position, error) {
	for _, m := range r.registry.Scan(text) {
		if strings.EqualFold(m.Name, name) {
			return positionAt(lineStarts(text), m.Start), nil
		}
	}
	return Position{}, fmt.Errorf("%q: %w", name, ErrLabelNotFound)
}
