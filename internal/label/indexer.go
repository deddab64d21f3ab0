package label

import "strings"

// Context windows span the line before the declaration through two lines
// after it, inclusive.
const (
	contextLinesBefore = 1
	contextLinesAfter  = 2
)

// Indexer builds a fresh label index from document text. Every call
// scans the whole document from start to end; nothing is cached between
// calls, so the result is always correct against a mutated document.
type Indexer struct {
	registry *Registry
}

// NewIndexer creates an Indexer backed by the given recognizer registry.
func NewIndexer(registry *Registry) *Indexer {
	return &Indexer{registry: registry}
}

// BuildIndex scans text once and returns the ordered, deduplicated
// index. When two recognizer rules match the same physical anchor (a
// named block wrapped by a label link, say), the earliest match in
// document order wins, and its context window is the one kept. An empty
// or match-free document yields an empty index.
func (ix *Indexer) BuildIndex(text string) Index {
	matches := ix.registry.Scan(text)
	if len(matches) == 0 {
		return Index{}
	}

	starts := lineStarts(text)
	lines := strings.Split(text, "\n")

	seen := make(map[string]struct{}, len(matches))
	index := make(Index, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Name]; ok {
			continue
		}
		seen[m.Name] = struct{}{}
		index = append(index, Label{
			Name:     m.Name,
			Location: positionAt(starts, m.Start),
			Context:  contextWindow(lines, lineIndexAt(starts, m.Start)),
		})
	}
	return index
}

// contextWindow joins the lines surrounding the declaration line for
// display purposes. Bounds are clamped to the document.
func contextWindow(lines []string, lineIdx int) string {
	from := lineIdx - contextLinesBefore
	if from < 0 {
		from = 0
	}
	to := lineIdx + contextLinesAfter
	if to > len(lines)-1 {
		to = len(lines) - 1
	}
	return strings.Join(lines[from:to+1], "\n")
}
