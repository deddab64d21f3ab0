package label

import (
	"regexp"
	"strings"
)

// Environment is the nearest structural block that textually contains a
// label declaration.
type Environment struct {
	Kind string `json:"kind"`
}

// StructuralQuery supplies typed structural nodes when the host has a
// parsed view of the document. A raw-text-only host can supply an
// implementation that never finds anything; the resolver's scanning path
// works without it.
type StructuralQuery interface {
	// NamedNode returns the block kind of the node carrying the given
	// identifier, if the document has one.
	NamedNode(name string) (kind string, ok bool)
}

var beginRe = regexp.MustCompile(`\\begin\{([^}]*)\}`)

// EnvironmentResolver determines the innermost begin/end block enclosing
// a label declaration. It re-scans raw text on every call.
type EnvironmentResolver struct {
	query StructuralQuery
}

// NewEnvironmentResolver creates a resolver. query may be nil when no
// structural view of the document is available.
func NewEnvironmentResolver(query StructuralQuery) *EnvironmentResolver {
	return &EnvironmentResolver{query: query}
}

// Enclosing returns the environment containing the given label, trying
// the raw-text scan at the label's offset first and the structural query
// (by label name) as a fallback. The second return is false when
// neither finds an enclosing block; callers should treat that as "use
// the default reference flavor", not as an error.
func (r *EnvironmentResolver) Enclosing(text string, lbl Label) (Environment, bool) {
	if env, ok := r.EnclosingAt(text, lbl.Location.Offset); ok {
		return env, true
	}
	if r.query != nil {
		if kind, ok := r.query.NamedNode(lbl.Name); ok && kind != "" {
			return Environment{Kind: kind}, true
		}
	}
	return Environment{}, false
}

// EnclosingAt returns the nearest enclosing begin/end environment for a
// byte offset.
//
// The nearest preceding open marker is not necessarily the enclosing
// one: when the offset sits between two sibling blocks, the preceding
// block has already closed. So each candidate open marker is paired
// with the close marker carrying the same environment name, and is
// discarded when that close precedes the offset. The search then
// restarts before the discarded open marker, until a candidate survives
// or the document start is reached.
func (r *EnvironmentResolver) EnclosingAt(text string, offset int) (Environment, bool) {
	if offset > len(text) {
		offset = len(text)
	}
	limit := offset
	for limit > 0 {
		name, beginStart, beginEnd, ok := lastBeginBefore(text, limit)
		if !ok {
			break
		}
		if closeEnd, found := matchingEnd(text, beginEnd, name); !found || closeEnd > offset {
			// Either the block closes after the label, or it never
			// closes; both count as enclosing.
			return Environment{Kind: name}, true
		}
		limit = beginStart
	}
	return Environment{}, false
}

// lastBeginBefore finds the last \begin{NAME} whose match starts before
// limit, returning the captured name and the match bounds.
func lastBeginBefore(text string, limit int) (name string, start, end int, ok bool) {
	matches := beginRe.FindAllStringSubmatchIndex(text[:limit], -1)
	if len(matches) == 0 {
		return "", 0, 0, false
	}
	m := matches[len(matches)-1]
	return text[m[2]:m[3]], m[0], m[1], true
}

// matchingEnd finds the first \end{NAME} at or after from for exactly
// the given environment name, returning the offset just past it.
func matchingEnd(text string, from int, name string) (end int, ok bool) {
	marker := `\end{` + name + `}`
	i := strings.Index(text[from:], marker)
	if i < 0 {
		return 0, false
	}
	return from + i + len(marker), true
}
