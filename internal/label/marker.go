package label

import (
	"regexp"
	"sort"
	"strings"
)

// Marker is a reference marker parsed from document text: a flavor tag
// followed by a comma-separated label path. Markers are ephemeral; they
// are parsed at the moment of activation and never persisted.
type Marker struct {
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
}

// Validity is the per-label outcome of validating one path entry.
type Validity struct {
	Name   string `json:"name"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ParsePath splits a comma-separated label path, trimming surrounding
// whitespace from each entry. Order is preserved verbatim; for range
// flavors the first entry is the range start and the second the end.
func ParsePath(raw string) []string {
	parts := strings.Split(raw, ",")
	path := make([]string, 0, len(parts))
	for _, p := range parts {
		path = append(path, strings.TrimSpace(p))
	}
	return path
}

// Validate checks every entry of path against the index independently.
// A mix of valid and invalid entries yields a mixed result; one bad
// name never fails the whole marker. Malformed names (empty, or outside
// the label character class) are reported on their own entry while the
// rest still get evaluated.
func Validate(path []string, index Index) []Validity {
	out := make([]Validity, 0, len(path))
	for _, name := range path {
		switch {
		case name == "":
			out = append(out, Validity{Name: name, Reason: "empty label name"})
		case !ValidName(name):
			out = append(out, Validity{Name: name, Reason: "name contains characters outside the label character class"})
		case index.Contains(name):
			out = append(out, Validity{Name: name, Valid: true})
		default:
			out = append(out, Validity{Name: name, Reason: "no declaration in document"})
		}
	}
	return out
}

// ScanMarkers finds every reference marker in text whose flavor tag is
// one of tags. Longer tags are tried first so that crefrange is never
// read as cref plus trailing text.
func ScanMarkers(text string, tags []string) []Marker {
	if len(tags) == 0 {
		return nil
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	name := nameClass + `+`
	re := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `):(` + name + `(?:\s*,\s*` + name + `)*)`)

	var out []Marker
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Marker{
			Type:   text[m[2]:m[3]],
			Labels: ParsePath(text[m[4]:m[5]]),
			Start:  m[0],
			End:    m[1],
		})
	}
	return out
}
