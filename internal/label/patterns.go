package label

import (
	"regexp"
	"sort"
)

// nameClass is the character class shared by every recognizer rule: word
// characters plus a fixed punctuation set. Using one class everywhere
// keeps the unioned rule set well-formed, and a name matched by one rule
// is syntactically valid for all others.
const nameClass = `[-\w.:?!` + "`" + `'/*@+|(){}<>&_^$#%~]`

// nameRe matches a complete, well-formed label name.
var nameRe = regexp.MustCompile(`^` + nameClass + `+$`)

// Rule recognizes one label declaration syntax. The compiled expression
// captures exactly the label name in group 1, regardless of surrounding
// syntax.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// Match is one recognizer hit: the captured name plus the bounds of the
// full match in the scanned text.
type Match struct {
	Name  string
	Start int
	End   int
}

// Registry holds the ordered recognizer rules. Order is stable so that
// output is deterministic; indexing correctness does not depend on it.
type Registry struct {
	rules []Rule
}

// NewRegistry returns the built-in recognizer set covering every label
// declaration syntax the indexer understands:
//
//	:ID: name              node identifier property
//	:CUSTOM_ID: name       node identifier property (second key)
//	#+name: name           name annotation preceding a block
//	\label{name}           raw markup macro
//	<<name>>               dedicated target
//	label:name             explicit label link
//	[..., label=name, ...] option-list anchor
func NewRegistry() *Registry {
	name := nameClass + `+`
	return &Registry{
		rules: []Rule{
			{Name: "id-property", re: regexp.MustCompile(`(?mi)^\s*:ID:\s+(` + name + `)\s*$`)},
			{Name: "custom-id-property", re: regexp.MustCompile(`(?mi)^\s*:CUSTOM_ID:\s+(` + name + `)\s*$`)},
			{Name: "name-keyword", re: regexp.MustCompile(`(?mi)^\s*#\+name:\s+(` + name + `)\s*$`)},
			{Name: "latex-label", re: regexp.MustCompile(`\\label\{(` + name + `)\}`)},
			// Target contents may not contain angle brackets or newlines,
			// and may not start or end with whitespace. A single non-space
			// character is still a valid target.
			{Name: "target", re: regexp.MustCompile(`<<([^<>\n\t ](?:[^<>\n]*[^<>\n\t ])?)>>`)},
			{Name: "label-link", re: regexp.MustCompile(`label:(` + name + `)`)},
			{Name: "option-label", re: regexp.MustCompile(`[\[,]\s*label\s*=\s*(` + name + `)`)},
		},
	}
}

// Rules returns the rule names in registry order.
func (r *Registry) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Scan applies every rule to text and returns all matches ordered by
// match start offset (registry order breaks ties). Each rule's matcher
// always advances past the full match, so zero-length progress is
// impossible. A text with no matches yields an empty slice, not an
// error.
func (r *Registry) Scan(text string) []Match {
	var out []Match
	for _, rule := range r.rules {
		for _, m := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			if m[2] < 0 {
				continue
			}
			out = append(out, Match{
				Name:  text[m[2]:m[3]],
				Start: m[0],
				End:   m[1],
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// ValidName reports whether name is non-empty and made up entirely of
// characters from the shared label character class.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}
