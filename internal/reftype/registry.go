package reftype

import (
	"fmt"
	"strings"
)

// Descriptor describes one reference flavor. Range flavors consume
// exactly two labels (range start, range end).
type Descriptor struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Range       bool   `json:"range"`
}

// InferenceRule pairs a predicate with the tag it proposes. Rules are
// evaluated in table order against a label's name and enclosing
// environment kind; the first predicate returning true wins.
type InferenceRule struct {
	Tag       string
	Predicate func(name, env string) bool
}

// Registry is the static table of reference flavors plus the ordered
// inference rules used to pick a default flavor for a label. It is
// configured once at startup and read-only afterwards.
type Registry struct {
	descriptors []Descriptor
	byTag       map[string]Descriptor
	rules       []InferenceRule
	defaultTag  string
}

// DefaultDescriptors returns the built-in reference flavors in their
// presentation order.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{Tag: "ref", Description: "plain cross-reference"},
		{Tag: "pageref", Description: "page location of the target"},
		{Tag: "nameref", Description: "name or caption of the target"},
		{Tag: "eqref", Description: "equation reference, parenthesized"},
		{Tag: "autoref", Description: "reference with an automatic type prefix"},
		{Tag: "cref", Description: "condensed multi-reference"},
		{Tag: "Cref", Description: "condensed multi-reference, capitalized"},
		{Tag: "crefrange", Description: "reference to a range of two labels", Range: true},
		{Tag: "Crefrange", Description: "reference to a range of two labels, capitalized", Range: true},
	}
}

// DefaultEquationEnvironments is the built-in set of environment kinds
// treated as equation-like by type inference.
func DefaultEquationEnvironments() []string {
	return []string{
		"equation", "equation*",
		"align", "align*",
		"multline", "multline*",
		"gather", "gather*",
		"flalign", "flalign*",
		"alignat", "alignat*",
		"eqnarray",
		"math", "displaymath",
	}
}

// NewRegistry builds a registry from descriptors, a default tag and the
// ordered inference rules. The default tag must name a descriptor.
func NewRegistry(descriptors []Descriptor, defaultTag string, rules []InferenceRule) (*Registry, error) {
	byTag := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		if d.Tag == "" {
			return nil, fmt.Errorf("descriptor with empty tag")
		}
		if _, dup := byTag[d.Tag]; dup {
			return nil, fmt.Errorf("duplicate descriptor tag %q", d.Tag)
		}
		byTag[d.Tag] = d
	}
	if _, ok := byTag[defaultTag]; !ok {
		return nil, fmt.Errorf("default tag %q has no descriptor", defaultTag)
	}
	for _, r := range rules {
		if _, ok := byTag[r.Tag]; !ok {
			return nil, fmt.Errorf("inference rule proposes unknown tag %q", r.Tag)
		}
	}
	return &Registry{
		descriptors: descriptors,
		byTag:       byTag,
		rules:       rules,
		defaultTag:  defaultTag,
	}, nil
}

// Descriptors returns the flavor table in presentation order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Tags returns all flavor tags in presentation order.
func (r *Registry) Tags() []string {
	tags := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		tags[i] = d.Tag
	}
	return tags
}

// Lookup returns the descriptor for tag.
func (r *Registry) Lookup(tag string) (Descriptor, bool) {
	d, ok := r.byTag[tag]
	return d, ok
}

// Describe returns the human-readable description for tag, or the empty
// string for an unknown tag.
func (r *Registry) Describe(tag string) string {
	return r.byTag[tag].Description
}

// DefaultTag returns the flavor used when no inference rule matches.
func (r *Registry) DefaultTag() string {
	return r.defaultTag
}

// Infer picks a default reference flavor for a label. name is the label
// name; env is the kind of its enclosing environment, empty when there
// is none. Rules run in table order, first match wins, and the
// configured default tag is the fallback.
func (r *Registry) Infer(name, env string) string {
	for _, rule := range r.rules {
		if rule.Predicate(name, env) {
			return rule.Tag
		}
	}
	return r.defaultTag
}

// EquationRule returns the built-in inference rule proposing the
// equation flavor for labels declared inside an equation-like
// environment.
func EquationRule(tag string, kinds []string) InferenceRule {
	set := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		set[strings.ToLower(k)] = struct{}{}
	}
	return InferenceRule{
		Tag: tag,
		Predicate: func(_, env string) bool {
			if env == "" {
				return false
			}
			_, ok := set[strings.ToLower(env)]
			return ok
		},
	}
}
