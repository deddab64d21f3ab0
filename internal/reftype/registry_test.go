package reftype

import (
	"reflect"
	"testing"
)

func newTestRegistry(t *testing.T, rules []InferenceRule) *Registry {
	t.Helper()
	registry, err := NewRegistry(DefaultDescriptors(), "ref", rules)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return registry
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []Descriptor
		defaultTag  string
		rules       []InferenceRule
		wantErr     bool
	}{
		{
			name:        "valid defaults",
			descriptors: DefaultDescriptors(),
			defaultTag:  "ref",
		},
		{
			name:        "unknown default tag",
			descriptors: DefaultDescriptors(),
			defaultTag:  "nope",
			wantErr:     true,
		},
		{
			name:        "duplicate tag",
			descriptors: []Descriptor{{Tag: "ref"}, {Tag: "ref"}},
			defaultTag:  "ref",
			wantErr:     true,
		},
		{
			name:        "empty tag",
			descriptors: []Descriptor{{Tag: ""}},
			defaultTag:  "ref",
			wantErr:     true,
		},
		{
			name:        "rule proposing unknown tag",
			descriptors: DefaultDescriptors(),
			defaultTag:  "ref",
			rules: []InferenceRule{
				{Tag: "bogus", Predicate: func(string, string) bool { return true }},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.descriptors, tt.defaultTag, tt.rules)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegistry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_Tags(t *testing.T) {
	registry := newTestRegistry(t, nil)
	want := []string{"ref", "pageref", "nameref", "eqref", "autoref", "cref", "Cref", "crefrange", "Crefrange"}
	if got := registry.Tags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry := newTestRegistry(t, nil)

	d, ok := registry.Lookup("crefrange")
	if !ok {
		t.Fatal("Lookup(crefrange) not found")
	}
	if !d.Range {
		t.Error("crefrange should be a range flavor")
	}

	if _, ok := registry.Lookup("bogus"); ok {
		t.Error("Lookup(bogus) should not be found")
	}
}

func TestRegistry_Describe(t *testing.T) {
	registry := newTestRegistry(t, nil)
	if got := registry.Describe("eqref"); got != "equation reference, parenthesized" {
		t.Errorf("Describe(eqref) = %q", got)
	}
	if got := registry.Describe("bogus"); got != "" {
		t.Errorf("Describe(bogus) = %q, want empty", got)
	}
}

func TestRegistry_Infer(t *testing.T) {
	equation := EquationRule("eqref", DefaultEquationEnvironments())

	tests := []struct {
		name  string
		rules []InferenceRule
		label string
		env   string
		want  string
	}{
		{
			name:  "equation environment proposes eqref",
			rules: []InferenceRule{equation},
			label: "eq1",
			env:   "equation",
			want:  "eqref",
		},
		{
			name:  "starred environment counts",
			rules: []InferenceRule{equation},
			label: "eq1",
			env:   "align*",
			want:  "eqref",
		},
		{
			name:  "environment kind compared case insensitively",
			rules: []InferenceRule{equation},
			label: "eq1",
			env:   "Equation",
			want:  "eqref",
		},
		{
			name:  "no environment falls through to default",
			rules: []InferenceRule{equation},
			label: "sec1",
			env:   "",
			want:  "ref",
		},
		{
			name:  "non-equation environment falls through",
			rules: []InferenceRule{equation},
			label: "thm1",
			env:   "theorem",
			want:  "ref",
		},
		{
			name: "first matching rule wins",
			rules: []InferenceRule{
				{Tag: "autoref", Predicate: func(name, _ string) bool { return name == "eq1" }},
				equation,
			},
			label: "eq1",
			env:   "equation",
			want:  "autoref",
		},
		{
			name:  "no rules always yields default",
			rules: nil,
			label: "anything",
			env:   "equation",
			want:  "ref",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newTestRegistry(t, tt.rules)
			if got := registry.Infer(tt.label, tt.env); got != tt.want {
				t.Errorf("Infer(%q, %q) = %q, want %q", tt.label, tt.env, got, tt.want)
			}
		})
	}
}
