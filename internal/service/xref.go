package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_xref_service.go -package=mocks -mock_names=XrefService=MockXrefService xref-api/internal/service XrefService

import (
	"context"
	"fmt"
	"strings"

	"xref-api/internal/contextutil"
	"xref-api/internal/label"
	"xref-api/internal/reftype"
	"xref-api/internal/storage"
	"xref-api/internal/structural"
)

// InferResult is the outcome of type inference for one label.
type InferResult struct {
	Label       string `json:"label"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	// Environment is the kind of the enclosing environment, empty when
	// the label sits outside any block.
	Environment string `json:"environment,omitempty"`
}

// ValidationReport is the outcome of validating one reference marker.
type ValidationReport struct {
	Type    string           `json:"type"`
	Results []label.Validity `json:"results"`
	// Error carries a marker-level problem (empty path, wrong range
	// arity). Per-label problems live in Results.
	Error string `json:"error,omitempty"`
}

// MarkerReport pairs a marker found in a document with its validation.
type MarkerReport struct {
	Marker  label.Marker     `json:"marker"`
	Results []label.Validity `json:"results"`
	Error   string           `json:"error,omitempty"`
}

// XrefService exposes cross-reference operations over stored documents.
// Every operation re-reads the document and scans it fresh; there is no
// cached index to go stale between calls.
type XrefService interface {
	// ListTypes returns the reference flavor table in order.
	ListTypes() []reftype.Descriptor
	// BuildIndex returns the label index for a document.
	BuildIndex(ctx context.Context, docID string) (label.Index, error)
	// Resolve returns the position of the first declaration of name.
	Resolve(ctx context.Context, docID, name string) (label.Position, error)
	// Infer picks a default reference flavor for a declared label.
	Infer(ctx context.Context, docID, name string) (InferResult, error)
	// Validate checks a reference marker's label path against the index.
	Validate(ctx context.Context, docID, typeTag string, labels []string) (ValidationReport, error)
	// Activate finds every reference marker in a document and validates
	// each one.
	Activate(ctx context.Context, docID string) ([]MarkerReport, error)
}

// xrefService implements XrefService.
type xrefService struct {
	store    storage.DocumentStore
	registry *label.Registry
	types    *reftype.Registry
}

// NewXrefService creates a new XrefService.
func NewXrefService(store storage.DocumentStore, registry *label.Registry, types *reftype.Registry) XrefService {
	return &xrefService{
		store:    store,
		registry: registry,
		types:    types,
	}
}

// ListTypes returns the reference flavor table in order.
func (s *xrefService) ListTypes() []reftype.Descriptor {
	return s.types.Descriptors()
}

// document fetches a document snapshot for one operation.
func (s *xrefService) document(ctx context.Context, docID string) (*storage.Document, error) {
	doc, err := s.store.GetByID(ctx, docID)
	if err == storage.ErrNotFound {
		return nil, fmt.Errorf("document %s: %w", docID, ErrNotFound)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load document")
	}
	return doc, nil
}

// BuildIndex returns the label index for a document.
func (s *xrefService) BuildIndex(ctx context.Context, docID string) (label.Index, error) {
	doc, err := s.document(ctx, docID)
	if err != nil {
		return nil, err
	}
	index := label.NewIndexer(s.registry).BuildIndex(doc.Content)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "index built",
		"document", doc.Name, "labels", len(index))
	return index, nil
}

// Resolve returns the position of the first declaration of name.
func (s *xrefService) Resolve(ctx context.Context, docID, name string) (label.Position, error) {
	if name == "" {
		return label.Position{}, &ValidationError{Field: "label", Message: "cannot be empty"}
	}
	doc, err := s.document(ctx, docID)
	if err != nil {
		return label.Position{}, err
	}
	pos, err := label.NewResolver(s.registry).Resolve(doc.Content, name)
	if err != nil {
		return label.Position{}, err
	}
	return pos, nil
}

// Infer picks a default reference flavor for a declared label. The
// enclosing environment is resolved from raw text, with the parsed
// document structure as a fallback for name-annotated blocks.
func (s *xrefService) Infer(ctx context.Context, docID, name string) (InferResult, error) {
	if name == "" {
		return InferResult{}, &ValidationError{Field: "label", Message: "cannot be empty"}
	}
	doc, err := s.document(ctx, docID)
	if err != nil {
		return InferResult{}, err
	}

	index := label.NewIndexer(s.registry).BuildIndex(doc.Content)
	lbl, ok := findLabel(index, name)
	if !ok {
		return InferResult{}, fmt.Errorf("%q: %w", name, label.ErrLabelNotFound)
	}

	resolver := label.NewEnvironmentResolver(structural.ParseMarkdown([]byte(doc.Content)))
	var envKind string
	if env, ok := resolver.Enclosing(doc.Content, lbl); ok {
		envKind = env.Kind
	}

	tag := s.types.Infer(lbl.Name, envKind)
	return InferResult{
		Label:       lbl.Name,
		Tag:         tag,
		Description: s.types.Describe(tag),
		Environment: envKind,
	}, nil
}

// Validate checks a reference marker's label path against the index.
func (s *xrefService) Validate(ctx context.Context, docID, typeTag string, labels []string) (ValidationReport, error) {
	desc, ok := s.types.Lookup(typeTag)
	if !ok {
		return ValidationReport{}, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown reference type %q", typeTag)}
	}
	doc, err := s.document(ctx, docID)
	if err != nil {
		return ValidationReport{}, err
	}

	index := label.NewIndexer(s.registry).BuildIndex(doc.Content)
	report := ValidationReport{
		Type:    typeTag,
		Results: label.Validate(labels, index),
	}
	report.Error = markerError(desc, labels)
	return report, nil
}

// Activate finds every reference marker in a document and validates
// each one against a single index snapshot.
func (s *xrefService) Activate(ctx context.Context, docID string) ([]MarkerReport, error) {
	doc, err := s.document(ctx, docID)
	if err != nil {
		return nil, err
	}

	index := label.NewIndexer(s.registry).BuildIndex(doc.Content)
	markers := label.ScanMarkers(doc.Content, s.types.Tags())
	reports := make([]MarkerReport, 0, len(markers))
	for _, m := range markers {
		desc, _ := s.types.Lookup(m.Type)
		reports = append(reports, MarkerReport{
			Marker:  m,
			Results: label.Validate(m.Labels, index),
			Error:   markerError(desc, m.Labels),
		})
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "markers activated",
		"document", doc.Name, "markers", len(reports))
	return reports, nil
}

// markerError reports marker-level problems: an empty path, or a range
// flavor whose path is not exactly two labels.
func markerError(desc reftype.Descriptor, labels []string) string {
	if len(labels) == 0 {
		return "empty label path"
	}
	if desc.Range && len(labels) != 2 {
		return fmt.Sprintf("range flavor %s requires exactly two labels, got %d", desc.Tag, len(labels))
	}
	return ""
}

// findLabel looks name up in the index, case-insensitively, preserving
// the declared spelling.
func findLabel(index label.Index, name string) (label.Label, bool) {
	for _, l := range index {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return label.Label{}, false
}
