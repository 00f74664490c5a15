package openapi

import (
	"errors"
	"fmt"
	"sort"
)

// Source identifies where an OpenAPI document originated so loaders can
// operate on files, fs.FS entries or URLs alike.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the OpenAPI payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of OpenAPI operation metadata needed to build a
// dialog form.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// NewOperation validates core fields.
func NewOperation(id, method, path string, request Schema) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("openapi: operation path is required")
	}
	return Operation{ID: id, Method: method, Path: path, RequestBody: request}, nil
}

// Schema is a request body or one of its properties.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Default     any
	Enum        []any
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	ReadOnly    bool
	MinLength   *int
	MaxLength   *int
	Pattern     string
	MinItems    *int
	MaxItems    *int
	Extension   Extension
}

// Extension carries the x-formdialog vendor extension of a property.
type Extension struct {
	Label       string
	Help        string
	Order       *int
	Hide        []string
	Disable     []string
	VisibleWhen string
	EnabledWhen string
	Remember    bool
	Modes       map[string][]string
}

// IsZero reports whether no extension keys were set.
func (e Extension) IsZero() bool {
	return e.Label == "" && e.Help == "" && e.Order == nil && len(e.Hide) == 0 &&
		len(e.Disable) == 0 && e.VisibleWhen == "" && e.EnabledWhen == "" &&
		!e.Remember && len(e.Modes) == 0
}

// Clone creates a deep copy of the schema tree.
func (s Schema) Clone() Schema {
	cloned := s
	cloned.Required = append([]string(nil), s.Required...)
	cloned.Enum = append([]any(nil), s.Enum...)
	if len(s.Properties) > 0 {
		cloned.Properties = make(map[string]Schema, len(s.Properties))
		for k, v := range s.Properties {
			cloned.Properties[k] = v.Clone()
		}
	}
	if s.Items != nil {
		items := s.Items.Clone()
		cloned.Items = &items
	}
	return cloned
}

// IsRequired reports whether name is listed in Required.
func (s Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// PropertyNames lists property names ordered by x-formdialog order and then
// by name. Properties without an order sort after those with one.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := s.Properties[names[i]].Extension.Order, s.Properties[names[j]].Extension.Order
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return names[i] < names[j]
	})
	return names
}

// DebugString renders a short summary for logging.
func (s Schema) DebugString() string {
	summary := fmt.Sprintf("type=%s", s.Type)
	if s.Ref != "" {
		summary += fmt.Sprintf(",ref=%s", s.Ref)
	}
	if len(s.Required) > 0 {
		summary += fmt.Sprintf(",required=%d", len(s.Required))
	}
	if len(s.Properties) > 0 {
		summary += fmt.Sprintf(",properties=%d", len(s.Properties))
	}
	if s.Items != nil {
		summary += ",items=true"
	}
	return summary
}
