package openapi

import "context"

// Parser turns a Document into the operations it declares, keyed by
// operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// ValidateDocument runs kin-openapi validation before extraction.
	ValidateDocument bool

	// AllowExternalRefs lets the parser follow $ref pointers outside the
	// document.
	AllowExternalRefs bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// WithExternalRefs toggles resolution of external references.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ValidateDocument: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
