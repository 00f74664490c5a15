package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

var methods = []string{
	http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete,
	http.MethodPatch, http.MethodHead, http.MethodOptions, http.MethodTrace,
}

// Operations converts a Document into a map keyed by operationId. Operations
// without an id are keyed "method:path".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = p.options.AllowExternalRefs

	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if api.Paths == nil || api.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range api.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range methods {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if op := item.GetOperation(method); op != nil {
				collectOperation(operations, method, path, op)
			}
		}
	}

	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func collectOperation(target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	op, err := pkgopenapi.NewOperation(opID, method, path, extractRequestSchema(operation.RequestBody))
	if err != nil {
		return
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	target[opID] = op
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if requestBody == nil {
		return pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		return convertSchema(mt.Schema)
	}
	return pkgopenapi.Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return newConverter().convert(ref)
}

// converter tracks the schemas on the current path so recursive references
// stop at the ref instead of expanding forever.
type converter struct {
	active map[*openapi3.Schema]bool
}

func newConverter() *converter {
	return &converter{active: make(map[*openapi3.Schema]bool)}
}

func (c *converter) convert(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	if src == nil || c.active[src] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	c.active[src] = true
	defer delete(c.active, src)

	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		ReadOnly:    src.ReadOnly,
		Pattern:     src.Pattern,
		Extension:   parseExtension(src.Extensions),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = c.convert(property)
		}
	}
	if src.Items != nil {
		items := c.convert(src.Items)
		schema.Items = &items
	}
	if src.MinLength != 0 {
		schema.MinLength = intPtr(src.MinLength)
	}
	if src.MaxLength != nil {
		schema.MaxLength = intPtr(*src.MaxLength)
	}
	if src.MinItems != 0 {
		schema.MinItems = intPtr(src.MinItems)
	}
	if src.MaxItems != nil {
		schema.MaxItems = intPtr(*src.MaxItems)
	}

	for _, part := range src.AllOf {
		c.mergeAllOf(&schema, part)
	}
	return schema
}

// mergeAllOf folds the properties and required list of an allOf member into
// target.
func (c *converter) mergeAllOf(target *pkgopenapi.Schema, ref *openapi3.SchemaRef) {
	part := c.convert(ref)
	if target.Type == "" {
		target.Type = part.Type
	}
	for _, name := range part.Required {
		if !target.IsRequired(name) {
			target.Required = append(target.Required, name)
		}
	}
	if len(part.Properties) > 0 && target.Properties == nil {
		target.Properties = make(map[string]pkgopenapi.Schema, len(part.Properties))
	}
	for name, prop := range part.Properties {
		if _, exists := target.Properties[name]; !exists {
			target.Properties[name] = prop
		}
	}
	if target.Extension.IsZero() {
		target.Extension = part.Extension
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func intPtr(v uint64) *int {
	n := int(v)
	return &n
}
