// Package formdialog builds input dialogs from declarative forms and runs
// them on a single UI loop on behalf of worker goroutines.
//
// Forms are declared in Go with the model package, loaded from YAML/JSON
// documents with formfile, or imported from an OpenAPI operation with
// ImportForm. The automation package runs a worker function against a
// service that owns the terminal.
package formdialog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	internalLoader "github.com/goliatone/go-formdialog/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formdialog/internal/openapi/parser"
	"github.com/goliatone/go-formdialog/pkg/model"
	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
)

// ErrUnknownOperation is returned by ImportForm when the document does not
// declare the requested operation.
var ErrUnknownOperation = errors.New("formdialog: unknown operation")

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// ImportConfig collects the loader and parser options used by ImportForm.
type ImportConfig struct {
	Loader []pkgopenapi.LoaderOption
	Parser []pkgopenapi.ParserOption
}

// Operations loads src and returns the ids of the operations that carry an
// object request body, sorted.
func Operations(ctx context.Context, src pkgopenapi.Source, cfg ImportConfig) ([]string, error) {
	ops, err := loadOperations(ctx, src, cfg)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ops))
	for id, op := range ops {
		if len(op.RequestBody.Properties) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ImportForm loads src, finds operationID and maps its request body to a
// form.
func ImportForm(ctx context.Context, src pkgopenapi.Source, operationID string, cfg ImportConfig) (model.Form, error) {
	ops, err := loadOperations(ctx, src, cfg)
	if err != nil {
		return model.Form{}, err
	}
	op, ok := ops[operationID]
	if !ok {
		known := make([]string, 0, len(ops))
		for id := range ops {
			known = append(known, id)
		}
		sort.Strings(known)
		return model.Form{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownOperation, operationID, strings.Join(known, ", "))
	}
	return pkgopenapi.BuildForm(op)
}

func loadOperations(ctx context.Context, src pkgopenapi.Source, cfg ImportConfig) (map[string]pkgopenapi.Operation, error) {
	doc, err := NewLoader(cfg.Loader...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return NewParser(cfg.Parser...).Operations(ctx, doc)
}
