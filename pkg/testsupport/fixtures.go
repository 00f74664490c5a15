// Package testsupport holds fixtures shared by package tests: OpenAPI
// documents loaded from disk and presenters that answer dialogs without a
// terminal.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
)

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// Answers fills a dialog: strings go to inputs and select the option with
// that display label in a combobox; []string selects listbox options by
// display label.
type Answers map[string]any

// FillPresenter answers every dialog with the same Answers and submits it.
// It records the titles it was shown. An empty Answers with Cancel set
// dismisses the dialog instead.
type FillPresenter struct {
	Answers Answers
	Cancel  bool

	mu     sync.Mutex
	titles []string
}

// Present implements dialog.Presenter.
func (p *FillPresenter) Present(ctx context.Context, d *dialog.Dialog) error {
	p.mu.Lock()
	p.titles = append(p.titles, d.Title())
	p.mu.Unlock()

	if p.Cancel {
		d.Cancel()
		return nil
	}
	if err := Fill(d, p.Answers); err != nil {
		return err
	}
	_, err := d.Submit(ctx)
	return err
}

// Titles lists the dialog titles presented so far.
func (p *FillPresenter) Titles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.titles...)
}

// Fill applies answers to d in field declaration order so mode changes from
// earlier answers are in effect for later ones.
func Fill(d *dialog.Dialog, answers Answers) error {
	for _, field := range d.Form().Fields {
		answer, ok := answers[field.Label]
		if !ok {
			continue
		}
		if err := fillField(d, field, answer); err != nil {
			return fmt.Errorf("testsupport: fill %q: %w", field.Label, err)
		}
	}
	return nil
}

func fillField(d *dialog.Dialog, field model.Field, answer any) error {
	switch v := answer.(type) {
	case string:
		if field.Kind == model.FieldKindInput {
			return d.SetText(field.Label, v)
		}
		idx := field.OptionIndex(v)
		if idx < 0 {
			return fmt.Errorf("no option %q", v)
		}
		return d.SetSelection(field.Label, []int{idx})
	case []string:
		indices := make([]int, 0, len(v))
		for _, display := range v {
			idx := field.OptionIndex(display)
			if idx < 0 {
				return fmt.Errorf("no option %q", display)
			}
			indices = append(indices, idx)
		}
		return d.SetSelection(field.Label, indices)
	default:
		return fmt.Errorf("unsupported answer %T", answer)
	}
}
