// Package formfile loads dialog declarations from YAML or JSON documents.
//
// A document names one or more dialogs:
//
//	dialogs:
//	  deploy:
//	    title: Deploy
//	    fields:
//	      - label: Target
//	        kind: combobox
//	        options: [Cluster, {display: Bare metal, value: metal, modes: [metal]}]
//	      - label: Token
//	        type: password
//	        required: true
//
// Unknown keys are rejected. Display strings are reduced to plain text.
package formfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdialog/pkg/model"
)

// ErrUnknownDialog is returned by Store.Lookup for ids no document declared.
var ErrUnknownDialog = errors.New("formfile: unknown dialog")

// Dialog is a form declared in a document.
type Dialog struct {
	ID     string
	Source string
	Form   model.Form
}

// Store indexes dialogs by id.
type Store struct {
	dialogs map[string]Dialog
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{dialogs: make(map[string]Dialog)}
}

// LoadFile parses the documents at paths into one store.
func LoadFile(paths ...string) (*Store, error) {
	store := NewStore()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("formfile: read %s: %w", path, err)
		}
		if err := store.Add(data, path); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON or YAML file it holds. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocument(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formfile: read %s: %w", path, err)
		}
		return store.Add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Add parses one document. source names it in errors and selects the
// decoder: ".json" files are decoded as JSON, everything else as YAML.
func (s *Store) Add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(doc.Dialogs))
	for id := range doc.Dialogs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parsed := make(map[string]Dialog, len(ids))
	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("formfile: file %s defines an empty dialog id", source)
		}
		if prev, exists := s.dialogs[id]; exists {
			return fmt.Errorf("formfile: duplicate dialog %q (file %s, first declared in %s)", id, source, prev.Source)
		}
		if _, exists := parsed[id]; exists {
			return fmt.Errorf("formfile: duplicate dialog %q (file %s)", id, source)
		}
		form := doc.Dialogs[rawID].toForm()
		if err := form.Validate(); err != nil {
			return fmt.Errorf("formfile: dialog %q (file %s): %w", id, source, err)
		}
		parsed[id] = Dialog{ID: id, Source: source, Form: form}
	}

	for id, d := range parsed {
		s.dialogs[id] = d
	}
	return nil
}

// Dialog returns the form declared under id.
func (s *Store) Dialog(id string) (model.Form, bool) {
	d, ok := s.Lookup(id)
	return d.Form, ok
}

// Lookup returns the declaration under id with its source file.
func (s *Store) Lookup(id string) (Dialog, bool) {
	if s == nil {
		return Dialog{}, false
	}
	d, ok := s.dialogs[strings.TrimSpace(id)]
	return d, ok
}

// Form returns the form declared under id or ErrUnknownDialog.
func (s *Store) Form(id string) (model.Form, error) {
	form, ok := s.Dialog(id)
	if !ok {
		return model.Form{}, fmt.Errorf("%w: %q", ErrUnknownDialog, id)
	}
	return form, nil
}

// IDs lists the dialog ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.dialogs))
	for id := range s.dialogs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any dialogs.
func (s *Store) Empty() bool {
	return s == nil || len(s.dialogs) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(bytes.TrimSpace(data)) == 0 {
		return documentFile{}, fmt.Errorf("formfile: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return documentFile{}, fmt.Errorf("formfile: parse %s: %w", source, err)
		}
		return doc, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return documentFile{}, fmt.Errorf("formfile: parse %s: %w", source, err)
	}
	return doc, nil
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
