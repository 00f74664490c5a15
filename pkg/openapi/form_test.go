package openapi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdialog/pkg/model"
)

func intp(n int) *int { return &n }

func TestBuildFormMapsPropertyKinds(t *testing.T) {
	t.Parallel()

	op := Operation{
		ID: "login",
		RequestBody: Schema{
			Type:     "object",
			Required: []string{"user"},
			Properties: map[string]Schema{
				"user":   {Type: "string", MinLength: intp(2), Extension: Extension{Order: intp(1)}},
				"secret": {Type: "string", Format: "password", Extension: Extension{Label: "Secret", Order: intp(2), Remember: true}},
				"role":   {Type: "string", Enum: []any{"admin", "guest"}, Default: "guest", Extension: Extension{Order: intp(3)}},
				"scopes": {Type: "array", Items: &Schema{Type: "string", Enum: []any{"read", "write"}}, MaxItems: intp(1)},
				"id":     {Type: "string", ReadOnly: true},
			},
		},
	}

	form, err := BuildForm(op)
	if err != nil {
		t.Fatalf("BuildForm: %v", err)
	}
	if diff := cmp.Diff([]string{"user", "Secret", "role", "scopes"}, form.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	kinds := make([]model.FieldKind, len(form.Fields))
	for i, f := range form.Fields {
		kinds[i] = f.Kind
	}
	wantKinds := []model.FieldKind{model.FieldKindInput, model.FieldKindInput, model.FieldKindCombobox, model.FieldKindListbox}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	user := form.Fields[0]
	if !user.Required || user.Type != model.InputTypeText {
		t.Fatalf("expected required text input, got %+v", user)
	}
	wantRules := []model.ValidationRule{{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "2"}}}
	if diff := cmp.Diff(wantRules, user.Validations); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	secret := form.Fields[1]
	if !secret.IsSecret() || !secret.Remember {
		t.Fatalf("expected remembered password, got %+v", secret)
	}
	if form.Fields[2].Default != "guest" {
		t.Fatalf("expected combobox default, got %q", form.Fields[2].Default)
	}
	scopes := form.Fields[3]
	if !scopes.Multiple || scopes.Validations[0].Kind != model.ValidationRuleMaxItems {
		t.Fatalf("expected multi listbox with maxItems, got %+v", scopes)
	}
	if form.Title != "login" {
		t.Fatalf("expected operation id as title, got %q", form.Title)
	}
}

func TestBuildFormRequiresObjectBody(t *testing.T) {
	t.Parallel()

	_, err := BuildForm(Operation{ID: "ping", RequestBody: Schema{Type: "string"}})
	if !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
}

func TestBuildFormRejectsDuplicateLabels(t *testing.T) {
	t.Parallel()

	op := Operation{ID: "dup", RequestBody: Schema{Properties: map[string]Schema{
		"a": {Type: "string", Extension: Extension{Label: "Same"}},
		"b": {Type: "string", Extension: Extension{Label: "Same"}},
	}}}
	if _, err := BuildForm(op); !errors.Is(err, model.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
}

func TestParseSource(t *testing.T) {
	t.Parallel()

	src, err := ParseSource("https://example.com/openapi.yaml")
	if err != nil || src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = ParseSource(" ./api.yaml ")
	if err != nil || src.Kind() != SourceKindFile || src.Location() != "api.yaml" {
		t.Fatalf("expected file source, got %v %v", src, err)
	}
	if _, err := ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty source")
	}
}
