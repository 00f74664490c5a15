package testsupport

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
)

func TestFillPresenterSubmitsAnswers(t *testing.T) {
	t.Parallel()

	form := model.Form{Title: "Login", Fields: []model.Field{
		model.Input("User"),
		model.Combobox("Role", model.Options("admin", "guest")),
		model.Listbox("Scopes", model.Options("read", "write"), model.Multiple()),
	}}
	d, err := dialog.New("", form)
	if err != nil {
		t.Fatalf("dialog.New: %v", err)
	}

	p := &FillPresenter{Answers: Answers{"User": "ada", "Role": "guest", "Scopes": []string{"write", "read"}}}
	if err := p.Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	res, err := d.Outcome()
	if err != nil {
		t.Fatalf("Outcome: %v", err)
	}
	want := []any{"ada", "guest", []any{"read", "write"}}
	if diff := cmp.Diff(want, res.Values()); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Login"}, p.Titles()); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestFillPresenterCancel(t *testing.T) {
	t.Parallel()

	d, err := dialog.New("Quit?", model.Form{Fields: []model.Field{model.Input("Why")}})
	if err != nil {
		t.Fatalf("dialog.New: %v", err)
	}
	if err := (&FillPresenter{Cancel: true}).Present(context.Background(), d); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if _, err := d.Outcome(); !errors.Is(err, dialog.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestFillRejectsUnknownOption(t *testing.T) {
	t.Parallel()

	d, err := dialog.New("", model.Form{Fields: []model.Field{model.Combobox("Role", model.Options("admin"))}})
	if err != nil {
		t.Fatalf("dialog.New: %v", err)
	}
	if err := Fill(d, Answers{"Role": "root"}); err == nil {
		t.Fatalf("expected error for unknown option")
	}
}
