// Package dialog holds the presenter-independent state of one input dialog:
// the text of each input, the chosen options of each selection field, the
// resolved visibility and the validation messages of the last submit. A
// Dialog is owned by a single goroutine, normally the UI loop, and is not
// safe for concurrent use.
package dialog

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formdialog/pkg/model"
	"github.com/goliatone/go-formdialog/pkg/validation"
	"github.com/goliatone/go-formdialog/pkg/visibility"
	"github.com/goliatone/go-formdialog/pkg/visibility/expr"
)

// Dialog is the state machine behind a rendered form.
type Dialog struct {
	title     string
	form      model.Form
	text      map[string]string
	selected  map[string][]int
	revealed  map[string]bool
	state     visibility.State
	errors    validation.Result
	validator validation.Validator
	evaluator visibility.Evaluator
	extras    map[string]any
	secrets   SecretStore
	logger    *log.Logger

	closed bool
	result model.Result
	err    error
}

// New validates form, seeds defaults and resolves the initial visibility.
// When title is empty the form's own title is used.
func New(title string, form model.Form, options ...Option) (*Dialog, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		title = form.Title
	}

	d := &Dialog{
		title:     title,
		form:      cloneForm(form),
		text:      make(map[string]string),
		selected:  make(map[string][]int),
		revealed:  make(map[string]bool),
		evaluator: expr.New(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}

	for _, field := range d.form.Fields {
		switch field.Kind {
		case model.FieldKindInput:
			d.text[field.Label] = d.initialText(field)
		case model.FieldKindCombobox:
			if idx := initialChoice(field); idx >= 0 {
				d.selected[field.Label] = []int{idx}
			}
		case model.FieldKindListbox:
			for i, opt := range field.Options {
				if opt.Selected && !opt.Disabled {
					d.selected[field.Label] = append(d.selected[field.Label], i)
				}
			}
		}
	}

	if err := d.refresh(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dialog) initialText(field model.Field) string {
	if !field.Remember || !field.IsSecret() || d.secrets == nil {
		return field.Default
	}
	value, found, err := d.secrets.Get(SecretKey(d.title, field.Label))
	if err != nil {
		d.logger.Warn("secret recall failed", "dialog", d.title, "field", field.Label, "err", err)
		return field.Default
	}
	if !found {
		return field.Default
	}
	return value
}

// initialChoice picks the combobox default, falling back to the first
// enabled option when there is none or it is disabled.
func initialChoice(field model.Field) int {
	if idx := field.OptionIndex(field.Default); field.Default != "" && idx >= 0 && !field.Options[idx].Disabled {
		return idx
	}
	for i, opt := range field.Options {
		if !opt.Disabled {
			return i
		}
	}
	return -1
}

// Title returns the dialog title.
func (d *Dialog) Title() string { return d.title }

// Form returns the form declaration.
func (d *Dialog) Form() model.Form { return cloneForm(d.form) }

// State returns the current visibility state.
func (d *Dialog) State() visibility.State { return d.state }

// Errors returns the messages of the last failed submit.
func (d *Dialog) Errors() validation.Result { return d.errors }

// Closed reports whether the dialog was submitted or cancelled.
func (d *Dialog) Closed() bool { return d.closed }

// Text returns the current text of an input.
func (d *Dialog) Text(label string) string { return d.text[label] }

// Selected returns the chosen option indices of a selection field.
func (d *Dialog) Selected(label string) []int {
	return slices.Clone(d.selected[label])
}

// IsSelected reports whether option index of label is chosen.
func (d *Dialog) IsSelected(label string, index int) bool {
	return slices.Contains(d.selected[label], index)
}

// Revealed reports whether a password field currently shows its text.
func (d *Dialog) Revealed(label string) bool { return d.revealed[label] }

// VisibleFields lists the fields not hidden by the current state.
func (d *Dialog) VisibleFields() []model.Field {
	out := make([]model.Field, 0, len(d.form.Fields))
	for _, field := range d.form.Fields {
		if d.state.Visible(field.Label) {
			out = append(out, field)
		}
	}
	return out
}

// Snapshot captures the current values for validators and rules.
func (d *Dialog) Snapshot() model.Snapshot {
	values := make(map[string]any, len(d.form.Fields))
	data := make(map[string]any, len(d.form.Fields))
	var modes []string

	for _, field := range d.form.Fields {
		switch field.Kind {
		case model.FieldKindInput:
			values[field.Label] = d.text[field.Label]
			data[field.Label] = d.text[field.Label]
		case model.FieldKindCombobox:
			values[field.Label] = ""
			data[field.Label] = nil
			if idxs := d.selected[field.Label]; len(idxs) > 0 {
				opt := field.Options[idxs[0]]
				values[field.Label] = opt.Display
				data[field.Label] = opt.Data()
				modes = append(modes, opt.Modes...)
			}
		case model.FieldKindListbox:
			displays := make([]string, 0, len(d.selected[field.Label]))
			items := make([]any, 0, len(d.selected[field.Label]))
			for _, idx := range d.selected[field.Label] {
				opt := field.Options[idx]
				displays = append(displays, opt.Display)
				items = append(items, opt.Data())
				modes = append(modes, opt.Modes...)
			}
			values[field.Label] = displays
			data[field.Label] = items
		}
	}
	return model.NewSnapshot(values, data, modes)
}

// Submit validates the current state. On success the dialog closes and the
// ordered result is returned. On failure the dialog stays open, Errors holds
// the messages and the returned error wraps ErrInvalid.
func (d *Dialog) Submit(ctx context.Context) (model.Result, error) {
	if d.closed {
		return model.Result{}, ErrClosed
	}
	if err := d.refresh(); err != nil {
		return model.Result{}, err
	}

	snap := d.Snapshot()
	res := validation.Chain(validation.Rules(d.form, d.state), d.validator).Validate(ctx, snap)
	if !res.OK() {
		d.errors = res
		return model.Result{}, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(res.Messages(), "; "))
	}
	d.errors = validation.Result{}

	values := make([]any, len(d.form.Fields))
	for i, field := range d.form.Fields {
		v, _ := snap.Data(field.Label)
		values[i] = v
	}

	d.storeSecrets()
	d.closed = true
	d.result = model.NewResult(d.form.Labels(), values)
	return d.result, nil
}

func (d *Dialog) storeSecrets() {
	if d.secrets == nil {
		return
	}
	for _, field := range d.form.Fields {
		if !field.Remember || !field.IsSecret() || d.text[field.Label] == "" {
			continue
		}
		if err := d.secrets.Set(SecretKey(d.title, field.Label), d.text[field.Label]); err != nil {
			d.logger.Warn("secret store failed", "dialog", d.title, "field", field.Label, "err", err)
		}
	}
}

// Cancel closes the dialog without a result.
func (d *Dialog) Cancel() {
	if d.closed {
		return
	}
	d.closed = true
	d.err = ErrCancelled
}

// Outcome reports how the dialog closed.
func (d *Dialog) Outcome() (model.Result, error) {
	if !d.closed {
		return model.Result{}, ErrOpen
	}
	if d.err != nil {
		return model.Result{}, d.err
	}
	return d.result, nil
}

func (d *Dialog) refresh() error {
	state, err := visibility.Resolve(d.form, d.Snapshot(), d.evaluator, d.extras)
	if err != nil {
		return err
	}
	d.state = state
	return nil
}

func cloneForm(form model.Form) model.Form {
	out := model.Form{Title: form.Title, Fields: make([]model.Field, len(form.Fields))}
	copy(out.Fields, form.Fields)
	for i := range out.Fields {
		out.Fields[i].Options = slices.Clone(out.Fields[i].Options)
	}
	return out
}
