package dialog

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-formdialog/pkg/model"
)

// SetText replaces the text of an input.
func (d *Dialog) SetText(label, value string) error {
	field, err := d.editable(label, model.FieldKindInput)
	if err != nil {
		return err
	}
	d.text[field.Label] = value
	return d.refresh()
}

// Choose selects option index of a combobox or single-select listbox.
func (d *Dialog) Choose(label string, index int) error {
	field, err := d.editable(label, model.FieldKindCombobox, model.FieldKindListbox)
	if err != nil {
		return err
	}
	if field.Kind == model.FieldKindListbox && field.Multiple {
		return fmt.Errorf("%w: %q is multi-select; use Toggle", ErrKindMismatch, label)
	}
	if err := checkOption(field, index); err != nil {
		return err
	}
	d.selected[label] = []int{index}
	return d.refresh()
}

// Toggle flips option index of a listbox. A single-select listbox moves its
// selection to index instead.
func (d *Dialog) Toggle(label string, index int) error {
	field, err := d.editable(label, model.FieldKindListbox)
	if err != nil {
		return err
	}
	if err := checkOption(field, index); err != nil {
		return err
	}

	current := d.selected[label]
	switch {
	case !field.Multiple:
		d.selected[label] = []int{index}
	case slices.Contains(current, index):
		d.selected[label] = slices.DeleteFunc(slices.Clone(current), func(i int) bool { return i == index })
	default:
		next := append(slices.Clone(current), index)
		slices.Sort(next)
		d.selected[label] = next
	}
	return d.refresh()
}

// SetSelection replaces the chosen options of a selection field. Disabled
// options may only appear if they were already chosen.
func (d *Dialog) SetSelection(label string, indices []int) error {
	field, err := d.editable(label, model.FieldKindCombobox, model.FieldKindListbox)
	if err != nil {
		return err
	}
	if len(indices) > 1 && !(field.Kind == model.FieldKindListbox && field.Multiple) {
		return fmt.Errorf("%w: %q accepts a single choice", ErrKindMismatch, label)
	}

	next := make([]int, 0, len(indices))
	for _, idx := range indices {
		if slices.Contains(next, idx) {
			continue
		}
		if err := checkOption(field, idx); err != nil && !d.IsSelected(label, idx) {
			return err
		}
		next = append(next, idx)
	}
	slices.Sort(next)
	d.selected[label] = next
	return d.refresh()
}

// Reveal toggles clear-text display of a password field.
func (d *Dialog) Reveal(label string, on bool) error {
	field, ok := d.form.Field(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, label)
	}
	if !field.IsSecret() {
		return fmt.Errorf("%w: %q is not a password", ErrKindMismatch, label)
	}
	d.revealed[label] = on
	return nil
}

func (d *Dialog) editable(label string, kinds ...model.FieldKind) (model.Field, error) {
	if d.closed {
		return model.Field{}, ErrClosed
	}
	field, ok := d.form.Field(label)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, label)
	}
	if !slices.Contains(kinds, field.Kind) {
		return model.Field{}, fmt.Errorf("%w: %q is a %s", ErrKindMismatch, label, field.Kind)
	}
	if !d.state.Enabled(label) {
		return model.Field{}, fmt.Errorf("%w: %q", ErrFieldInactive, label)
	}
	return field, nil
}

func checkOption(field model.Field, index int) error {
	if index < 0 || index >= len(field.Options) {
		return fmt.Errorf("%w: %q has no option %d", ErrOptionUnavailable, field.Label, index)
	}
	if field.Options[index].Disabled {
		return fmt.Errorf("%w: %q option %q is disabled", ErrOptionUnavailable, field.Label, field.Options[index].Display)
	}
	return nil
}
