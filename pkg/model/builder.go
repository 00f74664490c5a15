package model

import "strconv"

// FieldOption configures a field built with Input, Password, Listbox or
// Combobox.
type FieldOption func(*Field)

// Input returns a plain text input field.
func Input(label string, options ...FieldOption) Field {
	return build(Field{Kind: FieldKindInput, Label: label, Type: InputTypeText}, options)
}

// Password returns a masked input field.
func Password(label string, options ...FieldOption) Field {
	return build(Field{Kind: FieldKindInput, Label: label, Type: InputTypePassword}, options)
}

// Listbox returns a selection list. Use Multiple to allow several choices.
func Listbox(label string, choices []Option, options ...FieldOption) Field {
	return build(Field{Kind: FieldKindListbox, Label: label, Options: choices}, options)
}

// Combobox returns a dropdown. Without a default the first enabled option is
// preselected.
func Combobox(label string, choices []Option, options ...FieldOption) Field {
	return build(Field{Kind: FieldKindCombobox, Label: label, Options: choices}, options)
}

func build(field Field, options []FieldOption) Field {
	for _, opt := range options {
		if opt != nil {
			opt(&field)
		}
	}
	return field
}

// WithDefault sets the initial text of an input or the initially chosen
// option of a combobox.
func WithDefault(value string) FieldOption {
	return func(f *Field) { f.Default = value }
}

// WithHelp attaches a help line.
func WithHelp(help string) FieldOption {
	return func(f *Field) { f.Help = help }
}

// Required rejects empty values on submit.
func Required() FieldOption {
	return func(f *Field) { f.Required = true }
}

// Disabled renders the field read-only regardless of modes.
func Disabled() FieldOption {
	return func(f *Field) { f.Disabled = true }
}

// Multiple allows a listbox to hold several selections.
func Multiple() FieldOption {
	return func(f *Field) { f.Multiple = true }
}

// HideOn hides the field while any of the modes is active.
func HideOn(modes ...string) FieldOption {
	return func(f *Field) { f.Hide = append(f.Hide, modes...) }
}

// DisableOn disables the field while any of the modes is active.
func DisableOn(modes ...string) FieldOption {
	return func(f *Field) { f.Disable = append(f.Disable, modes...) }
}

// VisibleWhen attaches a visibility expression.
func VisibleWhen(rule string) FieldOption {
	return func(f *Field) { f.VisibleWhen = rule }
}

// EnabledWhen attaches an enablement expression.
func EnabledWhen(rule string) FieldOption {
	return func(f *Field) { f.EnabledWhen = rule }
}

// Remember recalls and stores a password through the configured secret store.
func Remember() FieldOption {
	return func(f *Field) { f.Remember = true }
}

// MinLength requires at least n characters.
func MinLength(n int) FieldOption {
	return withRule(ValidationRuleMinLength, "value", strconv.Itoa(n))
}

// MaxLength allows at most n characters.
func MaxLength(n int) FieldOption {
	return withRule(ValidationRuleMaxLength, "value", strconv.Itoa(n))
}

// Pattern requires the text to match a regular expression.
func Pattern(expr string) FieldOption {
	return withRule(ValidationRulePattern, "pattern", expr)
}

// MinItems requires at least n selections in a listbox.
func MinItems(n int) FieldOption {
	return withRule(ValidationRuleMinItems, "value", strconv.Itoa(n))
}

// MaxItems allows at most n selections in a listbox.
func MaxItems(n int) FieldOption {
	return withRule(ValidationRuleMaxItems, "value", strconv.Itoa(n))
}

// WithMetadata stores a free-form key/value on the field.
func WithMetadata(key, value string) FieldOption {
	return func(f *Field) {
		if f.Metadata == nil {
			f.Metadata = make(map[string]string)
		}
		f.Metadata[key] = value
	}
}

func withRule(kind, param, value string) FieldOption {
	return func(f *Field) {
		f.Validations = append(f.Validations, ValidationRule{
			Kind:   kind,
			Params: map[string]string{param: value},
		})
	}
}

// Opt returns an option whose display label maps to value.
func Opt(display string, value any) Option {
	return Option{Display: display, Value: value}
}

// Options returns options whose values equal their display labels.
func Options(displays ...string) []Option {
	out := make([]Option, len(displays))
	for i, display := range displays {
		out[i] = Option{Display: display}
	}
	return out
}

// Preselected marks the option as chosen when the dialog opens.
func (o Option) Preselected() Option {
	o.Selected = true
	return o
}

// Unavailable keeps the option visible but not selectable.
func (o Option) Unavailable() Option {
	o.Disabled = true
	return o
}

// Activates tags the option with modes that become active while it is chosen.
func (o Option) Activates(modes ...string) Option {
	o.Modes = append(append([]string(nil), o.Modes...), modes...)
	return o
}
