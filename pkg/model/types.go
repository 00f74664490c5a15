package model

// FieldKind enumerates the widget families a dialog can render.
type FieldKind string

const (
	FieldKindInput    FieldKind = "input"
	FieldKindListbox  FieldKind = "listbox"
	FieldKindCombobox FieldKind = "combobox"
)

// InputType selects how an input field echoes its text.
type InputType string

const (
	InputTypeText     InputType = "text"
	InputTypePassword InputType = "password"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleMinItems  = "minItems"
	ValidationRuleMaxItems  = "maxItems"
)

// ValidationRule represents a single constraint applied to a field. Length
// and item limits encode their threshold in Params["value"]; pattern rules
// keep the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Option is a single entry of a listbox or combobox.
type Option struct {
	Display  string   `json:"display" yaml:"display"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`
	Selected bool     `json:"selected,omitempty" yaml:"selected,omitempty"`
	Disabled bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Modes    []string `json:"modes,omitempty" yaml:"modes,omitempty"`
}

// Data returns the value handed back to callers when the option is chosen.
// Options without an explicit Value return their Display label.
func (o Option) Data() any {
	if o.Value == nil {
		return o.Display
	}
	return o.Value
}

// Field describes one dialog row.
type Field struct {
	Kind        FieldKind         `json:"kind" yaml:"kind"`
	Label       string            `json:"label" yaml:"label"`
	Type        InputType         `json:"type,omitempty" yaml:"type,omitempty"`
	Default     string            `json:"default,omitempty" yaml:"default,omitempty"`
	Help        string            `json:"help,omitempty" yaml:"help,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled    bool              `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Multiple    bool              `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Hide        []string          `json:"hide,omitempty" yaml:"hide,omitempty"`
	Disable     []string          `json:"disable,omitempty" yaml:"disable,omitempty"`
	VisibleWhen string            `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
	EnabledWhen string            `json:"enabledWhen,omitempty" yaml:"enabledWhen,omitempty"`
	Remember    bool              `json:"remember,omitempty" yaml:"remember,omitempty"`
	Options     []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IsSelection reports whether the field picks from Options.
func (f Field) IsSelection() bool {
	return f.Kind == FieldKindListbox || f.Kind == FieldKindCombobox
}

// IsSecret reports whether the field masks its input.
func (f Field) IsSecret() bool {
	return f.Kind == FieldKindInput && f.Type == InputTypePassword
}

// OptionIndex returns the index of the option with the given display label.
func (f Field) OptionIndex(display string) int {
	for i, opt := range f.Options {
		if opt.Display == display {
			return i
		}
	}
	return -1
}

// Form is the declarative description of a dialog.
type Form struct {
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field looks up a field by label.
func (f Form) Field(label string) (Field, bool) {
	idx := f.Index(label)
	if idx < 0 {
		return Field{}, false
	}
	return f.Fields[idx], true
}

// Index returns the declaration position of label, or -1.
func (f Form) Index(label string) int {
	for i, field := range f.Fields {
		if field.Label == label {
			return i
		}
	}
	return -1
}

// Labels lists field labels in declaration order.
func (f Form) Labels() []string {
	out := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		out[i] = field.Label
	}
	return out
}
