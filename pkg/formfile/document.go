package formfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdialog/pkg/model"
)

type documentFile struct {
	Dialogs map[string]dialogFile `json:"dialogs" yaml:"dialogs"`
}

type dialogFile struct {
	Title  string      `json:"title" yaml:"title"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Label       string                 `json:"label" yaml:"label"`
	Kind        model.FieldKind        `json:"kind" yaml:"kind"`
	Type        model.InputType        `json:"type" yaml:"type"`
	Default     string                 `json:"default" yaml:"default"`
	Help        string                 `json:"help" yaml:"help"`
	Required    bool                   `json:"required" yaml:"required"`
	Disabled    bool                   `json:"disabled" yaml:"disabled"`
	Multiple    bool                   `json:"multiple" yaml:"multiple"`
	Hide        []string               `json:"hide" yaml:"hide"`
	Disable     []string               `json:"disable" yaml:"disable"`
	VisibleWhen string                 `json:"visibleWhen" yaml:"visibleWhen"`
	EnabledWhen string                 `json:"enabledWhen" yaml:"enabledWhen"`
	Remember    bool                   `json:"remember" yaml:"remember"`
	Options     []optionFile           `json:"options" yaml:"options"`
	MinLength   *int                   `json:"minLength" yaml:"minLength"`
	MaxLength   *int                   `json:"maxLength" yaml:"maxLength"`
	Pattern     string                 `json:"pattern" yaml:"pattern"`
	MinItems    *int                   `json:"minItems" yaml:"minItems"`
	MaxItems    *int                   `json:"maxItems" yaml:"maxItems"`
	Validations []model.ValidationRule `json:"validations" yaml:"validations"`
	Metadata    map[string]string      `json:"metadata" yaml:"metadata"`
}

// optionFile accepts either a bare display string or a mapping.
type optionFile struct {
	Display  string   `json:"display" yaml:"display"`
	Value    any      `json:"value" yaml:"value"`
	Selected bool     `json:"selected" yaml:"selected"`
	Disabled bool     `json:"disabled" yaml:"disabled"`
	Modes    []string `json:"modes" yaml:"modes"`
}

var optionKeys = map[string]bool{
	"display": true, "value": true, "selected": true, "disabled": true, "modes": true,
}

func (o *optionFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = optionFile{Display: node.Value}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: option must be a string or a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !optionKeys[key.Value] {
			return fmt.Errorf("line %d: field %s not found in option", key.Line, key.Value)
		}
	}
	type plain optionFile
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*o = optionFile(out)
	return nil
}

func (o *optionFile) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var display string
		if err := json.Unmarshal(trimmed, &display); err != nil {
			return err
		}
		*o = optionFile{Display: display}
		return nil
	}
	type plain optionFile
	var out plain
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return err
	}
	*o = optionFile(out)
	return nil
}

func (d dialogFile) toForm() model.Form {
	form := model.Form{
		Title:  plainText(d.Title),
		Fields: make([]model.Field, len(d.Fields)),
	}
	for i, raw := range d.Fields {
		form.Fields[i] = raw.toField()
	}
	return form
}

func (f fieldFile) toField() model.Field {
	field := model.Field{
		Kind:        f.Kind,
		Label:       plainText(f.Label),
		Type:        f.Type,
		Default:     f.Default,
		Help:        plainText(f.Help),
		Required:    f.Required,
		Disabled:    f.Disabled,
		Multiple:    f.Multiple,
		Hide:        trimAll(f.Hide),
		Disable:     trimAll(f.Disable),
		VisibleWhen: plainText(f.VisibleWhen),
		EnabledWhen: plainText(f.EnabledWhen),
		Remember:    f.Remember,
		Validations: append([]model.ValidationRule(nil), f.Validations...),
	}
	if len(f.Metadata) > 0 {
		field.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			field.Metadata[k] = v
		}
	}

	for _, opt := range f.Options {
		field.Options = append(field.Options, model.Option{
			Display:  plainText(opt.Display),
			Value:    opt.Value,
			Selected: opt.Selected,
			Disabled: opt.Disabled,
			Modes:    trimAll(opt.Modes),
		})
	}

	if field.Kind == "" {
		switch {
		case len(field.Options) == 0 || field.Type != "":
			field.Kind = model.FieldKindInput
		case field.Multiple:
			field.Kind = model.FieldKindListbox
		default:
			field.Kind = model.FieldKindCombobox
		}
	}
	if field.Kind == model.FieldKindInput && field.Type == "" {
		field.Type = model.InputTypeText
	}
	// A selection default names an option display, so it is read the same
	// way the displays are.
	if field.IsSelection() {
		field.Default = plainText(f.Default)
	}

	var rules []model.FieldOption
	if f.MinLength != nil {
		rules = append(rules, model.MinLength(*f.MinLength))
	}
	if f.MaxLength != nil {
		rules = append(rules, model.MaxLength(*f.MaxLength))
	}
	if f.Pattern != "" {
		rules = append(rules, model.Pattern(f.Pattern))
	}
	if f.MinItems != nil {
		rules = append(rules, model.MinItems(*f.MinItems))
	}
	if f.MaxItems != nil {
		rules = append(rules, model.MaxItems(*f.MaxItems))
	}
	for _, rule := range rules {
		rule(&field)
	}
	return field
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText strips markup from a display string so labels render verbatim
// in a terminal.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}
