package openapi

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-formdialog/pkg/model"
)

// ErrNoRequestBody is returned when an operation has no object request body
// to build a form from.
var ErrNoRequestBody = errors.New("openapi: operation has no object request body")

// Metadata keys set on imported fields.
const (
	MetadataPath = "openapi.path"
	MetadataType = "openapi.type"
)

// BuildForm maps the request body of op to a dialog form. Nested objects are
// flattened into dotted paths and readOnly properties are skipped.
func BuildForm(op Operation) (model.Form, error) {
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return model.Form{}, fmt.Errorf("%w: %s", ErrNoRequestBody, op.ID)
	}

	title := op.Summary
	if title == "" {
		title = op.ID
	}
	form := model.Form{Title: title}
	appendFields(&form, body, "")

	if err := form.Validate(); err != nil {
		return model.Form{}, fmt.Errorf("openapi: operation %s: %w", op.ID, err)
	}
	return form, nil
}

func appendFields(form *model.Form, parent Schema, prefix string) {
	for _, name := range parent.PropertyNames() {
		prop := parent.Properties[name]
		if prop.ReadOnly {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if prop.Type == "object" && len(prop.Properties) > 0 {
			appendFields(form, prop, path)
			continue
		}
		form.Fields = append(form.Fields, buildField(path, prop, parent.IsRequired(name)))
	}
}

func buildField(path string, prop Schema, required bool) model.Field {
	ext := prop.Extension
	label := ext.Label
	if label == "" {
		label = prop.Title
	}
	if label == "" {
		label = path
	}
	help := ext.Help
	if help == "" {
		help = prop.Description
	}

	opts := []model.FieldOption{
		model.WithHelp(help),
		model.WithMetadata(MetadataPath, path),
		model.WithMetadata(MetadataType, prop.Type),
	}
	if required {
		opts = append(opts, model.Required())
	}
	if len(ext.Hide) > 0 {
		opts = append(opts, model.HideOn(ext.Hide...))
	}
	if len(ext.Disable) > 0 {
		opts = append(opts, model.DisableOn(ext.Disable...))
	}
	if ext.VisibleWhen != "" {
		opts = append(opts, model.VisibleWhen(ext.VisibleWhen))
	}
	if ext.EnabledWhen != "" {
		opts = append(opts, model.EnabledWhen(ext.EnabledWhen))
	}

	switch {
	case prop.Type == "array" && prop.Items != nil && len(prop.Items.Enum) > 0:
		choices := enumOptions(prop.Items.Enum, ext)
		if defaults, ok := prop.Default.([]any); ok {
			for i := range choices {
				if slices.ContainsFunc(defaults, func(d any) bool { return fmt.Sprint(d) == choices[i].Display }) {
					choices[i] = choices[i].Preselected()
				}
			}
		}
		opts = append(opts, model.Multiple())
		if prop.MinItems != nil {
			opts = append(opts, model.MinItems(*prop.MinItems))
		}
		if prop.MaxItems != nil {
			opts = append(opts, model.MaxItems(*prop.MaxItems))
		}
		return model.Listbox(label, choices, opts...)

	case len(prop.Enum) > 0:
		if prop.Default != nil {
			opts = append(opts, model.WithDefault(fmt.Sprint(prop.Default)))
		}
		return model.Combobox(label, enumOptions(prop.Enum, ext), opts...)
	}

	if prop.Default != nil {
		opts = append(opts, model.WithDefault(fmt.Sprint(prop.Default)))
	}
	if prop.MinLength != nil && *prop.MinLength > 0 {
		opts = append(opts, model.MinLength(*prop.MinLength))
	}
	if prop.MaxLength != nil {
		opts = append(opts, model.MaxLength(*prop.MaxLength))
	}
	if prop.Pattern != "" {
		opts = append(opts, model.Pattern(prop.Pattern))
	}
	if prop.Format == "password" {
		if ext.Remember {
			opts = append(opts, model.Remember())
		}
		return model.Password(label, opts...)
	}
	return model.Input(label, opts...)
}

func enumOptions(values []any, ext Extension) []model.Option {
	out := make([]model.Option, 0, len(values))
	for _, v := range values {
		display := fmt.Sprint(v)
		opt := model.Opt(display, v)
		if modes := ext.Modes[display]; len(modes) > 0 {
			opt = opt.Activates(modes...)
		}
		out = append(out, opt)
	}
	return out
}
