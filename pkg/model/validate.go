package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidForm wraps every structural problem reported by Form.Validate.
var ErrInvalidForm = errors.New("model: invalid form")

// Validate checks the structural invariants of a form: labels are present
// and unique, selection fields carry distinct options, inputs carry none and
// defaults name existing options.
func (f Form) Validate() error {
	var problems []error
	seen := make(map[string]struct{}, len(f.Fields))

	for i, field := range f.Fields {
		label := strings.TrimSpace(field.Label)
		if label == "" {
			problems = append(problems, fmt.Errorf("%w: field %d has no label", ErrInvalidForm, i))
			continue
		}
		if _, dup := seen[field.Label]; dup {
			problems = append(problems, fmt.Errorf("%w: duplicate label %q", ErrInvalidForm, field.Label))
		}
		seen[field.Label] = struct{}{}

		if err := field.validate(); err != nil {
			problems = append(problems, err)
		}
	}
	return errors.Join(problems...)
}

func (f Field) validate() error {
	switch f.Kind {
	case FieldKindInput:
		if f.Type != "" && f.Type != InputTypeText && f.Type != InputTypePassword {
			return fmt.Errorf("%w: field %q has unknown input type %q", ErrInvalidForm, f.Label, f.Type)
		}
		if len(f.Options) > 0 {
			return fmt.Errorf("%w: input %q cannot carry options", ErrInvalidForm, f.Label)
		}
	case FieldKindListbox, FieldKindCombobox:
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: %s %q needs at least one option", ErrInvalidForm, f.Kind, f.Label)
		}
		displays := make(map[string]struct{}, len(f.Options))
		for _, opt := range f.Options {
			if _, dup := displays[opt.Display]; dup {
				return fmt.Errorf("%w: %s %q repeats option %q", ErrInvalidForm, f.Kind, f.Label, opt.Display)
			}
			displays[opt.Display] = struct{}{}
		}
		if f.Kind == FieldKindCombobox && f.Default != "" && f.OptionIndex(f.Default) < 0 {
			return fmt.Errorf("%w: combobox %q default %q is not an option", ErrInvalidForm, f.Label, f.Default)
		}
		if f.Kind == FieldKindListbox && !f.Multiple && countSelected(f.Options) > 1 {
			return fmt.Errorf("%w: single-select listbox %q preselects several options", ErrInvalidForm, f.Label)
		}
	default:
		return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidForm, f.Label, f.Kind)
	}

	for _, rule := range f.Validations {
		if err := rule.validate(); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidForm, f.Label, err)
		}
	}
	return nil
}

func (r ValidationRule) validate() error {
	switch r.Kind {
	case ValidationRuleMinLength, ValidationRuleMaxLength, ValidationRuleMinItems, ValidationRuleMaxItems:
		n, err := strconv.Atoi(r.Params["value"])
		if err != nil || n < 0 {
			return fmt.Errorf("rule %s needs a non-negative integer value", r.Kind)
		}
	case ValidationRulePattern:
		if _, err := regexp.Compile(r.Params["pattern"]); err != nil {
			return fmt.Errorf("rule %s: %w", r.Kind, err)
		}
	default:
		return fmt.Errorf("unknown rule %q", r.Kind)
	}
	return nil
}

func countSelected(options []Option) int {
	n := 0
	for _, opt := range options {
		if opt.Selected {
			n++
		}
	}
	return n
}
