package validation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formdialog/pkg/model"
	"github.com/goliatone/go-formdialog/pkg/visibility"
)

type fieldRules struct {
	required bool
	minLen   *int
	maxLen   *int
	minItems *int
	maxItems *int
	pattern  *regexp.Regexp
}

// Rules returns a validator enforcing the declarative constraints on each
// field: Required plus the length, item count and pattern rules. Fields that
// state marks as hidden or disabled are skipped.
func Rules(form model.Form, state visibility.State) Validator {
	compiled := make([]fieldRules, len(form.Fields))
	for i, field := range form.Fields {
		compiled[i] = collectRules(field)
	}

	return ValidatorFunc(func(_ context.Context, snap model.Snapshot) Result {
		var res Result
		for i, field := range form.Fields {
			if !state.Enabled(field.Label) {
				continue
			}
			rules := compiled[i]
			var msg string
			switch field.Kind {
			case model.FieldKindListbox:
				msg = rules.checkItems(len(snap.Selected(field.Label)))
			case model.FieldKindCombobox:
				if rules.required && snap.Text(field.Label) == "" {
					msg = "required"
				}
			default:
				msg = rules.checkText(snap.Text(field.Label))
			}
			if msg != "" {
				res.AddField(field.Label, msg)
			}
		}
		return res
	})
}

func collectRules(field model.Field) fieldRules {
	rules := fieldRules{required: field.Required}
	for _, v := range field.Validations {
		switch v.Kind {
		case model.ValidationRuleMinLength:
			rules.minLen = parseInt(v.Params["value"])
		case model.ValidationRuleMaxLength:
			rules.maxLen = parseInt(v.Params["value"])
		case model.ValidationRuleMinItems:
			rules.minItems = parseInt(v.Params["value"])
		case model.ValidationRuleMaxItems:
			rules.maxItems = parseInt(v.Params["value"])
		case model.ValidationRulePattern:
			if expr := v.Params["pattern"]; expr != "" {
				if re, err := regexp.Compile(expr); err == nil {
					rules.pattern = re
				}
			}
		}
	}
	return rules
}

func (r fieldRules) checkText(value string) string {
	if strings.TrimSpace(value) == "" {
		if r.required {
			return "required"
		}
		return ""
	}
	n := utf8.RuneCountInString(value)
	if r.minLen != nil && n < *r.minLen {
		return fmt.Sprintf("must be at least %d characters", *r.minLen)
	}
	if r.maxLen != nil && n > *r.maxLen {
		return fmt.Sprintf("must be at most %d characters", *r.maxLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return "does not match required pattern"
	}
	return ""
}

func (r fieldRules) checkItems(n int) string {
	if r.required && n == 0 {
		return "required"
	}
	if r.minItems != nil && n < *r.minItems {
		return fmt.Sprintf("select at least %d", *r.minItems)
	}
	if r.maxItems != nil && n > *r.maxItems {
		return fmt.Sprintf("select at most %d", *r.maxItems)
	}
	return ""
}

func parseInt(raw string) *int {
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &val
}
