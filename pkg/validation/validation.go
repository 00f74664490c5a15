// Package validation checks a dialog snapshot before it closes. Validators
// never touch presenter state; they receive an immutable model.Snapshot and
// return a Result listing field-level and form-level messages.
package validation

import (
	"context"
	"sort"
	"strings"

	"github.com/goliatone/go-formdialog/pkg/model"
)

// Result holds validation messages keyed by field label plus messages that
// apply to the whole form.
type Result struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// OK reports whether the result carries no messages.
func (r Result) OK() bool {
	return len(r.Fields) == 0 && len(r.Form) == 0
}

// AddField records a message for label.
func (r *Result) AddField(label, message string) {
	if r.Fields == nil {
		r.Fields = make(map[string][]string)
	}
	r.Fields[label] = append(r.Fields[label], message)
}

// AddForm records a form-level message.
func (r *Result) AddForm(message string) {
	r.Form = append(r.Form, message)
}

// Messages flattens the result into "Label: message" lines, fields first in
// label order, then form messages.
func (r Result) Messages() []string {
	labels := make([]string, 0, len(r.Fields))
	for label := range r.Fields {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var out []string
	for _, label := range labels {
		for _, msg := range r.Fields[label] {
			out = append(out, label+": "+msg)
		}
	}
	return append(out, r.Form...)
}

// Merge combines results, trimming whitespace and removing duplicate
// messages while preserving order.
func Merge(results ...Result) Result {
	var merged Result
	for _, res := range results {
		for label, messages := range res.Fields {
			for _, msg := range messages {
				merged.AddField(label, msg)
			}
		}
		merged.Form = append(merged.Form, res.Form...)
	}
	for label, messages := range merged.Fields {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			delete(merged.Fields, label)
			continue
		}
		merged.Fields[label] = normalized
	}
	if len(merged.Fields) == 0 {
		merged.Fields = nil
	}
	merged.Form = normalizeMessages(merged.Form)
	return merged
}

// Validator inspects a snapshot and reports problems.
type Validator interface {
	Validate(ctx context.Context, snap model.Snapshot) Result
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(ctx context.Context, snap model.Snapshot) Result

// Validate calls the underlying function.
func (fn ValidatorFunc) Validate(ctx context.Context, snap model.Snapshot) Result {
	return fn(ctx, snap)
}

// Chain runs every validator and merges their results. Nil validators are
// skipped.
func Chain(validators ...Validator) Validator {
	return ValidatorFunc(func(ctx context.Context, snap model.Snapshot) Result {
		results := make([]Result, 0, len(validators))
		for _, v := range validators {
			if v == nil {
				continue
			}
			results = append(results, v.Validate(ctx, snap))
		}
		return Merge(results...)
	})
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
