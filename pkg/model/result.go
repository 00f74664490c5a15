package model

import "fmt"

// Result carries the values of a submitted dialog in field declaration
// order. Inputs yield their text, a combobox yields the chosen option's
// data (nil when nothing is chosen) and a listbox yields []any of the chosen
// options' data in list order.
type Result struct {
	labels []string
	values []any
}

// NewResult pairs labels with values. It panics when the lengths differ.
func NewResult(labels []string, values []any) Result {
	if len(labels) != len(values) {
		panic(fmt.Sprintf("model: result has %d labels and %d values", len(labels), len(values)))
	}
	return Result{
		labels: append([]string(nil), labels...),
		values: append([]any(nil), values...),
	}
}

// Len reports the number of fields.
func (r Result) Len() int { return len(r.values) }

// Labels lists field labels in declaration order.
func (r Result) Labels() []string { return append([]string(nil), r.labels...) }

// Values lists field values in declaration order.
func (r Result) Values() []any { return append([]any(nil), r.values...) }

// At returns the value at position i.
func (r Result) At(i int) any {
	if i < 0 || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// Get returns the value collected for label.
func (r Result) Get(label string) (any, bool) {
	for i, l := range r.labels {
		if l == label {
			return r.values[i], true
		}
	}
	return nil, false
}

// String returns the value of label formatted as text. Missing and nil
// values yield "".
func (r Result) String(label string) string {
	v, ok := r.Get(label)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// List returns the values of a listbox field.
func (r Result) List(label string) []any {
	v, _ := r.Get(label)
	if list, ok := v.([]any); ok {
		return append([]any(nil), list...)
	}
	return nil
}

// Map returns the values keyed by label.
func (r Result) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, l := range r.labels {
		out[l] = r.values[i]
	}
	return out
}
