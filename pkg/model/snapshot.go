package model

import "sort"

// Snapshot is an immutable view of a dialog's current state. Values hold
// what the user sees: the text of inputs, the display label chosen in a
// combobox and the display labels selected in a listbox. Data holds the
// mapped underlying values for selection fields and the text for inputs.
type Snapshot struct {
	values map[string]any
	data   map[string]any
	modes  map[string]struct{}
}

// NewSnapshot copies the given maps so later mutations of the caller's
// state never leak into the snapshot.
func NewSnapshot(values, data map[string]any, modes []string) Snapshot {
	s := Snapshot{
		values: make(map[string]any, len(values)),
		data:   make(map[string]any, len(data)),
		modes:  make(map[string]struct{}, len(modes)),
	}
	for k, v := range values {
		s.values[k] = cloneValue(v)
	}
	for k, v := range data {
		s.data[k] = cloneValue(v)
	}
	for _, m := range modes {
		s.modes[m] = struct{}{}
	}
	return s
}

// Value returns the displayed value of label.
func (s Snapshot) Value(label string) (any, bool) {
	v, ok := s.values[label]
	return cloneValue(v), ok
}

// Data returns the mapped value of label.
func (s Snapshot) Data(label string) (any, bool) {
	v, ok := s.data[label]
	return cloneValue(v), ok
}

// Text returns the text of an input or the label chosen in a combobox.
func (s Snapshot) Text(label string) string {
	if v, ok := s.values[label].(string); ok {
		return v
	}
	return ""
}

// Selected returns the display labels chosen in a listbox.
func (s Snapshot) Selected(label string) []string {
	switch v := s.values[label].(type) {
	case []string:
		return append([]string(nil), v...)
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Values returns a copy of every displayed value keyed by label.
func (s Snapshot) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = cloneValue(v)
	}
	return out
}

// HasMode reports whether a chosen option activated mode.
func (s Snapshot) HasMode(mode string) bool {
	_, ok := s.modes[mode]
	return ok
}

// Modes lists active mode tags in sorted order.
func (s Snapshot) Modes() []string {
	out := make([]string, 0, len(s.modes))
	for m := range s.modes {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		return append([]any(nil), typed...)
	default:
		return v
	}
}
