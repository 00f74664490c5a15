package visibility

import (
	"fmt"

	"github.com/goliatone/go-formdialog/pkg/model"
)

// Evaluator decides whether a rule holds for the given field and context.
type Evaluator interface {
	Eval(label, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values carries the displayed
// field values keyed by label, Modes the active mode tags and Extras any
// caller supplied facts such as feature flags.
type Context struct {
	Values map[string]any
	Modes  map[string]bool
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(label, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(label, rule string, ctx Context) (bool, error) {
	return fn(label, rule, ctx)
}

// State is the outcome of Resolve: which fields are hidden and which are
// disabled. Labels absent from both maps are visible and enabled.
type State struct {
	Hidden   map[string]bool
	Disabled map[string]bool
}

// Visible reports whether label is shown.
func (s State) Visible(label string) bool {
	return !s.Hidden[label]
}

// Enabled reports whether label is shown and editable.
func (s State) Enabled(label string) bool {
	return !s.Hidden[label] && !s.Disabled[label]
}

// Resolve computes field visibility and enablement from the form
// declaration and a snapshot of its state. It has no side effects, so
// callers re-run it after every change. A field is hidden when any active
// mode is listed in Hide or its VisibleWhen rule fails. It is disabled when
// Disabled is set, any active mode is listed in Disable or its EnabledWhen
// rule fails. Rules require a non-nil evaluator.
func Resolve(form model.Form, snap model.Snapshot, eval Evaluator, extras map[string]any) (State, error) {
	state := State{
		Hidden:   make(map[string]bool),
		Disabled: make(map[string]bool),
	}

	ctx := Context{
		Values: snap.Values(),
		Modes:  make(map[string]bool),
		Extras: extras,
	}
	for _, mode := range snap.Modes() {
		ctx.Modes[mode] = true
	}

	for _, field := range form.Fields {
		if anyActive(field.Hide, ctx.Modes) {
			state.Hidden[field.Label] = true
		} else if field.VisibleWhen != "" {
			ok, err := evalRule(eval, field.Label, field.VisibleWhen, ctx)
			if err != nil {
				return State{}, err
			}
			if !ok {
				state.Hidden[field.Label] = true
			}
		}

		if field.Disabled || anyActive(field.Disable, ctx.Modes) {
			state.Disabled[field.Label] = true
		} else if field.EnabledWhen != "" {
			ok, err := evalRule(eval, field.Label, field.EnabledWhen, ctx)
			if err != nil {
				return State{}, err
			}
			if !ok {
				state.Disabled[field.Label] = true
			}
		}
	}
	return state, nil
}

func evalRule(eval Evaluator, label, rule string, ctx Context) (bool, error) {
	if eval == nil {
		return false, fmt.Errorf("visibility: field %q has rule %q but no evaluator is configured", label, rule)
	}
	ok, err := eval.Eval(label, rule, ctx)
	if err != nil {
		return false, fmt.Errorf("visibility: field %q: %w", label, err)
	}
	return ok, nil
}

func anyActive(tags []string, modes map[string]bool) bool {
	for _, tag := range tags {
		if modes[tag] {
			return true
		}
	}
	return false
}
