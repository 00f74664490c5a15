// Package tui presents dialogs as a sequence of survey prompts. Fields are
// asked in declaration order; visibility is re-resolved after every answer,
// so a choice that hides or disables later fields takes effect immediately.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
)

const unavailableSuffix = " (unavailable)"

// Presenter implements dialog.Presenter with sequential prompts.
type Presenter struct {
	driver   PromptDriver
	theme    Theme
	confirm  bool
	pageSize int
}

// New constructs a presenter with defaults (survey driver, confirmation
// before submit).
func New(options ...Option) *Presenter {
	p := &Presenter{
		driver:  NewSurveyDriver(),
		theme:   DefaultTheme,
		confirm: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Present asks for every visible field until the dialog validates or the
// user aborts. Aborting cancels the dialog and is not reported as an error.
func (p *Presenter) Present(ctx context.Context, d *dialog.Dialog) error {
	if p.driver == nil {
		return ErrNoDriver
	}

	err := p.present(ctx, d)
	if errors.Is(err, ErrAborted) {
		d.Cancel()
		return nil
	}
	return err
}

func (p *Presenter) present(ctx context.Context, d *dialog.Dialog) error {
	if title := d.Title(); title != "" {
		if err := p.driver.Info(ctx, p.theme.TitlePrefix+title); err != nil {
			return err
		}
	}

	// nil means every field; after a failed submit only fields with
	// messages are asked again.
	var only map[string]bool
	for {
		for _, field := range d.Form().Fields {
			if only != nil && !only[field.Label] {
				continue
			}
			if err := p.promptField(ctx, d, field); err != nil {
				return err
			}
		}

		if p.confirm {
			ok, err := p.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
			if err != nil {
				return err
			}
			if !ok {
				only = nil
				continue
			}
		}

		_, err := d.Submit(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, dialog.ErrInvalid) {
			return err
		}

		result := d.Errors()
		for _, msg := range result.Messages() {
			if err := p.driver.Info(ctx, p.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
		only = nil
		if len(result.Form) == 0 {
			only = make(map[string]bool, len(result.Fields))
			for label := range result.Fields {
				only[label] = true
			}
		}
	}
}

func (p *Presenter) promptField(ctx context.Context, d *dialog.Dialog, field model.Field) error {
	state := d.State()
	if !state.Visible(field.Label) {
		return nil
	}
	if !state.Enabled(field.Label) {
		return p.driver.Info(ctx, fmt.Sprintf("%s%s: %s (locked)", p.theme.InfoPrefix, field.Label, describe(d, field)))
	}

	switch field.Kind {
	case model.FieldKindInput:
		return p.promptInput(ctx, d, field)
	case model.FieldKindCombobox:
		return p.promptChoice(ctx, d, field)
	case model.FieldKindListbox:
		if field.Multiple {
			return p.promptMulti(ctx, d, field)
		}
		return p.promptChoice(ctx, d, field)
	default:
		return fmt.Errorf("tui: unsupported field kind %q", field.Kind)
	}
}

func (p *Presenter) promptInput(ctx context.Context, d *dialog.Dialog, field model.Field) error {
	current := d.Text(field.Label)
	cfg := InputConfig{Message: field.Label, Help: field.Help}

	if !field.IsSecret() {
		cfg.Default = current
		value, err := p.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		return d.SetText(field.Label, value)
	}

	if current != "" {
		cfg.Message = field.Label + " (empty keeps current)"
	}
	value, err := p.driver.Password(ctx, cfg)
	if err != nil {
		return err
	}
	if value == "" && current != "" {
		wipe, err := p.driver.Confirm(ctx, ConfirmConfig{Message: "Clear " + field.Label + "?"})
		if err != nil || !wipe {
			return err
		}
	}
	return d.SetText(field.Label, value)
}

func (p *Presenter) promptChoice(ctx context.Context, d *dialog.Dialog, field model.Field) error {
	defaultIdx := -1
	if sel := d.Selected(field.Label); len(sel) > 0 {
		defaultIdx = sel[0]
	}

	for {
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      optionLabels(field),
			DefaultIndex: defaultIdx,
			Help:         field.Help,
			PageSize:     p.pageSize,
		})
		if err != nil {
			return err
		}
		err = d.Choose(field.Label, idx)
		if !errors.Is(err, dialog.ErrOptionUnavailable) {
			return err
		}
		if err := p.driver.Info(ctx, p.theme.ErrorPrefix+"that option cannot be selected"); err != nil {
			return err
		}
	}
}

func (p *Presenter) promptMulti(ctx context.Context, d *dialog.Dialog, field model.Field) error {
	for {
		idxs, err := p.driver.MultiSelect(ctx, SelectConfig{
			Message:  field.Label,
			Options:  optionLabels(field),
			Defaults: d.Selected(field.Label),
			Help:     field.Help,
			PageSize: p.pageSize,
		})
		if err != nil {
			return err
		}
		err = d.SetSelection(field.Label, idxs)
		if !errors.Is(err, dialog.ErrOptionUnavailable) {
			return err
		}
		if err := p.driver.Info(ctx, p.theme.ErrorPrefix+"unavailable options cannot be selected"); err != nil {
			return err
		}
	}
}

func optionLabels(field model.Field) []string {
	out := make([]string, len(field.Options))
	for i, opt := range field.Options {
		out[i] = opt.Display
		if opt.Disabled {
			out[i] += unavailableSuffix
		}
	}
	return out
}

func describe(d *dialog.Dialog, field model.Field) string {
	switch field.Kind {
	case model.FieldKindInput:
		if field.IsSecret() {
			if d.Text(field.Label) == "" {
				return "(empty)"
			}
			return "********"
		}
		return d.Text(field.Label)
	default:
		var parts []string
		for _, idx := range d.Selected(field.Label) {
			parts = append(parts, field.Options[idx].Display)
		}
		if len(parts) == 0 {
			return "(none)"
		}
		return strings.Join(parts, ", ")
	}
}
