package bubble

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-formdialog/pkg/dialog"
	"github.com/goliatone/go-formdialog/pkg/model"
)

const helpLine = "tab/shift+tab move • ←/→ choose • space toggle • ctrl+r reveal • enter submit • esc cancel"

// formModel adapts a dialog.Dialog to the bubbletea update loop. Every key
// event is turned into a dialog event; visibility and focus are refreshed
// from the dialog afterwards.
type formModel struct {
	ctx    context.Context
	d      *dialog.Dialog
	th     Theme
	fields []model.Field
	inputs map[string]textinput.Model
	cursor map[string]int
	focus  int
	status string
}

func newFormModel(ctx context.Context, d *dialog.Dialog, th Theme) *formModel {
	m := &formModel{
		ctx:    ctx,
		d:      d,
		th:     th,
		fields: d.Form().Fields,
		inputs: make(map[string]textinput.Model),
		cursor: make(map[string]int),
		focus:  -1,
	}
	for _, field := range m.fields {
		if field.Kind != model.FieldKindInput {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.SetValue(d.Text(field.Label))
		if field.IsSecret() {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[field.Label] = ti
	}
	m.moveFocus(1)
	m.syncFocus()
	return m
}

func (m *formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocusedInput(msg)
	}

	m.status = ""
	field, hasFocus := m.focused()

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.d.Cancel()
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		m.moveFocus(1)
		return m, m.syncFocus()
	case tea.KeyShiftTab:
		m.moveFocus(-1)
		return m, m.syncFocus()
	}

	if !hasFocus {
		return m, nil
	}

	switch field.Kind {
	case model.FieldKindListbox:
		switch key.Type {
		case tea.KeyUp:
			m.moveCursor(field, -1)
			return m, nil
		case tea.KeyDown:
			m.moveCursor(field, 1)
			return m, nil
		case tea.KeySpace:
			m.apply(m.d.Toggle(field.Label, m.cursor[field.Label]))
			return m, m.syncFocus()
		}
	case model.FieldKindCombobox:
		switch key.Type {
		case tea.KeyLeft:
			m.cycle(field, -1)
			return m, m.syncFocus()
		case tea.KeyRight, tea.KeySpace:
			m.cycle(field, 1)
			return m, m.syncFocus()
		}
	case model.FieldKindInput:
		if key.Type == tea.KeyCtrlR && field.IsSecret() {
			m.apply(m.d.Reveal(field.Label, !m.d.Revealed(field.Label)))
			ti := m.inputs[field.Label]
			ti.EchoMode = textinput.EchoPassword
			if m.d.Revealed(field.Label) {
				ti.EchoMode = textinput.EchoNormal
			}
			m.inputs[field.Label] = ti
			return m, nil
		}
	}

	switch key.Type {
	case tea.KeyUp:
		m.moveFocus(-1)
		return m, m.syncFocus()
	case tea.KeyDown:
		m.moveFocus(1)
		return m, m.syncFocus()
	}
	return m, m.updateFocusedInput(msg)
}

func (m *formModel) submit() (tea.Model, tea.Cmd) {
	_, err := m.d.Submit(m.ctx)
	switch {
	case err == nil:
		return m, tea.Quit
	case errors.Is(err, dialog.ErrInvalid):
		m.focusFirstError()
		return m, m.syncFocus()
	default:
		m.status = err.Error()
		return m, nil
	}
}

func (m *formModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	field, ok := m.focused()
	if !ok || field.Kind != model.FieldKindInput {
		return nil
	}
	ti, cmd := m.inputs[field.Label].Update(msg)
	m.inputs[field.Label] = ti
	if ti.Value() != m.d.Text(field.Label) {
		m.apply(m.d.SetText(field.Label, ti.Value()))
	}
	return tea.Batch(cmd, m.syncFocus())
}

// apply records an event error and keeps focus on an active field.
func (m *formModel) apply(err error) {
	if err != nil {
		m.status = err.Error()
	}
	if _, ok := m.focused(); !ok {
		m.moveFocus(1)
	}
}

func (m *formModel) focused() (model.Field, bool) {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return model.Field{}, false
	}
	field := m.fields[m.focus]
	if !m.d.State().Enabled(field.Label) {
		return model.Field{}, false
	}
	return field, true
}

// moveFocus steps to the next visible and enabled field in direction dir,
// wrapping around. Focus becomes -1 when no field can take it.
func (m *formModel) moveFocus(dir int) {
	n := len(m.fields)
	if n == 0 {
		m.focus = -1
		return
	}
	start := m.focus
	if start < 0 {
		start = n - 1
		if dir < 0 {
			start = 0
		}
	}
	for step := 1; step <= n; step++ {
		idx := ((start+dir*step)%n + n) % n
		if m.d.State().Enabled(m.fields[idx].Label) {
			m.focus = idx
			return
		}
	}
	m.focus = -1
}

func (m *formModel) focusFirstError() {
	errs := m.d.Errors()
	for i, field := range m.fields {
		if len(errs.Fields[field.Label]) > 0 && m.d.State().Enabled(field.Label) {
			m.focus = i
			return
		}
	}
}

func (m *formModel) syncFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, field := range m.fields {
		ti, ok := m.inputs[field.Label]
		if !ok {
			continue
		}
		if i == m.focus && m.d.State().Enabled(field.Label) {
			if !ti.Focused() {
				cmd = ti.Focus()
			}
		} else {
			ti.Blur()
		}
		m.inputs[field.Label] = ti
	}
	return cmd
}

func (m *formModel) moveCursor(field model.Field, dir int) {
	n := len(field.Options)
	m.cursor[field.Label] = ((m.cursor[field.Label]+dir)%n + n) % n
}

// cycle moves a combobox to the next enabled option in direction dir.
func (m *formModel) cycle(field model.Field, dir int) {
	n := len(field.Options)
	current := -1
	if sel := m.d.Selected(field.Label); len(sel) > 0 {
		current = sel[0]
	}
	for step := 1; step <= n; step++ {
		idx := ((current+dir*step)%n + n) % n
		if !field.Options[idx].Disabled {
			m.apply(m.d.Choose(field.Label, idx))
			return
		}
	}
}

func (m *formModel) View() string {
	var b strings.Builder
	if title := m.d.Title(); title != "" {
		b.WriteString(m.th.Header.Render(title))
		b.WriteString("\n\n")
	}

	state := m.d.State()
	errs := m.d.Errors()
	for i, field := range m.fields {
		if !state.Visible(field.Label) {
			continue
		}
		enabled := state.Enabled(field.Label)
		b.WriteString(m.renderLabel(field, i == m.focus, enabled))
		b.WriteString("\n")
		b.WriteString(m.renderControl(field, i == m.focus, enabled))
		b.WriteString("\n")
		if field.Help != "" {
			b.WriteString(m.th.Muted.Render("  " + field.Help))
			b.WriteString("\n")
		}
		for _, msg := range errs.Fields[field.Label] {
			b.WriteString(m.th.Danger.Render("  ! " + msg))
			b.WriteString("\n")
		}
	}

	var footer []string
	for _, msg := range errs.Form {
		footer = append(footer, m.th.Danger.Render("! "+msg))
	}
	if m.status != "" {
		footer = append(footer, m.th.Danger.Render(m.status))
	}
	footer = append(footer, m.th.Help.Render(helpLine))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.TrimRight(b.String(), "\n"),
		"",
		strings.Join(footer, "\n"),
	))
}

func (m *formModel) renderLabel(field model.Field, focused, enabled bool) string {
	marker := "  "
	style := m.th.Label
	switch {
	case !enabled:
		style = m.th.Muted
	case focused:
		marker = "> "
		style = m.th.Focused
	}
	label := field.Label
	if field.Required {
		label += " *"
	}
	return style.Render(marker + label)
}

func (m *formModel) renderControl(field model.Field, focused, enabled bool) string {
	switch field.Kind {
	case model.FieldKindInput:
		view := m.inputs[field.Label].View()
		if !enabled {
			return m.th.Muted.Render("  " + view)
		}
		return "  " + view
	case model.FieldKindCombobox:
		current := "(none)"
		if sel := m.d.Selected(field.Label); len(sel) > 0 {
			current = field.Options[sel[0]].Display
		}
		text := fmt.Sprintf("  ‹ %s ›", current)
		if !enabled {
			return m.th.Muted.Render(text)
		}
		return m.th.Selected.Render(text)
	default:
		lines := make([]string, len(field.Options))
		for i, opt := range field.Options {
			box := "[ ]"
			if m.d.IsSelected(field.Label, i) {
				box = "[x]"
			}
			pointer := "  "
			if focused && m.cursor[field.Label] == i {
				pointer = "› "
			}
			line := fmt.Sprintf("  %s%s %s", pointer, box, opt.Display)
			switch {
			case !enabled || opt.Disabled:
				line = m.th.Muted.Render(line)
			case m.d.IsSelected(field.Label, i):
				line = m.th.Selected.Render(line)
			}
			lines[i] = line
		}
		return strings.Join(lines, "\n")
	}
}
