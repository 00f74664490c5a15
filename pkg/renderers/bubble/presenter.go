// Package bubble presents dialogs as a full-screen bubbletea form. Every
// field is on screen at once; hidden fields disappear and disabled fields
// dim as soon as the dialog re-resolves its visibility.
package bubble

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-formdialog/pkg/dialog"
)

// Presenter implements dialog.Presenter with a bubbletea program per dialog.
type Presenter struct {
	theme     Theme
	altScreen bool
	input     io.Reader
	output    io.Writer
}

// Option configures the Presenter.
type Option func(*Presenter)

// WithTheme overrides the styles.
func WithTheme(th Theme) Option {
	return func(p *Presenter) { p.theme = th }
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(p *Presenter) { p.altScreen = enabled }
}

// WithIO overrides the terminal streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Presenter) {
		p.input = in
		p.output = out
	}
}

// New returns a presenter drawing on the process terminal.
func New(options ...Option) *Presenter {
	p := &Presenter{theme: DefaultTheme(), altScreen: true}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Present runs the form until the user submits a valid dialog or cancels
// it. Context cancellation cancels the dialog and returns ctx.Err().
func (p *Presenter) Present(ctx context.Context, d *dialog.Dialog) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	_, err := tea.NewProgram(newFormModel(ctx, d, p.theme), opts...).Run()
	if !d.Closed() {
		d.Cancel()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
