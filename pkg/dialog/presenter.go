package dialog

import "context"

// Presenter drives a dialog interactively until it is submitted or
// cancelled. Implementations own the terminal while Present runs and return
// a non-nil error only when the presenter itself fails.
type Presenter interface {
	Present(ctx context.Context, d *Dialog) error
}

// PresenterFunc adapts a function into a Presenter.
type PresenterFunc func(ctx context.Context, d *Dialog) error

// Present calls the underlying function.
func (fn PresenterFunc) Present(ctx context.Context, d *Dialog) error {
	return fn(ctx, d)
}
