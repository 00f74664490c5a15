package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C). The presenter
	// turns it into a cancelled dialog.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when the presenter has no prompt driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
)
