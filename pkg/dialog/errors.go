package dialog

import "errors"

var (
	// ErrCancelled signals the user dismissed the dialog. No partial result
	// accompanies it.
	ErrCancelled = errors.New("dialog: cancelled")
	// ErrInvalid is returned by Submit when validation fails; the dialog
	// stays open and Errors reports the details.
	ErrInvalid = errors.New("dialog: validation failed")
	// ErrClosed is returned by events sent after Submit or Cancel.
	ErrClosed = errors.New("dialog: closed")
	// ErrOpen is returned by Outcome while the dialog is still open.
	ErrOpen = errors.New("dialog: still open")
	// ErrUnknownField is returned for labels the form does not declare.
	ErrUnknownField = errors.New("dialog: unknown field")
	// ErrFieldInactive is returned for edits to hidden or disabled fields.
	ErrFieldInactive = errors.New("dialog: field is hidden or disabled")
	// ErrKindMismatch is returned when an event does not fit the field kind.
	ErrKindMismatch = errors.New("dialog: event does not apply to field kind")
	// ErrOptionUnavailable is returned for out of range or disabled options.
	ErrOptionUnavailable = errors.New("dialog: option unavailable")
)
