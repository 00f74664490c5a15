package dialog

import (
	"github.com/charmbracelet/log"

	"github.com/goliatone/go-formdialog/pkg/validation"
	"github.com/goliatone/go-formdialog/pkg/visibility"
)

// SecretStore recalls and stores remembered passwords. Get reports found as
// false when no secret exists for key.
type SecretStore interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// Option configures a Dialog.
type Option func(*Dialog)

// WithValidator adds a caller validator that runs after the built-in field
// rules.
func WithValidator(v validation.Validator) Option {
	return func(d *Dialog) {
		d.validator = v
	}
}

// WithEvaluator overrides the visibility rule evaluator.
func WithEvaluator(e visibility.Evaluator) Option {
	return func(d *Dialog) {
		if e != nil {
			d.evaluator = e
		}
	}
}

// WithExtras exposes caller facts to rules under the `extras.` prefix.
func WithExtras(extras map[string]any) Option {
	return func(d *Dialog) {
		d.extras = extras
	}
}

// WithSecrets enables recall and storage of fields marked Remember.
func WithSecrets(store SecretStore) Option {
	return func(d *Dialog) {
		d.secrets = store
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Dialog) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// SecretKey is the store key used for a remembered field.
func SecretKey(title, label string) string {
	return title + "/" + label
}
