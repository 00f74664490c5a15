package tui

// Theme captures optional prefixes the presenter applies when printing
// messages. Keep minimal to avoid coupling presenter logic to ANSI specifics.
type Theme struct {
	TitlePrefix string
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	TitlePrefix: "== ",
	InfoPrefix:  "  ",
	ErrorPrefix: "  ! ",
}

// Option configures the Presenter.
type Option func(*Presenter)

// WithPromptDriver overrides the prompt driver used by the presenter.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Presenter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Presenter) {
		p.theme = theme
	}
}

// WithConfirm toggles the final "submit?" question. When disabled the
// dialog submits right after the last field.
func WithConfirm(enabled bool) Option {
	return func(p *Presenter) {
		p.confirm = enabled
	}
}

// WithPageSize limits how many options selection prompts show at once.
func WithPageSize(n int) Option {
	return func(p *Presenter) {
		p.pageSize = n
	}
}
