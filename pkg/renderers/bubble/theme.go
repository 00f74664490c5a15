package bubble

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used to draw a dialog.
type Theme struct {
	Header   lipgloss.Style
	Frame    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Danger   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme returns the standard palette.
func DefaultTheme() Theme {
	accent := lipgloss.Color("#00AFFF")
	secondary := lipgloss.Color("#7D7D7D")
	success := lipgloss.Color("#00D75F")
	danger := lipgloss.Color("#FF0055")

	return Theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Bold(true),
		Focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Selected: lipgloss.NewStyle().
			Foreground(success),
		Danger: lipgloss.NewStyle().
			Foreground(danger),
		Help: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),
	}
}
