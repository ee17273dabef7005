// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette of the TUI.
type Theme struct {
	// Accent marks titles and the active tab.
	Accent lipgloss.Color

	// Citation marks chunk ids in answers.
	Citation lipgloss.Color

	// Text is the default text colour.
	Text lipgloss.Color

	// Dim is for hints and secondary text.
	Dim lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the frame colour.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme, a navy and gold
// palette after the EU flag.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:   lipgloss.Color("#FFCC00"),
		Citation: lipgloss.Color("#7AA2F7"),
		Text:     lipgloss.Color("#E6E9F0"),
		Dim:      lipgloss.Color("#7F859A"),
		Error:    lipgloss.Color("#F7768E"),
		Border:   lipgloss.Color("#3B4261"),
		Bar:      lipgloss.Color("#16213E"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Question lipgloss.Style
	Sources  lipgloss.Style
	Error    lipgloss.Style
	Spinner  lipgloss.Style

	// InputField frames the question input.
	InputField lipgloss.Style

	// Panel frames the answer viewport.
	Panel lipgloss.Style

	StatusBar lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Dim).
			Padding(0, 1),

		TabOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Bar).
			Background(theme.Accent).
			Padding(0, 1),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Text),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Question: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Sources: lipgloss.NewStyle().
			Foreground(theme.Citation),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Dim).
			Background(theme.Bar).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
