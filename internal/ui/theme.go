package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used by the evaluation TUI.
// Use DarkTheme() or LightTheme() to get a pre-built theme,
// or construct a custom Theme.
type Theme struct {
	Primary   lipgloss.Color // title, focused input border
	Secondary lipgloss.Color // section headings
	Accent    lipgloss.Color // example keys
	Error     lipgloss.Color // failures, weak scores
	Warning   lipgloss.Color // pending status, uncertain scores
	Success   lipgloss.Color // strong scores, strengths
	Info      lipgloss.Color // promising scores
	Text      lipgloss.Color // primary text
	TextMuted lipgloss.Color // hints, metadata
	Border    lipgloss.Color // separators

	// Markdown is the style used for the risk narrative (MarkdownDark, ...).
	Markdown string
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Secondary: lipgloss.Color("#5c9cf5"),
		Accent:    lipgloss.Color("#9d7cd8"),
		Error:     lipgloss.Color("#e06c75"),
		Warning:   lipgloss.Color("#f5a742"),
		Success:   lipgloss.Color("#7fd88f"),
		Info:      lipgloss.Color("#56b6c2"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Border:    lipgloss.Color("#484848"),
		Markdown:  MarkdownDark,
	}
}

// LightTheme returns a light theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Secondary: lipgloss.Color("#0550ae"),
		Accent:    lipgloss.Color("#6639ba"),
		Error:     lipgloss.Color("#cf222e"),
		Warning:   lipgloss.Color("#bf8700"),
		Success:   lipgloss.Color("#116329"),
		Info:      lipgloss.Color("#0969da"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
		Border:    lipgloss.Color("#d0d7de"),
		Markdown:  MarkdownLight,
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// styles holds all lipgloss styles derived from a Theme.
type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	err     lipgloss.Style
	pending lipgloss.Style
	dim     lipgloss.Style
	text    lipgloss.Style

	strong    lipgloss.Style
	promising lipgloss.Style
	uncertain lipgloss.Style
	weak      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		header:  lipgloss.NewStyle().Foreground(t.Border),
		section: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		key:     lipgloss.NewStyle().Foreground(t.Accent),
		err:     lipgloss.NewStyle().Foreground(t.Error),
		pending: lipgloss.NewStyle().Foreground(t.Warning),
		dim:     lipgloss.NewStyle().Foreground(t.TextMuted),
		text:    lipgloss.NewStyle().Foreground(t.Text),

		strong:    lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		promising: lipgloss.NewStyle().Bold(true).Foreground(t.Info),
		uncertain: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		weak:      lipgloss.NewStyle().Bold(true).Foreground(t.Error),
	}
}

// scoreStyle picks the style for a score band label.
func (s styles) scoreStyle(band string) lipgloss.Style {
	switch band {
	case "Strong":
		return s.strong
	case "Promising":
		return s.promising
	case "Uncertain":
		return s.uncertain
	default:
		return s.weak
	}
}
