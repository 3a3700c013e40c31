package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// Markdown style names accepted by RenderMarkdown.
const (
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownPlain = "notty" // no colors, for pipes and files
)

// markdownStyle returns the glamour style for name with heading markers
// removed: headings are shown by color and weight, not by "##".
func markdownStyle(name string) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	switch name {
	case MarkdownLight:
		cfg = glamourstyles.LightStyleConfig
	case MarkdownPlain:
		cfg = glamourstyles.NoTTYStyleConfig
	default:
		cfg = glamourstyles.DarkStyleConfig
	}
	for _, h := range []*ansi.StyleBlock{&cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6} {
		h.Prefix = ""
		h.Suffix = ""
	}
	return cfg
}

// RenderMarkdown renders a markdown narrative for the terminal, word-wrapped
// at width. If rendering fails the text is wrapped as plain paragraphs.
func RenderMarkdown(text string, width int, style string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(style)),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		var out string
		if out, err = r.Render(text); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	lines := wrapText(text, width)
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
