// Package ui is the interactive terminal surface. It renders the
// controller's view state and feeds it key events.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timvw/pitch-check/internal/controller"
	"github.com/timvw/pitch-check/internal/model"
)

// messages
type settledMsg struct {
	settlement controller.Settlement
}

// TUI runs the interactive evaluator.
type TUI struct {
	Controller *controller.Controller
	Examples   []model.Example
	Theme      Theme
}

// tuiModel implements tea.Model
type tuiModel struct {
	ctrl     *controller.Controller
	examples []model.Example
	styles   styles
	markdown string

	input  textarea.Model
	spin   spinner.Model
	result viewport.Model

	// dimensions
	width  int
	height int

	// status line (transient hints, not view state)
	message string
}

// Run starts the program and blocks until the user quits or ctx is cancelled.
// The controller is disposed on exit.
func (t *TUI) Run(ctx context.Context) error {
	m := newModel(t.Controller, t.Examples, t.Theme)
	defer t.Controller.Dispose()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctrl *controller.Controller, examples []model.Example, theme Theme) *tuiModel {
	ta := textarea.New()
	ta.Placeholder = "Describe your business idea, target market and revenue model..."
	// Proposals are submitted verbatim, so the input never truncates.
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(8)
	ta.SetValue(ctrl.Draft())
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &tuiModel{
		ctrl:     ctrl,
		examples: examples,
		styles:   newStyles(theme),
		markdown: theme.Markdown,
		input:    ta,
		spin:     sp,
		result:   viewport.Model{Width: 80, Height: 20},
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case settledMsg:
		if !m.ctrl.Settle(msg.settlement) {
			return m, nil
		}
		m.message = ""
		if ready, ok := m.ctrl.State().(controller.Ready); ok {
			m.result.SetContent(m.renderEvaluation(ready))
			m.result.GotoTop()
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()

	case spinner.TickMsg:
		if m.ctrl.State().Phase() != controller.PhasePending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *tuiModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(20, width-4))
	m.result.Width = max(20, width-4)
	// title, hints, footer
	m.result.Height = max(5, height-4)
	if ready, ok := m.ctrl.State().(controller.Ready); ok {
		m.result.SetContent(m.renderEvaluation(ready))
	}
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.ctrl.Dispose()
		return m, tea.Quit

	case "ctrl+s":
		return m, m.submit()

	case "ctrl+r":
		if !m.ctrl.Reset() {
			m.message = "Wait for the evaluation to finish before resetting."
			return m, nil
		}
		m.input.Reset()
		m.result.SetContent("")
		m.message = ""
		return m, m.input.Focus()

	case "f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9":
		idx := int(msg.String()[1] - '1')
		if idx >= len(m.examples) {
			return m, nil
		}
		if m.ctrl.UseExample(m.examples[idx].FullText) {
			m.input.SetValue(m.ctrl.Draft())
			m.message = fmt.Sprintf("Loaded example: %s", m.examples[idx].Title)
		}
		return m, nil
	}

	switch m.ctrl.State().(type) {
	case controller.Pending:
		return m, nil
	case controller.Ready:
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}

	m.message = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// submit hands the draft to the controller and starts the job.
func (m *tuiModel) submit() tea.Cmd {
	text := m.input.Value()
	if m.ctrl.State().Phase() == controller.PhasePending {
		m.message = "An evaluation is already running."
		return nil
	}
	job, ok := m.ctrl.Submit(text)
	if !ok {
		m.message = "Describe your business proposal first."
		return nil
	}
	m.message = ""
	m.input.Blur()
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return settledMsg{settlement: job()}
	})
}

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Pitch Check"))
	b.WriteString("  ")
	b.WriteString(m.styles.dim.Render(m.hints()))
	b.WriteString("\n")

	switch st := m.ctrl.State().(type) {
	case controller.Idle:
		m.viewInput(&b)
		m.viewExamples(&b)
	case controller.Failed:
		m.viewInput(&b)
		b.WriteString(m.styles.err.Render("  " + st.Message))
		b.WriteString("\n")
		m.viewExamples(&b)
	case controller.Pending:
		b.WriteString("\n  ")
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.pending.Render(" Evaluating proposal..."))
		b.WriteString("\n\n")
		for _, line := range wrapText(st.Proposal, m.contentWidth()) {
			b.WriteString(m.styles.dim.Render("  " + line))
			b.WriteString("\n")
		}
	case controller.Ready:
		b.WriteString(m.result.View())
		b.WriteString("\n")
		if st.Result != nil {
			b.WriteString(m.styles.dim.Render(fmt.Sprintf("  %s/%s  tokens: %s in / %s out  %s",
				st.Result.Provider, st.Result.Model,
				formatTokens(st.Result.Usage.InputTokens), formatTokens(st.Result.Usage.OutputTokens),
				st.Result.Duration.Round(time.Millisecond))))
			b.WriteString("\n")
		}
	}

	if m.message != "" {
		b.WriteString(m.styles.pending.Render("  " + m.message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *tuiModel) hints() string {
	switch m.ctrl.State().Phase() {
	case controller.PhasePending:
		return "evaluating...  esc=quit"
	case controller.PhaseReady:
		return "↑↓/PgUp/PgDn=scroll  ctrl+r=new proposal  ctrl+s=re-evaluate  esc=quit"
	default:
		return "ctrl+s=evaluate  F1-F3=example  ctrl+r=clear  esc=quit"
	}
}

func (m *tuiModel) viewInput(b *strings.Builder) {
	b.WriteString(m.styles.header.Render("  " + strings.Repeat("─", m.contentWidth())))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
}

func (m *tuiModel) viewExamples(b *strings.Builder) {
	if len(m.examples) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(m.styles.section.Render("  Examples"))
	b.WriteString("\n")
	for i, ex := range m.examples {
		if i >= 9 {
			break
		}
		key := m.styles.key.Render(fmt.Sprintf("  F%d ", i+1))
		line := truncate(ex.Title+": "+ex.Description, max(10, m.contentWidth()-4))
		b.WriteString(key + m.styles.dim.Render(line))
		b.WriteString("\n")
	}
}

// renderEvaluation lays out the result view content.
func (m *tuiModel) renderEvaluation(ready controller.Ready) string {
	ev := ready.Evaluation
	width := m.contentWidth()
	var b strings.Builder

	band := model.ScoreBand(ev.OverallScore)
	b.WriteString("  ")
	b.WriteString(m.styles.scoreStyle(band).Render(fmt.Sprintf("%.0f / %d  %s", ev.OverallScore, model.MaxScore, band)))
	b.WriteString("\n\n")

	for _, line := range wrapText(ev.Summary, width) {
		b.WriteString("  " + m.styles.text.Render(line) + "\n")
	}

	m.writeList(&b, "Strengths", ev.SWOT.Strengths, width)
	m.writeList(&b, "Weaknesses", ev.SWOT.Weaknesses, width)
	m.writeList(&b, "Opportunities", ev.SWOT.Opportunities, width)
	m.writeList(&b, "Threats", ev.SWOT.Threats, width)

	b.WriteString("\n")
	b.WriteString(m.styles.section.Render("  Risk Assessment"))
	b.WriteString("\n")
	b.WriteString(RenderMarkdown(ev.RiskAssessment, width, m.markdown))
	b.WriteString("\n")

	m.writeList(&b, "Strategic Suggestions", ev.StrategicSuggestions, width)
	return b.String()
}

func (m *tuiModel) writeList(b *strings.Builder, title string, items []string, width int) {
	b.WriteString("\n")
	b.WriteString(m.styles.section.Render("  " + title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(m.styles.dim.Render("  (none)"))
		b.WriteString("\n")
		return
	}
	for _, item := range items {
		for i, line := range wrapText(item, width-2) {
			prefix := "  • "
			if i > 0 {
				prefix = "    "
			}
			b.WriteString(prefix + m.styles.text.Render(line) + "\n")
		}
	}
}

func (m *tuiModel) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(20, m.width-4)
}

// truncate cuts a string to at most maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps each paragraph of s into lines of at most maxLen runes,
// breaking at spaces. Blank lines between paragraphs are kept.
func wrapText(s string, maxLen int) []string {
	if maxLen <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := []rune(words[0])
		for _, w := range words[1:] {
			wr := []rune(w)
			if len(line)+1+len(wr) > maxLen {
				lines = append(lines, string(line))
				line = wr
				continue
			}
			line = append(append(line, ' '), wr...)
		}
		lines = append(lines, string(line))
	}
	return lines
}

// formatTokens formats a token count for display (e.g., "12.3k").
func formatTokens(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 10000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.0fk", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}
