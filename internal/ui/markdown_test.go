package ui

import (
	"context"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/timvw/pitch-check/internal/controller"
	"github.com/timvw/pitch-check/internal/evaluator"
)

var sgr = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z]`)

const riskMarkdown = "## Supply risk\n\nBean prices are **volatile**.\n\n- Import duties\n- Roaster capacity"

func TestRenderMarkdown(t *testing.T) {
	for _, style := range []string{MarkdownDark, MarkdownLight} {
		t.Run(style, func(t *testing.T) {
			raw := RenderMarkdown(riskMarkdown, 60, style)
			if raw == sgr.ReplaceAllString(raw, "") {
				t.Error("expected styled output with escape sequences")
			}
			out := sgr.ReplaceAllString(raw, "")

			for _, want := range []string{"Supply risk", "volatile", "Import duties", "Roaster capacity"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, marker := range []string{"## ", "**", "- Import"} {
				if strings.Contains(out, marker) {
					t.Errorf("output still contains markdown marker %q:\n%s", marker, out)
				}
			}
			if !strings.Contains(out, "• Import duties") {
				t.Errorf("list items should render as bullets:\n%s", out)
			}
		})
	}
}

func TestRenderMarkdownWraps(t *testing.T) {
	long := strings.Repeat("risk ", 40)
	out := sgr.ReplaceAllString(RenderMarkdown(long, 30, MarkdownDark), "")
	for _, line := range strings.Split(out, "\n") {
		if n := len([]rune(strings.TrimRight(line, " "))); n > 30 {
			t.Errorf("line is %d runes, want <= 30: %q", n, line)
		}
	}
}

func TestResultViewRendersRiskMarkdown(t *testing.T) {
	ev := sampleEvaluation()
	ev.RiskAssessment = riskMarkdown
	m := newTestModel(funcEvaluator(func(ctx context.Context, _ string) (*evaluator.Result, error) {
		return &evaluator.Result{Evaluation: ev}, nil
	}))
	typeText(m, "coffee box")
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	m.Update(findSettled(t, runCmd(cmd)))

	ready, ok := m.ctrl.State().(controller.Ready)
	if !ok {
		t.Fatalf("state = %T, want Ready", m.ctrl.State())
	}
	out := sgr.ReplaceAllString(m.renderEvaluation(ready), "")
	if strings.Contains(out, "## Supply risk") || strings.Contains(out, "**volatile**") {
		t.Errorf("risk assessment shown as raw markdown:\n%s", out)
	}
	if !strings.Contains(out, "Supply risk") {
		t.Errorf("risk heading missing:\n%s", out)
	}
}
