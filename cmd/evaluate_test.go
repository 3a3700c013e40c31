package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timvw/pitch-check/internal/evaluator"
	"github.com/timvw/pitch-check/internal/model"
	"github.com/timvw/pitch-check/internal/ui"
)

func sampleResult() *evaluator.Result {
	return &evaluator.Result{
		Evaluation: &model.BusinessEvaluation{
			SWOT: model.SWOT{
				Strengths:     []string{"Recurring revenue"},
				Weaknesses:    []string{"Thin margins"},
				Opportunities: []string{},
				Threats:       []string{"Incumbent roasters"},
			},
			RiskAssessment:       "Moderate supply risk.",
			StrategicSuggestions: []string{"Start with one city"},
			OverallScore:         72,
			Summary:              "A promising niche subscription.",
		},
		Usage:     model.TokenUsage{InputTokens: 120, OutputTokens: 340},
		RequestID: "req-42",
		Provider:  "gemini",
		Model:     "gemini-3-flash-preview",
		Duration:  1200 * time.Millisecond,
	}
}

func TestReadProposalFromArgs(t *testing.T) {
	got, err := readProposal([]string{"coffee", "box"}, "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "coffee box", got)
}

func TestReadProposalFromStdin(t *testing.T) {
	got, err := readProposal([]string{"-"}, "", strings.NewReader("A coffee box\n"))
	require.NoError(t, err)
	assert.Equal(t, "A coffee box\n", got)
}

func TestReadProposalFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposal.txt")
	require.NoError(t, os.WriteFile(path, []byte("Packaging as a service"), 0o644))

	got, err := readProposal(nil, path, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "Packaging as a service", got)
}

func TestReadProposalErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		file  string
		stdin string
	}{
		{name: "no input", args: nil},
		{name: "blank args", args: []string{"  ", "\t"}},
		{name: "blank stdin", args: []string{"-"}, stdin: " \n"},
		{name: "missing file", file: filepath.Join(os.TempDir(), "does-not-exist-pitch-check.txt")},
		{name: "file and args", args: []string{"idea"}, file: "proposal.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readProposal(tt.args, tt.file, strings.NewReader(tt.stdin))
			assert.Error(t, err)
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderJSON(&buf, sampleResult()))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "req-42", out["requestId"])
	assert.Equal(t, "gemini", out["provider"])
	assert.Equal(t, 1200.0, out["durationMs"])
	ev := out["evaluation"].(map[string]any)
	assert.Equal(t, 72.0, ev["overallScore"])
	assert.Equal(t, []any{}, ev["swot"].(map[string]any)["opportunities"])
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, sampleResult(), ui.MarkdownPlain))
	out := buf.String()

	assert.Contains(t, out, "Score: 72/100 (Promising)")
	assert.Contains(t, out, "A promising niche subscription.")
	assert.Contains(t, out, "Strengths:\n  - Recurring revenue")
	assert.Contains(t, out, "Opportunities:\n  (none)")
	assert.Contains(t, out, "Risk assessment:\n")
	assert.Contains(t, out, "Moderate supply risk.")
	assert.Contains(t, out, "Strategic suggestions:\n  - Start with one city")
}

func TestRenderTextRiskMarkdown(t *testing.T) {
	res := sampleResult()
	res.Evaluation.RiskAssessment = "## Supply\n\nBean prices are volatile.\n\n- Import duties\n- Roaster capacity"

	var buf bytes.Buffer
	require.NoError(t, renderText(&buf, res, ui.MarkdownPlain))
	out := buf.String()

	assert.Contains(t, out, "Supply")
	assert.NotContains(t, out, "## Supply")
	assert.Contains(t, out, "Bean prices are volatile.")
	assert.Contains(t, out, "Import duties")
	assert.NotContains(t, out, "- Import duties")
}

func TestMarkdownStyleForNonTerminal(t *testing.T) {
	assert.Equal(t, ui.MarkdownPlain, markdownStyleFor(&bytes.Buffer{}))
}

func TestRunExamplesList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runExamples(&buf, nil, false))

	examples := model.Examples()
	assert.Contains(t, buf.String(), "1. "+examples[0].Title)
	assert.Equal(t, len(examples), strings.Count(buf.String(), "\n")/2)
}

func TestRunExamplesSingle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runExamples(&buf, []string{"2"}, false))
	assert.Equal(t, model.Examples()[1].FullText+"\n", buf.String())
}

func TestRunExamplesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runExamples(&buf, nil, true))

	var got []model.Example
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, model.Examples(), got)
}

func TestRunExamplesOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	for _, arg := range []string{"0", "99", "two"} {
		assert.Error(t, runExamples(&buf, []string{arg}, false), arg)
	}
}
