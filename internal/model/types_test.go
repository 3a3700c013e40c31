package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Strong"},
		{80, "Strong"},
		{79.9, "Promising"},
		{60, "Promising"},
		{59, "Uncertain"},
		{40, "Uncertain"},
		{39.5, "Weak"},
		{0, "Weak"},
	}
	for _, tt := range tests {
		if got := ScoreBand(tt.score); got != tt.want {
			t.Errorf("ScoreBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", " ", "\n\t  \r\n"} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) = false, want true", s)
		}
	}
	if IsBlank("  coffee  ") {
		t.Error("IsBlank on non-empty text returned true")
	}
}

func TestBusinessEvaluationJSONFieldNames(t *testing.T) {
	ev := BusinessEvaluation{
		SWOT:                 SWOT{Strengths: []string{"a"}, Weaknesses: []string{}, Opportunities: []string{}, Threats: []string{}},
		RiskAssessment:       "risk",
		StrategicSuggestions: []string{"s"},
		OverallScore:         72,
		Summary:              "ok",
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"swot"`, `"strengths"`, `"weaknesses"`, `"opportunities"`, `"threats"`, `"riskAssessment"`, `"strategicSuggestions"`, `"overallScore":72`, `"summary"`} {
		if !strings.Contains(s, key) {
			t.Errorf("marshaled evaluation missing %s: %s", key, s)
		}
	}
}

func TestExamples(t *testing.T) {
	examples := Examples()
	if len(examples) != 3 {
		t.Fatalf("got %d examples, want 3", len(examples))
	}
	for _, ex := range examples {
		if ex.Title == "" || IsBlank(ex.FullText) {
			t.Errorf("example %+v has empty title or text", ex)
		}
	}
}
