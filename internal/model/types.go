package model

import "strings"

// BusinessEvaluation is the structured assessment returned by the model.
// Every field is required; a record missing any of them is rejected before
// it is ever constructed.
type BusinessEvaluation struct {
	// SWOT holds the four analysis lists.
	SWOT SWOT `json:"swot"`
	// RiskAssessment is a narrative that may contain markdown.
	RiskAssessment string `json:"riskAssessment"`
	// StrategicSuggestions is an ordered list of short recommendations.
	StrategicSuggestions []string `json:"strategicSuggestions"`
	// OverallScore is the model's rating, always within [MinScore, MaxScore].
	OverallScore float64 `json:"overallScore"`
	// Summary is a short narrative verdict.
	Summary string `json:"summary"`
}

// SWOT is a Strengths/Weaknesses/Opportunities/Threats analysis.
// Each list may be empty but is always present.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Score bounds for BusinessEvaluation.OverallScore.
const (
	MinScore = 0
	MaxScore = 100
)

// TokenUsage tracks LLM token consumption for a single evaluation.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// ScoreBand returns a short label for a score, used when rendering.
func ScoreBand(score float64) string {
	switch {
	case score >= 80:
		return "Strong"
	case score >= 60:
		return "Promising"
	case score >= 40:
		return "Uncertain"
	default:
		return "Weak"
	}
}

// IsBlank reports whether a proposal has no content after trimming.
func IsBlank(proposal string) bool {
	return strings.TrimSpace(proposal) == ""
}
