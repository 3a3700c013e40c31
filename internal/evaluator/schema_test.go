package evaluator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEvaluationJSON = `{
  "swot": {
    "strengths": ["Recurring revenue", "Niche audience"],
    "weaknesses": ["Perishable inventory"],
    "opportunities": ["Corporate gifting"],
    "threats": []
  },
  "riskAssessment": "**Moderate.** Churn is the main risk.",
  "strategicSuggestions": ["Offer annual plans", "Partner with roasters"],
  "overallScore": 72,
  "summary": "A viable niche subscription."
}`

func TestParseEvaluationValid(t *testing.T) {
	ev, err := ParseEvaluation(validEvaluationJSON)
	require.NoError(t, err)

	assert.Equal(t, 72.0, ev.OverallScore)
	assert.Equal(t, []string{"Recurring revenue", "Niche audience"}, ev.SWOT.Strengths)
	assert.Equal(t, []string{}, ev.SWOT.Threats)
	assert.Equal(t, "A viable niche subscription.", ev.Summary)
	assert.Len(t, ev.StrategicSuggestions, 2)
}

func TestParseEvaluationFenced(t *testing.T) {
	ev, err := ParseEvaluation("```json\n" + validEvaluationJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, 72.0, ev.OverallScore)
}

func TestParseEvaluationScoreBounds(t *testing.T) {
	for _, body := range []string{
		`{"swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"","strategicSuggestions":[],"overallScore":0,"summary":""}`,
		`{"swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"","strategicSuggestions":[],"overallScore":100,"summary":""}`,
	} {
		_, err := ParseEvaluation(body)
		assert.NoError(t, err, body)
	}
}

func TestParseEvaluationFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
	}{
		{name: "empty", text: "", kind: ErrEmptyResponse},
		{name: "whitespace", text: "  \n\t", kind: ErrEmptyResponse},
		{name: "empty fences", text: "```json\n```", kind: ErrMalformedResponse},
		{name: "bare fence", text: "```", kind: ErrMalformedResponse},
		{name: "single-line fence", text: "```json {\"summary\":\"ok\"}```", kind: ErrSchemaViolation},
		{name: "single-line fence not json", text: "```json nope```", kind: ErrMalformedResponse},
		{name: "not json", text: "not json", kind: ErrMalformedResponse},
		{name: "truncated", text: `{"swot": {"strengths": [`, kind: ErrMalformedResponse},
		{name: "trailing garbage", text: validEvaluationJSON + " extra", kind: ErrMalformedResponse},
		{name: "summary only", text: `{"summary": "ok"}`, kind: ErrSchemaViolation},
		{name: "top-level array", text: `[]`, kind: ErrSchemaViolation},
		{name: "null document", text: `null`, kind: ErrSchemaViolation},
		{
			name: "missing swot list",
			text: `{"swot":{"strengths":[],"weaknesses":[],"opportunities":[]},"riskAssessment":"r","strategicSuggestions":[],"overallScore":50,"summary":"s"}`,
			kind: ErrSchemaViolation,
		},
		{
			name: "null list",
			text: `{"swot":{"strengths":null,"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"r","strategicSuggestions":[],"overallScore":50,"summary":"s"}`,
			kind: ErrSchemaViolation,
		},
		{
			name: "non-string list entry",
			text: `{"swot":{"strengths":[1],"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"r","strategicSuggestions":[],"overallScore":50,"summary":"s"}`,
			kind: ErrSchemaViolation,
		},
		{
			name: "score above range",
			text: `{"swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"r","strategicSuggestions":[],"overallScore":101,"summary":"s"}`,
			kind: ErrSchemaViolation,
		},
		{
			name: "negative score",
			text: `{"swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"r","strategicSuggestions":[],"overallScore":-1,"summary":"s"}`,
			kind: ErrSchemaViolation,
		},
		{
			name: "score as string",
			text: `{"swot":{"strengths":[],"weaknesses":[],"opportunities":[],"threats":[]},"riskAssessment":"r","strategicSuggestions":[],"overallScore":"72","summary":"s"}`,
			kind: ErrSchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvaluation(tt.text)
			require.Error(t, err)
			assert.Nil(t, ev)
			assert.ErrorIs(t, err, tt.kind)

			var evalErr *Error
			require.True(t, errors.As(err, &evalErr))
			assert.Equal(t, tt.kind, evalErr.Kind)
		})
	}
}

func TestParseEvaluationMalformedSurfacesDetail(t *testing.T) {
	_, err := ParseEvaluation("not json")
	require.Error(t, err)

	var evalErr *Error
	require.True(t, errors.As(err, &evalErr))
	require.NotNil(t, evalErr.Cause)
	assert.Contains(t, err.Error(), evalErr.Cause.Error())
}

func TestParseEvaluationSchemaViolationListsFields(t *testing.T) {
	_, err := ParseEvaluation(`{"summary": "ok"}`)
	require.Error(t, err)
	for _, field := range []string{"swot", "riskAssessment", "strategicSuggestions", "overallScore"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestGeminiSchemaConversion(t *testing.T) {
	doc, err := schemaDocument(SchemaJSON)
	require.NoError(t, err)

	s := geminiSchema(doc)
	assert.EqualValues(t, "OBJECT", s.Type)
	assert.ElementsMatch(t, []string{"swot", "riskAssessment", "strategicSuggestions", "overallScore", "summary"}, s.Required)

	swot := s.Properties["swot"]
	require.NotNil(t, swot)
	assert.ElementsMatch(t, []string{"strengths", "weaknesses", "opportunities", "threats"}, swot.Required)
	require.NotNil(t, swot.Properties["threats"].Items)
	assert.EqualValues(t, "STRING", swot.Properties["threats"].Items.Type)

	score := s.Properties["overallScore"]
	require.NotNil(t, score.Minimum)
	require.NotNil(t, score.Maximum)
	assert.Equal(t, 0.0, *score.Minimum)
	assert.Equal(t, 100.0, *score.Maximum)
}
