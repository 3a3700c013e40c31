package controller

import (
	"context"
	"errors"

	"github.com/timvw/pitch-check/internal/evaluator"
)

// FailureMessage returns the user-facing message for an evaluation error.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, evaluator.ErrConfiguration):
		return "The AI evaluator is not configured: no API key was found. Set an API key and try again."
	case errors.Is(err, evaluator.ErrEmptyProposal):
		return "Describe your business proposal before evaluating it."
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI service did not answer in time. Please try again."
	case errors.Is(err, evaluator.ErrTransport):
		return "Could not reach the AI service. Please try again."
	case errors.Is(err, evaluator.ErrEmptyResponse):
		return "Failed to get evaluation from AI. Please try again."
	case errors.Is(err, evaluator.ErrMalformedResponse):
		return "The AI returned an evaluation that could not be read. Please try again."
	case errors.Is(err, evaluator.ErrSchemaViolation):
		return "The AI returned an incomplete evaluation. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
