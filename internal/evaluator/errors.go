package evaluator

import (
	"errors"
)

// Error kinds. Match with errors.Is; use errors.As with *Error for details.
var (
	// ErrConfiguration means no credential is configured. Not retryable.
	ErrConfiguration = errors.New("evaluator is not configured")
	// ErrEmptyProposal means the caller submitted blank text.
	ErrEmptyProposal = errors.New("proposal is empty")
	// ErrTransport covers network failures, non-success statuses and
	// cancelled or expired contexts. The caller may retry.
	ErrTransport = errors.New("model request failed")
	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrMalformedResponse means the response text is not valid JSON.
	ErrMalformedResponse = errors.New("model response is not valid JSON")
	// ErrSchemaViolation means the JSON does not satisfy the evaluation schema.
	ErrSchemaViolation = errors.New("model response does not match the evaluation schema")
)

// Error is returned for every failed evaluation.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Detail is additional context, e.g. the list of schema violations.
	Detail string
	// Cause is the underlying error, if any.
	Cause error
}

// NewError builds an *Error of the given kind.
func NewError(kind error, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Retryable reports whether resubmitting the same proposal could succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransport)
}

// KindName returns a stable label for the error kind, used in metrics,
// logs and API responses.
func KindName(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrEmptyProposal):
		return "empty_proposal"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrSchemaViolation):
		return "schema_violation"
	default:
		return "unknown"
	}
}
