package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/timvw/pitch-check/internal/controller"
	"github.com/timvw/pitch-check/internal/evaluator"
	"github.com/timvw/pitch-check/internal/model"
	"go.uber.org/zap"
)

type evaluateRequest struct {
	Proposal string `json:"proposal"`
}

type evaluateResponse struct {
	Evaluation *model.BusinessEvaluation `json:"evaluation"`
	Usage      model.TokenUsage          `json:"usage"`
	RequestID  string                    `json:"requestId"`
	Provider   string                    `json:"provider"`
	Model      string                    `json:"model"`
	DurationMS int64                     `json:"durationMs"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "proposal_too_large",
				fmt.Sprintf("The proposal is too long. Requests are limited to %d KiB.", tooLarge.Limit>>10))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body.")
		return
	}
	if model.IsBlank(req.Proposal) {
		writeError(w, http.StatusBadRequest, "empty_proposal", controller.FailureMessage(evaluator.ErrEmptyProposal))
		return
	}

	ctx := r.Context()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	res, err := s.eval.Evaluate(ctx, req.Proposal)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Warn("evaluate failed", zap.Int("status", status), zap.Error(err))
		}
		writeError(w, status, kindLabel(err), controller.FailureMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Evaluation: res.Evaluation,
		Usage:      res.Usage,
		RequestID:  res.RequestID,
		Provider:   res.Provider,
		Model:      res.Model,
		DurationMS: res.Duration.Milliseconds(),
	})
}

func (s *Server) listExamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.examples)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"configured": s.eval.Configured(),
	})
}

// statusFor maps an evaluation error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, evaluator.ErrEmptyProposal):
		return http.StatusBadRequest
	case errors.Is(err, evaluator.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, evaluator.ErrTransport),
		errors.Is(err, evaluator.ErrEmptyResponse),
		errors.Is(err, evaluator.ErrMalformedResponse),
		errors.Is(err, evaluator.ErrSchemaViolation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// kindLabel is the error kind reported in the JSON error body.
func kindLabel(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return evaluator.KindName(err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}
