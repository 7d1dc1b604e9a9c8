package gateway

import (
	"errors"
	"fmt"
)

type Op string

const (
	OpAnalyze     Op = "analyze"
	OpRecalculate Op = "recalculate"
	OpAdvise      Op = "advise"
)

var (
	ErrNoAPIKeys     = errors.New("no analysis API keys configured")
	ErrEmptyResponse = errors.New("analysis service returned no text")
)

// AnalysisFailure is the only error the gateway returns. Transport, status and
// schema errors are all wrapped into it; callers treat it as "no result".
type AnalysisFailure struct {
	Op     Op
	Reason string
	Err    error
}

func (f *AnalysisFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s failed: %s", f.Op, f.Reason)
	}
	return fmt.Sprintf("%s failed: %s: %v", f.Op, f.Reason, f.Err)
}

func (f *AnalysisFailure) Unwrap() error {
	return f.Err
}

// UserMessage is the retryable message shown to the user.
func (f *AnalysisFailure) UserMessage() string {
	switch f.Op {
	case OpRecalculate:
		return "Recalculation failed. Your edits were kept; try again."
	case OpAdvise:
		return AdviceUnavailableMessage
	default:
		return "Analysis failed. Try again with a clearer photo."
	}
}

// IsRecalculationFailure reports whether err is a failed recalculation.
func IsRecalculationFailure(err error) bool {
	var f *AnalysisFailure
	return errors.As(err, &f) && f.Op == OpRecalculate
}

func fail(op Op, reason string, err error) *AnalysisFailure {
	return &AnalysisFailure{Op: op, Reason: reason, Err: err}
}

// StatusError is a non-2xx answer from the analysis service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis service responded with status %d", e.Code)
	}
	return fmt.Sprintf("analysis service responded with status %d: %s", e.Code, e.Body)
}

// Retryable reports whether a backend error is worth another attempt:
// throttling, server errors and transport failures are; everything else is not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoAPIKeys) || errors.Is(err, ErrEmptyResponse) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == 429 || se.Code >= 500
	}
	return true
}
