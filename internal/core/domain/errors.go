package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUsage indicates a required argument is missing or empty.
	// Detected before any side effect; no stages run.
	ErrUsage = errors.New("usage error")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptySource indicates the source document has no content to process.
	ErrEmptySource = errors.New("source text is empty")

	// ErrUnknownKind indicates an unrecognised dataset kind.
	ErrUnknownKind = errors.New("unknown dataset kind")

	// ErrEvaluationFailed indicates a generated dataset did not pass quality checks.
	ErrEvaluationFailed = errors.New("dataset failed quality checks")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Generation requires a working LLM provider.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the provider API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
