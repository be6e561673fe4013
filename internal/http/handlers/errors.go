// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase, snake_case, and stable: clients are expected to branch
// on them for programmatic error handling, while the accompanying message is
// for humans. Handlers select the most specific matching code and pass it to
// `fail()` along with the corresponding HTTP status.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeSearchFailed     = "search_failed"
	ErrCodeAnalyzeFailed    = "analyze_failed"
	ErrCodeAnswerFailed     = "answer_failed"
	ErrCodeUpstreamNoReply  = "upstream_no_reply"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
