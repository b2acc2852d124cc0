package analyses

import "errors"

var (
	// ErrNotFound covers both a missing record and one that fails to parse;
	// callers cannot distinguish the two.
	ErrNotFound = errors.New("analysis not found")
	// ErrPersistence wraps write failures in the analysis store.
	ErrPersistence = errors.New("failed to save analysis")
	// ErrInsufficientText rejects documents whose trimmed text is too short
	// to analyze.
	ErrInsufficientText = errors.New("document contains insufficient text for analysis")
	// ErrEmailNotConfigured is returned when a mail operation is requested
	// but no mail transport is configured.
	ErrEmailNotConfigured = errors.New("email notifications are not configured")
)
