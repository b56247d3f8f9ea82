// Package common defines shared constants and sentinel errors used across
// the portal client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Backend error classes, mapped from the response envelope.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrUsageLimitReached corresponds to the USAGE_LIMIT_REACHED business
	// error returned when a free account exhausts its validation quota.
	ErrUsageLimitReached = errors.New("usage limit reached")

	// ErrNotValidated is returned when results are requested for a document
	// that has not been run through the validation pipeline yet.
	ErrNotValidated = errors.New("document not validated")

	// Transport-level errors (backend or OCR service unreachable).
	ErrUnavailable = errors.New("service unavailable")
)
