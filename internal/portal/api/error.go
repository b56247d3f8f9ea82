package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/veridoc/portal/internal/common"
)

// Backend error codes the client branches on. Other codes are surfaced
// verbatim through Error.Message.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeNotValidated      = "NOT_VALIDATED"
	CodeUsageLimitReached = "USAGE_LIMIT_REACHED"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// UsageLimitMessage is the user-facing copy shown when the backend reports
// USAGE_LIMIT_REACHED.
const UsageLimitMessage = "You have reached your 10-document validation limit. Upgrade your plan to continue validating documents."

// GenericErrorMessage is the fallback when no structured message is available.
const GenericErrorMessage = "Something went wrong"

// UnreachableMessage is shown for transport-level failures.
const UnreachableMessage = "Service unreachable. Please try again."

// Error is the structured error envelope returned by the backend:
// {"success": false, "error": {"code": ..., "message": ...}}.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap maps the backend code (or HTTP status) onto the shared sentinel
// errors, so call sites can use errors.Is without string comparison.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeUnauthorized:
		return common.ErrUnauthorized
	case CodeForbidden:
		return common.ErrForbidden
	case CodeNotFound:
		return common.ErrNotFound
	case CodeNotValidated:
		return common.ErrNotValidated
	case CodeUsageLimitReached:
		return common.ErrUsageLimitReached
	}
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	}
	return nil
}

// UserMessage extracts a human-readable message from any error produced by
// this package: the envelope message when present, the usage-limit copy for
// quota errors, a transport message for unreachable services, and a generic
// fallback otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, common.ErrUsageLimitReached) {
		return UsageLimitMessage
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, common.ErrUnavailable) {
		return UnreachableMessage
	}
	return GenericErrorMessage
}
