package service

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/musekitchen/muse-api/internal/generation"
)

// ErrorCategory is a fixed user-facing failure classification.
type ErrorCategory struct {
	// Code is a stable machine-readable identifier.
	Code string `json:"code"`

	// Title is the user-facing headline.
	Title string `json:"title"`

	// Detail explains the failure and the remedy.
	Detail string `json:"detail"`
}

// The fixed set of user-facing failure categories.
var (
	CategoryConfiguration = ErrorCategory{
		Code:   "configuration",
		Title:  "Configuration Error",
		Detail: "The kitchen is missing its API credential. Set the Gemini API key and restart.",
	}

	CategoryBlocked = ErrorCategory{
		Code:   "blocked",
		Title:  "Inspiration Blocked",
		Detail: "The model declined to answer or returned nothing. Try different photos or a different request.",
	}

	CategoryConnection = ErrorCategory{
		Code:   "connection",
		Title:  "Connection Lost",
		Detail: "The kitchen could not reach the model. Check your connection and try again.",
	}

	CategoryConfusion = ErrorCategory{
		Code:   "confusion",
		Title:  "Creative Confusion",
		Detail: "The model answered in a shape we could not read. Try again.",
	}

	CategoryUnknown = ErrorCategory{
		Code:   "unknown",
		Title:  "The Muse Was Silent",
		Detail: "Something unexpected went wrong. Try again in a moment.",
	}
)

// ClassifiedError pairs the original failure with its user-facing
// category. The wrapped error is for logs; clients only ever see the
// category.
type ClassifiedError struct {
	Category ErrorCategory
	Err      error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.Err == nil {
		return e.Category.Title
	}
	return e.Category.Title + ": " + e.Err.Error()
}

// Unwrap exposes the original failure for errors.Is/As.
func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Classify maps a gateway failure onto its user-facing category.
//
// Classification is by the explicit error taxonomy first; message
// inspection is reserved for errors genuinely originating as opaque
// provider/transport text. First match wins, in the documented order:
// credential, blocked/empty, network, JSON, generic.
func Classify(err error) *ClassifiedError {
	category := CategoryUnknown

	var netErr net.Error
	switch {
	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrInvalidConfig):
		category = CategoryConfiguration

	case errors.Is(err, generation.ErrEmptyResponse),
		errors.Is(err, generation.ErrContentBlocked):
		category = CategoryBlocked

	case errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		containsAny(err, "connection refused", "no such host", "network is unreachable", "fetch failed"):
		category = CategoryConnection

	case errors.Is(err, generation.ErrMalformedResponse),
		containsAny(err, "json", "JSON"):
		category = CategoryConfusion
	}

	return &ClassifiedError{Category: category, Err: err}
}

// containsAny reports whether the error message contains any of the
// given substrings. Used only as a fallback for opaque upstream errors.
func containsAny(err error, substrings ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range substrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
