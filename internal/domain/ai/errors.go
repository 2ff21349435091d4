package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyResponse means the provider answered 2xx without usable text.
	ErrEmptyResponse = errors.New("ai: empty response")
	// ErrUnparsable means no JSON object could be extracted from the model output.
	ErrUnparsable = errors.New("ai: unparsable response")
)

// ErrorKind classifies a non-2xx answer from the provider.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindRateLimited  ErrorKind = "rate_limited"
	KindOther        ErrorKind = "other"
)

// UpstreamError carries the status and body text of a failed provider call.
type UpstreamError struct {
	Kind   ErrorKind
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "ai: authentication failed - API key may be invalid or expired"
	case KindForbidden:
		return "ai: API access forbidden - check API key permissions"
	case KindRateLimited:
		return "ai: rate limit exceeded - too many requests"
	}
	return fmt.Sprintf("ai: upstream error: %d - %s", e.Status, e.Body)
}

// NewUpstreamError classifies status into one of the four kinds.
func NewUpstreamError(status int, body string) *UpstreamError {
	kind := KindOther
	switch status {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}
	return &UpstreamError{Kind: kind, Status: status, Body: body}
}

// IsAuth reports whether err is an upstream 401/403.
func IsAuth(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind == KindUnauthorized || ue.Kind == KindForbidden
	}
	return false
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Kind == KindRateLimited
}
