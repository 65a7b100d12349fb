package github

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a repository or file does not exist.
var ErrNotFound = errors.New("not found")

// RateLimitError is returned when GitHub refuses a request because the rate
// limit is exhausted.
type RateLimitError struct {
	Reset time.Time // zero if GitHub did not say
}

func (e *RateLimitError) Error() string {
	if e.Reset.IsZero() {
		return "github rate limit exceeded"
	}
	return fmt.Sprintf("github rate limit exceeded (resets %s)", e.Reset.Local().Format(time.Kitchen))
}

// StatusError is an unexpected HTTP status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("github: unexpected status %d: %s", e.StatusCode, e.Message)
}
