package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRejected indicates the service answered with a 4xx status. Message is
// the server-supplied explanation and is safe to show to the user.
type ErrRejected struct {
	Operation  Operation
	StatusCode int
	Message    string
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("%s rejected (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
}

// ErrUnavailable indicates a network failure or a 5xx response.
type ErrUnavailable struct {
	Operation  Operation
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *ErrUnavailable) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: service unavailable (HTTP %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: service unavailable: %v", e.Operation, e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrTimeout indicates the per-call deadline elapsed before a response arrived.
type ErrTimeout struct {
	Operation Operation
	After     time.Duration
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.After)
}

// ErrMalformed indicates the response body was not the expected JSON.
type ErrMalformed struct {
	Operation Operation
	Body      []byte
	Err       error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Operation, e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var rej *ErrRejected
	if errors.As(err, &rej) {
		return rej.StatusCode
	}
	var un *ErrUnavailable
	if errors.As(err, &un) {
		return un.StatusCode
	}
	return 0
}

// UserMessage renders err as text for an alert. Server rejections show the
// server's own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var rej *ErrRejected
	if errors.As(err, &rej) {
		if rej.Message != "" {
			return rej.Message
		}
		return http.StatusText(rej.StatusCode)
	}
	var to *ErrTimeout
	if errors.As(err, &to) {
		return fmt.Sprintf("The server did not respond within %s. Please try again.", to.After)
	}
	var un *ErrUnavailable
	if errors.As(err, &un) {
		return "Could not reach the assessment service. Please try again."
	}
	var mal *ErrMalformed
	if errors.As(err, &mal) {
		return "The assessment service sent an unexpected response."
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled."
	}
	return err.Error()
}
