package api

import (
	"context"
	"time"
)

// Client is the abstraction over the external assessment service.
// Every call is bounded: implementations must return once ctx is done or
// their own per-call timeout elapses.
type Client interface {
	// Register creates a user. Returns the server's message.
	Register(ctx context.Context, creds Credentials) (string, error)

	// Authenticate checks credentials. Returns the server's message.
	Authenticate(ctx context.Context, creds Credentials) (string, error)

	// FetchQuestions returns the question set selected for username.
	FetchQuestions(ctx context.Context, username string) ([]Question, error)

	// SubmitAnswers sends a completed attempt and returns its score report.
	SubmitAnswers(ctx context.Context, sub Submission) (*ScoreReport, error)
}

// Operation names a Client call for logging and error reporting.
type Operation string

const (
	OpRegister       Operation = "register"
	OpAuthenticate   Operation = "authenticate"
	OpFetchQuestions Operation = "fetch_questions"
	OpSubmitAnswers  Operation = "submit_answers"
)

// Config holds the connection settings for the assessment service.
type Config struct {
	// BaseURL is the service origin, e.g. http://localhost:5000.
	BaseURL string

	// Timeout bounds a single HTTP call, including reading the body.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retries for idempotent calls.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultBaseURL is where the assessment service listens by default.
const DefaultBaseURL = "http://localhost:5000"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 15 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}
