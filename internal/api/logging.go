package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/bloomquiz/internal/store"
)

// CallRecorder persists API call events. store.EventRepo satisfies it.
type CallRecorder interface {
	AppendCall(ctx context.Context, data store.CallEventData) error
}

// LoggingClient is a decorator that records every call as an event and a
// log line.
type LoggingClient struct {
	inner    Client
	recorder CallRecorder
	log      zerolog.Logger
}

var _ Client = (*LoggingClient)(nil)

// WithLogging wraps a Client with event recording. recorder may be nil, in
// which case only the log line is written.
func WithLogging(c Client, recorder CallRecorder, log zerolog.Logger) Client {
	return &LoggingClient{inner: c, recorder: recorder, log: log}
}

func (l *LoggingClient) Register(ctx context.Context, creds Credentials) (string, error) {
	start := time.Now()
	msg, err := l.inner.Register(ctx, creds)
	l.record(ctx, OpRegister, creds.Username, start, err)
	return msg, err
}

func (l *LoggingClient) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	start := time.Now()
	msg, err := l.inner.Authenticate(ctx, creds)
	l.record(ctx, OpAuthenticate, creds.Username, start, err)
	return msg, err
}

func (l *LoggingClient) FetchQuestions(ctx context.Context, username string) ([]Question, error) {
	start := time.Now()
	qs, err := l.inner.FetchQuestions(ctx, username)
	l.record(ctx, OpFetchQuestions, username, start, err)
	return qs, err
}

func (l *LoggingClient) SubmitAnswers(ctx context.Context, sub Submission) (*ScoreReport, error) {
	start := time.Now()
	report, err := l.inner.SubmitAnswers(ctx, sub)
	l.record(ctx, OpSubmitAnswers, sub.Username, start, err)
	return report, err
}

func (l *LoggingClient) record(ctx context.Context, op Operation, username string, start time.Time, err error) {
	latency := time.Since(start)

	data := store.CallEventData{
		Operation:  string(op),
		Username:   username,
		StatusCode: StatusCode(err),
		LatencyMs:  latency.Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	ev := l.log.Info()
	if err != nil {
		ev = l.log.Error().Err(err)
	}
	ev.Str("operation", string(op)).
		Str("username", username).
		Dur("latency", latency).
		Int("status", data.StatusCode).
		Msg("api call")

	if l.recorder == nil {
		return
	}
	// Recording is best effort; the call result is what matters.
	if recErr := l.recorder.AppendCall(context.WithoutCancel(ctx), data); recErr != nil {
		l.log.Warn().Err(recErr).Str("operation", string(op)).Msg("failed to record api call")
	}
}
