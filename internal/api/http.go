package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPClient talks to the assessment service over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.client = hc }
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: DefaultConfig().Timeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the service origin this client targets.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Register(ctx context.Context, creds Credentials) (string, error) {
	var out messageResponse
	if err := c.post(ctx, OpRegister, "/signup", creds, messageSchema, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	var out messageResponse
	if err := c.post(ctx, OpAuthenticate, "/login", creds, messageSchema, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) FetchQuestions(ctx context.Context, username string) ([]Question, error) {
	var out questionsResponse
	if err := c.post(ctx, OpFetchQuestions, "/questions", questionsRequest{Username: username}, questionsSchema, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (c *HTTPClient) SubmitAnswers(ctx context.Context, sub Submission) (*ScoreReport, error) {
	if sub.Answers == nil {
		sub.Answers = []ResponseRecord{}
	}
	var out ScoreReport
	if err := c.post(ctx, OpSubmitAnswers, "/submit_answers", sub, scoreReportSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends body as JSON and decodes a 2xx response into out.
func (c *HTTPClient) post(ctx context.Context, op Operation, path string, body any, schema *responseSchema, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return c.transportError(ctx, callCtx, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.transportError(ctx, callCtx, op, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := validateBody(op, schema, raw); err != nil {
			return err
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &ErrMalformed{Operation: op, Body: raw, Err: err}
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ErrRejected{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw, resp.StatusCode),
		}
	default:
		return &ErrUnavailable{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(serverMessage(raw, resp.StatusCode)),
		}
	}
}

// transportError classifies a failure that happened before a full response
// was read.
func (c *HTTPClient) transportError(parent, callCtx context.Context, op Operation, err error) error {
	if parent.Err() != nil {
		return fmt.Errorf("%s: %w", op, parent.Err())
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &ErrTimeout{Operation: op, After: c.timeout}
	}
	return &ErrUnavailable{Operation: op, Err: err}
}

// serverMessage pulls "message" or "error" out of a JSON error body,
// falling back to the status text.
func serverMessage(raw []byte, status int) string {
	var m messageResponse
	if err := json.Unmarshal(raw, &m); err == nil {
		if m.Message != "" {
			return m.Message
		}
		if m.Error != "" {
			return m.Error
		}
	}
	return http.StatusText(status)
}
