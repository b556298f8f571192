package api

import (
	"context"
	"sync"
)

// MockResponse is a canned result for one MockClient call.
type MockResponse struct {
	Message   string
	Questions []Question
	Report    *ScoreReport
	Err       error
}

// MockCall records the arguments of one MockClient call.
type MockCall struct {
	Operation   Operation
	Username    string
	Credentials *Credentials
	Submission  *Submission
}

// MockClient is a deterministic Client for tests. Each operation has its own
// FIFO queue of responses; an empty queue yields ErrUnavailable.
type MockClient struct {
	mu     sync.Mutex
	queues map[Operation][]MockResponse
	Calls  []MockCall
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{queues: make(map[Operation][]MockResponse)}
}

// On queues responses for op and returns the client for chaining.
func (m *MockClient) On(op Operation, responses ...MockResponse) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[op] = append(m.queues[op], responses...)
	return m
}

// CallCount returns how many times op was called.
func (m *MockClient) CallCount(op Operation) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Operation == op {
			n++
		}
	}
	return n
}

// LastSubmission returns the most recent submission, or nil.
func (m *MockClient) LastSubmission() *Submission {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Calls) - 1; i >= 0; i-- {
		if m.Calls[i].Submission != nil {
			return m.Calls[i].Submission
		}
	}
	return nil
}

func (m *MockClient) next(call MockCall) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, call)
	q := m.queues[call.Operation]
	if len(q) == 0 {
		return MockResponse{Err: &ErrUnavailable{Operation: call.Operation}}
	}
	m.queues[call.Operation] = q[1:]
	return q[0]
}

func (m *MockClient) Register(_ context.Context, creds Credentials) (string, error) {
	resp := m.next(MockCall{Operation: OpRegister, Username: creds.Username, Credentials: &creds})
	return resp.Message, resp.Err
}

func (m *MockClient) Authenticate(_ context.Context, creds Credentials) (string, error) {
	resp := m.next(MockCall{Operation: OpAuthenticate, Username: creds.Username, Credentials: &creds})
	return resp.Message, resp.Err
}

func (m *MockClient) FetchQuestions(_ context.Context, username string) ([]Question, error) {
	resp := m.next(MockCall{Operation: OpFetchQuestions, Username: username})
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Questions, nil
}

func (m *MockClient) SubmitAnswers(_ context.Context, sub Submission) (*ScoreReport, error) {
	copied := sub
	copied.Answers = append([]ResponseRecord(nil), sub.Answers...)
	resp := m.next(MockCall{Operation: OpSubmitAnswers, Username: sub.Username, Submission: &copied})
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Report, nil
}
