package api

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bloomquiz/internal/store"
)

type recorderStub struct {
	events []store.CallEventData
	err    error
}

func (r *recorderStub) AppendCall(_ context.Context, data store.CallEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	var buf bytes.Buffer
	rec := &recorderStub{}
	mock := NewMockClient().On(OpFetchQuestions, MockResponse{Questions: []Question{{ID: NewQuestionID("1"), Text: "q"}}})
	c := WithLogging(mock, rec, zerolog.New(&buf))

	_, err := c.FetchQuestions(context.Background(), "ada")
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, "fetch_questions", ev.Operation)
	assert.Equal(t, "ada", ev.Username)
	assert.True(t, ev.Success)
	assert.Empty(t, ev.ErrorMessage)
	assert.Contains(t, buf.String(), `"operation":"fetch_questions"`)
}

func TestLogging_RecordsRejection(t *testing.T) {
	rec := &recorderStub{}
	mock := NewMockClient().On(OpAuthenticate, MockResponse{
		Err: &ErrRejected{Operation: OpAuthenticate, StatusCode: 400, Message: "Invalid username or password"},
	})
	c := WithLogging(mock, rec, zerolog.Nop())

	_, err := c.Authenticate(context.Background(), Credentials{Username: "ada", Password: "x"})
	require.Error(t, err)

	require.Len(t, rec.events, 1)
	assert.False(t, rec.events[0].Success)
	assert.Equal(t, 400, rec.events[0].StatusCode)
	assert.Contains(t, rec.events[0].ErrorMessage, "Invalid username or password")
}

func TestLogging_RecorderFailureDoesNotFailCall(t *testing.T) {
	rec := &recorderStub{err: errors.New("disk full")}
	mock := NewMockClient().On(OpRegister, MockResponse{Message: "Signup successful"})
	c := WithLogging(mock, rec, zerolog.Nop())

	msg, err := c.Register(context.Background(), Credentials{Username: "ada", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Signup successful", msg)
}

func TestLogging_NilRecorder(t *testing.T) {
	mock := NewMockClient().On(OpSubmitAnswers, MockResponse{Report: &ScoreReport{Feedback: "ok"}})
	c := WithLogging(mock, nil, zerolog.Nop())

	report, err := c.SubmitAnswers(context.Background(), Submission{Username: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ok", report.Feedback)
}
