package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Credentials are sent to the Authentication Service on signup and login.
// The password is never stored locally.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// QuestionID identifies a question. The service may send it as a JSON
// number or a JSON string; it is echoed back in the same form, since the
// service matches answers to questions by exact id.
type QuestionID struct {
	value  string
	number bool
}

var plainNumber = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// NewQuestionID builds an id in code. Plain decimal integers are sent as
// JSON numbers, anything else as a JSON string.
func NewQuestionID(s string) QuestionID {
	return QuestionID{value: s, number: plainNumber.MatchString(s)}
}

// String returns the id as the service wrote it, without JSON quoting.
func (id QuestionID) String() string { return id.value }

// IsNumber reports whether the id travels as a JSON number.
func (id QuestionID) IsNumber() bool { return id.number }

func (id *QuestionID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode question id: %w", err)
	}
	switch t := v.(type) {
	case json.Number:
		// Keep the literal as written so 1e2 goes back as 1e2.
		*id = QuestionID{value: t.String(), number: true}
	case string:
		*id = QuestionID{value: t}
	default:
		return fmt.Errorf("question id must be a number or string, got %s", string(b))
	}
	return nil
}

func (id QuestionID) MarshalJSON() ([]byte, error) {
	if id.number {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// Question is a single quiz prompt owned by the Question Service.
type Question struct {
	ID   QuestionID `json:"id"`
	Text string     `json:"Question"`

	// Label is the cognitive level (Remembering, Understanding, Applying)
	// when the service includes it.
	Label string `json:"Label,omitempty"`
}

// ResponseRecord is one answer plus its timing. Records are immutable once
// appended to an attempt.
type ResponseRecord struct {
	QuestionID   QuestionID
	UserResponse string
	StartTime    time.Time
	EndTime      time.Time
}

// Duration returns how long the learner spent on the question.
func (r ResponseRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// responseRecordWire is the on-the-wire form: times are epoch milliseconds.
type responseRecordWire struct {
	QuestionID   QuestionID `json:"question_id"`
	UserResponse string     `json:"user_response"`
	StartTime    int64      `json:"start_time"`
	EndTime      int64      `json:"end_time"`
}

func (r ResponseRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseRecordWire{
		QuestionID:   r.QuestionID,
		UserResponse: r.UserResponse,
		StartTime:    r.StartTime.UnixMilli(),
		EndTime:      r.EndTime.UnixMilli(),
	})
}

func (r *ResponseRecord) UnmarshalJSON(b []byte) error {
	var w responseRecordWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = ResponseRecord{
		QuestionID:   w.QuestionID,
		UserResponse: w.UserResponse,
		StartTime:    time.UnixMilli(w.StartTime),
		EndTime:      time.UnixMilli(w.EndTime),
	}
	return nil
}

// Submission is the full set of answers for one quiz attempt.
type Submission struct {
	Username string           `json:"username"`
	Answers  []ResponseRecord `json:"answers"`
}

// ScoreReport is the Scoring Service's verdict on a submission.
// Category scores are cumulative across the user's sessions.
type ScoreReport struct {
	Feedback           string  `json:"feedback"`
	TotalScore         float64 `json:"total_score"`
	RememberingScore   float64 `json:"remembering_score"`
	UnderstandingScore float64 `json:"understanding_score"`
	ApplyingScore      float64 `json:"applying_score"`

	// AverageTimeTaken is the mean time per answer in milliseconds.
	AverageTimeTaken float64 `json:"average_time_taken"`

	CorrectAnswers   int `json:"correct_answers,omitempty"`
	IncorrectAnswers int `json:"incorrect_answers,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type questionsRequest struct {
	Username string `json:"username"`
}

type questionsResponse struct {
	Questions []Question `json:"questions"`
}
