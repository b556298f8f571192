package store

import (
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Operation string    // exact operation name, empty = all
	Username  string    // exact username, empty = all
	Failed    bool      // only unsuccessful calls
}

// CallEventData captures a single assessment service call.
type CallEventData struct {
	Operation    string
	Username     string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallEvent is a recorded CallEventData with its ordering metadata.
type CallEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	CallEventData
}

// CallStat aggregates calls for one operation.
type CallStat struct {
	Operation    string
	Calls        int
	Failures     int
	AvgLatencyMs float64
	MaxLatencyMs int64
}

// AttemptData captures one scored quiz submission.
type AttemptData struct {
	Username           string
	Questions          int
	TotalScore         float64
	RememberingScore   float64
	UnderstandingScore float64
	ApplyingScore      float64
	AverageTimeMs      float64
	CorrectAnswers     int
	IncorrectAnswers   int
	Feedback           string
}

// Attempt is a recorded AttemptData.
type Attempt struct {
	ID          string
	Sequence    int64
	SubmittedAt time.Time
	AttemptData
}
