// Package quiz runs one assessment: fetch questions, collect timed answers,
// submit them for scoring.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/session"
)

// MaxQuestions caps how many fetched questions are presented.
const MaxQuestions = 5

var (
	ErrNoSession      = errors.New("no active session: log in first")
	ErrNoQuestions    = errors.New("the server returned no questions")
	ErrEmptyAnswer    = errors.New("answer is required")
	ErrNotPresenting  = errors.New("no question is being presented")
	ErrNotSubmitting  = errors.New("answers are not ready to submit")
	ErrNothingToRetry = errors.New("nothing to retry")
)

// Phase is the runner's lifecycle state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePresenting
	PhaseSubmitting
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Runner holds the state of one quiz attempt. It is not safe for
// concurrent mutation; FetchQuestions and SubmitAnswers only read and may
// run off the caller's goroutine while the runner sits in Loading or
// Submitting.
type Runner struct {
	sess   session.Session
	client api.Client
	now    func() time.Time

	phase     Phase
	questions []api.Question
	index     int
	mark      time.Time
	records   []api.ResponseRecord
	report    *api.ScoreReport
	err       error
	failedIn  Phase
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock replaces time.Now for response timing.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner in the Loading phase.
func NewRunner(s session.Session, client api.Client, opts ...Option) *Runner {
	r := &Runner{sess: s, client: client, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Runner) Session() session.Session { return r.sess }
func (r *Runner) Phase() Phase             { return r.phase }
func (r *Runner) Index() int               { return r.index }
func (r *Runner) Total() int               { return len(r.questions) }
func (r *Runner) Report() *api.ScoreReport { return r.report }

// Err is the failure reason while in PhaseFailed.
func (r *Runner) Err() error { return r.err }

// FailedIn is the phase that failed while in PhaseFailed.
func (r *Runner) FailedIn() Phase { return r.failedIn }

// Current returns the question being presented.
func (r *Runner) Current() (api.Question, bool) {
	if r.phase != PhasePresenting {
		return api.Question{}, false
	}
	return r.questions[r.index], true
}

// IsLast reports whether the current question is the final one.
func (r *Runner) IsLast() bool {
	return r.phase == PhasePresenting && r.index == len(r.questions)-1
}

// Records returns a copy of the answers collected so far.
func (r *Runner) Records() []api.ResponseRecord {
	out := make([]api.ResponseRecord, len(r.records))
	copy(out, r.records)
	return out
}

// FetchQuestions asks the question service for this user's questions.
// Without an active session no request is made.
func (r *Runner) FetchQuestions(ctx context.Context) ([]api.Question, error) {
	if !r.sess.Active() {
		return nil, ErrNoSession
	}
	return r.client.FetchQuestions(ctx, r.sess.Username)
}

// Begin presents the first of at most MaxQuestions questions and starts
// its timer.
func (r *Runner) Begin(questions []api.Question) error {
	if len(questions) == 0 {
		r.Fail(ErrNoQuestions)
		return ErrNoQuestions
	}
	n := min(len(questions), MaxQuestions)
	r.questions = make([]api.Question, n)
	copy(r.questions, questions[:n])
	r.records = nil
	r.index = 0
	r.mark = r.now()
	r.phase = PhasePresenting
	r.err = nil
	return nil
}

// Answer records the response to the current question, timed from when it
// was shown until now. It returns done once the last question is answered,
// leaving the runner in PhaseSubmitting.
func (r *Runner) Answer(text string) (done bool, err error) {
	if r.phase != PhasePresenting {
		return false, ErrNotPresenting
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false, ErrEmptyAnswer
	}

	end := r.now()
	r.records = append(r.records, api.ResponseRecord{
		QuestionID:   r.questions[r.index].ID,
		UserResponse: text,
		StartTime:    r.mark,
		EndTime:      end,
	})
	r.mark = end

	if r.index == len(r.questions)-1 {
		r.phase = PhaseSubmitting
		return true, nil
	}
	r.index++
	return false, nil
}

// Submission is the payload for the scoring service.
func (r *Runner) Submission() api.Submission {
	return api.Submission{Username: r.sess.Username, Answers: r.Records()}
}

// SubmitAnswers sends every record to the scoring service in one call.
func (r *Runner) SubmitAnswers(ctx context.Context) (*api.ScoreReport, error) {
	if r.phase != PhaseSubmitting {
		return nil, ErrNotSubmitting
	}
	return r.client.SubmitAnswers(ctx, r.Submission())
}

// Complete stores the report and finishes the attempt.
func (r *Runner) Complete(report *api.ScoreReport) {
	r.report = report
	r.phase = PhaseDone
	r.err = nil
}

// Fail moves to PhaseFailed, remembering which phase failed.
func (r *Runner) Fail(err error) {
	if r.phase != PhaseFailed {
		r.failedIn = r.phase
	}
	r.err = err
	r.phase = PhaseFailed
}

// Retry returns to the phase that failed. Collected records are kept so a
// failed submission can be resent without answering again.
func (r *Runner) Retry() (Phase, error) {
	if r.phase != PhaseFailed {
		return r.phase, ErrNothingToRetry
	}
	r.err = nil
	switch r.failedIn {
	case PhaseSubmitting:
		r.phase = PhaseSubmitting
	default:
		r.questions = nil
		r.records = nil
		r.index = 0
		r.phase = PhaseLoading
	}
	return r.phase, nil
}

// Start fetches and begins in one step.
func (r *Runner) Start(ctx context.Context) error {
	qs, err := r.FetchQuestions(ctx)
	if err != nil {
		r.Fail(err)
		return err
	}
	return r.Begin(qs)
}

// Finish submits and completes in one step.
func (r *Runner) Finish(ctx context.Context) (*api.ScoreReport, error) {
	report, err := r.SubmitAnswers(ctx)
	if errors.Is(err, ErrNotSubmitting) {
		return nil, err
	}
	if err != nil {
		r.Fail(err)
		return nil, err
	}
	r.Complete(report)
	return report, nil
}
