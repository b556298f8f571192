// Package screens holds what every screen needs to reach the service, the
// local store and each other. Screens construct their successors through
// the factories here instead of importing one another.
package screens

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/auth"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/session"
	"github.com/abhisek/bloomquiz/internal/store"
)

// HistoryLimit is how many past sessions the time chart shows.
const HistoryLimit = 10

// AttemptStore records and lists scored attempts. store.AttemptRepo
// satisfies it.
type AttemptStore interface {
	Record(ctx context.Context, data store.AttemptData) (*store.Attempt, error)
	ListByUser(ctx context.Context, username string, limit int) ([]store.Attempt, error)
}

// Env is shared by all screens. Attempts may be nil, in which case no
// history is kept. The Quiz notice is shown until the first answer.
type Env struct {
	Client   api.Client
	Sessions session.Store
	Attempts AttemptStore
	Log      zerolog.Logger
	Now      func() time.Time

	Landing   func() screen.Screen
	Auth      func(mode auth.Mode) screen.Screen
	Quiz      func(s session.Session, notice string) screen.Screen
	Dashboard func(s session.Session, report *api.ScoreReport) screen.Screen
	History   func(s session.Session) screen.Screen
}

// Clock returns Now, or time.Now when unset.
func (e *Env) Clock() func() time.Time {
	if e.Now != nil {
		return e.Now
	}
	return time.Now
}

// AttemptFromReport converts a scored submission into a history entry.
func AttemptFromReport(username string, questions int, r *api.ScoreReport) store.AttemptData {
	return store.AttemptData{
		Username:           username,
		Questions:          questions,
		TotalScore:         r.TotalScore,
		RememberingScore:   r.RememberingScore,
		UnderstandingScore: r.UnderstandingScore,
		ApplyingScore:      r.ApplyingScore,
		AverageTimeMs:      r.AverageTimeTaken,
		CorrectAnswers:     r.CorrectAnswers,
		IncorrectAnswers:   r.IncorrectAnswers,
		Feedback:           r.Feedback,
	}
}
