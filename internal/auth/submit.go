package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/session"
)

// Next names where the user goes after a successful submit.
type Next int

const (
	NextNone  Next = iota
	NextQuiz       // logged in
	NextLogin      // signed up; log in next
)

// Outcome is the result of a successful submit.
type Outcome struct {
	Next    Next
	Message string
	Session session.Session
}

// Submit validates the form and sends exactly one request when it is valid.
// A successful login saves the session; a successful signup leaves it
// untouched. Failures return the error with no navigation and no session
// write.
func Submit(ctx context.Context, client api.Client, sessions session.Store, f Form) (Outcome, error) {
	if err := f.Validate(); err != nil {
		return Outcome{}, err
	}

	creds := api.Credentials{
		Username: strings.TrimSpace(f.Name),
		Password: f.Password,
	}

	if f.Mode == ModeSignup {
		msg, err := client.Register(ctx, creds)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Next: NextLogin, Message: msg}, nil
	}

	msg, err := client.Authenticate(ctx, creds)
	if err != nil {
		return Outcome{}, err
	}

	s := session.Session{Username: creds.Username}
	if err := sessions.Save(ctx, s); err != nil {
		return Outcome{}, fmt.Errorf("save session: %w", err)
	}
	return Outcome{Next: NextQuiz, Message: msg, Session: s}, nil
}
