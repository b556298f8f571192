package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/bloomquiz/internal/session"
)

// sessionRowID is the only row the sessions table ever holds.
const sessionRowID = 1

// SessionRepo persists the login session across runs. It implements
// session.Store.
type SessionRepo struct {
	db *sql.DB
}

var _ session.Store = (*SessionRepo)(nil)

func (r *SessionRepo) Load(ctx context.Context) (session.Session, error) {
	b := builder()
	t := b.Table(sessionsTable)
	query, args := b.Select(t.C("username")).
		From(t).
		Where(entsql.EQ(t.C("id"), sessionRowID)).
		Query()

	var username string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session.Session{Username: username}, nil
}

func (r *SessionRepo) Save(ctx context.Context, s session.Session) error {
	query, args := builder().Insert(sessionsTable).
		Columns("id", "username", "updated_at").
		Values(sessionRowID, s.Username, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(sessionsTable).
		Where(entsql.EQ("id", sessionRowID)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
