package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// AttemptRepo records scored submissions so the dashboard can chart one
// point per session.
type AttemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var attemptColumns = []string{
	"id", "sequence", "submitted_at", "username", "questions",
	"total_score", "remembering_score", "understanding_score", "applying_score",
	"average_time_ms", "correct_answers", "incorrect_answers", "feedback",
}

// Record appends an attempt and returns it with its ID and sequence set.
func (r *AttemptRepo) Record(ctx context.Context, data AttemptData) (*Attempt, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	a := &Attempt{
		ID:          uuid.NewString(),
		Sequence:    seqNum,
		SubmittedAt: time.Now().UTC().Truncate(time.Millisecond),
		AttemptData: data,
	}

	query, args := builder().Insert(attemptsTable).
		Columns(attemptColumns...).
		Values(
			a.ID, a.Sequence, a.SubmittedAt.UnixMilli(), data.Username, data.Questions,
			data.TotalScore, data.RememberingScore, data.UnderstandingScore, data.ApplyingScore,
			data.AverageTimeMs, data.CorrectAnswers, data.IncorrectAnswers, data.Feedback,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return a, nil
}

// ListByUser returns the user's most recent attempts, oldest first.
// limit <= 0 returns all of them.
func (r *AttemptRepo) ListByUser(ctx context.Context, username string, limit int) ([]Attempt, error) {
	b := builder()
	t := b.Table(attemptsTable)
	sel := b.Select(attemptColumns...).
		From(t).
		Where(entsql.EQ(t.C("username"), username)).
		OrderBy(entsql.Desc(t.C("sequence")))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a           Attempt
			submittedAt int64
		)
		if err := rows.Scan(
			&a.ID, &a.Sequence, &submittedAt, &a.Username, &a.Questions,
			&a.TotalScore, &a.RememberingScore, &a.UnderstandingScore, &a.ApplyingScore,
			&a.AverageTimeMs, &a.CorrectAnswers, &a.IncorrectAnswers, &a.Feedback,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.SubmittedAt = time.UnixMilli(submittedAt).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	slices.Reverse(out)
	return out, nil
}

// AverageTimes returns the average time per question of each attempt in
// ListByUser order.
func AverageTimes(attempts []Attempt) []float64 {
	out := make([]float64, len(attempts))
	for i, a := range attempts {
		out[i] = a.AverageTimeMs
	}
	return out
}
