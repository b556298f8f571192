package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// EventRepo is the append-only log of assessment service calls.
type EventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *EventRepo) AppendCall(ctx context.Context, data CallEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(callEventsTable).
		Columns("sequence", "timestamp", "operation", "username",
			"status_code", "latency_ms", "success", "error_message").
		Values(seqNum, time.Now().UnixMilli(), data.Operation, data.Username,
			data.StatusCode, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save call event: %w", err)
	}
	return nil
}

// QueryCalls returns recorded calls newest first.
func (r *EventRepo) QueryCalls(ctx context.Context, opts QueryOpts) ([]CallEvent, error) {
	b := builder()
	t := b.Table(callEventsTable)
	sel := b.Select(
		t.C("id"), t.C("sequence"), t.C("timestamp"), t.C("operation"), t.C("username"),
		t.C("status_code"), t.C("latency_ms"), t.C("success"), t.C("error_message"),
	).From(t)

	if preds := callPredicates(t, opts); len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query call events: %w", err)
	}
	defer rows.Close()

	var out []CallEvent
	for rows.Next() {
		var (
			ev CallEvent
			ts int64
		)
		if err := rows.Scan(
			&ev.ID, &ev.Sequence, &ts, &ev.Operation, &ev.Username,
			&ev.StatusCode, &ev.LatencyMs, &ev.Success, &ev.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan call event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

// CallStats aggregates recorded calls per operation, ordered by name.
func (r *EventRepo) CallStats(ctx context.Context, opts QueryOpts) ([]CallStat, error) {
	b := builder()
	t := b.Table(callEventsTable)
	sel := b.Select(
		t.C("operation"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum(t.C("success")), "succeeded"),
		entsql.As(entsql.Avg(t.C("latency_ms")), "avg_latency"),
		entsql.As(entsql.Max(t.C("latency_ms")), "max_latency"),
	).From(t)

	if preds := callPredicates(t, opts); len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.GroupBy(t.C("operation")).OrderBy(t.C("operation"))
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query call stats: %w", err)
	}
	defer rows.Close()

	var out []CallStat
	for rows.Next() {
		var (
			st         CallStat
			succeeded  sql.NullInt64
			avgLatency sql.NullFloat64
			maxLatency sql.NullInt64
		)
		if err := rows.Scan(&st.Operation, &st.Calls, &succeeded, &avgLatency, &maxLatency); err != nil {
			return nil, fmt.Errorf("scan call stats: %w", err)
		}
		st.Failures = st.Calls - int(succeeded.Int64)
		st.AvgLatencyMs = avgLatency.Float64
		st.MaxLatencyMs = maxLatency.Int64
		out = append(out, st)
	}
	return out, rows.Err()
}

func callPredicates(t *entsql.SelectTable, opts QueryOpts) []*entsql.Predicate {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("timestamp"), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C("timestamp"), opts.To.UnixMilli()))
	}
	if opts.Operation != "" {
		preds = append(preds, entsql.EQ(t.C("operation"), opts.Operation))
	}
	if opts.Username != "" {
		preds = append(preds, entsql.EQ(t.C("username"), opts.Username))
	}
	if opts.Failed {
		preds = append(preds, entsql.EQ(t.C("success"), false))
	}
	return preds
}
