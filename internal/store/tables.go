package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	sessionsTable   = "sessions"
	attemptsTable   = "attempts"
	callEventsTable = "call_events"
)

var (
	// SessionsColumns holds the single saved login.
	SessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "username", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	SessionsTable = &schema.Table{
		Name:       sessionsTable,
		Columns:    SessionsColumns,
		PrimaryKey: []*schema.Column{SessionsColumns[0]},
	}

	// AttemptsColumns holds one row per scored quiz submission.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "submitted_at", Type: field.TypeInt64},
		{Name: "username", Type: field.TypeString},
		{Name: "questions", Type: field.TypeInt, Default: 0},
		{Name: "total_score", Type: field.TypeFloat64, Default: 0},
		{Name: "remembering_score", Type: field.TypeFloat64, Default: 0},
		{Name: "understanding_score", Type: field.TypeFloat64, Default: 0},
		{Name: "applying_score", Type: field.TypeFloat64, Default: 0},
		{Name: "average_time_ms", Type: field.TypeFloat64, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "incorrect_answers", Type: field.TypeInt, Default: 0},
		{Name: "feedback", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	AttemptsTable = &schema.Table{
		Name:       attemptsTable,
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_username", Columns: []*schema.Column{AttemptsColumns[3]}},
			{Name: "attempt_submitted_at", Columns: []*schema.Column{AttemptsColumns[2]}},
		},
	}

	// CallEventsColumns holds one row per assessment service call.
	CallEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "operation", Type: field.TypeString},
		{Name: "username", Type: field.TypeString, Default: ""},
		{Name: "status_code", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	CallEventsTable = &schema.Table{
		Name:       callEventsTable,
		Columns:    CallEventsColumns,
		PrimaryKey: []*schema.Column{CallEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "callevent_timestamp", Columns: []*schema.Column{CallEventsColumns[2]}},
			{Name: "callevent_operation", Columns: []*schema.Column{CallEventsColumns[3]}},
			{Name: "callevent_success", Columns: []*schema.Column{CallEventsColumns[7]}},
		},
	}

	// Tables holds every table migrated by Open.
	Tables = []*schema.Table{
		SessionsTable,
		AttemptsTable,
		CallEventsTable,
	}
)
