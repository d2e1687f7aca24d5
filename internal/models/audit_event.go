package models

import (
	"database/sql"
	"time"
)

// AuditEvent is the database representation of an audit trail entry.
// AccountNumber and TransactionID are nullable because not every audited
// operation touches both.
type AuditEvent struct {
	EventID       string         `db:"event_id"`
	Operation     string         `db:"operation"`
	Outcome       string         `db:"outcome"`
	AccountNumber sql.NullString `db:"account_number"`
	TransactionID sql.NullString `db:"transaction_id"`
	UserID        string         `db:"user_id"`
	Detail        string         `db:"detail"`
	OccurredAt    time.Time      `db:"occurred_at"`
}
