package domain

import "time"

// AuditOperation names the sensitive operations recorded in the audit trail.
type AuditOperation string

const (
	AuditAccountDeleted     AuditOperation = "ACCOUNT_DELETED"
	AuditTransactionCreated AuditOperation = "TRANSACTION_CREATED"
)

// AuditOutcome records whether the audited operation succeeded.
type AuditOutcome string

const (
	AuditOutcomeSuccess AuditOutcome = "SUCCESS"
	AuditOutcomeFailure AuditOutcome = "FAILURE"
)

// AuditEvent is a single entry in the audit trail. Events are published
// asynchronously and must never block or fail the operation they describe.
type AuditEvent struct {
	EventID       string
	Operation     AuditOperation
	Outcome       AuditOutcome
	AccountNumber string
	TransactionID string
	UserID        string
	Detail        string
	OccurredAt    time.Time
}
