package mapping

import (
	"database/sql"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/models"
)

// ToModelAuditEvent converts a domain AuditEvent to its database representation.
// The trail is insert-only, so there is no mapping back.
func ToModelAuditEvent(d domain.AuditEvent) models.AuditEvent {
	return models.AuditEvent{
		EventID:       d.EventID,
		Operation:     string(d.Operation),
		Outcome:       string(d.Outcome),
		AccountNumber: sql.NullString{String: d.AccountNumber, Valid: d.AccountNumber != ""},
		TransactionID: sql.NullString{String: d.TransactionID, Valid: d.TransactionID != ""},
		UserID:        d.UserID,
		Detail:        d.Detail,
		OccurredAt:    d.OccurredAt,
	}
}
