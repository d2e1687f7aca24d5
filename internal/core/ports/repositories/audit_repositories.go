package repositories

import (
	"context"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
)

// AuditWriter defines write operations for the audit trail
type AuditWriter interface {
	// SaveAuditEvent persists a single audit trail entry.
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
}
