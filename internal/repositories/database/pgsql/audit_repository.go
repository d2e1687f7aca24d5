package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	"github.com/kestrelbank/ledger_app/internal/utils/mapping"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{pool: pool}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditEvent persists a single audit trail entry. Rows are insert-only.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	m := mapping.ToModelAuditEvent(event)

	query := `
		INSERT INTO audit_events (event_id, operation, outcome, account_number, transaction_id, user_id, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.EventID,
		m.Operation,
		m.Outcome,
		m.AccountNumber,
		m.TransactionID,
		m.UserID,
		m.Detail,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to save audit event %s", m.EventID), err)
	}
	return nil
}
