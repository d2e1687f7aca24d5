package services

import (
	"context"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines read-only aggregate views over the ledger.
type ReportingSvcFacade interface {
	// GetLedgerSummary aggregates account counts and balances bank-wide.
	GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error)
}
