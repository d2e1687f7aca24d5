package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
)

// reportingService builds read-only aggregate views over the ledger.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewReportingService creates a reporting service with the given repository.
func NewReportingService(accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{accountRepo: accountRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetLedgerSummary aggregates account counts and balances bank-wide, broken
// down by account type in a stable order.
func (s *reportingService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	accounts, err := s.accountRepo.FindAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for summary")
		return nil, err
	}

	totals := make(map[domain.AccountType]*domain.AccountTypeSummary)
	totalBalance := decimal.Zero
	for i := range accounts {
		account := &accounts[i]
		totalBalance = totalBalance.Add(account.Balance)

		summary, ok := totals[account.AccountType]
		if !ok {
			summary = &domain.AccountTypeSummary{
				AccountType: account.AccountType,
				Balance:     decimal.Zero,
			}
			totals[account.AccountType] = summary
		}
		summary.Count++
		summary.Balance = summary.Balance.Add(account.Balance)
	}

	byType := make([]domain.AccountTypeSummary, 0, len(totals))
	for _, summary := range totals {
		byType = append(byType, *summary)
	}
	sort.Slice(byType, func(i, j int) bool {
		return byType[i].AccountType < byType[j].AccountType
	})

	return &domain.LedgerSummary{
		TotalAccounts: int64(len(accounts)),
		TotalBalance:  totalBalance,
		Currency:      domain.GBP,
		ByAccountType: byType,
	}, nil
}
