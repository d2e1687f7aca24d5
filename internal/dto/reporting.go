package dto

import (
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountTypeSummaryResponse aggregates the accounts of a single type.
type AccountTypeSummaryResponse struct {
	AccountType domain.AccountType `json:"accountType"`
	Count       int64              `json:"count"`
	Balance     decimal.Decimal    `json:"balance"`
}

// LedgerSummaryResponse is the JSON representation of the bank-wide summary.
type LedgerSummaryResponse struct {
	TotalAccounts int64                        `json:"totalAccounts"`
	TotalBalance  decimal.Decimal              `json:"totalBalance"`
	Currency      domain.Currency              `json:"currency"`
	ByAccountType []AccountTypeSummaryResponse `json:"byAccountType"`
}

// ToLedgerSummaryResponse converts a domain LedgerSummary to its API representation.
func ToLedgerSummaryResponse(summary *domain.LedgerSummary) LedgerSummaryResponse {
	resp := LedgerSummaryResponse{
		TotalAccounts: summary.TotalAccounts,
		TotalBalance:  summary.TotalBalance,
		Currency:      summary.Currency,
		ByAccountType: make([]AccountTypeSummaryResponse, 0, len(summary.ByAccountType)),
	}
	for _, s := range summary.ByAccountType {
		resp.ByAccountType = append(resp.ByAccountType, AccountTypeSummaryResponse{
			AccountType: s.AccountType,
			Count:       s.Count,
			Balance:     s.Balance,
		})
	}
	return resp
}
