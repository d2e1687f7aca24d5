package domain

import "github.com/shopspring/decimal"

// AccountTypeSummary aggregates the accounts of a single type.
type AccountTypeSummary struct {
	AccountType AccountType
	Count       int64
	Balance     decimal.Decimal
}

// LedgerSummary is a bank-wide snapshot across every account on the books.
type LedgerSummary struct {
	TotalAccounts int64
	TotalBalance  decimal.Decimal
	Currency      Currency
	ByAccountType []AccountTypeSummary
}
