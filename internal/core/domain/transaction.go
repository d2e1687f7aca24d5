package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the movement directions a transaction can take.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// IsValid checks whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

// MaxTransactionAmount is the per-transaction ceiling the engine accepts.
var MaxTransactionAmount = decimal.NewFromInt(10000)

// Transaction is a single immutable ledger movement against an account.
// Once persisted it is never updated or deleted, even if the account it
// belongs to is later closed.
type Transaction struct {
	TransactionID string
	AccountNumber string
	UserID        string
	Amount        decimal.Decimal
	Currency      Currency
	Type          TransactionType
	Reference     string
	CreatedAt     time.Time
}

// SignedAmount returns the balance delta this transaction applies:
// positive for deposits, negative for withdrawals.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
