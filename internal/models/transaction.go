package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a ledger movement.
// Rows are insert-only; there is no updated_at column on purpose.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountNumber string          `db:"account_number"`
	UserID        string          `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	Type          string          `db:"transaction_type"`
	Reference     string          `db:"reference"`
	CreatedAt     time.Time       `db:"created_at"`
}
