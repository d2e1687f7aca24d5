package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of a customer account.
type Account struct {
	AccountNumber string          `db:"account_number"`
	SortCode      string          `db:"sort_code"`
	Name          string          `db:"name"`
	AccountType   string          `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	Currency      string          `db:"currency"`
	OwnerUserID   string          `db:"owner_user_id"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
