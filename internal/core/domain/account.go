package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the kinds of account the bank offers.
type AccountType string

const (
	Personal AccountType = "personal"
)

// IsValid checks whether the account type is one the bank supports.
func (t AccountType) IsValid() bool {
	return t == Personal
}

var accountNumberPattern = regexp.MustCompile(`^01[0-9]{6}$`)

// IsValidAccountNumber reports whether s matches the bank's account number
// format: the literal prefix "01" followed by six decimal digits.
func IsValidAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}

// Account represents a customer account held in the ledger.
// AccountNumber is immutable once created; Balance never drops below zero.
type Account struct {
	AccountNumber string
	SortCode      string
	Name          string
	AccountType   AccountType
	Balance       decimal.Decimal
	Currency      Currency
	OwnerUserID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
