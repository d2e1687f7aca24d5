package domain_test

import (
	"testing"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidAccountNumber(t *testing.T) {
	testCases := []struct {
		name   string
		number string
		want   bool
	}{
		{"valid number", "01234567", true},
		{"valid with trailing zeros", "01000000", true},
		{"wrong prefix", "02234567", false},
		{"too short", "0123456", false},
		{"too long", "012345678", false},
		{"non digit characters", "01a34567", false},
		{"empty string", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.IsValidAccountNumber(tc.number))
		})
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	assert.True(t, domain.Deposit.IsValid())
	assert.True(t, domain.Withdrawal.IsValid())
	assert.False(t, domain.TransactionType("TRANSFER").IsValid())
	assert.False(t, domain.TransactionType("deposit").IsValid())
	assert.False(t, domain.TransactionType("").IsValid())
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("25.50")

	deposit := domain.Transaction{Type: domain.Deposit, Amount: amount}
	withdrawal := domain.Transaction{Type: domain.Withdrawal, Amount: amount}

	assert.True(t, deposit.SignedAmount().Equal(amount), "deposit should keep its sign")
	assert.True(t, withdrawal.SignedAmount().Equal(amount.Neg()), "withdrawal should negate")
}

func TestAccountTypeIsValid(t *testing.T) {
	assert.True(t, domain.Personal.IsValid())
	assert.False(t, domain.AccountType("business").IsValid())
	assert.False(t, domain.AccountType("").IsValid())
}

func TestCurrencyIsValid(t *testing.T) {
	assert.True(t, domain.GBP.IsValid())
	assert.False(t, domain.Currency("USD").IsValid())
	assert.False(t, domain.Currency("gbp").IsValid())
}
