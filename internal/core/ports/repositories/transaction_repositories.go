package repositories

import (
	"context"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactionsByAccountNumber retrieves transactions for an account,
	// newest first, with token based pagination.
	ListTransactionsByAccountNumber(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionByAccountNumberAndID retrieves a single transaction
	// scoped to the given account.
	FindTransactionByAccountNumberAndID(ctx context.Context, accountNumber string, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// ApplyTransaction persists the transaction and adjusts the account
	// balance by balanceDelta as a single atomic unit. The account row is
	// locked for the duration, and the write is rejected if the resulting
	// balance would fall below zero. Returns the account as updated.
	ApplyTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) (*domain.Account, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
