package services

import (
	"context"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// ListTransactionsForAccount retrieves transactions for an account,
	// newest first, with token based pagination.
	ListTransactionsForAccount(ctx context.Context, accountNumber string, limit int, nextToken *string, requestingUserID string) ([]domain.Transaction, *string, error)

	// GetTransactionByID retrieves a single transaction scoped to an account.
	GetTransactionByID(ctx context.Context, accountNumber string, transactionID string, requestingUserID string) (*domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction validates and applies a deposit or withdrawal
	// against the account, atomically adjusting its balance.
	CreateTransaction(ctx context.Context, accountNumber string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
