package services

import (
	"context"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/dto"
)

// AccountNumberGeneratorSvc produces unique account numbers.
type AccountNumberGeneratorSvc interface {
	// GenerateAccountNumber returns a fresh account number that is not yet
	// in use. Generation retries a bounded number of times before giving up.
	GenerateAccountNumber(ctx context.Context) (string, error)
}

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves an account, enforcing that the requester owns it.
	GetAccountByNumber(ctx context.Context, accountNumber string, requestingUserID string) (*domain.Account, error)

	// ListAccountsByOwner retrieves every account owned by the given user.
	ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error)

	// ListAllAccounts retrieves every account held by the bank.
	ListAllAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount opens a new account for the requesting user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, requestingUserID string) (*domain.Account, error)

	// UpdateAccount applies a partial update to the account's mutable fields.
	UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeleteAccount closes an account. The balance must be exactly zero.
	DeleteAccount(ctx context.Context, accountNumber string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
