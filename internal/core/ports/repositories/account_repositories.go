package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// AccountExistsByNumber reports whether an account number is already taken.
	AccountExistsByNumber(ctx context.Context, accountNumber string) (bool, error)

	// FindAccountsByOwner retrieves every account belonging to the given owner.
	FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error)

	// FindAllAccounts retrieves every account held by the bank.
	FindAllAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountDetails updates the mutable details of an existing account.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row. Historical transactions are kept.
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// AccountTransactionSupport defines operations that support the atomic
// transaction commit step.
type AccountTransactionSupport interface {
	// FindAccountByNumberForUpdate selects an account and locks its row
	// within the given database transaction.
	FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error)

	// UpdateAccountBalanceInTx writes a new balance for the account within
	// the given database transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountNumber string, newBalance decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
