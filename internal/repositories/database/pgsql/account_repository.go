package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	"github.com/kestrelbank/ledger_app/internal/models"
	"github.com/kestrelbank/ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_number, sort_code, name, account_type, balance, currency, owner_user_id, created_at, updated_at`

func scanAccountRow(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(accountScanTargets(&m)...)
	return m, err
}

func accountScanTargets(m *models.Account) []any {
	return []any{&m.AccountNumber, &m.SortCode, &m.Name, &m.AccountType, &m.Balance, &m.Currency, &m.OwnerUserID, &m.CreatedAt, &m.UpdatedAt}
}

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_number, sort_code, name, account_type, balance, currency, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountNumber,
		m.SortCode,
		m.Name,
		m.AccountType,
		m.Balance,
		m.Currency,
		m.OwnerUserID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves a specific account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	m, err := scanAccountRow(r.pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// AccountExistsByNumber reports whether an account number is already taken.
func (r *PgxAccountRepository) AccountExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence of account %s: %w", accountNumber, err)
	}
	return exists, nil
}

// FindAccountsByOwner retrieves every account belonging to the given owner,
// oldest first so statements read top to bottom.
func (r *PgxAccountRepository) FindAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_user_id = $1 ORDER BY created_at ASC, account_number ASC;`

	rows, err := r.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for owner %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// FindAllAccounts retrieves every account held by the bank.
func (r *PgxAccountRepository) FindAllAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at ASC, account_number ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

func collectAccounts(rows pgx.Rows) ([]models.Account, error) {
	var accounts []models.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(accountScanTargets(&m)...); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccountDetails updates the mutable details of an existing account.
// The balance is deliberately left alone; it only moves through transactions.
func (r *PgxAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, updated_at = $4
		WHERE account_number = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, m.AccountNumber, m.Name, m.AccountType, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found for update", m.AccountNumber))
	}
	return nil
}

// DeleteAccount removes an account row. Transactions reference the account
// number without a foreign key, so history survives the delete.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountNumber string) error {
	query := `DELETE FROM accounts WHERE account_number = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found for delete", accountNumber))
	}
	return nil
}

// FindAccountByNumberForUpdate selects an account and locks its row within
// the given transaction. The lock is held until the transaction ends.
func (r *PgxAccountRepository) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1 FOR UPDATE;`

	m, err := scanAccountRow(tx.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountNumber, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// UpdateAccountBalanceInTx writes a new balance for the account within the
// given transaction. Callers must hold the row lock.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountNumber string, newBalance decimal.Decimal, now time.Time) error {
	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE account_number = $1;`

	cmdTag, err := tx.Exec(ctx, query, accountNumber, newBalance, now)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update balance for account %s", accountNumber), err)
	}
	if cmdTag.RowsAffected() == 0 {
		slog.WarnContext(ctx, "Balance update affected no rows", slog.String("account_number", accountNumber))
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found for balance update", accountNumber))
	}
	return nil
}
