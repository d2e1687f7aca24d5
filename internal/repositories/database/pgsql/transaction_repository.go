package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	"github.com/kestrelbank/ledger_app/internal/models"
	"github.com/kestrelbank/ledger_app/internal/utils/mapping"
	"github.com/kestrelbank/ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const defaultTransactionPageSize = 20

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction data.
// It needs the account repository to lock and move balances inside the same
// database transaction as the insert.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_number, user_id, amount, currency, transaction_type, reference, created_at`

func transactionScanTargets(m *models.Transaction) []any {
	return []any{&m.TransactionID, &m.AccountNumber, &m.UserID, &m.Amount, &m.Currency, &m.Type, &m.Reference, &m.CreatedAt}
}

// ApplyTransaction inserts the transaction row and moves the account balance
// as one atomic unit. The account row is locked first, so concurrent
// submissions against the same account serialize, and the non-negative
// balance rule is enforced against the locked row rather than a stale read.
func (r *PgxTransactionRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	locked, err := r.accountRepo.FindAccountByNumberForUpdate(ctx, tx, txn.AccountNumber)
	if err != nil {
		return nil, err
	}

	newBalance := locked.Balance.Add(balanceDelta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance of account %s would fall below zero", apperrors.ErrConflict, txn.AccountNumber)
	}

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (transaction_id, account_number, user_id, amount, currency, transaction_type, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.AccountNumber,
		m.UserID,
		m.Amount,
		m.Currency,
		m.Type,
		m.Reference,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return nil, fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to insert transaction %s", m.TransactionID), err)
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, txn.AccountNumber, newBalance, txn.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := *locked
	updated.Balance = newBalance
	updated.UpdatedAt = txn.CreatedAt
	return &updated, nil
}

// ListTransactionsByAccountNumber retrieves transactions for an account,
// newest first, using token based pagination. One extra row is fetched to
// decide whether another page exists.
func (r *PgxTransactionRepository) ListTransactionsByAccountNumber(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_number = $1`
	args := []any{accountNumber, fetchLimit}

	if nextToken != nil && *nextToken != "" {
		createdAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, transaction_id) < ($3, $4)`
		args = append(args, createdAt, lastID)
	}
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(transactionScanTargets(&m)...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}

	return mapping.ToDomainTransactionSlice(txns), newNextToken, nil
}

// FindTransactionByAccountNumberAndID retrieves a single transaction scoped
// to the given account, so one customer cannot read another's movements by
// guessing IDs.
func (r *PgxTransactionRepository) FindTransactionByAccountNumberAndID(ctx context.Context, accountNumber string, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_number = $1 AND transaction_id = $2;`

	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, accountNumber, transactionID).Scan(transactionScanTargets(&m)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s on account %s", apperrors.ErrNotFound, transactionID, accountNumber)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}
