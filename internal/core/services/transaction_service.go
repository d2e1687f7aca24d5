package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/dto"
	"github.com/kestrelbank/ledger_app/internal/utils"
)

const (
	// transactionIDPrefix is stamped onto the front of every transaction ID.
	transactionIDPrefix = "tan-"
	// transactionIDRandomBytes is the entropy behind the ID suffix.
	transactionIDRandomBytes = 8
)

var (
	// ErrAmountRequired indicates the request carried no amount.
	ErrAmountRequired = fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	// ErrAmountNotPositive indicates a zero or negative amount.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	// ErrAmountTooLarge indicates the amount exceeds the per-transaction ceiling.
	ErrAmountTooLarge = fmt.Errorf("%w: amount must not exceed 10000.00", apperrors.ErrValidation)
	// ErrAmountPrecision indicates the amount carries sub-penny precision.
	ErrAmountPrecision = fmt.Errorf("%w: amount must have at most two decimal places", apperrors.ErrValidation)
	// ErrCurrencyRequired indicates the request carried no currency.
	ErrCurrencyRequired = fmt.Errorf("%w: currency is required", apperrors.ErrValidation)
	// ErrCurrencyUnsupported indicates a currency the bank does not hold.
	ErrCurrencyUnsupported = fmt.Errorf("%w: unsupported currency", apperrors.ErrValidation)
	// ErrTypeRequired indicates the request carried no transaction type.
	ErrTypeRequired = fmt.Errorf("%w: transaction type is required", apperrors.ErrValidation)
	// ErrTypeInvalid indicates an unknown transaction type value.
	ErrTypeInvalid = fmt.Errorf("%w: unsupported transaction type", apperrors.ErrValidation)
	// ErrInsufficientFunds indicates a withdrawal larger than the balance.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds to process transaction", apperrors.ErrConflict)
	// ErrTransactionNotFound indicates the transaction does not exist on
	// the given account.
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
)

// transactionService implements deposit and withdrawal processing.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
}

// NewTransactionService creates a transaction service with the given repositories.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates the request, then applies the movement to the
// account atomically. Validation failures never touch the store.
func (s *transactionService) CreateTransaction(ctx context.Context, accountNumber string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	if err := validateTransactionRequest(req); err != nil {
		return nil, err
	}

	account, err := s.findOwnedAccount(ctx, accountNumber, requestingUserID)
	if err != nil {
		return nil, err
	}

	amount := *req.Amount
	if req.Type == domain.Withdrawal && account.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	suffix, err := utils.GenerateSecureRandomString(transactionIDRandomBytes)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate transaction ID")
		return nil, fmt.Errorf("failed to generate transaction ID: %w", err)
	}

	txn := domain.Transaction{
		TransactionID: transactionIDPrefix + suffix,
		AccountNumber: accountNumber,
		UserID:        requestingUserID,
		Amount:        amount,
		Currency:      req.Currency,
		Type:          req.Type,
		Reference:     req.Reference,
		CreatedAt:     time.Now().UTC(),
	}

	updated, err := s.transactionRepo.ApplyTransaction(ctx, txn, txn.SignedAmount())
	if err != nil {
		// The balance is re-checked under the row lock, so a concurrent
		// withdrawal can still surface here.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrInsufficientFunds
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to apply transaction",
			slog.String("account_number", accountNumber),
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction applied",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_number", accountNumber),
		slog.String("type", string(txn.Type)),
		slog.String("new_balance", updated.Balance.String()))
	return &txn, nil
}

// ListTransactionsForAccount retrieves a page of the account's transactions,
// newest first.
func (s *transactionService) ListTransactionsForAccount(ctx context.Context, accountNumber string, limit int, nextToken *string, requestingUserID string) ([]domain.Transaction, *string, error) {
	if _, err := s.findOwnedAccount(ctx, accountNumber, requestingUserID); err != nil {
		return nil, nil, err
	}

	transactions, next, err := s.transactionRepo.ListTransactionsByAccountNumber(ctx, accountNumber, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.String("account_number", accountNumber))
		}
		return nil, nil, err
	}
	return transactions, next, nil
}

// GetTransactionByID retrieves a single transaction scoped to the account.
func (s *transactionService) GetTransactionByID(ctx context.Context, accountNumber string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if _, err := s.findOwnedAccount(ctx, accountNumber, requestingUserID); err != nil {
		return nil, err
	}

	txn, err := s.transactionRepo.FindTransactionByAccountNumberAndID(ctx, accountNumber, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		s.LogError(ctx, err, "Failed to find transaction",
			slog.String("account_number", accountNumber),
			slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

// findOwnedAccount loads the account and verifies the requester owns it.
func (s *transactionService) findOwnedAccount(ctx context.Context, accountNumber string, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_number", accountNumber))
		return nil, err
	}
	if account.OwnerUserID != requestingUserID {
		return nil, ErrAccountForbidden
	}
	return account, nil
}

// validateTransactionRequest checks the structural rules of a transaction
// request before any store access happens.
func validateTransactionRequest(req dto.CreateTransactionRequest) error {
	if req.Amount == nil {
		return ErrAmountRequired
	}
	if !req.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if req.Amount.GreaterThan(domain.MaxTransactionAmount) {
		return ErrAmountTooLarge
	}
	if !utils.HasMinorUnitPrecision(*req.Amount) {
		return ErrAmountPrecision
	}
	if req.Currency == "" {
		return ErrCurrencyRequired
	}
	if !req.Currency.IsValid() {
		return ErrCurrencyUnsupported
	}
	if req.Type == "" {
		return ErrTypeRequired
	}
	if !req.Type.IsValid() {
		return ErrTypeInvalid
	}
	return nil
}
