package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portsrepo "github.com/kestrelbank/ledger_app/internal/core/ports/repositories"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/dto"
)

// defaultSortCode is used when the service is built without an explicit
// sort code option.
const defaultSortCode = "10-10-10"

var (
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	// ErrAccountForbidden indicates the account exists but belongs to
	// another user.
	ErrAccountForbidden = fmt.Errorf("%w: account belongs to another user", apperrors.ErrForbidden)
	// ErrOwnerNotFound indicates the requesting user has no user record.
	ErrOwnerNotFound = fmt.Errorf("%w: owner user not found", apperrors.ErrNotFound)
	// ErrNameRequired indicates a create or update carried a blank name.
	ErrNameRequired = fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	// ErrInvalidAccountType indicates an unsupported account type value.
	ErrInvalidAccountType = fmt.Errorf("%w: unsupported account type", apperrors.ErrValidation)
	// ErrEmptyUpdate indicates an update request with no usable fields.
	ErrEmptyUpdate = fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	// ErrNonZeroBalance indicates a delete was attempted on an account that
	// still holds funds.
	ErrNonZeroBalance = fmt.Errorf("%w: account balance must be zero before deletion", apperrors.ErrConflict)
)

// accountService implements the account lifecycle operations.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	numberGen   portssvc.AccountNumberGeneratorSvc
	sortCode    string
}

// ServiceOption configures optional dependencies of the account service.
type ServiceOption func(*accountService)

// WithUserReader sets the user repository used for owner checks.
func WithUserReader(userRepo portsrepo.UserReader) ServiceOption {
	return func(s *accountService) {
		s.userRepo = userRepo
	}
}

// WithAccountNumberGenerator sets the generator used to allocate account numbers.
func WithAccountNumberGenerator(gen portssvc.AccountNumberGeneratorSvc) ServiceOption {
	return func(s *accountService) {
		s.numberGen = gen
	}
}

// WithSortCode sets the sort code stamped onto new accounts.
func WithSortCode(sortCode string) ServiceOption {
	return func(s *accountService) {
		s.sortCode = sortCode
	}
}

// NewAccountService creates an account service with the given repository and options.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	service := &accountService{
		accountRepo: accountRepo,
		sortCode:    defaultSortCode,
	}
	for _, option := range options {
		option(service)
	}
	if service.numberGen == nil {
		service.numberGen = NewAccountNumberGenerator(accountRepo)
	}
	return service
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account owned by the requesting user. The
// account starts with a zero balance and a generated account number.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, requestingUserID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !req.AccountType.IsValid() {
		return nil, ErrInvalidAccountType
	}

	exists, err := s.userRepo.UserExistsByID(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account owner", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	accountNumber, err := s.numberGen.GenerateAccountNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate an account number")
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountNumber: accountNumber,
		SortCode:      s.sortCode,
		Name:          name,
		AccountType:   req.AccountType,
		Balance:       decimal.Zero,
		Currency:      domain.GBP,
		OwnerUserID:   requestingUserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_number", accountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_number", accountNumber),
		slog.String("user_id", requestingUserID))
	return &account, nil
}

// GetAccountByNumber retrieves an account and enforces that the requester owns it.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string, requestingUserID string) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, accountNumber, requestingUserID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccountsByOwner retrieves every account owned by the given user.
func (s *accountService) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByOwner(ctx, ownerUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", ownerUserID))
		return nil, err
	}
	return accounts, nil
}

// ListAllAccounts retrieves every account held by the bank.
func (s *accountService) ListAllAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list all accounts")
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount applies a partial update to the account's mutable fields.
// Omitted fields are left untouched; a blank name is ignored rather than
// emptying the stored one.
func (s *accountService) UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, accountNumber, requestingUserID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != "" {
			account.Name = name
			updated = true
		}
	}
	if req.AccountType != nil {
		if !req.AccountType.IsValid() {
			return nil, ErrInvalidAccountType
		}
		account.AccountType = *req.AccountType
		updated = true
	}
	if !updated {
		return nil, ErrEmptyUpdate
	}

	account.UpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_number", accountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_number", accountNumber))
	return account, nil
}

// DeleteAccount closes an account. Only an account holding exactly zero
// funds can be deleted; its transaction history is retained.
func (s *accountService) DeleteAccount(ctx context.Context, accountNumber string, requestingUserID string) error {
	account, err := s.findOwnedAccount(ctx, accountNumber, requestingUserID)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return ErrNonZeroBalance
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountNumber); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_number", accountNumber))
		return err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_number", accountNumber),
		slog.String("user_id", requestingUserID))
	return nil
}

// findOwnedAccount loads an account and verifies the requester owns it.
func (s *accountService) findOwnedAccount(ctx context.Context, accountNumber string, requestingUserID string) (*domain.Account, error) {
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
