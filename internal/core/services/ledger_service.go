package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/dto"
	"github.com/kestrelbank/ledger_app/internal/utils"
)

// ledgerService is the single entry point for account and transaction
// operations. It delegates to the lifecycle and processing services and
// publishes audit events for account deletion and transaction creation.
type ledgerService struct {
	BaseService
	accountSvc     portssvc.AccountSvcFacade
	transactionSvc portssvc.TransactionSvcFacade
	audit          portssvc.AuditPublisherSvc
}

// NewLedgerService creates the ledger facade over the given services.
func NewLedgerService(accountSvc portssvc.AccountSvcFacade, transactionSvc portssvc.TransactionSvcFacade, audit portssvc.AuditPublisherSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountSvc:     accountSvc,
		transactionSvc: transactionSvc,
		audit:          audit,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, requestingUserID string) (*domain.Account, error) {
	return s.accountSvc.CreateAccount(ctx, req, requestingUserID)
}

func (s *ledgerService) GetAccountByNumber(ctx context.Context, accountNumber string, requestingUserID string) (*domain.Account, error) {
	return s.accountSvc.GetAccountByNumber(ctx, accountNumber, requestingUserID)
}

func (s *ledgerService) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	return s.accountSvc.ListAccountsByOwner(ctx, ownerUserID)
}

func (s *ledgerService) ListAllAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountSvc.ListAllAccounts(ctx)
}

func (s *ledgerService) UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	return s.accountSvc.UpdateAccount(ctx, accountNumber, req, requestingUserID)
}

// DeleteAccount closes the account and records the attempt in the audit trail.
func (s *ledgerService) DeleteAccount(ctx context.Context, accountNumber string, requestingUserID string) error {
	err := s.accountSvc.DeleteAccount(ctx, accountNumber, requestingUserID)

	event := domain.AuditEvent{
		EventID:       uuid.NewString(),
		Operation:     domain.AuditAccountDeleted,
		Outcome:       domain.AuditOutcomeSuccess,
		AccountNumber: accountNumber,
		UserID:        requestingUserID,
		Detail:        "account closed",
		OccurredAt:    time.Now().UTC(),
	}
	if err != nil {
		event.Outcome = domain.AuditOutcomeFailure
		event.Detail = err.Error()
	}
	s.audit.PublishEvent(ctx, event)

	return err
}

// CreateTransaction applies the movement and records the attempt in the
// audit trail, whether it succeeded or not.
func (s *ledgerService) CreateTransaction(ctx context.Context, accountNumber string, req dto.CreateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.transactionSvc.CreateTransaction(ctx, accountNumber, req, requestingUserID)

	event := domain.AuditEvent{
		EventID:       uuid.NewString(),
		Operation:     domain.AuditTransactionCreated,
		AccountNumber: accountNumber,
		UserID:        requestingUserID,
		OccurredAt:    time.Now().UTC(),
	}
	if err != nil {
		event.Outcome = domain.AuditOutcomeFailure
		event.Detail = err.Error()
	} else {
		event.Outcome = domain.AuditOutcomeSuccess
		event.TransactionID = txn.TransactionID
		event.Detail = fmt.Sprintf("%s %s %s", txn.Type, utils.FormatMinorUnits(txn.Amount), txn.Currency)
	}
	s.audit.PublishEvent(ctx, event)

	return txn, err
}

func (s *ledgerService) ListTransactionsForAccount(ctx context.Context, accountNumber string, limit int, nextToken *string, requestingUserID string) ([]domain.Transaction, *string, error) {
	return s.transactionSvc.ListTransactionsForAccount(ctx, accountNumber, limit, nextToken, requestingUserID)
}

func (s *ledgerService) GetTransactionByID(ctx context.Context, accountNumber string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	return s.transactionSvc.GetTransactionByID(ctx, accountNumber, transactionID, requestingUserID)
}
