package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/core/services"
	"github.com/kestrelbank/ledger_app/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactionsByAccountNumber(ctx context.Context, accountNumber string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountNumber, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) FindTransactionByAccountNumberAndID(ctx context.Context, accountNumber string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, txn, balanceDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade

	ownerID string
	account *domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.ownerID = "usr-a1b2c3"
	suite.account = &domain.Account{
		AccountNumber: "01765432",
		SortCode:      "10-10-10",
		Name:          "Test Current",
		AccountType:   domain.Personal,
		Balance:       decimal.RequireFromString("40.00"),
		Currency:      domain.GBP,
		OwnerUserID:   suite.ownerID,
	}
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Deposit_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:    amountPtr("100.00"),
		Currency:  domain.GBP,
		Type:      domain.Deposit,
		Reference: "salary",
	}
	updated := *suite.account
	updated.Balance = decimal.RequireFromString("140.00")

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("100.00"))
	})).Return(&updated, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(strings.HasPrefix(txn.TransactionID, "tan-"))
	suite.Equal("01765432", txn.AccountNumber)
	suite.Equal(suite.ownerID, txn.UserID)
	suite.True(txn.Amount.Equal(decimal.RequireFromString("100.00")))
	suite.Equal(domain.GBP, txn.Currency)
	suite.Equal(domain.Deposit, txn.Type)
	suite.Equal("salary", txn.Reference)
	suite.WithinDuration(time.Now(), txn.CreatedAt, time.Second)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Withdrawal_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("25.50"),
		Currency: domain.GBP,
		Type:     domain.Withdrawal,
	}
	updated := *suite.account
	updated.Balance = decimal.RequireFromString("14.50")

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	// The delta handed to the repository must be negative for withdrawals
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("-25.50"))
	})).Return(&updated, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Withdrawal, txn.Type)
	suite.True(txn.Amount.Equal(decimal.RequireFromString("25.50")))

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAmountRequired)
	suite.ErrorIs(err, apperrors.ErrValidation)

	// Structural validation must run before any store access
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ZeroAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("0.00"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAmountNotPositive)

	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("-5.00"),
		Currency: domain.GBP,
		Type:     domain.Withdrawal,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AmountTooLarge() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10000.01"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAmountTooLarge)

	// The ceiling check fires before the account is even looked up
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AmountAtCeiling() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10000.00"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}
	updated := *suite.account
	updated.Balance = decimal.RequireFromString("10040.00")

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("decimal.Decimal")).Return(&updated, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.True(txn.Amount.Equal(decimal.RequireFromString("10000.00")))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SubPennyAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.005"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAmountPrecision)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingCurrency() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount: amountPtr("10.00"),
		Type:   domain.Deposit,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrCurrencyRequired)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnsupportedCurrency() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.00"),
		Currency: domain.Currency("EUR"),
		Type:     domain.Deposit,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrCurrencyUnsupported)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingType() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.00"),
		Currency: domain.GBP,
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrTypeRequired)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownType() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.00"),
		Currency: domain.GBP,
		Type:     domain.TransactionType("TRANSFER"),
	}

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrTypeInvalid)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InsufficientFunds() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("100.00"),
		Currency: domain.GBP,
		Type:     domain.Withdrawal,
	}

	// Balance is 40.00, so the withdrawal fails before the write
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ConcurrentUnderflow() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("30.00"),
		Currency: domain.GBP,
		Type:     domain.Withdrawal,
	}

	// The precheck passes, but a concurrent withdrawal drained the account
	// before the row lock was taken
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("decimal.Decimal")).Return(nil, apperrors.ErrConflict).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrInsufficientFunds)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.00"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01999999").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01999999", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.00"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, "usr-intruder")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAccountForbidden)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ApplyTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RepoError() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:   amountPtr("10.00"),
		Currency: domain.GBP,
		Type:     domain.Deposit,
	}
	expectedErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ApplyTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("decimal.Decimal")).Return(nil, expectedErr).Once()

	txn, err := suite.service.CreateTransaction(ctx, "01765432", req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, expectedErr)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsForAccount_Success() {
	ctx := context.Background()
	nextIn := "opaque-token"
	nextOut := "another-token"
	expectedTxns := []domain.Transaction{
		{TransactionID: "tan-02", AccountNumber: "01765432", Type: domain.Deposit},
		{TransactionID: "tan-01", AccountNumber: "01765432", Type: domain.Withdrawal},
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByAccountNumber", ctx, "01765432", 20, &nextIn).Return(expectedTxns, &nextOut, nil).Once()

	txns, token, err := suite.service.ListTransactionsForAccount(ctx, "01765432", 20, &nextIn, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(expectedTxns, txns)
	suite.Require().NotNil(token)
	suite.Equal(nextOut, *token)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactionsForAccount_Forbidden() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()

	txns, token, err := suite.service.ListTransactionsForAccount(ctx, "01765432", 20, nil, "usr-intruder")

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.Nil(token)
	suite.ErrorIs(err, services.ErrAccountForbidden)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccountNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_Success() {
	ctx := context.Background()
	expected := &domain.Transaction{
		TransactionID: "tan-abc123",
		AccountNumber: "01765432",
		Type:          domain.Deposit,
		Amount:        decimal.RequireFromString("10.00"),
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByAccountNumberAndID", ctx, "01765432", "tan-abc123").Return(expected, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, "01765432", "tan-abc123", suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(expected, txn)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "01765432").Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByAccountNumberAndID", ctx, "01765432", "tan-missing").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.GetTransactionByID(ctx, "01765432", "tan-missing", suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrTransactionNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
