package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/dto"
)

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---

type ReportingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockReportingService *MockReportingService
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	suite.mockReportingService = new(MockReportingService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Reporting: suite.mockReportingService,
	})
}

// --- Test Cases ---

func (suite *ReportingHandlerTestSuite) TestGetLedgerSummary_Success() {
	summary := &domain.LedgerSummary{
		TotalAccounts: 3,
		TotalBalance:  decimal.RequireFromString("15.00"),
		Currency:      domain.GBP,
		ByAccountType: []domain.AccountTypeSummary{
			{AccountType: domain.Personal, Count: 3, Balance: decimal.RequireFromString("15.00")},
		},
	}
	suite.mockReportingService.On("GetLedgerSummary",
		mock.AnythingOfType("*context.valueCtx"),
	).Return(summary, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), "usr-a1b2c3d4e5f6"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LedgerSummaryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(3), resp.TotalAccounts)
	suite.True(resp.TotalBalance.Equal(decimal.RequireFromString("15.00")))
	suite.Equal(domain.GBP, resp.Currency)
	suite.Len(resp.ByAccountType, 1)
	suite.Equal(domain.Personal, resp.ByAccountType[0].AccountType)

	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestGetLedgerSummary_ServiceError() {
	suite.mockReportingService.On("GetLedgerSummary",
		mock.AnythingOfType("*context.valueCtx"),
	).Return(nil, assert.AnError).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), "usr-a1b2c3d4e5f6"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to build summary")
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestGetLedgerSummary_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "GetLedgerSummary")
}

// --- Run Test Suite ---

func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
