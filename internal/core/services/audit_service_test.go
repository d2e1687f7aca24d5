package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kestrelbank/ledger_app/internal/core/domain"
	"github.com/kestrelbank/ledger_app/internal/core/services"
)

// MockAuditRepository is a mock type for the AuditWriter interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditRepository
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAuditRepository)
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestPublishEvent_WritesEvent() {
	ctx := context.Background()
	event := domain.AuditEvent{
		EventID:       "evt-1",
		Operation:     domain.AuditAccountDeleted,
		Outcome:       domain.AuditOutcomeSuccess,
		AccountNumber: "01765432",
		UserID:        "usr-a1b2c3",
	}

	var saved domain.AuditEvent
	suite.mockRepo.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.AuditEvent)
	}).Return(nil).Once()

	service := services.NewAuditService(suite.mockRepo)
	service.PublishEvent(ctx, event)

	// Close drains the queue, so the write is guaranteed to have happened
	service.Close()

	suite.mockRepo.AssertExpectations(suite.T())
	suite.Equal("evt-1", saved.EventID)
	suite.Equal(domain.AuditAccountDeleted, saved.Operation)
	suite.Equal("01765432", saved.AccountNumber)
	suite.False(saved.OccurredAt.IsZero())
}

func (suite *AuditServiceTestSuite) TestPublishEvent_FillsDefaults() {
	ctx := context.Background()

	var saved domain.AuditEvent
	suite.mockRepo.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.AuditEvent)
	}).Return(nil).Once()

	service := services.NewAuditService(suite.mockRepo)
	service.PublishEvent(ctx, domain.AuditEvent{
		Operation: domain.AuditTransactionCreated,
		Outcome:   domain.AuditOutcomeSuccess,
	})
	service.Close()

	suite.NotEmpty(saved.EventID)
	suite.False(saved.OccurredAt.IsZero())
}

func (suite *AuditServiceTestSuite) TestPublishEvent_WriteFailureDoesNotPropagate() {
	ctx := context.Background()

	suite.mockRepo.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return(assert.AnError).Once()

	service := services.NewAuditService(suite.mockRepo)

	// Publishing never returns an error, even when the write fails
	service.PublishEvent(ctx, domain.AuditEvent{Operation: domain.AuditAccountDeleted})
	service.Close()

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestClose_Idempotent() {
	service := services.NewAuditService(suite.mockRepo)

	service.Close()
	service.Close()
}

func (suite *AuditServiceTestSuite) TestPublishEvent_PreservesOrder() {
	ctx := context.Background()

	var saved []domain.AuditEvent
	suite.mockRepo.On("SaveAuditEvent", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(domain.AuditEvent))
	}).Return(nil).Times(3)

	service := services.NewAuditService(suite.mockRepo)
	service.PublishEvent(ctx, domain.AuditEvent{EventID: "evt-1"})
	service.PublishEvent(ctx, domain.AuditEvent{EventID: "evt-2"})
	service.PublishEvent(ctx, domain.AuditEvent{EventID: "evt-3"})
	service.Close()

	suite.Require().Len(saved, 3)
	suite.Equal("evt-1", saved[0].EventID)
	suite.Equal("evt-2", saved[1].EventID)
	suite.Equal("evt-3", saved[2].EventID)
}

// --- Run Suite ---

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
