package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kestrelbank/ledger_app/internal/apperrors"
	"github.com/kestrelbank/ledger_app/internal/core/domain"
	portssvc "github.com/kestrelbank/ledger_app/internal/core/ports/services"
	"github.com/kestrelbank/ledger_app/internal/core/services"
	"github.com/kestrelbank/ledger_app/internal/dto"
	"github.com/kestrelbank/ledger_app/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UserExistsByID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret-password",
	}

	var savedUser domain.User
	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Run(func(args mock.Arguments) {
		savedUser = args.Get(1).(domain.User)
	}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.True(strings.HasPrefix(user.UserID, "usr-"))
	suite.Equal(req.Name, user.Name)
	suite.Equal(req.Email, user.Email)
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)

	// The stored hash must verify against the plaintext and never equal it
	suite.NotEqual(req.Password, savedUser.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, savedUser.PasswordHash))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_EmailTaken() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret-password",
	}
	existing := &domain.User{UserID: "usr-existing", Email: req.Email}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrEmailTaken)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_ConcurrentEmailTaken() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret-password",
	}

	// The precheck saw no user, but the insert hit the unique constraint
	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrEmailTaken)
}

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	expected := &domain.User{UserID: "usr-a1b2c3", Name: "Ada Lovelace"}

	suite.mockRepo.On("FindUserByID", ctx, "usr-a1b2c3").Return(expected, nil).Once()

	user, err := suite.service.GetUserByID(ctx, "usr-a1b2c3")

	suite.Require().NoError(err)
	suite.Equal(expected, user)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByID", ctx, "usr-ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, "usr-ghost")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrUserNotFound)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "s3cret-password"
	hash, hashErr := utils.HashPassword(password)
	suite.Require().NoError(hashErr)
	stored := &domain.User{
		UserID:       "usr-a1b2c3",
		Email:        "ada@example.com",
		PasswordHash: hash,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, stored.Email, password)

	suite.Require().NoError(err)
	suite.Equal(stored, user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, hashErr := utils.HashPassword("the-real-password")
	suite.Require().NoError(hashErr)
	stored := &domain.User{
		UserID:       "usr-a1b2c3",
		Email:        "ada@example.com",
		PasswordHash: hash,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, stored.Email, "a-wrong-guess")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	// Unknown emails and wrong passwords must be indistinguishable
	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(nil, expectedErr).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ada@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
