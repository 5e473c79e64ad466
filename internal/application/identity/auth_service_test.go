package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainidentity "github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainidentity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainidentity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domainidentity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domainidentity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func newAuthTestService(userRepo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "retailpos-test",
		MaxRefreshCount:        3,
	})
	return NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func testUser(t *testing.T) *domainidentity.User {
	t.Helper()
	user, err := domainidentity.NewUser("cashier1", "secret1234", "Cashier One")
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)
		user := testUser(t)

		userRepo.On("FindByUsername", ctx, "cashier1").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		result, err := service.Login(ctx, LoginInput{Username: "cashier1", Password: "secret1234"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "cashier1", result.User.Username)
		assert.NotNil(t, user.LastLoginAt)
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)
		user := testUser(t)

		userRepo.On("FindByUsername", ctx, "cashier1").Return(user, nil)

		_, err := service.Login(ctx, LoginInput{Username: "cashier1", Password: "wrongpass1"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown user gets the same error as wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)

		userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginInput{Username: "ghost", Password: "secret1234"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("deactivated account rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)
		user := testUser(t)
		user.Deactivate()

		userRepo.On("FindByUsername", ctx, "cashier1").Return(user, nil)

		_, err := service.Login(ctx, LoginInput{Username: "cashier1", Password: "secret1234"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("valid refresh token yields new pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)
		user := testUser(t)

		userRepo.On("FindByUsername", ctx, "cashier1").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := service.Login(ctx, LoginInput{Username: "cashier1", Password: "secret1234"})
		require.NoError(t, err)

		refreshed, err := service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("garbage refresh token rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)

		_, err := service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not.a.token"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newAuthTestService(userRepo)
		user := testUser(t)

		userRepo.On("FindByUsername", ctx, "cashier1").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := service.Login(ctx, LoginInput{Username: "cashier1", Password: "secret1234"})
		require.NoError(t, err)

		user.Deactivate()

		_, err = service.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	service := newAuthTestService(userRepo)

	err := service.Logout(ctx, LogoutInput{
		UserID:      uuid.New(),
		TokenJTI:    "some-jti",
		TokenExpiry: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	// Expired tokens are a no-op.
	err = service.Logout(ctx, LogoutInput{
		UserID:      uuid.New(),
		TokenJTI:    "expired-jti",
		TokenExpiry: time.Now().Add(-1 * time.Minute),
	})
	require.NoError(t, err)
}
