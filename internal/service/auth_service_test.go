package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuoteRepository is a mock implementation of QuoteRepository.
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *model.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Update(ctx context.Context, quote *model.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uint) (*model.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) List(ctx context.Context) ([]model.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Quote, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListByEmail(ctx context.Context, email string) ([]model.Quote, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListUnclaimed(ctx context.Context) ([]model.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ClaimByEmail(ctx context.Context, email string, customerID uint) (int64, error) {
	args := m.Called(ctx, email, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) NextQuoteNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

const testCookieName = "fd_session"

func newTestAuthService(userRepo *MockUserRepository, quoteRepo *MockQuoteRepository, orderRepo *MockOrderRepository, mailer *MockMailer) (AuthService, *auth.Codec) {
	codec := auth.NewCodec("test-secret", time.Hour)
	return NewAuthService(userRepo, quoteRepo, orderRepo, codec, testCookieName, mailer, zap.NewNop()), codec
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	user := &model.User{
		ID:    3,
		Email: "lina@example.com",
		Name:  "Lina",
		Role:  auth.RoleUser,
	}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  error
	}{
		{name: "valid credentials", email: "lina@example.com", password: "secret123", found: true},
		{name: "mixed case email is normalized", email: "  Lina@Example.COM ", password: "secret123", found: true},
		{name: "wrong password", email: "lina@example.com", password: "nope", found: true, wantErr: apperrors.ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: "secret123", found: false, wantErr: apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			u := *user
			u.PasswordHash = hashPassword(t, "secret123")
			if tt.found {
				userRepo.On("FindByEmail", mock.Anything, "lina@example.com").Return(&u, nil)
			} else {
				userRepo.On("FindByEmail", mock.Anything, mock.AnythingOfType("string")).Return(nil, gorm.ErrRecordNotFound)
			}

			svc, codec := newTestAuthService(userRepo, new(MockQuoteRepository), new(MockOrderRepository), new(MockMailer))
			got, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "lina@example.com", got.Email)

			session, err := codec.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, uint(3), session.UserID)
			assert.Equal(t, auth.RoleUser, session.Role)
		})
	}
}

func TestAuthService_Signup_FirstUserBecomesAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	quoteRepo := new(MockQuoteRepository)
	orderRepo := new(MockOrderRepository)
	mailer := new(MockMailer)

	userRepo.On("FindByEmail", mock.Anything, "founder@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Count", mock.Anything).Return(int64(0), nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 1
	}).Return(nil)
	quoteRepo.On("ClaimByEmail", mock.Anything, "founder@example.com", uint(1)).Return(int64(0), nil)
	orderRepo.On("ClaimByEmail", mock.Anything, "founder@example.com", uint(1)).Return(int64(0), nil)
	mailer.On("Welcome", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc, _ := newTestAuthService(userRepo, quoteRepo, orderRepo, mailer)
	user, token, err := svc.Signup(context.Background(), SignupInput{
		Email:    "Founder@Example.com",
		Password: "secret123",
		Name:     "Founder",
	})

	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	assert.Equal(t, "founder@example.com", user.Email)
	assert.Equal(t, "en", user.Language)
	assert.NotEmpty(t, token)
}

func TestAuthService_Signup_LaterUsersAreRegular(t *testing.T) {
	userRepo := new(MockUserRepository)
	quoteRepo := new(MockQuoteRepository)
	orderRepo := new(MockOrderRepository)
	mailer := new(MockMailer)

	userRepo.On("FindByEmail", mock.Anything, "lina@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Count", mock.Anything).Return(int64(4), nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)
	quoteRepo.On("ClaimByEmail", mock.Anything, "lina@example.com", uint(5)).Return(int64(2), nil)
	orderRepo.On("ClaimByEmail", mock.Anything, "lina@example.com", uint(5)).Return(int64(1), nil)
	mailer.On("Welcome", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc, _ := newTestAuthService(userRepo, quoteRepo, orderRepo, mailer)
	user, _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "lina@example.com",
		Password: "secret123",
		Name:     "Lina",
	})

	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, user.Role)

	// Anonymous activity under the same email was re-owned.
	quoteRepo.AssertCalled(t, "ClaimByEmail", mock.Anything, "lina@example.com", uint(5))
	orderRepo.AssertCalled(t, "ClaimByEmail", mock.Anything, "lina@example.com", uint(5))
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "lina@example.com").Return(&model.User{ID: 5}, nil)

	svc, _ := newTestAuthService(userRepo, new(MockQuoteRepository), new(MockOrderRepository), new(MockMailer))
	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "lina@example.com",
		Password: "secret123",
		Name:     "Lina",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}
	return req
}

func TestAuthService_RequireAuth(t *testing.T) {
	svc, codec := newTestAuthService(new(MockUserRepository), new(MockQuoteRepository), new(MockOrderRepository), new(MockMailer))

	t.Run("no token", func(t *testing.T) {
		_, err := svc.RequireAuth(requestWithToken(""))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("forged token", func(t *testing.T) {
		forged, err := auth.NewCodec("attacker-secret", time.Hour).Encode(9, "x@example.com", "X", auth.RoleAdmin)
		require.NoError(t, err)
		_, err = svc.RequireAuth(requestWithToken(forged))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := codec.Encode(3, "lina@example.com", "Lina", auth.RoleUser)
		require.NoError(t, err)
		session, err := svc.RequireAuth(requestWithToken(token))
		require.NoError(t, err)
		assert.Equal(t, uint(3), session.UserID)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		token, err := codec.Encode(3, "lina@example.com", "Lina", auth.RoleUser)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/account/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		_, err = svc.RequireAuth(req)
		assert.NoError(t, err)
	})
}

func TestAuthService_RequireAdmin(t *testing.T) {
	svc, codec := newTestAuthService(new(MockUserRepository), new(MockQuoteRepository), new(MockOrderRepository), new(MockMailer))

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		_, err := svc.RequireAdmin(requestWithToken(""))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		token, err := codec.Encode(3, "lina@example.com", "Lina", auth.RoleUser)
		require.NoError(t, err)
		_, err = svc.RequireAdmin(requestWithToken(token))
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := codec.Encode(1, "admin@example.com", "Admin", auth.RoleAdmin)
		require.NoError(t, err)
		session, err := svc.RequireAdmin(requestWithToken(token))
		require.NoError(t, err)
		assert.True(t, session.IsAdmin())
	})
}

func TestAuthService_Me(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, codec := newTestAuthService(userRepo, new(MockQuoteRepository), new(MockOrderRepository), new(MockMailer))

	token, err := codec.Encode(3, "lina@example.com", "Lina", auth.RoleUser)
	require.NoError(t, err)

	t.Run("session user is re-read from the store", func(t *testing.T) {
		userRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Name: "Lina Renamed"}, nil).Once()
		user, err := svc.Me(context.Background(), requestWithToken(token))
		require.NoError(t, err)
		assert.Equal(t, "Lina Renamed", user.Name)
	})

	t.Run("deleted account maps to unauthorized", func(t *testing.T) {
		userRepo.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound).Once()
		_, err := svc.Me(context.Background(), requestWithToken(token))
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
