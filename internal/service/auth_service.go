package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"freightdesk/internal/auth"
	apperrors "freightdesk/internal/errors"
	"freightdesk/internal/mail"
	"freightdesk/internal/model"
	"freightdesk/internal/repository"
)

const bcryptCost = 10

// SignupInput carries the fields accepted on registration.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Company  string
	Language string
}

// AuthService verifies credentials, issues session tokens and exposes the
// authoritative per-request guards. Sessions have no server-side state; a
// token stays valid until it expires or the cookie is cleared. There is no
// revocation list, so a leaked token outlives a password change until its
// TTL elapses.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Signup(ctx context.Context, input SignupInput) (*model.User, string, error)
	SessionFromRequest(r *http.Request) *auth.Session
	RequireAuth(r *http.Request) (*auth.Session, error)
	RequireAdmin(r *http.Request) (*auth.Session, error)
	Me(ctx context.Context, r *http.Request) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	quoteRepo  repository.QuoteRepository
	orderRepo  repository.OrderRepository
	codec      *auth.Codec
	cookieName string
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	quoteRepo repository.QuoteRepository,
	orderRepo repository.OrderRepository,
	codec *auth.Codec,
	cookieName string,
	mailer mail.Mailer,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		quoteRepo:  quoteRepo,
		orderRepo:  orderRepo,
		codec:      codec,
		cookieName: cookieName,
		mailer:     mailer,
		logger:     logger,
	}
}

// Login authenticates a user and returns the user with a signed session
// token. Missing user and wrong password are indistinguishable to the
// caller; the hash comparison is constant-time via bcrypt.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.codec.Encode(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("encode session token: %w", err)
	}

	return user, token, nil
}

// Signup creates a new account with a hashed password and logs it in. The
// first account ever created becomes the admin. Quotes and orders submitted
// anonymously under the same email before registration are re-owned to the
// new account.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*model.User, string, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := auth.RoleUser
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		role = auth.RoleAdmin
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	user := &model.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Phone:        input.Phone,
		Company:      input.Company,
		Language:     language,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	s.claimLeadActivity(ctx, user)

	if err := s.mailer.Welcome(ctx, user); err != nil {
		s.logger.Warn("welcome mail failed", zap.String("email", user.Email), zap.Error(err))
	}

	token, err := s.codec.Encode(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("encode session token: %w", err)
	}

	return user, token, nil
}

// claimLeadActivity re-owns anonymous quotes and orders matching the new
// account's email. The account already exists at this point; a failed claim
// is logged rather than failing the signup.
func (s *authService) claimLeadActivity(ctx context.Context, user *model.User) {
	if n, err := s.quoteRepo.ClaimByEmail(ctx, user.Email, user.ID); err != nil {
		s.logger.Warn("claim quotes failed", zap.String("email", user.Email), zap.Error(err))
	} else if n > 0 {
		s.logger.Info("claimed lead quotes", zap.String("email", user.Email), zap.Int64("count", n))
	}
	if n, err := s.orderRepo.ClaimByEmail(ctx, user.Email, user.ID); err != nil {
		s.logger.Warn("claim orders failed", zap.String("email", user.Email), zap.Error(err))
	} else if n > 0 {
		s.logger.Info("claimed lead orders", zap.String("email", user.Email), zap.Int64("count", n))
	}
}

// SessionFromRequest authoritatively decodes the request's session token
// (cookie first, Authorization bearer as fallback). Returns nil when there
// is no valid session; "not logged in" is an expected condition, not an
// error.
func (s *authService) SessionFromRequest(r *http.Request) *auth.Session {
	token := s.tokenFromRequest(r)
	if token == "" {
		return nil
	}
	session, err := s.codec.Decode(token)
	if err != nil {
		return nil
	}
	return session
}

// RequireAuth returns the request's session or ErrUnauthorized. Any
// authenticated role passes.
func (s *authService) RequireAuth(r *http.Request) (*auth.Session, error) {
	session := s.SessionFromRequest(r)
	if session == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return session, nil
}

// RequireAdmin returns the request's session or ErrUnauthorized /
// ErrForbidden. Callers map these to 401 and 403 respectively.
func (s *authService) RequireAdmin(r *http.Request) (*auth.Session, error) {
	session, err := s.RequireAuth(r)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return session, nil
}

// Me returns the account behind the request's session, re-read from the
// store so profile edits show up without re-login.
func (s *authService) Me(ctx context.Context, r *http.Request) (*model.User, error) {
	session, err := s.RequireAuth(r)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *authService) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
