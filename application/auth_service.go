package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"qadash/domain/contracts"
	"qadash/domain/qa"
	"qadash/logging"
)

// ErrInvalidCredentials is returned for any failed login attempt. The cause
// (unknown email vs wrong password) is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSessionNotFound is returned when a session token is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

// Session is an authenticated dashboard session.
type Session struct {
	Token      string
	UserID     int64
	ClientID   int64
	ClientSlug string
	Email      string
	CreatedAt  time.Time
}

// AuthService handles login and token-based session lookup. Sessions live in
// an in-memory TTL cache and do not survive a restart.
type AuthService struct {
	userRepo   contracts.UserRepository
	sessions   *cache.Cache
	sessionTTL time.Duration
	logger     *logging.Logger
}

// NewAuthService creates an auth service with the given session lifetime.
func NewAuthService(userRepo contracts.UserRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   cache.New(sessionTTL, sessionTTL/2),
		sessionTTL: sessionTTL,
		logger:     logging.Default().WithComponent("auth"),
	}
}

// Login verifies credentials and mints a new session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			s.logger.Security("Login failed", "reason", "unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Security("Login failed", "reason", "bad password", "email", email)
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:      uuid.New().String(),
		UserID:     user.ID,
		ClientID:   user.ClientID,
		ClientSlug: user.ClientSlug,
		Email:      user.Email,
		CreatedAt:  time.Now(),
	}
	s.sessions.Set(session.Token, session, cache.DefaultExpiration)

	s.logger.Security("Login succeeded", "user_id", user.ID, "client_id", user.ClientID)
	return session, nil
}

// SessionForToken resolves a bearer token to its session.
func (s *AuthService) SessionForToken(token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	cached, found := s.sessions.Get(token)
	if !found {
		return nil, ErrSessionNotFound
	}
	return cached.(*Session), nil
}

// Logout removes a session. Unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.sessions.Delete(token)
}

// UserForSession loads the full user record behind a session.
func (s *AuthService) UserForSession(ctx context.Context, session *Session) (*qa.User, error) {
	return s.userRepo.GetByID(ctx, session.UserID)
}

// HashPassword produces a bcrypt hash for user provisioning and seeds.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
