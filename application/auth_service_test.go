package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"qadash/domain/contracts"
	"qadash/domain/qa"
	"qadash/test/mocks"
)

func testUser(t *testing.T, password string) *qa.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &qa.User{
		ID:           42,
		ClientID:     7,
		ClientSlug:   "acme",
		Email:        "inspector@acme.example",
		PasswordHash: string(hash),
		Name:         "Inspector",
		Role:         "qa",
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	user := testUser(t, "s3cret")
	userRepo.On("GetByEmail", mock.Anything, "inspector@acme.example").Return(user, nil)
	service := NewAuthService(userRepo, time.Hour)

	session, err := service.Login(context.Background(), "inspector@acme.example", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, int64(7), session.ClientID)
	assert.Equal(t, "acme", session.ClientSlug)

	resolved, err := service.SessionForToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Token, resolved.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	userRepo.On("GetByEmail", mock.Anything, "inspector@acme.example").Return(testUser(t, "s3cret"), nil)
	service := NewAuthService(userRepo, time.Hour)

	session, err := service.Login(context.Background(), "inspector@acme.example", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, session)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	userRepo.On("GetByEmail", mock.Anything, "nobody@acme.example").Return(nil, contracts.ErrNotFound)
	service := NewAuthService(userRepo, time.Hour)

	_, err := service.Login(context.Background(), "nobody@acme.example", "s3cret")

	// Unknown email and bad password are indistinguishable to the caller
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SessionForToken_Unknown(t *testing.T) {
	service := NewAuthService(&mocks.MockUserRepository{}, time.Hour)

	_, err := service.SessionForToken("no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = service.SessionForToken("")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAuthService_Logout_RemovesSession(t *testing.T) {
	userRepo := &mocks.MockUserRepository{}
	userRepo.On("GetByEmail", mock.Anything, "inspector@acme.example").Return(testUser(t, "s3cret"), nil)
	service := NewAuthService(userRepo, time.Hour)

	session, err := service.Login(context.Background(), "inspector@acme.example", "s3cret")
	require.NoError(t, err)

	service.Logout(session.Token)

	_, err = service.SessionForToken(session.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
