package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/mock"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSignKey = "test-sign-key-0123456789"
	testIssuer  = "go-auth-service"
)

func newTestAuthSvc(t *testing.T) (*authService, *mock.MockUserRepository, *mock.MockPasswordHasher) {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)

	svc := NewAuthService(repo, hasher, config.App{
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
	}, logger.Nop()).(*authService)

	return svc, repo, hasher
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestRegisterUser_Success(t *testing.T) {
	svc, repo, hasher := newTestAuthSvc(t)
	ctx := context.Background()

	creds := models.Credentials{Username: "alice", Email: "alice@example.com", Password: "secret1"}

	gomock.InOrder(
		hasher.EXPECT().Hash("secret1").Return("$2a$10$digest", nil),
		repo.EXPECT().CreateUser(ctx, models.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$digest",
		}).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			u.UserID = "user-1"
			return u, nil
		}),
	)

	user, err := svc.RegisterUser(ctx, creds)

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestRegisterUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		creds     models.Credentials
		wantTitle string
	}{
		{name: "missing username", creds: models.Credentials{Email: "a@x.io", Password: "secret1"}, wantTitle: "Validation failed"},
		{name: "missing email", creds: models.Credentials{Username: "a", Password: "secret1"}, wantTitle: "Validation failed"},
		{name: "missing password", creds: models.Credentials{Username: "a", Email: "a@x.io"}, wantTitle: "Validation failed"},
		{name: "everything missing", creds: models.Credentials{}, wantTitle: "Validation failed"},
		{name: "missing field wins over short password", creds: models.Credentials{Email: "a@x.io", Password: "123"}, wantTitle: "Validation failed"},
		{name: "five character password", creds: models.Credentials{Username: "a", Email: "a@x.io", Password: "12345"}, wantTitle: "Insecure password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no repository or hasher calls are expected
			svc, _, _ := newTestAuthSvc(t)

			_, err := svc.RegisterUser(context.Background(), tt.creds)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantTitle, validationErr.Title)
		})
	}
}

func TestRegisterUser_SixCharacterPasswordIsAccepted(t *testing.T) {
	svc, repo, hasher := newTestAuthSvc(t)

	hasher.EXPECT().Hash("123456").Return("digest", nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: "u"}, nil)

	_, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "a", Email: "a@x.io", Password: "123456"})

	assert.NoError(t, err)
}

func TestRegisterUser_PasswordTooLong(t *testing.T) {
	svc, _, hasher := newTestAuthSvc(t)
	long := strings.Repeat("p", 73)

	hasher.EXPECT().Hash(long).Return("", utils.ErrPasswordTooLong)

	_, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "a", Email: "a@x.io", Password: long})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Insecure password", validationErr.Title)
}

func TestRegisterUser_HashingFails(t *testing.T) {
	svc, _, hasher := newTestAuthSvc(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("entropy exhausted"))

	_, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "a", Email: "a@x.io", Password: "secret1"})

	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestRegisterUser_Conflict(t *testing.T) {
	svc, repo, hasher := newTestAuthSvc(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("digest", nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, &store.ConflictError{Field: "email"})

	_, err := svc.RegisterUser(context.Background(), models.Credentials{Username: "a", Email: "a@x.io", Password: "secret1"})

	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	svc, repo, hasher := newTestAuthSvc(t)
	ctx := context.Background()

	stored := models.User{UserID: "user-1", Username: "alice", Email: "alice@example.com", PasswordHash: "digest"}

	repo.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(stored, nil)
	hasher.EXPECT().Verify("secret1", "digest").Return(true)

	session, err := svc.Login(ctx, models.LoginCredentials{Email: "alice@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, stored, session.User)
	require.NotEmpty(t, session.Token.SignedString)

	parsed, err := utils.ValidateAndParseJWTToken(session.Token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, utils.TokenTTL, parsed.ExpiresAt.Sub(parsed.IssuedAt.Time))
}

func TestLogin_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		creds models.LoginCredentials
	}{
		{name: "missing email", creds: models.LoginCredentials{Password: "secret1"}},
		{name: "missing password", creds: models.LoginCredentials{Email: "a@x.io"}},
		{name: "empty", creds: models.LoginCredentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthSvc(t)

			_, err := svc.Login(context.Background(), tt.creds)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "Email and password are required", validationErr.Details)
		})
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, repo, _ := newTestAuthSvc(t)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(context.Background(), models.LoginCredentials{Email: "ghost@example.com", Password: "secret1"})

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, ReasonUserNotFound, authErr.Reason)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, hasher := newTestAuthSvc(t)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").
		Return(models.User{UserID: "user-1", PasswordHash: "digest"}, nil)
	hasher.EXPECT().Verify("wrong-pass", "digest").Return(false)

	_, err := svc.Login(context.Background(), models.LoginCredentials{Email: "alice@example.com", Password: "wrong-pass"})

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, ReasonBadPassword, authErr.Reason)
}

func TestLogin_FailuresShareMessage(t *testing.T) {
	notFound := &AuthenticationError{Reason: ReasonUserNotFound}
	badPassword := &AuthenticationError{Reason: ReasonBadPassword}

	assert.Equal(t, notFound.Error(), badPassword.Error())
	assert.NotEqual(t, notFound.Reason.String(), badPassword.Reason.String())
}

func TestLogin_StorageError(t *testing.T) {
	svc, repo, _ := newTestAuthSvc(t)
	dbErr := fmt.Errorf("%w: connection refused", store.ErrScanningRow)

	repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.Login(context.Background(), models.LoginCredentials{Email: "a@x.io", Password: "secret1"})

	require.ErrorIs(t, err, store.ErrScanningRow)
	var authErr *AuthenticationError
	assert.False(t, errors.As(err, &authErr))
}

// ─────────────────────────────────────────────
// GetCurrentUser
// ─────────────────────────────────────────────

func TestGetCurrentUser_Success(t *testing.T) {
	svc, repo, _ := newTestAuthSvc(t)

	repo.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{UserID: "user-1", Username: "alice"}, nil)

	u, err := svc.GetCurrentUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	svc, repo, _ := newTestAuthSvc(t)

	repo.EXPECT().FindUserByID(gomock.Any(), "gone").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.GetCurrentUser(context.Background(), "gone")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "gone", notFound.UserID)
	assert.Contains(t, err.Error(), "gone")
}

func TestGetCurrentUser_StorageError(t *testing.T) {
	svc, repo, _ := newTestAuthSvc(t)

	repo.EXPECT().FindUserByID(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrExecutingQuery)

	_, err := svc.GetCurrentUser(context.Background(), "user-1")

	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestCreateAndParseToken(t *testing.T) {
	svc, _, _ := newTestAuthSvc(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: "user-1"})
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, testIssuer, parsed.Issuer)
}

func TestCreateToken_EmptyUserID(t *testing.T) {
	svc, _, _ := newTestAuthSvc(t)

	_, err := svc.CreateToken(context.Background(), models.User{})

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestParseToken_Invalid(t *testing.T) {
	svc, _, _ := newTestAuthSvc(t)

	_, err := svc.ParseToken(context.Background(), "not.a.token")

	var tokenErr *utils.TokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.NotContains(t, err.Error(), "expired")
}
