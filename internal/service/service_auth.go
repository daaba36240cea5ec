package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/go-playground/validator/v10"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher produces and verifies password digests.
	hasher PasswordHasher

	// validate checks credential structs against their `validate` tags.
	validate *validator.Validate

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// All three fields are required and the password must be at least 6
// characters long. The password is hashed before the repository sees it.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - *ValidationError for missing fields or an unacceptable password.
//   - a wrapped *store.ConflictError when the username or email is taken.
//   - a wrapped storage or hashing error otherwise.
func (a *authService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validate.Struct(credentials); err != nil {
		log.Warn().Err(err).Str("username", credentials.Username).Msg("invalid registration data provided")
		return models.User{}, registrationValidationError(err)
	}

	digest, err := a.hasher.Hash(credentials.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return models.User{}, &ValidationError{
				Title:   "Insecure password",
				Details: "Password must be at most 72 bytes",
			}
		}
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     credentials.Username,
		Email:        credentials.Email,
		PasswordHash: digest,
	})
	if err != nil {
		log.Err(err).Str("username", credentials.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", registeredUser.UserID).Msg("user registered")

	return registeredUser, nil
}

// Login authenticates an existing user by email and password and issues a
// token for them.
//
// Returns the session or:
//   - *ValidationError if email or password is missing.
//   - *AuthenticationError if the email is unknown or the password is wrong.
//     The two cases are only distinguishable in the server log.
//   - a wrapped storage error otherwise.
func (a *authService) Login(ctx context.Context, credentials models.LoginCredentials) (models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.validate.Struct(credentials); err != nil {
		log.Warn().Err(err).Msg("invalid login data provided")
		return models.Session{}, &ValidationError{
			Title:   "Validation failed",
			Details: "Email and password are required",
		}
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Str("email", credentials.Email).Str("reason", ReasonUserNotFound.String()).Msg("login failed")
			return models.Session{}, &AuthenticationError{Reason: ReasonUserNotFound}
		}
		log.Err(err).Str("email", credentials.Email).Msg("user search by email failed")
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(credentials.Password, foundUser.PasswordHash) {
		log.Info().Str("user_id", foundUser.UserID).Str("reason", ReasonBadPassword.String()).Msg("login failed")
		return models.Session{}, &AuthenticationError{Reason: ReasonBadPassword}
	}

	token, err := a.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("user_id", foundUser.UserID).Msg("creation of token failed")
		return models.Session{}, err
	}

	return models.Session{Token: token, User: foundUser}, nil
}

// GetCurrentUser returns the account identified by userID, which the
// authorization gate took from a verified token.
func (a *authService) GetCurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, &NotFoundError{UserID: userID}
		}
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after [utils.TokenTTL].
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Failures are returned as the *utils.TokenError produced by
// [utils.ValidateAndParseJWTToken]; its message mentions "expired" only
// for expired tokens.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
}

func registrationValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			if fieldError.Tag() != "required" {
				continue
			}
			return &ValidationError{
				Title:   "Validation failed",
				Details: "All fields (username, email, password) are required",
			}
		}
	}

	return &ValidationError{
		Title:   "Insecure password",
		Details: "Password must be at least 6 characters",
	}
}
