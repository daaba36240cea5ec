package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-service/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = time.Hour

// TokenErrorKind classifies why a token was rejected.
type TokenErrorKind int

const (
	// TokenMalformed means the token could not be decoded or lacks claims.
	TokenMalformed TokenErrorKind = iota
	// TokenSignatureInvalid means the signature or signing method is wrong.
	TokenSignatureInvalid
	// TokenExpired means the current time is past the "exp" claim.
	TokenExpired
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenSignatureInvalid:
		return "signature invalid"
	case TokenExpired:
		return "token expired"
	default:
		return "token malformed"
	}
}

// TokenError is returned by [ValidateAndParseJWTToken] on any failure.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for userID.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus [TokenTTL]
//
// Returns an error if any parameter is empty or signing fails.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-auth-service", userID, "secret-key")
func GenerateJWTToken(issuer, userID, signKey string) (models.Token, error) {
	return generateJWTToken(issuer, userID, signKey, time.Now())
}

func generateJWTToken(issuer, userID, signKey string, now time.Time) (models.Token, error) {
	if issuer == "" || userID == "" || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// the user ID from its subject claim.
//
// Validation includes:
//   - HS256 signing method and signature check with tokenSignKey
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim check, the claim is required
//   - Subject (sub) claim presence
//
// Verification is stateless. Any failure is returned as a *[TokenError].
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, &TokenError{Kind: classifyJWTError(err), Err: err}
	}

	if claims.Subject == "" {
		return models.Token{}, &TokenError{Kind: TokenMalformed, Err: errors.New("empty subject")}
	}

	return models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString, UserID: claims.Subject}, nil
}

func classifyJWTError(err error) TokenErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return TokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return TokenSignatureInvalid
	default:
		return TokenMalformed
	}
}

// ParseBearerToken extracts the token from an "Authorization" header value.
// The header must consist of exactly two parts separated by a single space,
// the first of which is "Bearer".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(authorizationHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
