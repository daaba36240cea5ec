package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/metrics"
	"github.com/MKhiriev/go-auth-service/internal/utils"
)

const (
	reasonTokenExpired  = "Token expired"
	reasonTokenNotValid = "Token is not valid"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the authenticated user's ID in the request context under [utils.UserIDCtxKey]
// before delegating to the next handler.
//
// Rejections are written as [AuthError]:
//   - no header: [MissingAuth], 401.
//   - header other than "Bearer <token>": [MalformedAuth], 401.
//   - token fails verification: [InvalidToken], 403, with reason
//     "Token expired" when the verification error mentions "expired" and
//     "Token is not valid" otherwise.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Info().Err(ErrEmptyAuthorizationHeader).Msg("request rejected by authorization gate")
			h.writeAuthError(w, &AuthError{Kind: MissingAuth, Err: ErrEmptyAuthorizationHeader})
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Info().Err(err).Msg("request rejected by authorization gate")
			h.writeAuthError(w, &AuthError{Kind: MalformedAuth, Err: err})
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			reason := reasonTokenNotValid
			if strings.Contains(err.Error(), "expired") {
				reason = reasonTokenExpired
			}
			log.Info().Err(err).Str("reason", reason).Msg("token verification failed")
			h.writeAuthError(w, &AuthError{Kind: InvalidToken, Reason: reason, Err: err})
			return
		}

		// downstream handlers read the user id without re-parsing the token
		ctx = utils.WithUserID(ctx, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) writeAuthError(w http.ResponseWriter, authErr *AuthError) {
	outcome := metrics.OutcomeUnauthorized
	if authErr.Kind == InvalidToken {
		outcome = metrics.OutcomeForbidden
	}
	h.observe(operationGate, outcome)

	writeErrorResponse(w, authErr.Status(), authErr.title(), authErr.details())
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header must be exactly:
//
//	Authorization: Bearer <token>
//
// split on a single space. Anything else yields [ErrInvalidAuthorizationHeader].
func getTokenFromAuthHeader(authHeader string) (string, error) {
	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}

	return tokenString, nil
}
