package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/metrics"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

const (
	titleServerError   = "Server error"
	titleInternalError = "Internal server error"
	detailsGeneric     = "An error occurred"
)

// internalDetails is what production clients see for a 500 of an operation.
var internalDetails = map[string]string{
	operationRegister: "Could not complete registration",
	operationLogin:    "Could not complete login",
	operationMe:       "Could not retrieve user information",
}

var errorStatusMap = map[error]int{
	ErrInvalidJSON: http.StatusBadRequest,

	store.ErrUserNotFound:     http.StatusNotFound,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

// statusFromError maps an error returned by the service layer to an HTTP
// status code. Typed errors are checked first, then sentinel errors.
func statusFromError(err error) int {
	var (
		validationErr *service.ValidationError
		authErr       *service.AuthenticationError
		notFoundErr   *service.NotFoundError
		conflictErr   *store.ConflictError
		gateErr       *AuthError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &gateErr):
		return gateErr.Status()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError responds to a failed operation with the matching status code
// and {error, details} body, and counts the outcome.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := statusFromError(err)
	title, details := h.describeError(operation, err, status)

	h.observe(operation, outcomeForStatus(status))

	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("operation", operation).Msg("request failed")
	}

	writeErrorResponse(w, status, title, details)
}

func (h *Handler) describeError(operation string, err error, status int) (string, string) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		conflictErr   *store.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Title, validationErr.Details
	case errors.As(err, &conflictErr):
		if conflictErr.Field == "username" {
			return "Data conflict", "Username already exists"
		}
		return "Data conflict", "Email is already registered"
	case status == http.StatusUnauthorized:
		return "Authentication failed", "Invalid credentials"
	case errors.As(err, &notFoundErr):
		return "User not found", notFoundErr.Error()
	case errors.Is(err, ErrInvalidJSON):
		return "Validation failed", "Request body must be valid JSON"
	}

	return titleServerError, h.internalDetails(internalDetails[operation], err)
}

// internalDetails exposes err to the client in development only.
func (h *Handler) internalDetails(fallback string, err error) string {
	if h.development && err != nil {
		return err.Error()
	}
	if fallback == "" {
		return detailsGeneric
	}
	return fallback
}

func (h *Handler) observe(operation, outcome string) {
	if h.metrics != nil {
		h.metrics.ObserveOutcome(operation, outcome)
	}
}

func outcomeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return metrics.OutcomeInvalid
	case http.StatusConflict:
		return metrics.OutcomeConflict
	case http.StatusUnauthorized:
		return metrics.OutcomeUnauthorized
	case http.StatusForbidden:
		return metrics.OutcomeForbidden
	case http.StatusNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, title, details string) {
	utils.WriteJSON(w, models.ErrorResponse{Error: title, Details: details}, status)
}
