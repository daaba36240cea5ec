package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-auth-service/internal/metrics"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &service.ValidationError{Title: "Validation failed"}, want: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("register: %w", &service.ValidationError{}), want: http.StatusBadRequest},
		{name: "invalid JSON", err: fmt.Errorf("%w: unexpected EOF", ErrInvalidJSON), want: http.StatusBadRequest},
		{name: "conflict", err: fmt.Errorf("insert: %w", &store.ConflictError{Field: "email"}), want: http.StatusConflict},
		{name: "bad credentials", err: &service.AuthenticationError{Reason: service.ReasonBadPassword}, want: http.StatusUnauthorized},
		{name: "gate missing header", err: &AuthError{Kind: MissingAuth}, want: http.StatusUnauthorized},
		{name: "gate invalid token", err: &AuthError{Kind: InvalidToken}, want: http.StatusForbidden},
		{name: "user not found", err: &service.NotFoundError{UserID: "x"}, want: http.StatusNotFound},
		{name: "store not found", err: fmt.Errorf("find: %w", store.ErrUserNotFound), want: http.StatusNotFound},
		{name: "query failure", err: fmt.Errorf("%w: timeout", store.ErrExecutingQuery), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("something else"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestOutcomeForStatus(t *testing.T) {
	assert.Equal(t, metrics.OutcomeInvalid, outcomeForStatus(http.StatusBadRequest))
	assert.Equal(t, metrics.OutcomeUnauthorized, outcomeForStatus(http.StatusUnauthorized))
	assert.Equal(t, metrics.OutcomeForbidden, outcomeForStatus(http.StatusForbidden))
	assert.Equal(t, metrics.OutcomeNotFound, outcomeForStatus(http.StatusNotFound))
	assert.Equal(t, metrics.OutcomeConflict, outcomeForStatus(http.StatusConflict))
	assert.Equal(t, metrics.OutcomeError, outcomeForStatus(http.StatusInternalServerError))
}

func TestInternalDetails(t *testing.T) {
	err := errors.New("dial tcp: connection refused")

	prod := newTestHandler()
	assert.Equal(t, "Could not complete login", prod.internalDetails(internalDetails[operationLogin], err))
	assert.Equal(t, detailsGeneric, prod.internalDetails("", err))

	dev := newTestHandler()
	dev.development = true
	assert.Equal(t, "dial tcp: connection refused", dev.internalDetails("Could not complete login", err))
	assert.Equal(t, "fallback", dev.internalDetails("fallback", nil))
}
