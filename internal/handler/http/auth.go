package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/metrics"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

// register handles POST /register. The caller must already hold a valid
// token; the gate runs before this handler.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := decodeBody(r, &credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, operationRegister, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, credentials)
	if err != nil {
		h.writeError(w, r, operationRegister, err)
		return
	}

	h.observe(operationRegister, metrics.OutcomeSuccess)

	utils.WriteJSON(w, models.UserEnvelope{
		Success: true,
		User:    models.NewUserResponse(registeredUser),
	}, http.StatusCreated)
}

// login handles POST /login and returns a fresh token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.LoginCredentials
	if err := decodeBody(r, &credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, operationLogin, err)
		return
	}

	session, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		h.writeError(w, r, operationLogin, err)
		return
	}

	log.Debug().Str("id", session.User.UserID).Msg("user successfully logged in")
	h.observe(operationLogin, metrics.OutcomeSuccess)

	utils.WriteJSON(w, models.LoginResponse{
		Success: true,
		Token:   session.Token.SignedString,
		User:    models.NewUserResponse(session.User),
	}, http.StatusOK)
}

// me handles GET /me for the user the gate authenticated.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.writeError(w, r, operationMe, errors.New("no user id in request context"))
		return
	}

	user, err := h.services.AuthService.GetCurrentUser(ctx, userID)
	if err != nil {
		h.writeError(w, r, operationMe, err)
		return
	}

	h.observe(operationMe, metrics.OutcomeSuccess)

	utils.WriteJSON(w, models.UserEnvelope{
		Success: true,
		User:    models.NewUserResponse(user),
	}, http.StatusOK)
}

// decodeBody decodes a JSON body into dst. A missing body leaves dst zeroed
// so that field validation reports what is missing.
func decodeBody(r *http.Request, dst any) error {
	err := utils.DecodeJSON(r, dst)
	if err == nil || errors.Is(err, utils.ErrEmptyBody) {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
}
