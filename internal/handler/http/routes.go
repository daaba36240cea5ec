package http

import (
	"github.com/go-chi/chi/v5"
)

const (
	operationRegister = "register"
	operationLogin    = "login"
	operationMe       = "me"
	operationGate     = "gate"
)

// Init builds the router of the public API.
//
// Middleware order: trace id, access log, metrics, panic recovery. The
// authorization gate wraps POST /register and GET /me only.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, h.recoverer)

	// routes without authorization
	router.Post("/login", h.login)

	// routes behind the authorization gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/register", h.register)
		r.Get("/me", h.me)
	})

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	return router
}
