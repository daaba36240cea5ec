package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-auth-service/internal/logger"
)

// recoverer turns a panic in a downstream handler into a 500 response with
// the usual {error, details} body. The panic value is only disclosed in
// development. http.ErrAbortHandler is re-panicked so net/http can abort the
// connection.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}

			logger.FromRequest(r).Error().
				Err(err).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			writeErrorResponse(w, http.StatusInternalServerError, titleInternalError, h.internalDetails(detailsGeneric, err))
		}()

		next.ServeHTTP(w, r)
	})
}
