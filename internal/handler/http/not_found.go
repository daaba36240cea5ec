// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
)

// routeNotFound answers every request that matches no route, including a
// known path requested with a method it does not serve. Both cases yield
// 404 so that route existence is not leaked through 405.
func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusNotFound,
		"Route not found",
		fmt.Sprintf("Route %s %s does not exist", r.Method, r.URL.Path),
	)
}
