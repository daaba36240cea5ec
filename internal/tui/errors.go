// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
)

// humanizeError turns a request error into a line for the status bar.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Details != "" {
			return apiErr.Details
		}
		return apiErr.Title
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the server is unavailable"
	}

	return err.Error()
}
