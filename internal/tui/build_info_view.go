// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-auth-service/models"
)

func renderBuildInfoWindow(info models.BuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: go-auth-client\n")
	b.WriteString("Version: ")
	b.WriteString(info.Version)
	b.WriteString("\nDate: ")
	b.WriteString(info.Date)
	b.WriteString("\nCommit: ")
	b.WriteString(info.Commit)

	return renderPage("ABOUT", boxStyle.Render(b.String()), "esc: back")
}
