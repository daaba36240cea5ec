package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/internal/client"
	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/tui"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/rs/zerolog"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-auth-client").Fatal().Err(err).Msg("error getting configs")
	}

	logFile, err := client.OpenLogFile(cfg.LogFile)
	if err != nil {
		logger.NewLogger("go-auth-client").Fatal().Err(err).Msg("error opening log file")
	}

	var out io.Writer = io.Discard
	if logFile != nil {
		out = logFile
	}
	log := logger.New(out, "go-auth-client", zerolog.DebugLevel)

	serverAdapter := adapter.NewHTTPServerAdapter(cfg, log)
	ui := tui.New(serverAdapter, buildInfo, log)

	err = client.NewApp(ui, log).Run()
	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
