package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/handler"
	"github.com/MKhiriev/go-auth-service/internal/health"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/metrics"
	"github.com/MKhiriev/go-auth-service/internal/server"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-auth-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.New(os.Stdout, "go-auth-server", logger.LevelForEnvironment(cfg.App.Environment))

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	log.Debug().
		Str("environment", cfg.App.Environment).
		Str("driver", cfg.Storage.DB.Driver).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("metrics_address", cfg.Server.MetricsAddress).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	m.SetBuildInfo(buildInfo.Version, buildInfo.Commit)

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		checker := health.NewChecker(services.HealthService, log, prometheus.DefaultRegisterer)
		metricsServer = metrics.NewServer(cfg.Server.MetricsAddress, prometheus.DefaultGatherer,
			checker.LivenessHandler(), checker.ReadinessHandler())
	}

	srv, err := server.NewServer(handlers, metricsServer, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
