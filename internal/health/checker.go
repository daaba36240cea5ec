// Package health reports liveness and readiness of the service over HTTP and
// mirrors readiness into a Prometheus gauge.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusUp   = "up"
	StatusDown = "down"

	dependencyDatabase = "database"
	checkTimeout       = 2 * time.Second
)

// CheckResult represents the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the top-level health response.
type HealthResult struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker verifies that all dependencies are reachable.
type Checker struct {
	service service.HealthService
	logger  *logger.Logger
	gauge   *prometheus.GaugeVec
}

// NewChecker creates a health checker and registers its Prometheus gauge.
func NewChecker(healthService service.HealthService, log *logger.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "auth",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		service: healthService,
		logger:  &logger.Logger{Logger: log.With().Str("component", "health").Logger()},
		gauge:   gauge,
	}
}

// Liveness returns a simple "up" response if the process is running.
func (c *Checker) Liveness(ctx context.Context) HealthResult {
	return HealthResult{Status: StatusUp, Version: c.service.GetAppVersion(ctx)}
}

// Readiness pings every dependency and reports per-check status.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	result := HealthResult{
		Status:  StatusUp,
		Version: c.service.GetAppVersion(ctx),
		Checks:  make(map[string]CheckResult),
	}

	if err := c.service.Ready(checkCtx); err != nil {
		c.logger.Warn().Err(err).Msg("database health check failed")
		result.Status = StatusDown
		result.Checks[dependencyDatabase] = CheckResult{Status: StatusDown, Error: err.Error()}
		c.gauge.WithLabelValues(dependencyDatabase).Set(0)
	} else {
		result.Checks[dependencyDatabase] = CheckResult{Status: StatusUp}
		c.gauge.WithLabelValues(dependencyDatabase).Set(1)
	}

	return result
}

// LivenessHandler serves [Checker.Liveness] as JSON.
func (c *Checker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, c.Liveness(r.Context()), http.StatusOK)
	})
}

// ReadinessHandler serves [Checker.Readiness] as JSON, with 503 while any
// dependency is down.
func (c *Checker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := c.Readiness(r.Context())

		status := http.StatusOK
		if result.Status != StatusUp {
			status = http.StatusServiceUnavailable
		}
		utils.WriteJSON(w, result, status)
	})
}
