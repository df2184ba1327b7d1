package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default health check settings.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
	defaultHealthTimeout = 5 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency is ready to serve traffic.
type CheckFunc func(ctx context.Context) error

// healthConfig holds health endpoint configuration.
type healthConfig struct {
	livenessPath  string
	readinessPath string
	timeout       time.Duration
	checks        map[string]CheckFunc
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets the liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		c.livenessPath = path
	}
}

// WithReadinessPath sets the readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		c.readinessPath = path
	}
}

// WithHealthTimeout bounds the total time spent running readiness checks.
func WithHealthTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}

type healthResponse struct {
	Checks map[string]healthCheck `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, r, http.StatusOK, &healthResponse{Status: statusHealthy})
	}
}

func readinessHandler(cfg *healthConfig, log *slog.Logger) http.HandlerFunc {
	checks := maps.Clone(cfg.checks)
	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg.timeout, log)
		status := http.StatusOK
		if resp.Status == statusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, r, status, resp)
	}
}

// runChecks runs every check concurrently under a shared timeout.
func runChecks(ctx context.Context, checks map[string]CheckFunc, timeout time.Duration, log *slog.Logger) *healthResponse {
	resp := &healthResponse{Status: statusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var mu sync.Mutex
	resp.Checks = make(map[string]healthCheck, len(checks))

	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			res := healthCheck{Status: statusHealthy}
			if err := check(ctx); err != nil {
				res = healthCheck{Status: statusUnhealthy, Error: err.Error()}
				log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			resp.Checks[name] = res
			if res.Status == statusUnhealthy {
				resp.Status = statusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()
	return resp
}

// writeHealth answers with JSON when asked for it and plain text otherwise.
func writeHealth(w http.ResponseWriter, r *http.Request, status int, resp *healthResponse) {
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}
