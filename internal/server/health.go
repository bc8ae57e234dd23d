package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Checker reports whether a backend dependency is reachable.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

type HealthStatus struct {
	Status string `json:"status"`
}

// HealthResponse maps dependency name to its status.
type HealthResponse map[string]HealthStatus

func handleHealth(logger *slog.Logger, checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := HealthResponse{}
		status := http.StatusOK

		for name, check := range checks {
			if err := check.Check(ctx); err != nil {
				logger.Error("health check failed", "name", name, "error", err)
				resp[name] = HealthStatus{Status: "error"}
				status = http.StatusServiceUnavailable
				continue
			}
			resp[name] = HealthStatus{Status: "ok"}
		}

		writeJSON(w, status, resp)
	}
}
