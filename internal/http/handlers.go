package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleReady reports not_ready when the store cannot list expenses.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := map[string]any{"templates": "ok"}

	if _, err := s.svc.List(ctx); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	cacheEntries := 0
	if s.items != nil {
		cacheEntries = s.items.Size()
	}
	checks["cache"] = map[string]any{"entries": cacheEntries, "enabled": s.items != nil}
	checks["rate_limiter"] = map[string]any{"active_clients": s.limiter.ActiveClients()}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics writes counters in Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	tm := s.tracer.GetMetrics()
	metric := func(name, help, typ string, v any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n", name, help, name, typ, name, v)
	}
	metric("http_requests_total", "Total number of HTTP requests.", "counter", tm.TotalRequests)
	metric("http_server_errors_total", "Responses with a 5xx status.", "counter", tm.ServerErrors)
	metric("rate_limit_rejections_total", "Requests rejected by the rate limiter.", "counter", s.limiter.Hits())
	metric("rate_limit_active_clients", "Clients tracked by the rate limiter.", "gauge", s.limiter.ActiveClients())
	metric("suspicious_requests_total", "Requests flagged as probes.", "counter", s.detector.SuspiciousRequests())
	metric("uptime_seconds", "Seconds since the server started.", "gauge", int64(time.Since(s.startedAt).Seconds()))
}
