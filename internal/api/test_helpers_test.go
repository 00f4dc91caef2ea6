package api

import (
	"io"
	"net/http"

	"subnetcalc/internal/audit"
	"subnetcalc/internal/observability"
)

// newTestServer builds a Server with routes registered, an in-memory
// audit logger, and a silenced logger for handler tests.
func newTestServer() (*Server, *http.ServeMux, *audit.MemoryLogger) {
	mux := http.NewServeMux()
	auditLogger := audit.NewMemoryLogger()
	logger := observability.NewLogger(observability.Config{Level: "error", Format: "text", Output: io.Discard})
	srv := NewServer(mux, logger, nil, auditLogger, "test")
	srv.RegisterRoutes()
	return srv, mux, auditLogger
}
