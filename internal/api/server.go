// Package api exposes the subnet calculation engine over HTTP: the
// calculator endpoint, the audit trail, system endpoints, and the
// embedded UI page. All subnet arithmetic lives in internal/subnet; this
// layer only translates requests and renders results.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"

	"subnetcalc/internal/audit"
	"subnetcalc/internal/observability"
	"subnetcalc/internal/subnet"
)

type apiError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Server routes HTTP traffic to the calculator and its supporting
// endpoints.
type Server struct {
	mux         *http.ServeMux
	logger      observability.Logger
	metrics     *observability.Metrics
	auditLogger audit.Logger
	proxies     *TrustedProxyConfig
	version     string
}

// NewServer creates a new HTTP server with the given dependencies.
// If logger is nil, a default logger will be used.
// If metrics is nil, metrics collection is disabled.
// If auditLogger is nil, a memory-based audit logger will be used.
func NewServer(mux *http.ServeMux, logger observability.Logger, metrics *observability.Metrics, auditLogger audit.Logger, version string) *Server {
	if logger == nil {
		logger = observability.NewLogger(observability.DefaultConfig())
	}
	if auditLogger == nil {
		auditLogger = audit.NewMemoryLogger()
	}
	return &Server{mux: mux, logger: logger, metrics: metrics, auditLogger: auditLogger, version: version}
}

// SetTrustedProxies configures X-Forwarded-For handling for client
// identification in audit records.
func (s *Server) SetTrustedProxies(cfg *TrustedProxyConfig) { s.proxies = cfg }

// RegisterRoutes registers all HTTP routes on the server's mux.
func (s *Server) RegisterRoutes() {
	s.mux.HandleFunc("/api/v1/subnet", s.handleSubnet)
	s.mux.HandleFunc("/api/v1/audit", s.handleAuditList)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/readyz", s.handleReady)
	s.mux.HandleFunc("/openapi.yaml", s.handleOpenAPISpec)
	if s.metrics != nil {
		s.mux.Handle("/metrics", s.metrics.Handler())
	}
	s.mux.HandleFunc("/", s.handleIndex)
}

func (s *Server) writeErr(ctx context.Context, w http.ResponseWriter, code int, msg string, detail string) {
	fields := []any{
		"status", code,
		"error", msg,
	}
	if detail != "" {
		fields = append(fields, "detail", detail)
	}
	if code >= 500 {
		s.logger.ErrorContext(ctx, "request failed", fields...)
		sentry.CaptureMessage(fmt.Sprintf("HTTP %d: %s (detail: %s)", code, msg, detail))
	} else {
		s.logger.WarnContext(ctx, "request failed", fields...)
	}
	writeJSON(w, code, apiError{Error: msg, Detail: detail})
}

// errorToken maps a calculator error to a stable machine-readable token
// used in responses, metrics labels, and audit records. It uses
// errors.Is() to detect sentinel errors from the subnet package.
func errorToken(err error) string {
	switch {
	case errors.Is(err, subnet.ErrMalformedAddress):
		return "malformed_address"
	case errors.Is(err, subnet.ErrInvalidOctet):
		return "invalid_octet"
	case errors.Is(err, subnet.ErrOctetOutOfRange):
		return "octet_out_of_range"
	case errors.Is(err, subnet.ErrLeadingZero):
		return "leading_zero"
	case errors.Is(err, subnet.ErrInvalidPrefixLength):
		return "invalid_prefix_length"
	case errors.Is(err, subnet.ErrInvalidCIDR):
		return "invalid_cidr"
	case errors.Is(err, subnet.ErrInvalidMask):
		return "invalid_mask"
	case errors.Is(err, subnet.ErrUnknownMaskSpec):
		return "unrecognized_mask_spec"
	case errors.Is(err, subnet.ErrNoDefaultMask):
		return "no_default_mask"
	case errors.Is(err, subnet.ErrMaskRequired):
		return "mask_required"
	default:
		return "internal_error"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) { s.status = code; s.ResponseWriter.WriteHeader(code) }

// Unwrap returns the underlying ResponseWriter for compatibility with
// http.ResponseController.
func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }
