package api

import (
	"net/http"
	"strconv"
	"time"

	"subnetcalc/internal/audit"
)

// handleAuditList lists recent calculation audit entries.
// GET /api/v1/audit
// Query params: limit, offset, outcome, address, since, until (RFC 3339)
func (s *Server) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErr(r.Context(), w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	q := r.URL.Query()

	limit := 50
	if l := q.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	offset := 0
	if o := q.Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	opts := audit.ListOptions{
		Limit:   limit,
		Offset:  offset,
		Outcome: q.Get("outcome"),
		Address: q.Get("address"),
	}
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeErr(r.Context(), w, http.StatusBadRequest, "invalid_request", "since must be RFC 3339")
			return
		}
		opts.Since = &ts
	}
	if v := q.Get("until"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeErr(r.Context(), w, http.StatusBadRequest, "invalid_request", "until must be RFC 3339")
			return
		}
		opts.Until = &ts
	}

	events, total, err := s.auditLogger.List(r.Context(), opts)
	if err != nil {
		s.writeErr(r.Context(), w, http.StatusInternalServerError, "failed to list audit events", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
