package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"subnetcalc/internal/audit"
	"subnetcalc/internal/subnet"
)

// subnetRequest is the POST body for a calculation. The same three
// fields arrive as query parameters on GET.
type subnetRequest struct {
	Address string `json:"address"`
	Mask    string `json:"mask"`
	Default bool   `json:"default"`
}

// subnetResponse renders a subnet.Result with addresses in dotted form.
// Gateway and next network are omitted when they do not apply (/31 and
// /32 blocks, last block in the address space).
type subnetResponse struct {
	Address      string `json:"address"`
	Mask         string `json:"mask"`
	PrefixLength int    `json:"prefix_length"`
	CIDR         string `json:"cidr"`
	Source       string `json:"source"`
	Network      string `json:"network"`
	Broadcast    string `json:"broadcast"`
	BlockSize    uint64 `json:"block_size"`
	FirstHost    string `json:"first_host"`
	LastHost     string `json:"last_host"`
	UsableHosts  uint64 `json:"usable_hosts"`
	Gateway      string `json:"gateway,omitempty"`
	NextNetwork  string `json:"next_network,omitempty"`
}

func toSubnetResponse(r subnet.Result) subnetResponse {
	resp := subnetResponse{
		Address:      r.Addr.String(),
		Mask:         r.Mask.String(),
		PrefixLength: r.PrefixLen,
		CIDR:         r.Network.String() + "/" + strconv.Itoa(r.PrefixLen),
		Source:       string(r.Source),
		Network:      r.Network.String(),
		Broadcast:    r.Broadcast.String(),
		BlockSize:    r.BlockSize,
		FirstHost:    r.FirstHost.String(),
		LastHost:     r.LastHost.String(),
		UsableHosts:  r.UsableHosts,
	}
	if r.Gateway != nil {
		resp.Gateway = r.Gateway.String()
	}
	if r.NextNetwork != nil {
		resp.NextNetwork = r.NextNetwork.String()
	}
	return resp
}

// handleSubnet computes subnet parameters for an address and mask spec.
// GET /api/v1/subnet?address=10.0.0.1&mask=/24&default=false
// POST /api/v1/subnet {"address": "...", "mask": "...", "default": false}
func (s *Server) handleSubnet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req subnetRequest
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Address = q.Get("address")
		req.Mask = q.Get("mask")
		if d := strings.TrimSpace(q.Get("default")); d != "" {
			parsed, err := strconv.ParseBool(d)
			if err != nil {
				s.writeErr(ctx, w, http.StatusBadRequest, "invalid_request", "default must be a boolean")
				return
			}
			req.Default = parsed
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErr(ctx, w, http.StatusBadRequest, "invalid_request", "malformed JSON body: "+err.Error())
			return
		}
	default:
		s.writeErr(ctx, w, http.StatusMethodNotAllowed, "method not allowed", "use GET or POST")
		return
	}

	result, err := subnet.Compute(req.Address, req.Mask, req.Default)
	if err != nil {
		token := errorToken(err)
		if s.metrics != nil {
			s.metrics.RecordCalculationError(token)
		}
		s.logCalculation(r, req, "", token, http.StatusBadRequest)
		s.writeErr(ctx, w, http.StatusBadRequest, token, err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.RecordCalculation(string(result.Source))
	}
	s.logCalculation(r, req, string(result.Source), audit.OutcomeOK, http.StatusOK)
	writeJSON(w, http.StatusOK, toSubnetResponse(result))
}

// logCalculation records one calculation request in the audit trail.
// Audit failures are logged, never surfaced to the client.
func (s *Server) logCalculation(r *http.Request, req subnetRequest, source, outcome string, statusCode int) {
	if s.auditLogger == nil {
		return
	}
	ctx := r.Context()
	event := &audit.Event{
		RequestID:  RequestIDFromContext(ctx),
		ClientIP:   clientKeyWithProxies(r, s.proxies),
		Address:    strings.TrimSpace(req.Address),
		MaskSpec:   strings.TrimSpace(req.Mask),
		Source:     source,
		Outcome:    outcome,
		StatusCode: statusCode,
	}
	if err := s.auditLogger.Log(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to log audit event", appendRequestID(ctx, []any{
			"error", err.Error(),
			"outcome", outcome,
		})...)
	}
}
