package recorder

import (
	"encoding/json"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/rhamdi/tunnel-rig/pkg/session"
)

type healthHandler struct {
	transport session.Transport
	influx    influxdb2.Client
	svc       *Service
}

func NewHealthHandler(t session.Transport, i influxdb2.Client, s *Service) http.Handler {
	return &healthHandler{transport: t, influx: i, svc: s}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Status           string  `json:"status"`
		SessionConnected bool    `json:"session_connected"`
		InfluxOK         bool    `json:"influx_ok"`
		LastWriteErrorS  float64 `json:"last_write_error_age_sec"`
	}
	st := status{
		SessionConnected: h.transport != nil && h.transport.Connected(),
		InfluxOK:         h.influx != nil,
		LastWriteErrorS:  h.svc.LastErrorAge().Seconds(),
	}

	switch {
	case st.SessionConnected && st.InfluxOK && h.svc.LastErrorAge() > 30*time.Second:
		st.Status = "ok"
	case st.SessionConnected || st.InfluxOK:
		st.Status = "degraded"
	default:
		st.Status = "down"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

// readyHandler answers 200 only when every dependency is healthy.
type readyHandler struct {
	transport session.Transport
	influx    influxdb2.Client
	svc       *Service
	minError  time.Duration
}

func NewReadyHandler(t session.Transport, i influxdb2.Client, s *Service, minOkErrorAge time.Duration) http.Handler {
	return &readyHandler{transport: t, influx: i, svc: s, minError: minOkErrorAge}
}

func (h *readyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ready := h.transport != nil && h.transport.Connected() &&
		h.influx != nil && h.svc.LastErrorAge() > h.minError
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	w.Header().Set("Content-Type", "application/json")
	type resp struct {
		Ready bool `json:"ready"`
	}
	_ = json.NewEncoder(w).Encode(resp{Ready: ready})
}
