// Package recorder subscribes to force_data telemetry and persists each
// reading as an InfluxDB point. It is a backend-side consumer: losing a
// message here never affects the rig, so every failure degrades to
// "skip this message".
package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/rhamdi/tunnel-rig/internal/model/messages"
	"github.com/rhamdi/tunnel-rig/pkg/session"
)

type Service struct {
	writeAPI    api.WriteAPIBlocking
	measurement string
	metrics     *Metrics

	mu      sync.RWMutex
	lastErr time.Time
}

func NewService(writeAPI api.WriteAPIBlocking, measurement string, m *Metrics) (*Service, error) {
	if writeAPI == nil {
		return nil, fmt.Errorf("influx write api is nil")
	}
	if measurement == "" {
		measurement = "force"
	}
	return &Service{
		writeAPI:    writeAPI,
		measurement: measurement,
		metrics:     m,
		lastErr:     time.Now().Add(-24 * time.Hour),
	}, nil
}

// Handler returns the session handler that consumes telemetry messages.
// Every force_data message becomes a point: the cadence sends identical
// payloads on purpose, so repeats are data, not duplicates.
func (s *Service) Handler(ctx context.Context) session.Handler {
	return func(text string) {
		var env messages.Envelope
		if err := json.Unmarshal([]byte(text), &env); err != nil || env.Type != messages.TypeForceData {
			s.metrics.Dropped.Inc()
			return
		}
		var fd messages.ForceData
		if err := json.Unmarshal([]byte(text), &fd); err != nil {
			s.metrics.Dropped.Inc()
			return
		}

		point := influxdb2.NewPoint(
			s.measurement,
			map[string]string{"source": "force-controller"},
			map[string]interface{}{
				"drag_force": fd.DragForce,
				"down_force": fd.DownForce,
			},
			time.Now(),
		)
		if err := s.writeAPI.WritePoint(ctx, point); err != nil {
			log.Printf("recorder: write error: %v", err)
			s.metrics.WriteErrors.Inc()
			s.mu.Lock()
			s.lastErr = time.Now()
			s.mu.Unlock()
			return
		}
		s.metrics.Recorded.Inc()
	}
}

// LastErrorAge returns how long it has been since a write failed; used
// by the health endpoints.
func (s *Service) LastErrorAge() time.Duration {
	s.mu.RLock()
	t := s.lastErr
	s.mu.RUnlock()
	return time.Since(t)
}
