package recorder

import "github.com/prometheus/client_golang/prometheus"

// Metrics for the telemetry sink.
type Metrics struct {
	Recorded    prometheus.Counter
	Dropped     prometheus.Counter
	WriteErrors prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_messages_recorded_total",
			Help: "force_data messages written to InfluxDB.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_messages_dropped_total",
			Help: "Session messages discarded (not force_data or unparseable).",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recorder_write_errors_total",
			Help: "InfluxDB write failures.",
		}),
	}
	reg.MustRegister(m.Recorded, m.Dropped, m.WriteErrors)
	return m
}
