package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhamdi/tunnel-rig/internal/services/recorder"
	"github.com/rhamdi/tunnel-rig/pkg/session"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- session (telemetry subscription) ---
	transport, err := session.NewMQTTTransport(ctx, session.MQTTConfig{
		Host:     env("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     env("MQTT_USER", "guest"),
		Password: env("MQTT_PASSWORD", "guest"),
		ClientID: env("MQTT_CLIENT_ID", "recorder"),
		SubTopic: env("TELEMETRY_SUB_TOPIC", "rig/telemetry"),
	})
	if err != nil {
		log.Fatalf("session connect failed: %v", err)
	}

	// --- InfluxDB ---
	influxURL := env("INFLUX_URL", "http://localhost:8086")
	influxClient := influxdb2.NewClient(influxURL, env("INFLUX_TOKEN", ""))
	writeAPI := influxClient.WriteAPIBlocking(env("INFLUX_ORG", "org"), env("INFLUX_BUCKET", "force-data"))

	metrics := recorder.NewMetrics(prometheus.DefaultRegisterer)
	svc, err := recorder.NewService(writeAPI, env("MEASUREMENT", "force"), metrics)
	if err != nil {
		log.Fatalf("recorder init: %v", err)
	}
	transport.SetHandler(svc.Handler(ctx))

	mux := http.NewServeMux()
	mux.Handle("/healthz", recorder.NewHealthHandler(transport, influxClient, svc))
	mux.Handle("/readyz", recorder.NewReadyHandler(transport, influxClient, svc, 30*time.Second))
	mux.Handle("/metrics", promhttp.Handler())

	addr := env("HTTP_ADDR", ":8081")
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	log.Printf("recorder running. influx=%s http=%s", influxURL, addr)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	influxClient.Close()
}
