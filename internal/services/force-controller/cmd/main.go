package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rhamdi/tunnel-rig/internal/sim"
	"github.com/rhamdi/tunnel-rig/pkg/fanbus"
	"github.com/rhamdi/tunnel-rig/pkg/session"

	controller "github.com/rhamdi/tunnel-rig/internal/services/force-controller"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- backend session ---
	var transport session.Transport
	switch mode := env("SESSION_TRANSPORT", "websocket"); mode {
	case "websocket":
		transport = session.NewWSTransport(ctx, session.WSConfig{
			Host: env("WS_HOST", "localhost"),
			Port: envInt("WS_PORT", 8000),
			Path: env("WS_PATH", "/ws/microcontroller"),
			TLS:  envBool("WS_TLS", false),
		})
	case "mqtt":
		t, err := session.NewMQTTTransport(ctx, session.MQTTConfig{
			Host:     env("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     env("MQTT_USER", "guest"),
			Password: env("MQTT_PASSWORD", "guest"),
			ClientID: env("MQTT_CLIENT_ID", "force-controller"),
			PubTopic: env("TELEMETRY_PUB_TOPIC", "rig/telemetry"),
			SubTopic: env("COMMAND_SUB_TOPIC", "rig/commands"),
		})
		if err != nil {
			log.Fatalf("session connect failed: %v", err)
		}
		transport = t
	default:
		log.Fatalf("unknown SESSION_TRANSPORT %q", mode)
	}

	// --- inter-controller bus ---
	busAddr := env("FAN_BUS_ADDR", "127.0.0.1:9512")
	bus, err := fanbus.NewUDPWriter(busAddr)
	if err != nil {
		log.Fatalf("bus init: %v", err)
	}
	defer bus.Close()

	// --- load cells ---
	// The transducer driver is an external collaborator; this binary
	// ships with simulated cells.
	drag := sim.NewLoadCell(1, envInt64("SIM_DRAG_GAIN", 40), 5, 0.05)
	down := sim.NewLoadCell(2, envInt64("SIM_DOWN_GAIN", 25), 5, 0.05)
	log.Printf("load cells: simulated driver")

	// --- update staging ---
	target := env("UPDATE_TARGET", mustExecutable())
	capacity := envInt64("UPDATE_CAPACITY_BYTES", 64<<20)
	stager := controller.NewFileStager(target, capacity)
	updater := controller.NewUpdater(transport, stager, controller.ExecRestarter{})

	dispatcher := controller.NewDispatcher(bus, updater)
	sampler := controller.NewSampler(drag, down)
	publisher := controller.NewPublisher(transport)
	interval := time.Duration(envInt("TELEMETRY_INTERVAL_MS", 500)) * time.Millisecond

	ctrl := controller.NewController(sampler, publisher, dispatcher, transport, interval)
	log.Printf("force-controller running. bus=%s interval=%s", busAddr, interval)
	if err := ctrl.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("controller stopped: %v", err)
	}
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustExecutable() string {
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot resolve executable: %v", err)
	}
	return exe
}
