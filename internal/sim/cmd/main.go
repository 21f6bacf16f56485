// Simulated rig: both controllers in one process, wired over an
// in-memory pipe bus with load cells coupled to the fan output. Useful
// against a local broker or backend to exercise the whole protocol.
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

	fan "github.com/rhamdi/tunnel-rig/internal/services/fan-controller"
	force "github.com/rhamdi/tunnel-rig/internal/services/force-controller"
	"github.com/rhamdi/tunnel-rig/internal/sim"
	"github.com/rhamdi/tunnel-rig/pkg/fanbus"
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
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport, err := session.NewMQTTTransport(ctx, session.MQTTConfig{
		Host:     env("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     env("MQTT_USER", "guest"),
		Password: env("MQTT_PASSWORD", "guest"),
		ClientID: env("MQTT_CLIENT_ID", "sim-rig"),
		PubTopic: env("TELEMETRY_PUB_TOPIC", "rig/telemetry"),
		SubTopic: env("COMMAND_SUB_TOPIC", "rig/commands"),
	})
	if err != nil {
		log.Fatalf("session connect failed: %v", err)
	}

	// rig hardware: pipe bus, coupled cells, simulated fan output
	bus := fanbus.NewPipe()
	drag := sim.NewLoadCell(1, 40, 5, 0.05)
	down := sim.NewLoadCell(2, 25, 5, 0.05)
	out := sim.NewPWM(drag, down)

	// fan controller side
	receiver := fan.NewReceiver()
	receiver.Bind(bus)
	fanCtrl := fan.NewController(receiver, fan.NewActuator(out), 0)
	go func() {
		if err := fanCtrl.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("fan controller stopped: %v", err)
		}
	}()

	// force controller side; updates land in a scratch file so a sim
	// "firmware swap" never touches the sim binary itself
	stager := force.NewFileStager(env("UPDATE_TARGET", "/tmp/sim-rig-firmware"), 64<<20)
	updater := force.NewUpdater(transport, stager, force.ExecRestarter{})
	dispatcher := force.NewDispatcher(bus, updater)
	sampler := force.NewSampler(drag, down)
	publisher := force.NewPublisher(transport)
	interval := time.Duration(envInt("TELEMETRY_INTERVAL_MS", 500)) * time.Millisecond

	ctrl := force.NewController(sampler, publisher, dispatcher, transport, interval)
	log.Printf("sim rig running. interval=%s", interval)
	if err := ctrl.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("force controller stopped: %v", err)
	}
}
