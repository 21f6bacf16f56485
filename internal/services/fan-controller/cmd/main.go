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
	"github.com/rhamdi/tunnel-rig/internal/sim"
	"github.com/rhamdi/tunnel-rig/pkg/fanbus"
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

	listen := env("FAN_BUS_LISTEN", ":9512")
	bus, err := fanbus.NewUDPReceiver(listen)
	if err != nil {
		log.Fatalf("bus init: %v", err)
	}
	defer bus.Close()

	// The PWM driver is an external collaborator; this binary ships with
	// the simulated output.
	out := sim.NewPWM()

	receiver := fan.NewReceiver()
	receiver.Bind(bus)
	actuator := fan.NewActuator(out)
	interval := time.Duration(envInt("APPLY_INTERVAL_MS", 50)) * time.Millisecond

	ctrl := fan.NewController(receiver, actuator, interval)
	log.Printf("fan-controller running. bus=%s interval=%s", listen, interval)
	if err := ctrl.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("controller stopped: %v", err)
	}
}
