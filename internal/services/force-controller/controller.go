package force_controller

import (
	"context"
	"log"
	"time"

	"github.com/rhamdi/tunnel-rig/pkg/session"
)

// DefaultInterval is the telemetry cadence.
const DefaultInterval = 500 * time.Millisecond

// Controller is the force controller's cooperative loop: inbound session
// messages, interval sampling and publishing, and update handling all run
// on one goroutine. The cadence is elapsed-time against a monotonic
// clock, not a hard timer: a long dispatch (an update in particular)
// simply delays the next sample.
type Controller struct {
	sampler    *Sampler
	publisher  *Publisher
	dispatcher *Dispatcher
	transport  session.Transport
	interval   time.Duration

	inbox    chan string
	lastSend time.Time
}

func NewController(sampler *Sampler, publisher *Publisher, dispatcher *Dispatcher, t session.Transport, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{
		sampler:    sampler,
		publisher:  publisher,
		dispatcher: dispatcher,
		transport:  t,
		interval:   interval,
		inbox:      make(chan string, 16),
	}
}

// Run blocks until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.transport.SetHandler(func(text string) {
		// hop from the transport goroutine onto the control loop
		select {
		case c.inbox <- text:
		default:
			log.Printf("controller: inbox full, message discarded")
		}
	})

	c.lastSend = time.Now()
	poll := c.interval / 5
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text := <-c.inbox:
			c.dispatcher.HandleMessage(text)
		case <-time.After(poll):
		}
		c.step(time.Now())
	}
}

// step publishes a fresh sample once per interval; called every loop
// iteration with the current time.
func (c *Controller) step(now time.Time) {
	if now.Sub(c.lastSend) >= c.interval {
		c.publisher.Publish(c.sampler.Sample())
		c.lastSend = now
	}
}
