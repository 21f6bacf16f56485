package fan_controller

import (
	"context"
	"time"
)

// DefaultInterval is the loop cadence for reapplying the latest command.
const DefaultInterval = 50 * time.Millisecond

// Controller is the fan controller's cooperative loop: each iteration
// reapplies the latest received command. Reapplying is idempotent, so a
// command that raced with the loop is settled one iteration later.
type Controller struct {
	receiver *Receiver
	actuator *Actuator
	interval time.Duration
}

func NewController(receiver *Receiver, actuator *Actuator, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{receiver: receiver, actuator: actuator, interval: interval}
}

// Run blocks until ctx is cancelled. The output is forced to zero once
// on entry so power-on state is deterministic.
func (c *Controller) Run(ctx context.Context) error {
	c.actuator.Apply(c.receiver.Latest())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.interval):
			c.actuator.Apply(c.receiver.Latest())
		}
	}
}
