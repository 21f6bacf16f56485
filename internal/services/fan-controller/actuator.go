package fan_controller

import "github.com/rhamdi/tunnel-rig/internal/model"

// PWMOutput is the injected duty-cycle driver for the fan pin.
type PWMOutput interface {
	Set(level uint8)
}

// Actuator owns the physical output. Apply is synchronous, idempotent
// and never fails: the hardware saturates out-of-range duty on its own,
// and off always forces the output to zero whatever the speed says.
type Actuator struct {
	out PWMOutput
}

func NewActuator(out PWMOutput) *Actuator {
	return &Actuator{out: out}
}

func (a *Actuator) Apply(cmd model.FanCommand) {
	a.out.Set(cmd.Output())
}
