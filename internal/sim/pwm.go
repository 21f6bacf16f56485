package sim

import "log"

// PWM is the simulated fan output. Every applied level is logged and
// fed back into the attached load cells so telemetry reacts to
// settings_update commands end to end.
type PWM struct {
	cells []*LoadCell
	last  uint8
	set   bool
}

func NewPWM(cells ...*LoadCell) *PWM {
	return &PWM{cells: cells}
}

func (p *PWM) Set(level uint8) {
	if p.set && level == p.last {
		return // idempotent reapply, keep the log quiet
	}
	p.last = level
	p.set = true
	log.Printf("sim: fan output -> %d", level)
	for _, c := range p.cells {
		c.SetWind(level)
	}
}
