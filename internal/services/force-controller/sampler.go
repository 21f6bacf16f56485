package force_controller

import "github.com/rhamdi/tunnel-rig/internal/model"

// LoadCell is the injected transducer driver for one force channel.
// Ready is a poll, never a wait: the sampler must not block on a slow
// conversion.
type LoadCell interface {
	Ready() bool
	Read() int64
}

// Sampler polls the drag and downforce load cells on the telemetry
// cadence. A channel that is not ready this tick reads 0; the other
// channel is unaffected.
type Sampler struct {
	drag LoadCell
	down LoadCell
}

func NewSampler(drag, down LoadCell) *Sampler {
	return &Sampler{drag: drag, down: down}
}

func (s *Sampler) Sample() model.ForceSample {
	var out model.ForceSample
	if s.drag != nil && s.drag.Ready() {
		out.Drag = s.drag.Read()
	}
	if s.down != nil && s.down.Ready() {
		out.Down = s.down.Read()
	}
	return out
}
