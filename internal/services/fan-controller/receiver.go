package fan_controller

import (
	"sync/atomic"

	"github.com/rhamdi/tunnel-rig/internal/model"
	"github.com/rhamdi/tunnel-rig/pkg/buscodec"
	"github.com/rhamdi/tunnel-rig/pkg/fanbus"
)

// Receiver is the bus receive side. The driver callback fires on inbound
// data and publishes the decoded command as one packed word, so the main
// loop never observes a torn on/off+speed pair. Truncated frames leave
// the prior command untouched.
type Receiver struct {
	snapshot atomic.Uint32
}

func NewReceiver() *Receiver { return &Receiver{} }

// Bind registers the receive callback on the bus driver.
func (r *Receiver) Bind(bus fanbus.Receiver) {
	bus.OnReceive(func(frame []byte) {
		cmd, ok := buscodec.Decode(frame)
		if !ok {
			return
		}
		r.snapshot.Store(buscodec.Pack(cmd))
	})
}

// Latest returns the most recently received command. The zero value is
// off/0, which matches the power-on output state.
func (r *Receiver) Latest() model.FanCommand {
	return buscodec.Unpack(r.snapshot.Load())
}
