package force_controller

import (
	"encoding/json"
	"log"

	"github.com/rhamdi/tunnel-rig/internal/model"
	"github.com/rhamdi/tunnel-rig/internal/model/messages"
	"github.com/rhamdi/tunnel-rig/pkg/buscodec"
	"github.com/rhamdi/tunnel-rig/pkg/fanbus"
)

// UpdateRunner is the Updater seam; the dispatcher only hands it a URL.
type UpdateRunner interface {
	Run(url string)
}

// Dispatcher routes inbound session messages. It owns CurrentSettings:
// settings_update messages merge into it field by field, then the merged
// command goes out over the bus fire-and-forget. Malformed input of any
// kind is discarded without a response.
type Dispatcher struct {
	settings model.CurrentSettings
	bus      fanbus.Writer
	updater  UpdateRunner
}

func NewDispatcher(bus fanbus.Writer, updater UpdateRunner) *Dispatcher {
	return &Dispatcher{bus: bus, updater: updater}
}

// Settings exposes the currently held values (used by tests and /healthz).
func (d *Dispatcher) Settings() model.CurrentSettings { return d.settings }

func (d *Dispatcher) HandleMessage(text string) {
	var env messages.Envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return // unparseable body, discard
	}
	if env.Type == "" {
		return // no type discriminator, discard
	}
	switch env.Type {
	case messages.TypeSettingsUpdate:
		d.handleSettings(text)
	case messages.TypeUpdateMicro:
		d.handleUpdate(text)
	default:
		// unknown types are forward-compatible, not errors
	}
}

func (d *Dispatcher) handleSettings(text string) {
	var msg messages.SettingsUpdate
	if err := json.Unmarshal([]byte(text), &msg); err != nil {
		return
	}
	d.settings.Merge(msg.DeviceOn, msg.WindSpeed)
	d.sendToFan()
}

func (d *Dispatcher) sendToFan() {
	cmd := d.settings.Command()
	frame := buscodec.Encode(cmd)
	if err := d.bus.Write(frame[:]); err != nil {
		// best effort: the bus has no ack, a lost command is corrected
		// by the next settings_update
		log.Printf("dispatch: bus write failed: %v", err)
		return
	}
	log.Printf("dispatch: fan command on=%t speed=%d", cmd.On, cmd.Speed)
}

func (d *Dispatcher) handleUpdate(text string) {
	var msg messages.UpdateMicro
	if err := json.Unmarshal([]byte(text), &msg); err != nil {
		return
	}
	if msg.OtaURL == "" {
		return
	}
	log.Printf("dispatch: firmware update requested, url=%s", msg.OtaURL)
	if d.updater != nil {
		d.updater.Run(msg.OtaURL)
	}
}
