package force_controller

import (
	"encoding/json"
	"log"

	"github.com/rhamdi/tunnel-rig/internal/model"
	"github.com/rhamdi/tunnel-rig/internal/model/messages"
	"github.com/rhamdi/tunnel-rig/pkg/session"
)

// Publisher serializes force samples into force_data messages and emits
// them over the session. There is no buffering: a sample that cannot be
// sent this interval is dropped, the next interval produces a fresh one.
type Publisher struct {
	session session.Transport
}

func NewPublisher(t session.Transport) *Publisher {
	return &Publisher{session: t}
}

func (p *Publisher) Publish(s model.ForceSample) {
	payload, _ := json.Marshal(messages.NewForceData(s.Drag, s.Down))
	if !p.session.Send(string(payload)) {
		log.Printf("telemetry: dropped force_data (session down)")
		return
	}
	// diagnostic only, the session message is authoritative
	log.Printf("telemetry: sent drag_force=%d down_force=%d", s.Drag, s.Down)
}
