package fanbus

import "sync"

// Pipe is an in-process bus: whatever the master writes is delivered
// synchronously to the slave's receive callback. Used by the simulator
// and by tests; real deployments inject a hardware driver instead.
type Pipe struct {
	mu sync.Mutex
	cb func(frame []byte)
}

func NewPipe() *Pipe { return &Pipe{} }

// Write implements Writer.
func (p *Pipe) Write(frame []byte) error {
	p.mu.Lock()
	cb := p.cb
	p.mu.Unlock()
	if cb != nil {
		buf := make([]byte, len(frame))
		copy(buf, frame)
		cb(buf)
	}
	return nil
}

// OnReceive implements Receiver.
func (p *Pipe) OnReceive(cb func(frame []byte)) {
	p.mu.Lock()
	p.cb = cb
	p.mu.Unlock()
}
