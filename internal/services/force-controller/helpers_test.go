package force_controller

import (
	"errors"

	"github.com/rhamdi/tunnel-rig/pkg/session"
)

// fakeSession records sends and can simulate a broken link.
type fakeSession struct {
	connected bool
	sent      []string
}

func newFakeSession() *fakeSession { return &fakeSession{connected: true} }

func (f *fakeSession) Connected() bool { return f.connected }
func (f *fakeSession) Send(text string) bool {
	if !f.connected {
		return false
	}
	f.sent = append(f.sent, text)
	return true
}
func (f *fakeSession) SetHandler(session.Handler) {}
func (f *fakeSession) Close()                     {}

// stubCell is a load cell with a fixed readiness and value.
type stubCell struct {
	ready bool
	value int64
}

func (c stubCell) Ready() bool { return c.ready }
func (c stubCell) Read() int64 { return c.value }

// recordingBus captures frames written to the fan controller.
type recordingBus struct {
	frames [][]byte
	fail   bool
}

func (b *recordingBus) Write(frame []byte) error {
	if b.fail {
		return errors.New("bus transfer failed")
	}
	buf := make([]byte, len(frame))
	copy(buf, frame)
	b.frames = append(b.frames, buf)
	return nil
}

// recordingUpdater captures update requests from the dispatcher.
type recordingUpdater struct {
	urls []string
}

func (u *recordingUpdater) Run(url string) { u.urls = append(u.urls, url) }

// fakeStager scripts the staging outcomes for updater tests.
type fakeStager struct {
	beginErr   error
	commitErr  error
	finished   bool
	written    int64
	begun      bool
	committed  bool
	shortAfter int64 // stop accepting bytes after this many, 0 = unlimited
}

func (s *fakeStager) Begin(size int64) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	s.begun = true
	return nil
}

func (s *fakeStager) Write(p []byte) (int, error) {
	if s.shortAfter > 0 && s.written+int64(len(p)) > s.shortAfter {
		n := int(s.shortAfter - s.written)
		s.written = s.shortAfter
		return n, errors.New("staging area full")
	}
	s.written += int64(len(p))
	return len(p), nil
}

func (s *fakeStager) Commit() error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed = true
	return nil
}

func (s *fakeStager) Finished() bool { return s.finished }

// countingRestarter records restart signals instead of exec'ing.
type countingRestarter struct {
	restarts int
}

func (r *countingRestarter) Restart() { r.restarts++ }
