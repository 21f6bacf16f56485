package force_controller

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/rhamdi/tunnel-rig/internal/model"
	"github.com/rhamdi/tunnel-rig/internal/model/messages"
	"github.com/rhamdi/tunnel-rig/pkg/session"
)

// Stager is the update staging area: opened to the declared image size,
// streamed into, then finalized. Commit can succeed while the image is
// still incomplete (short write), which Finished distinguishes.
type Stager interface {
	Begin(size int64) error
	io.Writer
	Commit() error
	Finished() bool
}

// Restarter performs the full device restart after a successful update.
type Restarter interface {
	Restart()
}

// Updater runs the staged remote firmware replacement. It executes
// inline on the control loop: a running update blocks sampling and
// telemetry for its whole duration, which is accepted since the device
// is about to reboot anyway. Failures are never retried automatically.
type Updater struct {
	session   session.Transport
	stager    Stager
	restarter Restarter
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
	flushWait time.Duration

	active atomic.Bool
}

func NewUpdater(t session.Transport, stager Stager, restarter Restarter) *Updater {
	return &Updater{
		session:   t,
		stager:    stager,
		restarter: restarter,
		client:    http.DefaultClient,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "firmware-fetch",
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
		}),
		flushWait: time.Second,
	}
}

// Run implements UpdateRunner. Exactly one ota_ack is sent per call.
func (u *Updater) Run(rawURL string) {
	if !u.active.CompareAndSwap(false, true) {
		log.Printf("update: rejected, another update is in progress")
		u.ack(false)
		return
	}
	defer u.active.Store(false)

	job := model.UpdateJob{
		ID:        uuid.New().String(),
		SourceURL: rawURL,
		Status:    model.UpdatePending,
	}
	log.Printf("update %s: fetching %s", job.ID, rawURL)

	body, size, err := u.fetch(rawURL)
	if err != nil {
		log.Printf("update %s: fetch failed: %v", job.ID, err)
		u.ack(false)
		return
	}
	defer body.Close()

	job.ExpectedSize = size
	job.Status = model.UpdateInProgress

	if err := u.stager.Begin(size); err != nil {
		log.Printf("update %s: not enough space to stage %d bytes: %v", job.ID, size, err)
		u.ack(false)
		return
	}

	written, copyErr := io.Copy(u.stager, body)
	job.BytesWritten = written
	if copyErr != nil {
		log.Printf("update %s: stream interrupted after %d bytes: %v", job.ID, written, copyErr)
	}
	// a short write is informational; finalize decides the outcome
	if written == size {
		log.Printf("update %s: image staged (%d bytes)", job.ID, written)
	} else {
		log.Printf("update %s: staged %d of %d bytes (short write)", job.ID, written, size)
	}

	if err := u.stager.Commit(); err != nil {
		log.Printf("update %s: finalize error: %v", job.ID, err)
		u.ack(false)
		return
	}
	if !u.stager.Finished() {
		log.Printf("update %s: finalized but image not marked complete", job.ID)
		u.ack(false)
		return
	}

	job.Status = model.UpdateSuccess
	log.Printf("update %s: finished, restarting", job.ID)
	u.ack(true)
	time.Sleep(u.flushWait) // let the ack flush before the link goes away
	u.restarter.Restart()
}

// fetch GETs the image URL through the circuit breaker. A non-200 status
// counts as a breaker failure like a transport error does.
func (u *Updater) fetch(rawURL string) (io.ReadCloser, int64, error) {
	res, err := u.breaker.Execute(func() (interface{}, error) {
		resp, err := u.client.Get(rawURL)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s -> %s", rawURL, resp.Status)
		}
		return resp, nil
	})
	if err != nil {
		return nil, 0, err
	}
	resp := res.(*http.Response)
	return resp.Body, resp.ContentLength, nil
}

func (u *Updater) ack(success bool) {
	payload, _ := json.Marshal(messages.NewOtaAck(success))
	if !u.session.Send(string(payload)) {
		log.Printf("update: ota_ack dropped (session down)")
	}
}
