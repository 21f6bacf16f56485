package session

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// WSConfig describes the backend websocket endpoint, e.g.
// host "backend.example.com", port 8000, path "/ws/microcontroller".
type WSConfig struct {
	Host string
	Port int
	Path string
	TLS  bool
}

func (c WSConfig) url() string {
	scheme := "ws"
	if c.TLS {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: fmt.Sprintf("%s:%d", c.Host, c.Port), Path: c.Path}
	return u.String()
}

// WSTransport implements Transport over a websocket client that keeps
// itself connected: on any read error it redials with exponential
// backoff. Consumers never see the reconnect cycle, only Connected
// flipping while the link is down.
type WSTransport struct {
	cfg WSConfig

	mu        sync.Mutex // guards conn and handler
	conn      *websocket.Conn
	handler   Handler
	connected atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewWSTransport starts the manage loop and returns immediately; the
// first connect happens in the background. The session is closed when
// ctx is cancelled or Close is called.
func NewWSTransport(ctx context.Context, cfg WSConfig) *WSTransport {
	ctx, cancel := context.WithCancel(ctx)
	t := &WSTransport{cfg: cfg, cancel: cancel, done: make(chan struct{})}
	go t.run(ctx)
	return t
}

func (t *WSTransport) run(ctx context.Context) {
	defer close(t.done)
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // keep redialing forever
	for ctx.Err() == nil {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.cfg.url(), nil)
		if err != nil {
			wait := bo.NextBackOff()
			log.Printf("session: dial %s failed: %v (retry in %s)", t.cfg.url(), err, wait)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		bo.Reset()
		log.Printf("session: connected to %s", t.cfg.url())

		t.mu.Lock()
		t.conn = conn
		t.mu.Unlock()
		t.connected.Store(true)

		// unblock the read loop if the context goes away first
		stopWatch := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-stopWatch:
			}
		}()

		t.readLoop(conn)
		close(stopWatch)

		t.connected.Store(false)
		t.mu.Lock()
		t.conn = nil
		t.mu.Unlock()
		conn.Close()
	}
}

func (t *WSTransport) readLoop(conn *websocket.Conn) {
	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			log.Printf("session: read error: %v", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		t.mu.Lock()
		h := t.handler
		t.mu.Unlock()
		if h != nil {
			h(string(payload))
		}
	}
}

// Connected implements Transport.
func (t *WSTransport) Connected() bool { return t.connected.Load() }

// Send implements Transport. Messages that cannot go out are dropped.
func (t *WSTransport) Send(text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return false
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		log.Printf("session: write failed: %v", err)
		return false
	}
	return true
}

// SetHandler implements Transport.
func (t *WSTransport) SetHandler(h Handler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

// Close implements Transport. It stops the manage loop so the session
// stays down instead of redialing.
func (t *WSTransport) Close() {
	t.cancel()
	t.mu.Lock()
	if t.conn != nil {
		t.conn.Close()
	}
	t.mu.Unlock()
}
