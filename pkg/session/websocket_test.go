package session

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWSTransportSendAndReceive(t *testing.T) {
	upgrader := websocket.Upgrader{}
	fromClient := make(chan string, 4)
	toClient := make(chan string, 4)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		go func() {
			for msg := range toClient {
				_ = conn.WriteMessage(websocket.TextMessage, []byte(msg))
			}
		}()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			fromClient <- string(payload)
		}
	}))
	defer srv.Close()

	host, port := wsHostPort(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := NewWSTransport(ctx, WSConfig{Host: host, Port: port, Path: "/"})
	inbound := make(chan string, 4)
	tr.SetHandler(func(text string) { inbound <- text })

	require.Eventually(t, tr.Connected, 2*time.Second, 10*time.Millisecond)

	toClient <- `{"type":"settings_update","device_on":true}`
	select {
	case got := <-inbound:
		assert.JSONEq(t, `{"type":"settings_update","device_on":true}`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("inbound message not delivered")
	}

	assert.True(t, tr.Send(`{"type":"force_data","drag_force":1,"down_force":2}`))
	select {
	case got := <-fromClient:
		assert.JSONEq(t, `{"type":"force_data","drag_force":1,"down_force":2}`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("outbound message not delivered")
	}
}

func TestWSTransportSendWhileDisconnected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// nothing listening on this port
	tr := NewWSTransport(ctx, WSConfig{Host: "127.0.0.1", Port: 1, Path: "/"})
	assert.False(t, tr.Connected())
	assert.False(t, tr.Send("dropped"))
}

func TestWSTransportCloseStopsRedial(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	host, port := wsHostPort(t, srv.URL)

	tr := NewWSTransport(context.Background(), WSConfig{Host: host, Port: port, Path: "/"})
	require.Eventually(t, tr.Connected, 2*time.Second, 10*time.Millisecond)

	tr.Close()
	require.Eventually(t, func() bool { return !tr.Connected() }, 2*time.Second, 10*time.Millisecond)

	// the server is still up, so a surviving manage loop would reconnect here
	time.Sleep(300 * time.Millisecond)
	assert.False(t, tr.Connected())
	assert.False(t, tr.Send("dropped"))
}

func wsHostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}
