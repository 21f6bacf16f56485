package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig describes the broker link for an MQTT-backed session.
// PubTopic carries outbound telemetry/acks, SubTopic the backend commands.
type MQTTConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	ClientID string
	PubTopic string
	SubTopic string
}

// MQTTTransport implements Transport over a paho client. Paho owns the
// reconnect policy (AutoReconnect with its internal backoff); this type
// only re-subscribes on connect and exposes connection state.
type MQTTTransport struct {
	client mqtt.Client
	cfg    MQTTConfig

	mu      sync.Mutex
	handler Handler
}

// NewMQTTTransport connects to the broker, retrying the initial connect
// with exponential backoff. The session is closed when ctx is cancelled.
func NewMQTTTransport(ctx context.Context, cfg MQTTConfig) (*MQTTTransport, error) {
	t := &MQTTTransport{cfg: cfg}

	connAddr := fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)
	opts := mqtt.NewClientOptions()
	opts.AddBroker(connAddr)
	opts.SetUsername(cfg.User)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if cfg.SubTopic == "" {
			return
		}
		tok := c.Subscribe(cfg.SubTopic, 1, func(_ mqtt.Client, m mqtt.Message) {
			t.dispatch(string(m.Payload()))
		})
		if tok.Wait() && tok.Error() != nil {
			log.Printf("session: subscribe %s failed: %v", cfg.SubTopic, tok.Error())
		}
	})

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second
	maxRetries := 5

	var client mqtt.Client
	err := backoff.Retry(func() error {
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("session: broker connect failed: %v", token.Error())
			return token.Error()
		}
		return nil
	}, backoff.WithMaxRetries(bo, uint64(maxRetries-1)))
	if err != nil {
		return nil, fmt.Errorf("could not establish session after retries: %v", err)
	}
	log.Printf("session: connected to broker at %s", connAddr)
	t.client = client

	go func() {
		<-ctx.Done()
		t.Close()
	}()
	return t, nil
}

func (t *MQTTTransport) dispatch(text string) {
	t.mu.Lock()
	h := t.handler
	t.mu.Unlock()
	if h != nil {
		h(text)
	}
}

// Connected implements Transport.
func (t *MQTTTransport) Connected() bool {
	return t.client != nil && t.client.IsConnectionOpen()
}

// Send implements Transport. QoS 0: a message that cannot go out now is
// dropped, never buffered for a later interval.
func (t *MQTTTransport) Send(text string) bool {
	if !t.Connected() {
		return false
	}
	token := t.client.Publish(t.cfg.PubTopic, 0, false, text)
	token.Wait()
	if token.Error() != nil {
		log.Printf("session: publish failed: %v", token.Error())
		return false
	}
	return true
}

// SetHandler implements Transport.
func (t *MQTTTransport) SetHandler(h Handler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

// Close implements Transport.
func (t *MQTTTransport) Close() {
	if t.client != nil && t.client.IsConnected() {
		t.client.Disconnect(250)
		log.Println("session: closed")
	}
}
