// Package session owns the persistent bidirectional text-message link to
// the backend. Reconnection and backoff belong to the transport; the
// protocol code above it only gates sends on Connected and consumes
// inbound messages through the registered handler.
package session

// Handler is invoked for every inbound text message, on the transport's
// receive goroutine.
type Handler func(text string)

// Transport is the injected session collaborator.
type Transport interface {
	// Connected reports whether a send attempted now would go out.
	Connected() bool
	// Send transmits one text message. It returns false when the message
	// was dropped (link down or transmit failure); dropped messages are
	// never queued or retried.
	Send(text string) bool
	// SetHandler registers the inbound message consumer.
	SetHandler(Handler)
	// Close tears the session down.
	Close()
}
