// Package fanbus abstracts the point-to-point link between the force
// controller (bus master) and the fan controller (fixed slave address).
// The electrical layer is an external collaborator; only the transfer
// contract lives here.
package fanbus

// DefaultAddress is the fan controller's fixed bus address.
const DefaultAddress = 0x12

// Writer is the master side: a best-effort frame transmit. Errors are
// reported for local logging only, the sender never retries.
type Writer interface {
	Write(frame []byte) error
}

// Receiver is the slave side. The driver invokes the registered callback
// from its receive interrupt with the raw bytes of one transfer.
type Receiver interface {
	OnReceive(func(frame []byte))
}
