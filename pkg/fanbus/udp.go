package fanbus

import (
	"fmt"
	"log"
	"net"
)

// UDPWriter sends each frame as one datagram to the fan controller.
// Datagrams keep the bus contract intact: no framing, no checksum, no
// acknowledgment, and a lost frame is simply lost.
type UDPWriter struct {
	conn *net.UDPConn
}

func NewUDPWriter(addr string) (*UDPWriter, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bus address %q: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &UDPWriter{conn: conn}, nil
}

// Write implements Writer.
func (w *UDPWriter) Write(frame []byte) error {
	_, err := w.conn.Write(frame)
	return err
}

func (w *UDPWriter) Close() error { return w.conn.Close() }

// UDPReceiver listens for frames and delivers each datagram to the
// registered callback, mirroring a bus driver's receive interrupt.
type UDPReceiver struct {
	conn *net.UDPConn
	cb   func(frame []byte)
}

func NewUDPReceiver(addr string) (*UDPReceiver, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bus address %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &UDPReceiver{conn: conn}, nil
}

// OnReceive implements Receiver and starts the read loop.
func (r *UDPReceiver) OnReceive(cb func(frame []byte)) {
	r.cb = cb
	go r.readLoop()
}

func (r *UDPReceiver) readLoop() {
	buf := make([]byte, 16)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			log.Printf("bus: receive stopped: %v", err)
			return
		}
		frame := make([]byte, n)
		copy(frame, buf[:n])
		r.cb(frame)
	}
}

func (r *UDPReceiver) Close() error { return r.conn.Close() }
