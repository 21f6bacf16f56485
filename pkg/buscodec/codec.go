// Package buscodec encodes the fixed 2-byte fan command exchanged over
// the inter-controller bus: byte 0 is the on/off flag (0 or 1), byte 1
// the speed level. No framing, no checksum; the link is fire-and-forget.
package buscodec

import "github.com/rhamdi/tunnel-rig/internal/model"

// FrameLen is the exact size of a command frame on the bus.
const FrameLen = 2

// Encode serializes a command into its bus frame.
func Encode(cmd model.FanCommand) [FrameLen]byte {
	var b [FrameLen]byte
	if cmd.On {
		b[0] = 1
	}
	b[1] = cmd.Speed
	return b
}

// Decode parses a received frame. A buffer shorter than FrameLen is a
// truncated transfer and reports ok=false; the caller keeps its prior
// command state. Extra trailing bytes are ignored.
func Decode(buf []byte) (model.FanCommand, bool) {
	if len(buf) < FrameLen {
		return model.FanCommand{}, false
	}
	return model.FanCommand{On: buf[0] != 0, Speed: buf[1]}, true
}

// Pack folds a command into a single word so the receive callback can
// hand it to the control loop through one atomic store, never exposing
// a torn on/off+speed pair.
func Pack(cmd model.FanCommand) uint32 {
	v := uint32(cmd.Speed)
	if cmd.On {
		v |= 1 << 8
	}
	return v
}

// Unpack is the inverse of Pack.
func Unpack(v uint32) model.FanCommand {
	return model.FanCommand{On: v&(1<<8) != 0, Speed: uint8(v & 0xFF)}
}
