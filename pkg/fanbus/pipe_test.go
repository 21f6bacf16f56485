package fanbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipeDeliversFrames(t *testing.T) {
	p := NewPipe()
	var got [][]byte
	p.OnReceive(func(frame []byte) { got = append(got, frame) })

	assert.NoError(t, p.Write([]byte{1, 42}))
	assert.NoError(t, p.Write([]byte{0, 0}))

	assert.Equal(t, [][]byte{{1, 42}, {0, 0}}, got)
}

func TestPipeWithoutReceiverDropsFrames(t *testing.T) {
	p := NewPipe()
	assert.NoError(t, p.Write([]byte{1, 42}))
}

func TestPipeCopiesFrame(t *testing.T) {
	p := NewPipe()
	var got []byte
	p.OnReceive(func(frame []byte) { got = frame })

	src := []byte{1, 99}
	_ = p.Write(src)
	src[1] = 0

	assert.Equal(t, []byte{1, 99}, got)
}
