// Package sim provides in-process stand-ins for the rig hardware: load
// cells whose readings follow the fan output, and a PWM output that
// feeds them back. Used by the sim binary and by tests.
package sim

import (
	"math/rand"
	"sync"
)

// LoadCell synthesizes force readings. The reading tracks the wind level
// set through SetWind plus noise, and the cell is occasionally "not
// ready" the way a real ADC mid-conversion is.
type LoadCell struct {
	mu           sync.Mutex
	rng          *rand.Rand
	gain         int64   // counts per wind level unit
	noise        int64   // +/- jitter on each reading
	notReadyProb float64 // chance a poll catches the cell busy
	wind         uint8
}

func NewLoadCell(seed int64, gain, noise int64, notReadyProb float64) *LoadCell {
	return &LoadCell{
		rng:          rand.New(rand.NewSource(seed)),
		gain:         gain,
		noise:        noise,
		notReadyProb: notReadyProb,
	}
}

// SetWind couples the cell to the fan output level.
func (c *LoadCell) SetWind(level uint8) {
	c.mu.Lock()
	c.wind = level
	c.mu.Unlock()
}

func (c *LoadCell) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64() >= c.notReadyProb
}

func (c *LoadCell) Read() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	base := int64(c.wind) * c.gain
	if c.noise == 0 {
		return base
	}
	return base + c.rng.Int63n(2*c.noise+1) - c.noise
}
