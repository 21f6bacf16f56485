package model

// ForceSample is one reading of the two load-cell channels. A channel
// whose transducer was not ready at sampling time reads 0; samples are
// transient and live for exactly one publish cycle.
type ForceSample struct {
	Drag int64 `json:"drag_force"`
	Down int64 `json:"down_force"`
}
