package messages

// ForceData is published by the force controller on every telemetry tick.
type ForceData struct {
	Type      string `json:"type"`
	DragForce int64  `json:"drag_force"`
	DownForce int64  `json:"down_force"`
}

func NewForceData(drag, down int64) ForceData {
	return ForceData{Type: TypeForceData, DragForce: drag, DownForce: down}
}
