package model

// FanCommand is the validated fan state carried by the 2-byte bus frame.
type FanCommand struct {
	On    bool  `json:"on"`
	Speed uint8 `json:"speed"`
}

// Output is the PWM level the actuator must drive for this command.
// Speed is only meaningful while On; off always means zero output.
func (c FanCommand) Output() uint8 {
	if !c.On {
		return 0
	}
	return c.Speed
}

// CurrentSettings holds the last values received from the backend.
// settings_update messages are partial: a missing field keeps the
// previously held value, so the merge happens here and not on the wire.
type CurrentSettings struct {
	DeviceOn  bool
	WindSpeed uint8
}

// Merge applies the optional fields of a settings_update. Nil means
// "not present in the message" and leaves the held value untouched.
func (s *CurrentSettings) Merge(deviceOn *bool, windSpeed *int) {
	if deviceOn != nil {
		s.DeviceOn = *deviceOn
	}
	if windSpeed != nil {
		s.WindSpeed = clampSpeed(*windSpeed)
	}
}

// Command snapshots the settings as a bus command.
func (s CurrentSettings) Command() FanCommand {
	return FanCommand{On: s.DeviceOn, Speed: s.WindSpeed}
}

func clampSpeed(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
