package messages

// SettingsUpdate is sent by the backend to change fan state. Both fields
// are optional and independent: a nil pointer means the field was absent
// and the previously held value must be preserved.
type SettingsUpdate struct {
	Type      string `json:"type"`
	DeviceOn  *bool  `json:"device_on,omitempty"`
	WindSpeed *int   `json:"wind_speed,omitempty"`
}
