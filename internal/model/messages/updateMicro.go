package messages

// UpdateMicro asks the force controller to replace its firmware with the
// image served at OtaURL. An absent or empty URL is a no-op.
type UpdateMicro struct {
	Type   string `json:"type"`
	OtaURL string `json:"ota_url,omitempty"`
}
