package messages

// Message type discriminators used on the backend session. Unknown
// values are ignored by the dispatcher, never treated as errors.
const (
	TypeForceData      = "force_data"
	TypeSettingsUpdate = "settings_update"
	TypeUpdateMicro    = "updateMicro"
	TypeOtaAck         = "ota_ack"
)

// Envelope is the first-pass decode of an inbound session message:
// just enough to route on the type tag.
type Envelope struct {
	Type string `json:"type"`
}
