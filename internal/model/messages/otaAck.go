package messages

// Outcome values carried by OtaAck.
const (
	OtaStatusSuccess = "success"
	OtaStatusFailed  = "failed"
)

// OtaAck reports the terminal outcome of an update job back over the
// session. Exactly one ack is emitted per job.
type OtaAck struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

func NewOtaAck(success bool) OtaAck {
	st := OtaStatusFailed
	if success {
		st = OtaStatusSuccess
	}
	return OtaAck{Type: TypeOtaAck, Status: st}
}
