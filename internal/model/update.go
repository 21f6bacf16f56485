package model

// UpdateStatus tracks an update job through its stages.
type UpdateStatus string

const (
	UpdatePending    UpdateStatus = "pending"
	UpdateInProgress UpdateStatus = "in-progress"
	UpdateSuccess    UpdateStatus = "success"
	UpdateFailed     UpdateStatus = "failed"
)

// UpdateJob is the single in-flight firmware replacement. Terminal jobs
// are reported over the session and discarded; a successful job restarts
// the device, which discards everything else too.
type UpdateJob struct {
	ID           string
	SourceURL    string
	ExpectedSize int64
	BytesWritten int64
	Status       UpdateStatus
}
