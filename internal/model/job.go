package model

// JobState is the server-side state of an async batch-prediction job.
type JobState string

const (
	JobCompleted JobState = "completed"
	JobActive    JobState = "active"
	JobFailed    JobState = "failed"
	JobWaiting   JobState = "waiting"
)

// Job represents an async batch-prediction task tracked server-side.
// The client only lists and displays jobs; the lowercase timestamp keys
// match the upstream queue tables.
type Job struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	State       JobState `json:"state"`
	Creator     string   `json:"creator"`
	CreatedOn   string   `json:"createdon"`
	CompletedOn string   `json:"completedon,omitempty"`
}
