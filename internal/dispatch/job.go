package dispatch

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Job is one queued unit of outbound-email work. Attempts counts completed
// delivery attempts; the job is terminal once it reaches maxAttempts.
type Job struct {
	Id        string            `json:"id"`
	Template  string            `json:"template"`
	Params    map[string]string `json:"params"`
	Recipient string            `json:"recipient"`
	Attempts  int               `json:"attempts"`
}

func NewJob(template string, params map[string]string, recipient string) Job {
	return Job{
		Id:        uuid.NewString(),
		Template:  template,
		Params:    params,
		Recipient: recipient,
	}
}

func (j Job) Marshal() ([]byte, error) {
	return json.Marshal(j)
}

func UnmarshalJob(raw []byte) (Job, error) {
	var j Job
	err := json.Unmarshal(raw, &j)
	return j, err
}
