package events

import (
	"encoding/json"
	"time"
)

const (
	ResourceBill = "conta"
	ResourceLoan = "emprestimo"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordChange announces a successful mutation on a resource
// collection. Consumers fetch details from the API themselves; the
// message only carries the identity.
type RecordChange struct {
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChange(resource, action string, id int64) *RecordChange {
	return &RecordChange{
		Resource:  resource,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordChange) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeFromJSON(data []byte) (*RecordChange, error) {
	var msg RecordChange
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
