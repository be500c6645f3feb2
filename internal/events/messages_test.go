package events

import (
	"testing"
	"time"
)

func TestRecordChangeEncoding(t *testing.T) {
	msg := NewRecordChange(ResourceBill, ActionDeleted, 42)
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := RecordChangeFromJSON(body)
	if err != nil {
		t.Fatalf("RecordChangeFromJSON: %v", err)
	}
	if decoded.Resource != ResourceBill || decoded.Action != ActionDeleted || decoded.ID != 42 {
		t.Errorf("got %+v", decoded)
	}
	if !decoded.Timestamp.Round(time.Second).Equal(msg.Timestamp.Round(time.Second)) {
		t.Errorf("timestamp mismatch: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestRecordChangeFromJSONInvalid(t *testing.T) {
	if _, err := RecordChangeFromJSON([]byte("not json")); err == nil {
		t.Error("invalid JSON should fail")
	}
}
