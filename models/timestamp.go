package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// localDateTimeLayout is the zone-less form the content API sends, e.g.
// 2024-01-15T10:30:00 or 2024-01-15T10:30:00.123
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a JSON time that accepts RFC3339 as well as date-times
// without a zone. Zone-less values are read as UTC. It encodes as RFC3339.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		*t = Timestamp{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(localDateTimeLayout, raw)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}
