package kafka

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
)

// IncomingMessage is a fetched Kafka message plus parsed headers.
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Scan is populated when the payload parses as a scan message.
	Scan *ScanMessage
}

// ScanMessage is the payload the page scanner publishes: one profile tree
// plus the forms scanned from one page.
type ScanMessage struct {
	PageURL   string               `json:"page_url"`
	ScannedAt time.Time            `json:"scanned_at"`
	Profile   profile.Tree         `json:"profile"`
	Forms     []models.ScannedForm `json:"scanned_forms"`
}

// ParseScanMessage decodes the payload into m.Scan. A payload that is not a
// JSON object is an error; a payload missing profile or forms is left for
// the orchestrator, which flags it rather than failing.
func (m *IncomingMessage) ParseScanMessage() error {
	var scan ScanMessage
	if err := json.Unmarshal(m.Value, &scan); err != nil {
		return errors.Wrap(err, "failed to parse scan message")
	}

	m.Scan = &scan
	return nil
}

// EventType returns the event_type header, empty when absent.
func (m *IncomingMessage) EventType() string {
	return m.Headers["event_type"]
}
