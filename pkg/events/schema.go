package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/formweave/aster/pkg/models"
)

// EventType defines the type of event
type EventType string

const (
	// EventTypeMappingCompleted is emitted after a report is produced and
	// persisted. The execution collaborator fills forms from its matches.
	EventTypeMappingCompleted EventType = "mapping.completed"
	// EventTypeMappingReviewed is emitted when a reviewer decides a report.
	EventTypeMappingReviewed EventType = "mapping.reviewed"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType     EventType `json:"event_type"`
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// MappingCompletedEvent carries the accepted matches so the consumer can
// fill the page without reading the report back.
type MappingCompletedEvent struct {
	BaseEvent
	ReportID            string              `json:"report_id"`
	PageURL             string              `json:"page_url"`
	Matches             []models.FieldMatch `json:"matches"`
	UnmatchedFieldCount int                 `json:"unmatched_field_count"`
	AggregateConfidence float64             `json:"aggregate_confidence"`
	NeedsReview         bool                `json:"needs_review"`
	Error               models.ReportError  `json:"error,omitempty"`
}

// MappingReviewedEvent records the reviewer decision for a report.
type MappingReviewedEvent struct {
	BaseEvent
	ReportID   string              `json:"report_id"`
	Status     models.ReportStatus `json:"status"`
	ReviewedBy string              `json:"reviewed_by,omitempty"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		EventType:     eventType,
		SchemaVersion: SchemaVersion,
		Timestamp:     time.Now().UTC(),
		CorrelationID: uuid.New().String(),
	}
}
