// Package events handles event emission for mapping report lifecycle changes
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/pkg/kafka"
	"github.com/formweave/aster/pkg/models"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter publishes mapping events. A nil producer disables emission, so
// callers never branch on whether Kafka is configured.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitMappingCompleted emits a mapping.completed event for a persisted report.
func (e *Emitter) EmitMappingCompleted(ctx context.Context, report *models.MappingReport) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMappingCompleted")
	defer span.End()

	if e.producer == nil {
		e.logger.WithContext(ctx).Debug("Event emission disabled, skipping mapping.completed")
		return nil
	}

	event := &MappingCompletedEvent{
		BaseEvent:           NewBaseEvent(EventTypeMappingCompleted),
		ReportID:            report.ID,
		PageURL:             report.PageURL,
		Matches:             report.Matches,
		UnmatchedFieldCount: len(report.UnmatchedFields),
		AggregateConfidence: report.AggregateConfidence,
		NeedsReview:         report.NeedsReview,
		Error:               report.Error,
	}

	if err := e.producer.Publish(ctx, report.ID, string(EventTypeMappingCompleted), event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit mapping.completed event")
		return err
	}

	return nil
}

// EmitMappingReviewed emits a mapping.reviewed event for a reviewer decision.
func (e *Emitter) EmitMappingReviewed(ctx context.Context, reportID string, status models.ReportStatus, reviewedBy string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitMappingReviewed")
	defer span.End()

	if e.producer == nil {
		e.logger.WithContext(ctx).Debug("Event emission disabled, skipping mapping.reviewed")
		return nil
	}

	event := &MappingReviewedEvent{
		BaseEvent:  NewBaseEvent(EventTypeMappingReviewed),
		ReportID:   reportID,
		Status:     status,
		ReviewedBy: reviewedBy,
	}

	if err := e.producer.Publish(ctx, reportID, string(EventTypeMappingReviewed), event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit mapping.reviewed event")
		return err
	}

	return nil
}
