// Package processor consumes scan messages from Kafka and runs the mapping
// service on each, the asynchronous twin of POST /api/v1/mappings.
package processor

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/pkg/kafka"
	"github.com/formweave/aster/pkg/mapping"
)

// ScanProcessor wires the scan-topic consumer to the mapping service.
type ScanProcessor struct {
	consumer *kafka.Consumer
	service  *mapping.Service
	logger   ectologger.Logger
}

// NewScanProcessor creates a new scan processor
func NewScanProcessor(cfg kafka.ConsumerConfig, service *mapping.Service, logger ectologger.Logger) *ScanProcessor {
	p := &ScanProcessor{
		service: service,
		logger:  logger,
	}
	p.consumer = kafka.NewConsumer(cfg, logger, p.HandleMessage)
	return p
}

// Start begins consuming scan messages
func (p *ScanProcessor) Start(ctx context.Context) error {
	return p.consumer.Start(ctx)
}

// Stop gracefully stops the processor
func (p *ScanProcessor) Stop() error {
	return p.consumer.Stop()
}

// Health reports whether the underlying consumer is running
func (p *ScanProcessor) Health() bool {
	return p.consumer.Health()
}

// HandleMessage runs one scan message through the mapping service. A payload
// that failed to parse still runs, producing a report flagged as malformed,
// so the scanner always gets a verdict.
func (p *ScanProcessor) HandleMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.ScanProcessor.HandleMessage")
	defer span.End()

	scan := msg.Scan
	if scan == nil {
		scan = &kafka.ScanMessage{}
	}

	result, err := p.service.Run(ctx, scan.Profile, scan.Forms, mapping.RunInfo{
		PageURL:   scan.PageURL,
		ScannedAt: scan.ScannedAt,
	})
	if err != nil {
		// Persistence failed; leave the message uncommitted for retry.
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"report_id":   result.ID,
		"page_url":    result.PageURL,
		"match_count": len(result.Matches),
	}).Info("Processed scan message")

	return nil
}
