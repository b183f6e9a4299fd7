package mapping

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/formweave/aster/internal/appcontext"
	"github.com/formweave/aster/internal/repositories/report"
	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/pkg/events"
	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
)

// Service runs the orchestrator, persists the report, and emits the
// lifecycle event. Both the HTTP surface and the scan consumer go through
// it so a report always lands in the review queue.
type Service struct {
	logger       ectologger.Logger
	orchestrator *Orchestrator
	reports      *report.Repository
	emitter      *events.Emitter
}

// NewService creates a new mapping service
func NewService(logger ectologger.Logger, reports *report.Repository, emitter *events.Emitter) *Service {
	return &Service{
		logger:       logger,
		orchestrator: NewOrchestrator(logger),
		reports:      reports,
		emitter:      emitter,
	}
}

// Run produces, persists, and announces one mapping report.
func (s *Service) Run(ctx context.Context, tree profile.Tree, forms []models.ScannedForm, info RunInfo) (*models.MappingReport, error) {
	ctx, span := tracing.StartSpan(ctx, "mapping.Service.Run")
	defer span.End()

	result := s.orchestrator.MapProfileToForm(ctx, tree, forms, info)

	persisted, err := s.reports.Create(ctx, result)
	if err != nil {
		return nil, err
	}

	// The report is already persisted; a failed announcement is logged,
	// not surfaced as a mapping failure.
	if err := s.emitter.EmitMappingCompleted(ctx, persisted); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"report_id": persisted.ID}).
			Warn("Report persisted but mapping.completed emission failed")
	}

	return persisted, nil
}

// Review records a reviewer decision and announces it.
func (s *Service) Review(ctx context.Context, id string, status models.ReportStatus) (*models.MappingReport, error) {
	ctx, span := tracing.StartSpan(ctx, "mapping.Service.Review")
	defer span.End()

	if status != models.ReportStatusApproved && status != models.ReportStatusRejected {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "status must be approved or rejected")
	}

	var reviewedBy *string
	if reviewer := appcontext.GetReviewerID(ctx); reviewer != "" {
		reviewedBy = &reviewer
	}

	if err := s.reports.UpdateReviewStatus(ctx, id, status, reviewedBy); err != nil {
		return nil, err
	}

	reviewer := ""
	if reviewedBy != nil {
		reviewer = *reviewedBy
	}
	if err := s.emitter.EmitMappingReviewed(ctx, id, status, reviewer); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"report_id": id}).
			Warn("Review recorded but mapping.reviewed emission failed")
	}

	return s.reports.Get(ctx, id)
}
