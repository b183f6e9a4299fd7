// Package mapping runs the field matcher over every eligible form on a page
// and assembles the full mapping report: accepted matches plus both
// unmatched sides.
package mapping

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/pkg/matching"
	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
	"github.com/formweave/aster/pkg/registry"
)

// RunInfo carries caller-supplied bookkeeping that is passed through to the
// report opaquely.
type RunInfo struct {
	PageURL   string
	ScannedAt time.Time
}

// Orchestrator maps one profile against the scanned forms of one page.
type Orchestrator struct {
	logger  ectologger.Logger
	matcher *matching.Matcher
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(logger ectologger.Logger) *Orchestrator {
	return &Orchestrator{
		logger:  logger,
		matcher: matching.NewMatcher(),
	}
}

// MapProfileToForm produces the MappingReport for one (profile, forms) pair.
// It never fails: unusable input yields an empty report flagged with an
// error marker, and a malformed field or form never blocks matching of the
// rest of the page.
func (o *Orchestrator) MapProfileToForm(ctx context.Context, tree profile.Tree, forms []models.ScannedForm, info RunInfo) *models.MappingReport {
	ctx, span := tracing.StartSpan(ctx, "mapping.Orchestrator.MapProfileToForm")
	defer span.End()

	log := o.logger.WithContext(ctx).WithFields(map[string]any{
		"page_url":   info.PageURL,
		"form_count": len(forms),
	})

	report := &models.MappingReport{
		PageURL:               info.PageURL,
		ScannedAt:             info.ScannedAt,
		Matches:               []models.FieldMatch{},
		UnmatchedFields:       []models.UnmatchedField{},
		UnmatchedProfilePaths: []models.UnmatchedProfileValue{},
	}

	if tree == nil || forms == nil {
		log.Warn("Mapping invoked with missing profile or scan payload")
		report.Error = models.ReportErrorMalformedInput
		report.NeedsReview = true
		return report
	}

	consumed := make(map[models.ProfilePath]bool)

	for _, form := range forms {
		if form.Skippable() {
			log.WithFields(map[string]any{"form_id": form.ID, "has_captcha": form.HasCaptcha}).
				Debug("Skipping excluded form")
			continue
		}

		for _, field := range form.Fields {
			match := o.matcher.MatchField(field, tree)
			if match != nil && match.Confidence >= matching.MinAcceptConfidence && !consumed[match.ProfilePath] {
				consumed[match.ProfilePath] = true
				report.Matches = append(report.Matches, *match)
				continue
			}

			report.UnmatchedFields = append(report.UnmatchedFields, models.UnmatchedField{
				FieldID:        field.ID,
				DisplayLabel:   field.DisplayLabel(),
				InputType:      field.InputType,
				SelectorHandle: field.SelectorHandle,
			})
		}
	}

	// Every unconsumed path with a non-empty value is reported so the
	// review UI can show what the profile had to offer but no field took.
	for _, path := range registry.Paths() {
		if consumed[path] {
			continue
		}
		value, ok := tree.Resolve(path)
		if !ok || value.IsEmpty() {
			continue
		}
		report.UnmatchedProfilePaths = append(report.UnmatchedProfilePaths, models.UnmatchedProfileValue{
			Path:  path,
			Value: value.Display(),
		})
	}

	if len(report.Matches) > 0 {
		var sum float64
		for _, match := range report.Matches {
			sum += match.Confidence
		}
		report.AggregateConfidence = sum / float64(len(report.Matches))
	}

	for _, match := range report.Matches {
		if match.RequiresReview {
			report.NeedsReview = true
			break
		}
	}
	if report.AggregateConfidence < matching.ReviewThreshold {
		report.NeedsReview = true
	}

	log.WithFields(map[string]any{
		"match_count":          len(report.Matches),
		"unmatched_fields":     len(report.UnmatchedFields),
		"aggregate_confidence": report.AggregateConfidence,
		"needs_review":         report.NeedsReview,
	}).Debug("Mapping run complete")

	return report
}
