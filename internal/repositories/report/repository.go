// Package report persists mapping reports for the review queue. Only the
// report output is stored; profile trees never touch the database.
package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/formweave/aster/internal/database"
	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/pkg/models"
)

var reportColumns = []string{
	"id", "page_url", "scanned_at", "matches", "unmatched_fields",
	"unmatched_profile_paths", "aggregate_confidence", "needs_review",
	"error", "status", "reviewed_by", "reviewed_at", "created_at", "updated_at",
}

// reportRow is the jsonb-backed row shape of the mapping_reports table.
type reportRow struct {
	ID                    string                                          `db:"id"`
	PageURL               string                                          `db:"page_url"`
	ScannedAt             time.Time                                       `db:"scanned_at"`
	Matches               database.JSONB[[]models.FieldMatch]             `db:"matches"`
	UnmatchedFields       database.JSONB[[]models.UnmatchedField]         `db:"unmatched_fields"`
	UnmatchedProfilePaths database.JSONB[[]models.UnmatchedProfileValue]  `db:"unmatched_profile_paths"`
	AggregateConfidence   float64                                         `db:"aggregate_confidence"`
	NeedsReview           bool                                            `db:"needs_review"`
	Error                 string                                          `db:"error"`
	Status                string                                          `db:"status"`
	ReviewedBy            *string                                         `db:"reviewed_by"`
	ReviewedAt            *time.Time                                      `db:"reviewed_at"`
	CreatedAt             time.Time                                       `db:"created_at"`
	UpdatedAt             time.Time                                       `db:"updated_at"`
}

func (row *reportRow) toModel() *models.MappingReport {
	return &models.MappingReport{
		ID:                    row.ID,
		PageURL:               row.PageURL,
		ScannedAt:             row.ScannedAt,
		Matches:               row.Matches.GetValue(),
		UnmatchedFields:       row.UnmatchedFields.GetValue(),
		UnmatchedProfilePaths: row.UnmatchedProfilePaths.GetValue(),
		AggregateConfidence:   row.AggregateConfidence,
		NeedsReview:           row.NeedsReview,
		Error:                 models.ReportError(row.Error),
		Status:                models.ReportStatus(row.Status),
		ReviewedBy:            row.ReviewedBy,
		ReviewedAt:            row.ReviewedAt,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status      models.ReportStatus
	NeedsReview *bool
	Limit       int
}

// Repository handles mapping report persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new mapping report repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create persists a freshly produced report and stamps its ID and lifecycle
// fields on the passed model.
func (r *Repository) Create(ctx context.Context, report *models.MappingReport) (*models.MappingReport, error) {
	ctx, span := tracing.StartSpan(ctx, "report.Repository.Create")
	defer span.End()

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.CreatedAt = time.Now().UTC()
	report.UpdatedAt = report.CreatedAt
	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("mapping_reports")
	sb.Cols(reportColumns...)
	sb.Values(
		report.ID, report.PageURL, report.ScannedAt,
		database.JSONB[[]models.FieldMatch]{Data: report.Matches},
		database.JSONB[[]models.UnmatchedField]{Data: report.UnmatchedFields},
		database.JSONB[[]models.UnmatchedProfileValue]{Data: report.UnmatchedProfilePaths},
		report.AggregateConfidence, report.NeedsReview,
		string(report.Error), string(report.Status),
		report.ReviewedBy, report.ReviewedAt,
		report.CreatedAt, report.UpdatedAt,
	)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"report_id": report.ID}).Error("Failed to create mapping report")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create mapping report")
	}

	return report, nil
}

// Get retrieves a mapping report by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.MappingReport, error) {
	ctx, span := tracing.StartSpan(ctx, "report.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reportColumns...)
	sb.From("mapping_reports")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var row reportRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("mapping report %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get mapping report")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get mapping report")
	}

	return row.toModel(), nil
}

// List retrieves reports newest first, filtered for the review queue.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.MappingReport, error) {
	ctx, span := tracing.StartSpan(ctx, "report.Repository.List")
	defer span.End()

	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reportColumns...)
	sb.From("mapping_reports")

	var where []string
	if filter.Status != "" {
		where = append(where, sb.Equal("status", string(filter.Status)))
	}
	if filter.NeedsReview != nil {
		where = append(where, sb.Equal("needs_review", *filter.NeedsReview))
	}
	if len(where) > 0 {
		sb.Where(where...)
	}
	sb.OrderBy("created_at DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list mapping reports")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list mapping reports")
	}

	reports := make([]models.MappingReport, len(rows))
	for i := range rows {
		reports[i] = *rows[i].toModel()
	}

	return reports, nil
}

// UpdateReviewStatus records the reviewer decision for a report.
func (r *Repository) UpdateReviewStatus(ctx context.Context, id string, status models.ReportStatus, reviewedBy *string) error {
	ctx, span := tracing.StartSpan(ctx, "report.Repository.UpdateReviewStatus")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("mapping_reports")
	sb.Set(
		sb.Assign("status", string(status)),
		sb.Assign("reviewed_by", reviewedBy),
		sb.Assign("reviewed_at", now),
		sb.Assign("updated_at", now),
	)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update mapping report status")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update mapping report status")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("mapping report %s not found", id))
	}

	return nil
}

// DeleteOlderThan prunes reports past the retention window. Reports exist
// for the review queue, not as an archive.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "report.Repository.DeleteOlderThan")
	defer span.End()

	query := `DELETE FROM mapping_reports WHERE created_at < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to prune mapping reports")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to prune mapping reports")
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
