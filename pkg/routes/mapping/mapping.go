package mapping

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/formweave/aster/internal/repositories/report"
	"github.com/formweave/aster/internal/tracing"
	mappingsvc "github.com/formweave/aster/pkg/mapping"
	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
)

var validate = validator.New()

// Register registers mapping routes
func Register(g *echo.Group) {
	g.POST("", CreateMapping)
	g.GET("", ListMappings)
	g.GET("/:id", GetMapping)
	g.POST("/:id/review", ReviewMapping)
}

// CreateMappingRequest is one scanned page plus the profile to map onto it.
// Profile and scanned_forms carry no validation tags: a missing or malformed
// payload still produces a report, flagged rather than rejected.
type CreateMappingRequest struct {
	PageURL      string               `json:"page_url" validate:"required"`
	ScannedAt    time.Time            `json:"scanned_at"`
	Profile      profile.Tree         `json:"profile"`
	ScannedForms []models.ScannedForm `json:"scanned_forms"`
}

// ReviewMappingRequest records the reviewer decision
type ReviewMappingRequest struct {
	Status models.ReportStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// CreateMapping runs one mapping and returns the persisted report
func CreateMapping(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "mapping_handler.CreateMapping")
	defer span.End()

	var req CreateMappingRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, service, err := ectoinject.GetContext[*mappingsvc.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.Run(ctx, req.Profile, req.ScannedForms, mappingsvc.RunInfo{
		PageURL:   req.PageURL,
		ScannedAt: req.ScannedAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

// GetMapping returns a persisted report by ID
func GetMapping(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "mapping_handler.GetMapping")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*report.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ListMappings returns reports for the review queue, newest first
func ListMappings(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "mapping_handler.ListMappings")
	defer span.End()

	filter := report.ListFilter{
		Status: models.ReportStatus(c.QueryParam("status")),
	}
	if nr := c.QueryParam("needs_review"); nr != "" {
		needsReview := nr == "true"
		filter.NeedsReview = &needsReview
	}
	if limit := c.QueryParam("limit"); limit != "" {
		filter.Limit, _ = strconv.Atoi(limit)
	}

	ctx, repo, err := ectoinject.GetContext[*report.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	results, err := repo.List(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, results)
}

// ReviewMapping records an approve/reject decision for a report
func ReviewMapping(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "mapping_handler.ReviewMapping")
	defer span.End()

	id := c.Param("id")

	var req ReviewMappingRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, service, err := ectoinject.GetContext[*mappingsvc.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	result, err := service.Review(ctx, id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
