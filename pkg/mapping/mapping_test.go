package mapping

import (
	"context"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/aster/pkg/matching"
	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
)

func newTestOrchestrator() *Orchestrator {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewOrchestrator(logger)
}

func basicProfile() profile.Tree {
	return profile.Tree{
		"personal": map[string]any{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john.doe@example.com",
		},
	}
}

func TestMapProfileToFormEndToEnd(t *testing.T) {
	orch := newTestOrchestrator()

	forms := []models.ScannedForm{
		{
			ID: "form-1",
			Fields: []models.FieldDescriptor{
				{ID: "f1", InputType: "text", Label: "First Name", SelectorHandle: "h1"},
				{ID: "f2", InputType: "text", Label: "Last Name", SelectorHandle: "h2"},
				{ID: "f3", InputType: "email", Label: "Email", SelectorHandle: "h3"},
				{ID: "f4", InputType: "text", Label: "Favorite Color", SelectorHandle: "h4"},
			},
		},
	}

	scannedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{
		PageURL:   "https://jobs.example.com/apply",
		ScannedAt: scannedAt,
	})

	require.NotNil(t, report)
	assert.Equal(t, models.ReportErrorNone, report.Error)
	assert.Equal(t, "https://jobs.example.com/apply", report.PageURL)
	assert.Equal(t, scannedAt, report.ScannedAt)

	require.Len(t, report.Matches, 3)
	byPath := make(map[models.ProfilePath]models.FieldMatch)
	for _, match := range report.Matches {
		byPath[match.ProfilePath] = match
	}
	assert.Equal(t, "John", byPath[models.PathFirstName].Value)
	assert.Equal(t, "Doe", byPath[models.PathLastName].Value)
	assert.Equal(t, "john.doe@example.com", byPath[models.PathEmail].Value)
	for _, match := range report.Matches {
		assert.Equal(t, 1.0, match.Confidence)
		assert.False(t, match.RequiresReview)
	}

	require.Len(t, report.UnmatchedFields, 1)
	assert.Equal(t, "f4", report.UnmatchedFields[0].FieldID)
	assert.Equal(t, "Favorite Color", report.UnmatchedFields[0].DisplayLabel)

	assert.Empty(t, report.UnmatchedProfilePaths)
	assert.Equal(t, 1.0, report.AggregateConfidence)
	assert.False(t, report.NeedsReview)
}

func TestMapProfileToFormMalformedInput(t *testing.T) {
	orch := newTestOrchestrator()

	t.Run("NilProfile", func(t *testing.T) {
		report := orch.MapProfileToForm(context.Background(), nil, []models.ScannedForm{}, RunInfo{})
		require.NotNil(t, report)
		assert.Equal(t, models.ReportErrorMalformedInput, report.Error)
		assert.True(t, report.NeedsReview)
		assert.Empty(t, report.Matches)
		assert.Empty(t, report.UnmatchedFields)
		assert.Empty(t, report.UnmatchedProfilePaths)
	})

	t.Run("NilForms", func(t *testing.T) {
		report := orch.MapProfileToForm(context.Background(), basicProfile(), nil, RunInfo{})
		require.NotNil(t, report)
		assert.Equal(t, models.ReportErrorMalformedInput, report.Error)
		assert.True(t, report.NeedsReview)
	})
}

func TestMapProfileToFormSkipsExcludedForms(t *testing.T) {
	orch := newTestOrchestrator()

	forms := []models.ScannedForm{
		{
			ID:         "captcha-form",
			HasCaptcha: true,
			Fields: []models.FieldDescriptor{
				{ID: "c1", InputType: "text", Label: "First Name"},
			},
		},
		{
			ID:           "hidden-form",
			Inaccessible: true,
			Fields: []models.FieldDescriptor{
				{ID: "c2", InputType: "email", Label: "Email"},
			},
		},
	}

	report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{})

	// Skipped forms contribute nothing, not even unmatched entries.
	assert.Empty(t, report.Matches)
	assert.Empty(t, report.UnmatchedFields)
	assert.Equal(t, models.ReportErrorNone, report.Error)

	// The profile values nothing consumed are surfaced for review.
	paths := make([]models.ProfilePath, 0, len(report.UnmatchedProfilePaths))
	for _, unmatched := range report.UnmatchedProfilePaths {
		paths = append(paths, unmatched.Path)
	}
	assert.ElementsMatch(t, []models.ProfilePath{models.PathFirstName, models.PathLastName, models.PathEmail}, paths)

	assert.Equal(t, 0.0, report.AggregateConfidence)
	assert.True(t, report.NeedsReview)
}

func TestMapProfileToFormPathConsumedOnce(t *testing.T) {
	orch := newTestOrchestrator()

	forms := []models.ScannedForm{
		{
			ID: "form-1",
			Fields: []models.FieldDescriptor{
				{ID: "f1", InputType: "text", Label: "First Name"},
				{ID: "f2", InputType: "text", Label: "First Name"},
			},
		},
	}

	report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{})

	require.Len(t, report.Matches, 1)
	assert.Equal(t, "f1", report.Matches[0].FieldID)
	assert.Equal(t, models.PathFirstName, report.Matches[0].ProfilePath)

	require.Len(t, report.UnmatchedFields, 1)
	assert.Equal(t, "f2", report.UnmatchedFields[0].FieldID)
}

func TestMapProfileToFormAcceptanceBoundary(t *testing.T) {
	orch := newTestOrchestrator()

	t.Run("ConfidenceExactlyAtFloorIsAccepted", func(t *testing.T) {
		// "firxy" against the phrase "first" is two edits over five runes,
		// a similarity of exactly 0.6.
		forms := []models.ScannedForm{
			{
				ID: "form-1",
				Fields: []models.FieldDescriptor{
					{ID: "f1", InputType: "text", Label: "Firxy"},
				},
			},
		}

		report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{})

		require.Len(t, report.Matches, 1)
		assert.Equal(t, models.PathFirstName, report.Matches[0].ProfilePath)
		assert.Equal(t, matching.MinAcceptConfidence, report.Matches[0].Confidence)
		assert.True(t, report.Matches[0].RequiresReview)
		assert.True(t, report.NeedsReview)
	})

	t.Run("ConfidenceBelowFloorIsUnmatched", func(t *testing.T) {
		// Seven edits against "curriculum vitae" over sixteen runes is a
		// similarity of 0.5625, above the fuzzy cutoff but below acceptance.
		tree := profile.Tree{
			"documents": map[string]any{
				"resume": "resume.pdf",
			},
		}
		forms := []models.ScannedForm{
			{
				ID: "form-1",
				Fields: []models.FieldDescriptor{
					{ID: "f1", InputType: "file", Label: "Curriculuqqqqqqq"},
				},
			},
		}

		report := orch.MapProfileToForm(context.Background(), tree, forms, RunInfo{})

		assert.Empty(t, report.Matches)
		require.Len(t, report.UnmatchedFields, 1)
		assert.Equal(t, "f1", report.UnmatchedFields[0].FieldID)
	})
}

func TestMapProfileToFormReviewBoundary(t *testing.T) {
	orch := newTestOrchestrator()

	t.Run("ConfidenceAtReviewThresholdClears", func(t *testing.T) {
		// One edit against "forename" over eight runes: similarity 0.875.
		forms := []models.ScannedForm{
			{
				ID: "form-1",
				Fields: []models.FieldDescriptor{
					{ID: "f1", InputType: "text", Label: "Forenamx"},
				},
			},
		}

		report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{})

		require.Len(t, report.Matches, 1)
		assert.Equal(t, 0.875, report.Matches[0].Confidence)
		assert.False(t, report.Matches[0].RequiresReview)
	})

	t.Run("ConfidenceBelowReviewThresholdFlags", func(t *testing.T) {
		// Two edits against "forename": similarity 0.75.
		forms := []models.ScannedForm{
			{
				ID: "form-1",
				Fields: []models.FieldDescriptor{
					{ID: "f1", InputType: "text", Label: "Forenaxx"},
				},
			},
		}

		report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{})

		require.Len(t, report.Matches, 1)
		assert.Equal(t, 0.75, report.Matches[0].Confidence)
		assert.True(t, report.Matches[0].RequiresReview)
		assert.True(t, report.NeedsReview)
	})
}

func TestMapProfileToFormAggregateConfidence(t *testing.T) {
	orch := newTestOrchestrator()

	forms := []models.ScannedForm{
		{
			ID: "form-1",
			Fields: []models.FieldDescriptor{
				{ID: "f1", InputType: "text", Label: "First Name"},
				{ID: "f2", InputType: "text", Label: "Forenaxx"}, // 0.75, loses to nothing: firstName already consumed
			},
		},
	}

	report := orch.MapProfileToForm(context.Background(), basicProfile(), forms, RunInfo{})

	// Second field resolves to the consumed firstName path, so only one
	// match lands and the aggregate is its confidence.
	require.Len(t, report.Matches, 1)
	assert.Equal(t, 1.0, report.AggregateConfidence)
}

func TestMapProfileToFormSkipsEmptyProfileValues(t *testing.T) {
	orch := newTestOrchestrator()

	tree := profile.Tree{
		"personal": map[string]any{
			"firstName": "Jane",
		},
		"education": map[string]any{
			"gpa": "",
		},
	}
	forms := []models.ScannedForm{{ID: "form-1", Fields: []models.FieldDescriptor{}}}

	report := orch.MapProfileToForm(context.Background(), tree, forms, RunInfo{})

	require.Len(t, report.UnmatchedProfilePaths, 1)
	assert.Equal(t, models.PathFirstName, report.UnmatchedProfilePaths[0].Path)
	assert.Equal(t, "Jane", report.UnmatchedProfilePaths[0].Value)
}
