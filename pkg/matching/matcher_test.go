package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
)

func matcherProfile() profile.Tree {
	return profile.Tree{
		"personal": map[string]any{
			"firstName": "John",
			"lastName":  "Doe",
			"email":     "john@example.com",
			"phone":     "555-123-4567",
		},
		"education": map[string]any{
			"gpa": "",
		},
		"links": map[string]any{
			"github":    "https://github.com/jdoe",
			"portfolio": "https://jdoe.dev",
		},
	}
}

func TestMatchFieldExactLabel(t *testing.T) {
	matcher := NewMatcher()

	field := models.FieldDescriptor{
		ID:             "f1",
		InputType:      "text",
		Label:          "First Name",
		SelectorHandle: "form0/input3",
	}

	match := matcher.MatchField(field, matcherProfile())
	require.NotNil(t, match)
	assert.Equal(t, models.PathFirstName, match.ProfilePath)
	assert.Equal(t, "John", match.Value)
	assert.Equal(t, 1.0, match.Confidence)
	assert.Equal(t, "form0/input3", match.SelectorHandle)
	assert.Equal(t, models.MatchAttributeLabel, match.MatchedOnAttribute)
	assert.False(t, match.RequiresReview)
}

func TestMatchFieldDeterministic(t *testing.T) {
	matcher := NewMatcher()
	field := models.FieldDescriptor{ID: "f1", InputType: "text", Label: "Last Name"}
	tree := matcherProfile()

	first := matcher.MatchField(field, tree)
	require.NotNil(t, first)
	for i := 0; i < 5; i++ {
		again := matcher.MatchField(field, tree)
		require.NotNil(t, again)
		assert.Equal(t, *first, *again)
	}
}

func TestMatchFieldTieKeepsEarliestRule(t *testing.T) {
	matcher := NewMatcher()

	// "GitHub Portfolio" scores the containment tier (0.85) for both the
	// github and portfolio rules; the earlier registry entry must win.
	field := models.FieldDescriptor{ID: "f1", InputType: "url", Label: "GitHub Portfolio"}

	match := matcher.MatchField(field, matcherProfile())
	require.NotNil(t, match)
	assert.Equal(t, models.PathGitHub, match.ProfilePath)
	assert.Equal(t, "https://github.com/jdoe", match.Value)
}

func TestMatchFieldSkipsIncompatibleInputType(t *testing.T) {
	matcher := NewMatcher()

	// No rule accepts password inputs, however strong the label.
	field := models.FieldDescriptor{ID: "f1", InputType: "password", Label: "Email"}
	assert.Nil(t, matcher.MatchField(field, matcherProfile()))
}

func TestMatchFieldTypeValidation(t *testing.T) {
	matcher := NewMatcher()

	tree := profile.Tree{
		"personal": map[string]any{"email": "not-an-email"},
	}
	field := models.FieldDescriptor{ID: "f1", InputType: "email", Label: "Email"}

	// A perfect label match still never offers a value lacking "@" to an
	// email input.
	assert.Nil(t, matcher.MatchField(field, tree))
}

func TestMatchFieldEmptyValueGuard(t *testing.T) {
	matcher := NewMatcher()

	field := models.FieldDescriptor{ID: "f1", InputType: "text", Label: "GPA"}
	assert.Nil(t, matcher.MatchField(field, matcherProfile()))
}

func TestMatchFieldMissingPath(t *testing.T) {
	matcher := NewMatcher()

	field := models.FieldDescriptor{ID: "f1", InputType: "text", Label: "School"}
	assert.Nil(t, matcher.MatchField(field, matcherProfile()))
}

func TestMatchFieldVetoBlocksSubstringOverlap(t *testing.T) {
	matcher := NewMatcher()

	// "Last Name" overlaps the firstName vocabulary through the shared
	// "name" token, but the firstName rule vetoes on "last".
	field := models.FieldDescriptor{ID: "f1", InputType: "text", Label: "Last Name"}

	match := matcher.MatchField(field, matcherProfile())
	require.NotNil(t, match)
	assert.Equal(t, models.PathLastName, match.ProfilePath)
	assert.Equal(t, "Doe", match.Value)
}

func TestMatchFieldRequiresReview(t *testing.T) {
	matcher := NewMatcher()

	// Placeholder-only containment renormalizes to a confidence of 0.85,
	// which clears the review threshold.
	field := models.FieldDescriptor{ID: "f1", InputType: "tel", Placeholder: "Phone number here"}

	match := matcher.MatchField(field, matcherProfile())
	require.NotNil(t, match)
	assert.Equal(t, models.PathPhone, match.ProfilePath)
	assert.InDelta(t, 0.85, match.Confidence, 1e-12)
	assert.False(t, match.RequiresReview)
}
