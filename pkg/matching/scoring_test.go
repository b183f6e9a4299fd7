package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditDistance(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"first name", "first name", 0},
		{"abcde", "abcxy", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, scorer.EditDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestSimilarityTiers(t *testing.T) {
	scorer := NewScorer()

	t.Run("EmptyEitherSide", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.Similarity("", "first name"))
		assert.Equal(t, 0.0, scorer.Similarity("first name", ""))
		// Normalizing to empty counts as empty.
		assert.Equal(t, 0.0, scorer.Similarity("***", "first name"))
	})

	t.Run("ExactAfterNormalization", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.Similarity("First Name", "first name"))
		assert.Equal(t, 1.0, scorer.Similarity("  E-mail ", "e mail"))
	})

	t.Run("Contains", func(t *testing.T) {
		assert.Equal(t, 0.85, scorer.Similarity("name", "first name"))
		assert.Equal(t, 0.85, scorer.Similarity("Your Email Address", "email address"))
	})

	t.Run("FuzzyAboveFloor", func(t *testing.T) {
		// distance 2 over max length 5
		assert.InDelta(t, 0.6, scorer.Similarity("abcde", "abcxy"), 1e-12)
		// distance 1 over max length 8, exactly representable
		assert.Equal(t, 0.875, scorer.Similarity("abcdefgh", "abcdefgx"))
	})

	t.Run("WeakFuzzyDiscarded", func(t *testing.T) {
		// distance 4 over max length 4 => 0.0 raw, floored
		assert.Equal(t, 0.0, scorer.Similarity("abcd", "wxyz"))
		// distance 4 over max length 8 => exactly 0.5, still floored
		assert.Equal(t, 0.0, scorer.Similarity("abcdefgh", "abcdwxyz"))
	})
}

func TestSimilaritySymmetric(t *testing.T) {
	scorer := NewScorer()
	pairs := [][2]string{
		{"first name", "name first"},
		{"email", "email address"},
		{"abcde", "abcxy"},
	}
	for _, pair := range pairs {
		assert.Equal(t, scorer.Similarity(pair[0], pair[1]), scorer.Similarity(pair[1], pair[0]))
	}
}
