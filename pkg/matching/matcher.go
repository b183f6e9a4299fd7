package matching

import (
	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
	"github.com/formweave/aster/pkg/registry"
)

// Matcher selects the best profile value for one form field.
type Matcher struct {
	calculator *Calculator
}

// NewMatcher creates a new Matcher
func NewMatcher() *Matcher {
	return &Matcher{calculator: NewCalculator()}
}

// MatchField scans the pattern registry in declaration order and returns the
// single best type-compatible, non-empty match for the field, or nil when no
// rule scores above zero.
//
// A candidate replaces the running best only on a strictly greater score, so
// an exact tie keeps the earliest rule. That tie-break is part of the
// contract: registry order is fixed, and changing either the order or the
// comparison changes observable output.
func (m *Matcher) MatchField(field models.FieldDescriptor, tree profile.Tree) *models.FieldMatch {
	var best *models.FieldMatch
	bestScore := 0.0

	for _, rule := range registry.Rules() {
		if !rule.AcceptsInputType(field.InputType) {
			continue
		}

		confidence := m.calculator.Calculate(field, rule)
		score := confidence.Score * rule.Weight
		if score <= bestScore {
			continue
		}

		value, ok := tree.Resolve(rule.ProfilePath)
		if !ok || value.IsEmpty() {
			continue
		}
		if !ValidateFieldType(field, rule.ProfilePath, value) {
			continue
		}

		bestScore = score
		best = &models.FieldMatch{
			FieldID:            field.ID,
			SelectorHandle:     field.SelectorHandle,
			ProfilePath:        rule.ProfilePath,
			Value:              value.Display(),
			Confidence:         score,
			MatchedOnAttribute: confidence.MatchedOnAttribute,
			RequiresReview:     score < ReviewThreshold,
		}
	}

	return best
}
