// Package matching implements field-to-profile matching: it scores one form
// field against the pattern registry and selects the best profile value to
// offer for it. Everything here is pure, synchronous computation; concurrent
// use requires no locking because the registry is read-only after init.
package matching

import (
	"strings"

	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/registry"
)

// Attribute weights. The label dominates because it is the strongest
// user-visible signal; aria-label is the weakest and rarest. The weights sum
// to 1.0 across all four attributes; when a field is missing attributes the
// weighted sum is renormalized over the present weights, so a label-only
// field with an exact label match still reaches full confidence.
const (
	weightLabel       = 0.50
	weightPlaceholder = 0.30
	weightName        = 0.15
	weightAriaLabel   = 0.05
)

// Reporting thresholds for MatchedOnAttribute provenance. These are a
// deliberately separate constant set from the acceptance thresholds
// (MinAcceptConfidence/ReviewThreshold below): explainability and acceptance
// are different concerns, and the scales are unrelated.
const (
	reportThresholdLabel       = 0.4
	reportThresholdPlaceholder = 0.2
	reportThresholdName        = 0.1
	reportThresholdAriaLabel   = 0.0
)

// Acceptance thresholds, fixed global constants. Exported so boundary tests
// can assert exact edges.
const (
	// MinAcceptConfidence is the minimum confidence at which the
	// orchestrator accepts a match into the report.
	MinAcceptConfidence = 0.6
	// ReviewThreshold is the confidence below which an accepted match is
	// flagged for human review.
	ReviewThreshold = 0.8
)

// Confidence is the outcome of scoring one field against one rule.
type Confidence struct {
	Score              float64
	MatchedOnAttribute models.MatchAttribute
	AttributeScores    models.MatchCandidateScore
}

// Calculator combines per-attribute phrase similarities into one confidence
// score, applying the rule's negative-keyword veto first.
type Calculator struct {
	scorer *Scorer
}

// NewCalculator creates a new Calculator
func NewCalculator() *Calculator {
	return &Calculator{scorer: NewScorer()}
}

// Calculate scores a field descriptor against a pattern rule:
//  1. Veto: any negative keyword occurring in the field's combined
//     label+placeholder+name text zeroes the rule unconditionally.
//  2. Each present attribute contributes its best similarity over the rule's
//     phrases, scaled by the attribute weight.
//  3. The score is the weighted mean over present attributes.
//  4. MatchedOnAttribute is the highest-priority attribute whose raw
//     similarity exceeds its reporting threshold; informational only.
func (c *Calculator) Calculate(field models.FieldDescriptor, rule registry.PatternRule) Confidence {
	if c.vetoed(field, rule) {
		return Confidence{MatchedOnAttribute: models.MatchAttributeNone}
	}

	var scores models.MatchCandidateScore
	var weightedSum, totalWeight float64

	if field.Label != "" {
		scores.Label = c.bestSimilarity(field.Label, rule.Phrases)
		weightedSum += scores.Label * weightLabel
		totalWeight += weightLabel
	}
	if field.Placeholder != "" {
		scores.Placeholder = c.bestSimilarity(field.Placeholder, rule.Phrases)
		weightedSum += scores.Placeholder * weightPlaceholder
		totalWeight += weightPlaceholder
	}
	if field.Name != "" {
		scores.Name = c.bestSimilarity(field.Name, rule.Phrases)
		weightedSum += scores.Name * weightName
		totalWeight += weightName
	}
	if field.AriaLabel != "" {
		scores.AriaLabel = c.bestSimilarity(field.AriaLabel, rule.Phrases)
		weightedSum += scores.AriaLabel * weightAriaLabel
		totalWeight += weightAriaLabel
	}

	if totalWeight == 0 {
		return Confidence{MatchedOnAttribute: models.MatchAttributeNone}
	}

	return Confidence{
		Score:              weightedSum / totalWeight,
		MatchedOnAttribute: matchedAttribute(scores),
		AttributeScores:    scores,
	}
}

// vetoed reports whether any negative keyword occurs in the field's combined
// label+placeholder+name text. The comparison is a plain lower-cased
// substring check, independent of similarity strength.
func (c *Calculator) vetoed(field models.FieldDescriptor, rule registry.PatternRule) bool {
	if len(rule.NegativeKeywords) == 0 {
		return false
	}
	combined := strings.ToLower(field.Label + " " + field.Placeholder + " " + field.Name)
	for _, keyword := range rule.NegativeKeywords {
		if strings.Contains(combined, keyword) {
			return true
		}
	}
	return false
}

// bestSimilarity returns the highest similarity between the attribute text
// and any of the rule's phrases.
func (c *Calculator) bestSimilarity(text string, phrases []string) float64 {
	best := 0.0
	for _, phrase := range phrases {
		if score := c.scorer.Similarity(text, phrase); score > best {
			best = score
		}
	}
	return best
}

// matchedAttribute picks the provenance attribute by fixed priority.
func matchedAttribute(scores models.MatchCandidateScore) models.MatchAttribute {
	switch {
	case scores.Label > reportThresholdLabel:
		return models.MatchAttributeLabel
	case scores.Placeholder > reportThresholdPlaceholder:
		return models.MatchAttributePlaceholder
	case scores.Name > reportThresholdName:
		return models.MatchAttributeName
	case scores.AriaLabel > reportThresholdAriaLabel:
		return models.MatchAttributeAriaLabel
	default:
		return models.MatchAttributeNone
	}
}
