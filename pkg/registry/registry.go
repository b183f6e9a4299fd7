// Package registry holds the static pattern table that recognizes profile
// fields in form text. The table is built once at process start and never
// mutated; declaration order is part of the matching contract because exact
// score ties resolve to the earliest rule.
package registry

import "github.com/formweave/aster/pkg/models"

// PatternRule describes the vocabulary and constraints recognizing one
// profile path in form text.
type PatternRule struct {
	ProfilePath models.ProfilePath `json:"profile_path"`
	// Phrases is the synonym vocabulary compared against field attributes.
	Phrases []string `json:"phrases"`
	// AcceptedInputTypes is an allow-list of input types; empty means any.
	AcceptedInputTypes []string `json:"accepted_input_types,omitempty"`
	// Weight scales the rule's final score. Always 1.0 today; kept as an
	// extension point for per-field prioritization.
	Weight float64 `json:"weight"`
	// NegativeKeywords unconditionally zero the rule's score when any of
	// them occurs in the field's combined label+placeholder+name text.
	NegativeKeywords []string `json:"negative_keywords,omitempty"`
}

// AcceptsInputType reports whether the rule may match a field of the given
// input type. An empty allow-list accepts every type.
func (r PatternRule) AcceptsInputType(inputType string) bool {
	if len(r.AcceptedInputTypes) == 0 {
		return true
	}
	for _, t := range r.AcceptedInputTypes {
		if t == inputType {
			return true
		}
	}
	return false
}

var rulesByPath map[models.ProfilePath]*PatternRule

func init() {
	rulesByPath = make(map[models.ProfilePath]*PatternRule, len(rules))
	for i := range rules {
		if _, exists := rulesByPath[rules[i].ProfilePath]; exists {
			panic("registry: duplicate pattern rule for " + rules[i].ProfilePath.String())
		}
		rulesByPath[rules[i].ProfilePath] = &rules[i]
	}
}

// Rules returns every pattern rule in declaration order.
func Rules() []PatternRule {
	return rules
}

// Lookup returns the rule for a profile path.
func Lookup(path models.ProfilePath) (PatternRule, bool) {
	rule, ok := rulesByPath[path]
	if !ok {
		return PatternRule{}, false
	}
	return *rule, true
}

// Paths returns every known profile path in declaration order.
func Paths() []models.ProfilePath {
	paths := make([]models.ProfilePath, len(rules))
	for i, rule := range rules {
		paths[i] = rule.ProfilePath
	}
	return paths
}
