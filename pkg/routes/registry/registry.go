package registry

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/pkg/registry"
)

// Register registers pattern registry routes
func Register(g *echo.Group) {
	g.GET("", ListRules)
}

// RuleView is the read-only wire shape of one pattern rule.
type RuleView struct {
	ProfilePath        string   `json:"profile_path"`
	Phrases            []string `json:"phrases"`
	AcceptedInputTypes []string `json:"accepted_input_types"`
	Weight             float64  `json:"weight"`
	NegativeKeywords   []string `json:"negative_keywords"`
}

// ListRules enumerates the pattern registry in matching order. The registry
// is compiled in, so this is purely informational for the review UI.
func ListRules(c echo.Context) error {
	ctx := c.Request().Context()
	_, span := tracing.StartSpan(ctx, "registry_handler.ListRules")
	defer span.End()

	rules := registry.Rules()
	views := make([]RuleView, len(rules))
	for i, rule := range rules {
		views[i] = RuleView{
			ProfilePath:        string(rule.ProfilePath),
			Phrases:            rule.Phrases,
			AcceptedInputTypes: rule.AcceptedInputTypes,
			Weight:             rule.Weight,
			NegativeKeywords:   rule.NegativeKeywords,
		}
	}

	return c.JSON(http.StatusOK, views)
}
