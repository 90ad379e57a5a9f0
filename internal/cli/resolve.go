package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
)

var categoryAliases = map[string]domain.Category{
	"trends":   domain.CategoryKeyTrends,
	"key":      domain.CategoryKeyTrends,
	"market":   domain.CategoryMarketForces,
	"industry": domain.CategoryIndustryForces,
	"macro":    domain.CategoryMacroEconomic,
}

// resolveCategory accepts a category id in any case, or a short alias such
// as "market".
func resolveCategory(input string) (domain.Category, error) {
	for _, c := range domain.AllCategories {
		if strings.EqualFold(string(c), input) {
			return c, nil
		}
	}
	if c, ok := categoryAliases[strings.ToLower(input)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (run `envioscan fields` for the list)", input)
}

// resolveField matches a field id of c case-insensitively.
func resolveField(c domain.Category, input string) (string, error) {
	spec := domain.CategoryByIDMust(c)
	for _, f := range spec.Fields {
		if strings.EqualFold(f.ID, input) {
			return f.ID, nil
		}
	}
	ids := make([]string, len(spec.Fields))
	for i, f := range spec.Fields {
		ids[i] = f.ID
	}
	return "", fmt.Errorf("unknown field %q in %s (expected one of: %s)", input, c, strings.Join(ids, ", "))
}
