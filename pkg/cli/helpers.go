package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/k8sinv/kinvctl/pkg/inventory"
)

// parseCategories validates and normalizes --only values. Flag values may be
// comma-separated; unknown categories fail with a nearest-match suggestion.
func parseCategories(raw []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}

	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			category := strings.ToLower(strings.TrimSpace(part))
			if category == "" {
				continue
			}
			if !containsCategory(inventory.Categories(), category) {
				return nil, unknownCategoryError(category)
			}
			if !seen[category] {
				seen[category] = true
				out = append(out, category)
			}
		}
	}
	return out, nil
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

func unknownCategoryError(category string) error {
	best := ""
	bestDistance := 4 // suggestions beyond this edit distance are noise
	for _, candidate := range inventory.Categories() {
		if d := levenshtein.ComputeDistance(category, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	if best != "" {
		return fmt.Errorf("unknown category %q, did you mean %q? valid categories: %s",
			category, best, strings.Join(inventory.Categories(), ", "))
	}
	return fmt.Errorf("unknown category %q, valid categories: %s",
		category, strings.Join(inventory.Categories(), ", "))
}
