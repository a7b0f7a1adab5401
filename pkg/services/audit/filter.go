package audit

import "github.com/de-tools/diag-audit/pkg/models/domain"

// FilterResources returns the resources belonging to category, in input order.
func FilterResources(resources []domain.Resource, category domain.ResourceTypeCategory) []domain.Resource {
	predicates := domain.SupportedCategories[category]

	var filtered []domain.Resource
	for _, r := range resources {
		for _, p := range predicates {
			if p.Matches(r) {
				filtered = append(filtered, r)
				break
			}
		}
	}
	return filtered
}
