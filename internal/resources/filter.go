package resources

import (
	"strings"

	"github.com/malezi/malezi/internal/models"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Filter narrows a resource listing by search term and category. The term
// matches case-insensitively against title, description, and tags; an
// empty term matches everything. Category must match exactly unless it is
// "all" or empty. Order is preserved.
func Filter(items []models.Resource, term, category string) []models.Resource {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Resource, 0, len(items))
	for _, r := range items {
		if category != "" && category != CategoryAll && string(r.Category) != category {
			continue
		}
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTerm(r models.Resource, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
