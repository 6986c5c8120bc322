package registry

import (
	"fmt"
	"strings"

	"github.com/tzhao/polysignal/internal/model"
)

// Registry holds categories in their configured order.
type Registry struct {
	categories []model.Category
	keywords   [][]string // Lowercased keywords, parallel to categories
}

// New builds a registry from an ordered category list. Category names must
// be unique and every category needs at least one keyword; a registry that
// can never match anything is a configuration mistake, not a valid state.
func New(categories []model.Category) (*Registry, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("registry: no categories configured")
	}

	seen := make(map[string]struct{}, len(categories))
	keywords := make([][]string, len(categories))

	for i, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("registry: category %d has no name", i)
		}
		if _, dup := seen[cat.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = struct{}{}

		if len(cat.Keywords) == 0 {
			return nil, fmt.Errorf("registry: category %q has no keywords", cat.Name)
		}

		lowered := make([]string, len(cat.Keywords))
		for j, kw := range cat.Keywords {
			if strings.TrimSpace(kw) == "" {
				return nil, fmt.Errorf("registry: category %q has an empty keyword", cat.Name)
			}
			lowered[j] = strings.ToLower(kw)
		}
		keywords[i] = lowered
	}

	return &Registry{
		categories: categories,
		keywords:   keywords,
	}, nil
}

// Resolve returns the first category whose keywords appear in the title
// (case-insensitive substring match), or nil when nothing matches. Absence
// of a match is not an error; uncategorized markets simply carry no tickers.
func (r *Registry) Resolve(title string) *model.Category {
	lowered := strings.ToLower(title)

	for i := range r.categories {
		for _, kw := range r.keywords[i] {
			if strings.Contains(lowered, kw) {
				cat := r.categories[i]
				return &cat
			}
		}
	}

	return nil
}

// Categories returns the configured categories in match order.
func (r *Registry) Categories() []model.Category {
	return r.categories
}

// Len returns the number of configured categories.
func (r *Registry) Len() int {
	return len(r.categories)
}
