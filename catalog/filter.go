package catalog

import (
	"slices"
	"strings"
)

// Sort orders for the catalog view.
const (
	SortFeatured       = "featured" // original order, no re-sort
	SortPriceLowToHigh = "priceLowToHigh"
	SortPriceHighToLow = "priceHighToLow"
	SortNewest         = "newest"
	SortPopularity     = "popularity"
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filter is the combination of category, price range, free-text search and
// sort order applied to the product list.
type Filter struct {
	Category    string     `json:"category"`
	PriceRange  PriceRange `json:"priceRange"`
	SearchQuery string     `json:"searchQuery"`
	SortBy      string     `json:"sortBy"`
}

func DefaultFilter() Filter {
	return Filter{
		PriceRange: PriceRange{Min: 0, Max: 10000},
		SortBy:     SortFeatured,
	}
}

// Apply derives the displayed list from the full catalog. It is pure: the
// input slice is never reordered or mutated, and it is re-run in full after
// every filter change rather than maintained incrementally.
func Apply(products []Product, f Filter) []Product {
	result := make([]Product, 0, len(products))

	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if p.Price < f.PriceRange.Min || p.Price > f.PriceRange.Max {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		result = append(result, p)
	}

	switch f.SortBy {
	case SortPriceLowToHigh:
		slices.SortStableFunc(result, func(a, b Product) int {
			return compareFloats(a.Price, b.Price)
		})
	case SortPriceHighToLow:
		slices.SortStableFunc(result, func(a, b Product) int {
			return compareFloats(b.Price, a.Price)
		})
	case SortNewest:
		slices.SortStableFunc(result, func(a, b Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortPopularity:
		slices.SortStableFunc(result, func(a, b Product) int {
			return compareFloats(b.Popularity, a.Popularity)
		})
	default:
		// SortFeatured keeps the original order.
	}

	return result
}

func matchesQuery(p Product, loweredQuery string) bool {
	for _, field := range []string{p.Name, p.Description, p.Artisan, p.Tribe} {
		if field != "" && strings.Contains(strings.ToLower(field), loweredQuery) {
			return true
		}
	}
	return false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
