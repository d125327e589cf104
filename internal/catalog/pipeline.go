package catalog

import (
	"sort"
	"strings"

	"github.com/packlane/storefront/pkg/enums"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll is the sentinel meaning "no category constraint".
const CategoryAll = "all"

// Query is the transient filter/sort input for one listing render.
type Query struct {
	Search   string
	Category string
	Sort     enums.SortKey
}

// Apply runs the filter-then-sort pipeline over a catalog snapshot. It never
// mutates the input and always returns a fresh slice; an empty result is a
// valid "no products found" state.
func Apply(products []Product, q Query) []Product {
	filtered := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && p.Category != q.Category {
			continue
		}
		filtered = append(filtered, p)
	}
	sortProducts(filtered, q.Sort)
	return filtered
}

// matchesSearch checks the lowered search text against title, description, and
// category; any one match keeps the product.
func matchesSearch(p Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func sortProducts(products []Product, key enums.SortKey) {
	switch key {
	case enums.SortByPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case enums.SortByPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case enums.SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating.Rate.GreaterThan(products[j].Rating.Rate)
		})
	default:
		// Name sort, also the fallback for an unset or unknown key. Titles are
		// compared with a collator rather than byte order.
		collator := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Title, products[j].Title) < 0
		})
	}
}
