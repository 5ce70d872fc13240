package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mealdex/internal/catalog"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	// SortNone keeps the filtered meals in catalog order.
	SortNone SortKey = ""
	// SortNameAsc orders by meal name, A to Z.
	SortNameAsc SortKey = "name-asc"
	// SortNameDesc orders by meal name, Z to A.
	SortNameDesc SortKey = "name-desc"
)

// Options are the filter and sort settings for one result view.
type Options struct {
	Category string
	Area     string
	Sort     SortKey
}

// Apply filters meals by exact category/area match and sorts by name using
// locale-aware collation. The input slice is never mutated; the result is a
// fresh slice. With SortNone the relative catalog order is preserved.
func Apply(meals []catalog.MealSummary, opts Options) []catalog.MealSummary {
	filtered := make([]catalog.MealSummary, 0, len(meals))
	for _, m := range meals {
		if opts.Category != "" && m.Category != opts.Category {
			continue
		}
		if opts.Area != "" && m.Area != opts.Area {
			continue
		}
		filtered = append(filtered, m)
	}

	switch opts.Sort {
	case SortNameAsc, SortNameDesc:
		c := collate.New(language.English)
		sort.SliceStable(filtered, func(i, j int) bool {
			if opts.Sort == SortNameDesc {
				i, j = j, i
			}
			return c.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	}
	return filtered
}
