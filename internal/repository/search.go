package repository

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/idilsaglam/wishlist/internal/model"
)

// Search returns items whose name, category, features, design or notes
// contain q, ignoring case. A blank query returns everything. Storage order
// is kept; there is no relevance ranking.
func (r *Repository) Search(ctx context.Context, q string) []model.Item {
	items := r.List(ctx)
	q = strings.TrimSpace(q)
	if q == "" {
		return items
	}
	return Filter(items, q)
}

// Filter is the matching half of Search, for callers that already hold items.
func Filter(items []model.Item, q string) []model.Item {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q))

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		for _, field := range searchFields(it) {
			if field != "" && strings.Contains(fold.String(field), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func searchFields(it model.Item) []string {
	return []string{it.Name, it.Category, it.Features, it.Design, it.Notes}
}

// SearchText joins the searchable fields, for list filters that take one string.
func SearchText(it model.Item) string {
	return strings.Join(searchFields(it), " ")
}

// ListByCategory groups every item by category; see GroupByCategory.
func (r *Repository) ListByCategory(ctx context.Context) map[string][]model.Item {
	return GroupByCategory(r.List(ctx))
}

// GroupByCategory groups items by category, blank categories under
// model.Uncategorized. Order within a group follows the input.
func GroupByCategory(items []model.Item) map[string][]model.Item {
	grouped := make(map[string][]model.Item)
	for _, it := range items {
		c := it.CategoryOrDefault()
		grouped[c] = append(grouped[c], it)
	}
	return grouped
}

// OrderedGroups returns the keys of grouped following the category list,
// then any names the list does not know, alphabetically.
func (r *Repository) OrderedGroups(ctx context.Context, grouped map[string][]model.Item) []string {
	return orderGroups(r.Categories(ctx), grouped)
}

func orderGroups(categories []string, grouped map[string][]model.Item) []string {
	out := make([]string, 0, len(grouped))
	seen := make(map[string]bool, len(grouped))
	for _, c := range categories {
		if _, ok := grouped[c]; ok && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range grouped {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// SortByRank returns the ranked items of items ordered by rank. Ties keep
// input order.
func SortByRank(items []model.Item) []model.Item {
	ranked := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Ranked() {
			ranked = append(ranked, it)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Rank < *ranked[j].Rank
	})
	return ranked
}

// Stats summarises the collection for list headers.
type Stats struct {
	Total      int
	Ranked     int
	ByCategory map[string]int
}

func (r *Repository) Stats(ctx context.Context) Stats {
	items := r.List(ctx)
	st := Stats{Total: len(items), ByCategory: make(map[string]int)}
	for _, it := range items {
		if it.Ranked() {
			st.Ranked++
		}
		st.ByCategory[it.CategoryOrDefault()]++
	}
	return st
}
