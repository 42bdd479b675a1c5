package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/wishlist/internal/model"
)

// Categories returns the built-in names in their fixed order followed by
// stored names in storage order, without duplicates.
func (r *Repository) Categories(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mergeCategories(r.readCategories(ctx))
}

func mergeCategories(stored []string) []string {
	out := make([]string, 0, len(model.BuiltinCategories)+len(stored))
	seen := make(map[string]bool, cap(out))
	for _, group := range [][]string{model.BuiltinCategories, stored} {
		for _, c := range group {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// AddCategory stores a new category name. The name is trimmed; a blank name
// is a validation failure, a name that already exists (built-ins included,
// exact match) succeeds without writing.
func (r *Repository) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name is empty", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.readCategories(ctx)
	for _, c := range mergeCategories(stored) {
		if c == name {
			return nil
		}
	}
	return r.writeJSON(ctx, r.CategoriesKey(), append(stored, name))
}
