package repository

import (
	"context"
	"fmt"

	"github.com/idilsaglam/wishlist/internal/model"
)

// Export copies the whole dataset. The snapshot shares no memory with the
// store, so later mutations do not show through.
func (r *Repository) Export(ctx context.Context) model.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return model.Snapshot{
		Items:      r.readItems(ctx),
		Categories: mergeCategories(r.readCategories(ctx)),
		ExportedAt: r.now().UTC(),
	}
}

// Import replaces the items when snap.Items is non-nil and then the
// categories when snap.Categories is non-nil. Nothing is validated. The two
// writes are independent: if the categories write fails the new items stay.
func (r *Repository) Import(ctx context.Context, snap model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.Items != nil {
		if err := r.writeJSON(ctx, r.ItemsKey(), snap.Items); err != nil {
			return fmt.Errorf("import items: %w", err)
		}
	}
	if snap.Categories != nil {
		if err := r.writeJSON(ctx, r.CategoriesKey(), snap.Categories); err != nil {
			if snap.Items != nil {
				return fmt.Errorf("import categories (items already replaced): %w", err)
			}
			return fmt.Errorf("import categories: %w", err)
		}
	}
	r.log.Info("snapshot imported", "items", len(snap.Items), "categories", len(snap.Categories))
	return nil
}

// ClearAll removes both collections. Clearing an empty store succeeds.
func (r *Repository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range []string{r.ItemsKey(), r.CategoriesKey()} {
		if err := r.kv.Delete(ctx, key); err != nil {
			r.log.Error("delete failed", "key", key, "err", err)
			return fmt.Errorf("%w: delete %s: %w", ErrStorage, key, err)
		}
	}
	return nil
}
