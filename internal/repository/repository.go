// Package repository owns the persisted wishlist: the item collection and the
// user-added category names. Every mutation reads the whole collection,
// transforms it and writes it back.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/store"
)

var (
	// ErrValidation marks caller input that fails a precondition.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a write the backing store rejected.
	ErrStorage = errors.New("storage failure")
)

const DefaultKeyPrefix = "wishlist_"

type Repository struct {
	mu     sync.Mutex
	kv     store.Store
	prefix string
	now    func() time.Time
	newID  func() string
	log    *slog.Logger
}

type Option func(*Repository)

// WithKeyPrefix namespaces the two storage keys (<prefix>items, <prefix>categories).
func WithKeyPrefix(p string) Option { return func(r *Repository) { r.prefix = p } }

func WithClock(now func() time.Time) Option { return func(r *Repository) { r.now = now } }

func WithIDGenerator(fn func() string) Option { return func(r *Repository) { r.newID = fn } }

func WithLogger(l *slog.Logger) Option { return func(r *Repository) { r.log = l } }

func New(kv store.Store, opts ...Option) *Repository {
	r := &Repository{
		kv:     kv,
		prefix: DefaultKeyPrefix,
		now:    time.Now,
		newID:  func() string { return "item_" + uuid.NewString() },
		log:    slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Repository) ItemsKey() string      { return r.prefix + "items" }
func (r *Repository) CategoriesKey() string { return r.prefix + "categories" }

// ---------------------------------------------------
// items
// ---------------------------------------------------

// List returns every item in storage order. A missing or unreadable
// payload reads as an empty list.
func (r *Repository) List(ctx context.Context) []model.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readItems(ctx)
}

// Get returns the item with the given id.
func (r *Repository) Get(ctx context.Context, id string) (model.Item, bool) {
	for _, it := range r.List(ctx) {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Upsert creates the item when its ID is empty or unknown, and otherwise
// replaces every field of the stored item with the candidate's, keeping the
// ID. CreatedAt is whatever the caller passes on update; callers that want
// to keep it pass the loaded item back in. It returns the stored item.
//
// Besides storage failures, Upsert fails with ErrValidation when the name is
// blank. Import writes the collection directly and skips this check.
func (r *Repository) Upsert(ctx context.Context, candidate model.Item) (model.Item, error) {
	if strings.TrimSpace(candidate.Name) == "" {
		return model.Item{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.readItems(ctx)
	now := r.now().UTC()

	idx := -1
	if candidate.ID != "" {
		for i := range items {
			if items[i].ID == candidate.ID {
				idx = i
				break
			}
		}
	}

	var saved model.Item
	if idx >= 0 {
		saved = candidate
		saved.UpdatedAt = now
		items[idx] = saved
	} else {
		saved = candidate
		saved.ID = r.newID()
		saved.CreatedAt = now
		saved.UpdatedAt = now
		items = append(items, saved)
	}

	if err := r.writeJSON(ctx, r.ItemsKey(), items); err != nil {
		return model.Item{}, err
	}
	return saved, nil
}

// Delete removes the item with the given id. Unknown ids are a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.DeleteMany(ctx, []string{id})
}

// DeleteMany removes every item whose id is listed. Unknown ids are ignored.
func (r *Repository) DeleteMany(ctx context.Context, ids []string) error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.readItems(ctx)
	kept := items[:0]
	for _, it := range items {
		if _, ok := drop[it.ID]; ok {
			continue
		}
		kept = append(kept, it)
	}
	return r.writeJSON(ctx, r.ItemsKey(), kept)
}

// ---------------------------------------------------
// ranking
// ---------------------------------------------------

// ListByRank returns ranked items, lowest rank first. Unranked items are left out.
func (r *Repository) ListByRank(ctx context.Context) []model.Item {
	return SortByRank(r.List(ctx))
}

// UpdateRanks clears every rank, then ranks the listed items 1..n in the
// given order. Unknown and repeated ids are skipped so the ranks stay
// contiguous. Only items that receive a rank get a new UpdatedAt. An empty
// list clears the ranking.
func (r *Repository) UpdateRanks(ctx context.Context, orderedIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.readItems(ctx)
	pos := make(map[string]int, len(items))
	for i := range items {
		items[i].Rank = nil
		pos[items[i].ID] = i
	}

	now := r.now().UTC()
	next := 1
	for _, id := range orderedIDs {
		i, ok := pos[id]
		if !ok || items[i].Rank != nil {
			continue
		}
		rank := next
		items[i].Rank = &rank
		items[i].UpdatedAt = now
		next++
	}
	return r.writeJSON(ctx, r.ItemsKey(), items)
}

// ---------------------------------------------------
// persistence helpers
// ---------------------------------------------------

func (r *Repository) readItems(ctx context.Context) []model.Item {
	items := []model.Item{}
	r.readJSON(ctx, r.ItemsKey(), &items)
	if items == nil {
		items = []model.Item{}
	}
	return items
}

func (r *Repository) readCategories(ctx context.Context) []string {
	var names []string
	r.readJSON(ctx, r.CategoriesKey(), &names)
	return names
}

// readJSON decodes key into v. Absent keys leave v alone; unreadable or
// corrupt payloads are logged and leave v at its zero value.
func (r *Repository) readJSON(ctx context.Context, key string, v any) {
	b, err := r.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Warn("read failed, treating as empty", "key", key, "err", err)
		}
		return
	}
	partial, err := model.UnmarshalLenient(b, v)
	if err != nil {
		r.log.Warn("corrupt payload, treating as empty", "key", key, "err", err)
		resetJSON(v)
		return
	}
	if partial {
		r.log.Warn("payload has fields of the wrong type, kept what decoded", "key", key)
	}
}

func resetJSON(v any) {
	switch p := v.(type) {
	case *[]model.Item:
		*p = []model.Item{}
	case *[]string:
		*p = nil
	}
}

func (r *Repository) writeJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, key, err)
	}
	if err := r.kv.Put(ctx, key, b); err != nil {
		r.log.Error("write failed", "key", key, "bytes", len(b), "err", err)
		return fmt.Errorf("%w: write %s: %w", ErrStorage, key, err)
	}
	return nil
}
