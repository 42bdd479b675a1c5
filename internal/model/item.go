package model

import "time"

// Uncategorized is the category an item falls into when it has none.
const Uncategorized = "uncategorized"

// BuiltinCategories are always offered, in this order, ahead of user-added
// names. They are never persisted.
var BuiltinCategories = []string{
	Uncategorized,
	"electronics",
	"fashion",
	"books",
	"food",
	"other",
}

// Item is the domain model for a wishlist entry.
// Field names follow the stored JSON layout.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Budget   string   `json:"budget,omitempty"`
	Deadline string   `json:"deadline,omitempty"` // YYYY-MM-DD
	Color    string   `json:"color,omitempty"`
	Design   string   `json:"design,omitempty"`
	Features string   `json:"features,omitempty"`
	URL      string   `json:"url,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Category string   `json:"category"`
	Photos   []string `json:"photos,omitempty"`
	Rank     *int     `json:"rank"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// CategoryOrDefault returns the item's category, or Uncategorized when blank.
func (it Item) CategoryOrDefault() string {
	if it.Category == "" {
		return Uncategorized
	}
	return it.Category
}

// Ranked reports whether the item carries a rank.
func (it Item) Ranked() bool { return it.Rank != nil }

// RankValue returns the rank, or 0 for unranked items.
func (it Item) RankValue() int {
	if it.Rank == nil {
		return 0
	}
	return *it.Rank
}

// IsBuiltinCategory reports whether name is one of BuiltinCategories.
func IsBuiltinCategory(name string) bool {
	for _, c := range BuiltinCategories {
		if c == name {
			return true
		}
	}
	return false
}
