package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/repository"
	"github.com/idilsaglam/wishlist/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return i.CategoryOrDefault() }
func (i listItem) FilterValue() string { return repository.SearchText(i.Item) }

// itemDelegate renders one item per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(listItem)
	if !ok {
		return
	}

	badge := mutedStyle.Render(fmt.Sprintf("%-3s", symItem))
	if it.Ranked() {
		badge = rankStyle.Render(fmt.Sprintf("%-3s", fmt.Sprintf("%s%d", symRank, it.RankValue())))
	}
	name := ui.Truncate(it.Name, max(12, m.Width()-28))
	line := fmt.Sprintf("%s %s %s", badge, name, categoryStyle.Render(it.CategoryOrDefault()))
	if it.Budget != "" {
		line += " " + accentStyle.Render(it.Budget)
	}
	if len(it.Photos) > 0 {
		line += " " + mutedStyle.Render(symPhoto)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}
