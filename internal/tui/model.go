// Package tui is the interactive wishlist browser.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/repository"
)

type view int

const (
	viewAll view = iota
	viewRanking
)

// Model is the Bubble Tea model. Every change goes straight to the
// repository and the list is reloaded from it afterwards.
type Model struct {
	ctx  context.Context
	repo *repository.Repository
	now  func() time.Time

	list     list.Model
	view     view
	category string // "" shows every category

	adding   bool
	ti       textinput.Model
	inputErr string

	detail bool
	status string
	failed bool
	undo   *model.Item

	width, height int
}

var (
	keyView     = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "all/ranking"))
	keyCategory = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category"))
	keyRank     = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "rank"))
	keyUp       = key.NewBinding(key.WithKeys("K"), key.WithHelp("K/J", "move"))
	keyDown     = key.NewBinding(key.WithKeys("J"))
	keyClear    = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear ranking"))
	keyAdd      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	keyDelete   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	keyUndo     = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	keyDetail   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	keyQuit     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// New builds a Model over repo and loads the current items.
func New(ctx context.Context, repo *repository.Repository) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	// d and u are ours; keep paging on the arrows
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page"))
	l.KeyMap.Quit = keyQuit

	extra := []key.Binding{keyView, keyRank, keyUp, keyAdd, keyDelete, keyUndo}
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra }
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return append(extra, keyCategory, keyClear, keyDetail)
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What do you want?"
	ti.CharLimit = 200

	m := Model{ctx: ctx, repo: repo, now: time.Now, list: l, ti: ti, width: 80, height: 24}
	m.reload("")
	return m
}

// Run starts the browser on the terminal's alternate screen.
func Run(ctx context.Context, repo *repository.Repository) error {
	p := tea.NewProgram(New(ctx, repo), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.Item, true
}

// reload refills the list from the repository. The selection follows
// selectID when it is still visible and otherwise stays at the same row.
func (m *Model) reload(selectID string) tea.Cmd {
	items := m.repo.List(m.ctx)
	if m.view == viewRanking {
		items = repository.SortByRank(items)
	}

	rows := make([]list.Item, 0, len(items))
	pos := -1
	for _, it := range items {
		if m.category != "" && it.CategoryOrDefault() != m.category {
			continue
		}
		if it.ID == selectID {
			pos = len(rows)
		}
		rows = append(rows, listItem{it})
	}

	idx := m.list.Index()
	cmd := m.list.SetItems(rows)
	if pos < 0 {
		pos = min(idx, len(rows)-1)
	}
	m.list.Select(max(pos, 0))
	m.list.Title = m.title()
	return cmd
}

func (m Model) title() string {
	st := m.repo.Stats(m.ctx)
	name := "Wishlist"
	if m.view == viewRanking {
		name = "Ranking"
	}
	t := fmt.Sprintf("%s   %s %d/%d ranked", titleStyle.Render(name), rankStyle.Render(symRank), st.Ranked, st.Total)
	if m.category != "" {
		t += "  " + categoryStyle.Render("["+m.category+"]")
	}
	return t
}

func (m *Model) setStatus(msg string) {
	m.status, m.failed = msg, false
}

func (m *Model) setError(op string, err error) {
	m.status, m.failed = op+": "+err.Error(), true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		// the filter prompt gets every key while it is open
		if m.list.FilterState() == list.Filtering {
			break
		}
		var cmd tea.Cmd
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyView):
			m.view = 1 - m.view
			cmd = m.reload(m.selectedID())
		case key.Matches(msg, keyCategory):
			m.category = m.nextCategory()
			cmd = m.reload(m.selectedID())
		case key.Matches(msg, keyRank):
			cmd = m.toggleRank()
		case key.Matches(msg, keyUp):
			cmd = m.move(-1)
		case key.Matches(msg, keyDown):
			cmd = m.move(1)
		case key.Matches(msg, keyClear):
			if err := m.repo.UpdateRanks(m.ctx, nil); err != nil {
				m.setError("clear ranking", err)
				return m, nil
			}
			m.setStatus("ranking cleared")
			cmd = m.reload(m.selectedID())
		case key.Matches(msg, keyAdd):
			m.adding = true
			m.inputErr = ""
			m.ti.SetValue("")
			m.resize()
			cmd = m.ti.Focus()
		case key.Matches(msg, keyDelete):
			cmd = m.deleteSelected()
		case key.Matches(msg, keyUndo):
			cmd = m.undoDelete()
		case key.Matches(msg, keyDetail):
			m.detail = !m.detail
			m.resize()
		default:
			m.list, cmd = m.list.Update(msg)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			name := strings.TrimSpace(m.ti.Value())
			if name == "" {
				m.inputErr = "name cannot be empty"
				return m, nil
			}
			category := m.category
			if category == "" {
				category = model.Uncategorized
			}
			saved, err := m.repo.Upsert(m.ctx, model.Item{Name: name, Category: category})
			if err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.stopAdding()
			m.setStatus("added " + saved.Name)
			cmd := m.reload(saved.ID)
			return m, cmd
		case "esc":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) selectedID() string {
	it, _ := m.selected()
	return it.ID
}

// nextCategory cycles through the categories that have items, then back to all.
func (m Model) nextCategory() string {
	groups := m.repo.OrderedGroups(m.ctx, m.repo.ListByCategory(m.ctx))
	if m.category == "" {
		if len(groups) == 0 {
			return ""
		}
		return groups[0]
	}
	for i, c := range groups {
		if c == m.category && i+1 < len(groups) {
			return groups[i+1]
		}
	}
	return ""
}

func rankedIDs(items []model.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func (m *Model) toggleRank() tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	ids := rankedIDs(m.repo.ListByRank(m.ctx))
	msg := "ranked " + it.Name
	if it.Ranked() {
		kept := ids[:0]
		for _, id := range ids {
			if id != it.ID {
				kept = append(kept, id)
			}
		}
		ids = kept
		msg = "unranked " + it.Name
	} else {
		ids = append(ids, it.ID)
	}
	if err := m.repo.UpdateRanks(m.ctx, ids); err != nil {
		m.setError("rank", err)
		return nil
	}
	m.setStatus(msg)
	return m.reload(it.ID)
}

// move shifts the selected item by delta places in the ranking.
func (m *Model) move(delta int) tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	if !it.Ranked() {
		m.setStatus(it.Name + " is not ranked, press space first")
		return nil
	}
	ids := rankedIDs(m.repo.ListByRank(m.ctx))
	i := -1
	for j, id := range ids {
		if id == it.ID {
			i = j
		}
	}
	k := i + delta
	if i < 0 || k < 0 || k >= len(ids) {
		return nil
	}
	ids[i], ids[k] = ids[k], ids[i]
	if err := m.repo.UpdateRanks(m.ctx, ids); err != nil {
		m.setError("move", err)
		return nil
	}
	m.setStatus(fmt.Sprintf("%s is now %s%d", it.Name, symRank, k+1))
	return m.reload(it.ID)
}

func (m *Model) deleteSelected() tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}
	if err := m.repo.Delete(m.ctx, it.ID); err != nil {
		m.setError("delete", err)
		return nil
	}
	if it.Ranked() {
		// close the gap it left in the ranking
		if err := m.repo.UpdateRanks(m.ctx, rankedIDs(m.repo.ListByRank(m.ctx))); err != nil {
			m.setError("renumber ranking", err)
			return m.reload("")
		}
	}
	m.undo = &it
	m.setStatus("deleted " + it.Name + " (u to undo)")
	return m.reload("")
}

// undoDelete stores the last deleted item again. Ranks were renumbered
// when it left, so it comes back unranked.
func (m *Model) undoDelete() tea.Cmd {
	if m.undo == nil {
		m.setStatus("nothing to undo")
		return nil
	}
	it := *m.undo
	it.Rank = nil
	saved, err := m.repo.Upsert(m.ctx, it)
	if err != nil {
		m.setError("undo", err)
		return nil
	}
	m.undo = nil
	m.setStatus("restored " + saved.Name)
	return m.reload(saved.ID)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	if m.detail {
		h -= 8
	}
	m.list.SetSize(max(m.width-4, 20), max(h, 3))
}

func (m Model) View() string {
	parts := []string{m.list.View()}

	if m.detail {
		if it, ok := m.selected(); ok {
			parts = append(parts, m.detailView(it))
		}
	}
	if m.adding {
		label := "Add item"
		if m.category != "" {
			label += " to " + m.category
		}
		if m.inputErr != "" {
			label += "  " + errorStyle.Render(m.inputErr)
		}
		parts = append(parts, frameStyle.Render(label+"\n"+m.ti.View()))
	}
	if m.status != "" {
		style := successStyle
		if m.failed {
			style = errorStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) detailView(it model.Item) string {
	row := func(label, v string) string {
		if v == "" {
			return ""
		}
		return mutedStyle.Render(fmt.Sprintf("%-9s", label)) + " " + v
	}
	lines := []string{titleStyle.Render(it.Name)}
	for _, r := range []string{
		row("category", it.CategoryOrDefault()),
		row("budget", it.Budget),
		row("deadline", it.Deadline),
		row("color", it.Color),
		row("design", it.Design),
		row("features", it.Features),
		row("url", it.URL),
		row("notes", it.Notes),
	} {
		if r != "" {
			lines = append(lines, r)
		}
	}
	if n := len(it.Photos); n > 0 {
		lines = append(lines, row("photos", fmt.Sprintf("%d %s", n, symPhoto)))
	}
	if !it.CreatedAt.IsZero() {
		lines = append(lines, row("added", humanize.RelTime(it.CreatedAt, m.now(), "ago", "from now")))
	}
	return frameStyle.Render(strings.Join(lines, "\n"))
}
