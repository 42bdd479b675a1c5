package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/repository"
	"github.com/idilsaglam/wishlist/internal/store/memory"
)

func newTestModel(t *testing.T, names ...string) (Model, *repository.Repository) {
	t.Helper()
	repo := repository.New(memory.New(), repository.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()
	for _, n := range names {
		cat := "books"
		if n == "Headphones" {
			cat = "electronics"
		}
		_, err := repo.Upsert(ctx, model.Item{Name: n, Category: cat})
		require.NoError(t, err)
	}
	m := New(ctx, repo)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, repo
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(t, m, msg)
	}
	return m
}

func visible(m Model) []string {
	var out []string
	for _, li := range m.list.Items() {
		out = append(out, li.(listItem).Name)
	}
	return out
}

func rankedNames(repo *repository.Repository) []string {
	var out []string
	for _, it := range repo.ListByRank(context.Background()) {
		out = append(out, it.Name)
	}
	return out
}

func TestNew_LoadsItems(t *testing.T) {
	m, _ := newTestModel(t, "Dune", "Headphones")
	assert.Equal(t, []string{"Dune", "Headphones"}, visible(m))
	assert.Contains(t, m.list.Title, "0/2 ranked")
}

func TestAdd(t *testing.T) {
	m, repo := newTestModel(t, "Dune")
	m = press(t, m, "a", "Kite", "enter")
	assert.False(t, m.adding)
	assert.Contains(t, m.status, "added Kite")

	items := repo.List(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, "Kite", items[1].Name)
	assert.Equal(t, model.Uncategorized, items[1].Category)
	it, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Kite", it.Name)
}

func TestAdd_EmptyNameAndCancel(t *testing.T) {
	m, repo := newTestModel(t)
	m = press(t, m, "a", "enter")
	assert.True(t, m.adding)
	assert.Equal(t, "name cannot be empty", m.inputErr)

	m = press(t, m, "esc")
	assert.False(t, m.adding)
	assert.Empty(t, repo.List(context.Background()))
}

func TestAdd_UsesCategoryFilter(t *testing.T) {
	m, repo := newTestModel(t, "Dune", "Headphones")
	m = press(t, m, "c")
	require.Equal(t, "electronics", m.category)
	m = press(t, m, "a", "Camera", "enter")

	items := repo.List(context.Background())
	assert.Equal(t, "electronics", items[len(items)-1].Category)
	assert.Equal(t, []string{"Headphones", "Camera"}, visible(m))
}

func TestCategoryCycle(t *testing.T) {
	m, _ := newTestModel(t, "Dune", "Headphones", "Emma")
	m = press(t, m, "c")
	assert.Equal(t, []string{"Headphones"}, visible(m))
	m = press(t, m, "c")
	assert.Equal(t, []string{"Dune", "Emma"}, visible(m))
	m = press(t, m, "c")
	assert.Equal(t, "", m.category)
	assert.Len(t, visible(m), 3)
}

func TestRankToggleMoveAndClear(t *testing.T) {
	m, repo := newTestModel(t, "A", "B", "C")

	m = press(t, m, "space", "down", "down", "space")
	assert.Equal(t, []string{"A", "C"}, rankedNames(repo))

	m = press(t, m, "tab")
	assert.Equal(t, viewRanking, m.view)
	assert.Equal(t, []string{"A", "C"}, visible(m))

	// C stays selected across the view switch; move it to the top
	it, _ := m.selected()
	require.Equal(t, "C", it.Name)
	m = press(t, m, "K")
	assert.Equal(t, []string{"C", "A"}, rankedNames(repo))
	assert.Equal(t, []string{"C", "A"}, visible(m))
	it, _ = m.selected()
	assert.Equal(t, "C", it.Name)

	m = press(t, m, "J")
	assert.Equal(t, []string{"A", "C"}, rankedNames(repo))

	m = press(t, m, "space")
	assert.Equal(t, []string{"A"}, rankedNames(repo))
	assert.Equal(t, []string{"A"}, visible(m))

	m = press(t, m, "x")
	assert.Empty(t, rankedNames(repo))
	assert.Empty(t, visible(m))
	assert.Equal(t, "ranking cleared", m.status)
}

func TestMove_UnrankedItem(t *testing.T) {
	m, repo := newTestModel(t, "A", "B")
	m = press(t, m, "J")
	assert.Contains(t, m.status, "not ranked")
	assert.Empty(t, rankedNames(repo))
}

func TestDeleteAndUndo(t *testing.T) {
	m, repo := newTestModel(t, "A", "B", "C")
	m = press(t, m, "space", "down", "d")
	assert.Equal(t, []string{"A", "C"}, visible(m))
	assert.Len(t, repo.List(context.Background()), 2)
	assert.Contains(t, m.status, "deleted B")

	m = press(t, m, "u")
	assert.Len(t, repo.List(context.Background()), 3)
	assert.Contains(t, m.status, "restored B")
	assert.Equal(t, []string{"A"}, rankedNames(repo))

	m = press(t, m, "u")
	assert.Equal(t, "nothing to undo", m.status)
}

func TestDelete_RankedItemRenumbers(t *testing.T) {
	m, repo := newTestModel(t, "A", "B")
	m = press(t, m, "space", "down", "space", "tab")
	require.Equal(t, []string{"A", "B"}, rankedNames(repo))

	m = press(t, m, "K", "d")
	items := repo.ListByRank(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].RankValue())
}

func TestDetailPane(t *testing.T) {
	m, repo := newTestModel(t)
	_, err := repo.Upsert(context.Background(), model.Item{Name: "Kite", Category: "toys", Budget: "25 EUR"})
	require.NoError(t, err)
	m = press(t, m, "x")
	m.now = func() time.Time { return time.Now().Add(3 * time.Hour) }

	assert.NotContains(t, m.View(), "budget")
	m = press(t, m, "enter")
	view := m.View()
	assert.Contains(t, view, "budget")
	assert.Contains(t, view, "hours ago")
	m = press(t, m, "enter")
	assert.False(t, m.detail)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, "A")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFilterTakesKeys(t *testing.T) {
	m, repo := newTestModel(t, "Dune", "Headphones")
	m = press(t, m, "/")
	require.Equal(t, list.Filtering, m.list.FilterState())

	m = press(t, m, "d", "q")
	assert.Equal(t, "dq", m.list.FilterValue())
	assert.Len(t, repo.List(context.Background()), 2)
}
