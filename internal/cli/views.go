package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/repository"
	"github.com/idilsaglam/wishlist/internal/ui"
)

// entry pairs an item with its 1-based storage index, the number ls shows.
type entry struct {
	n  int
	it model.Item
}

func indexed(items []model.Item) []entry {
	out := make([]entry, len(items))
	for i, it := range items {
		out[i] = entry{n: i + 1, it: it}
	}
	return out
}

func (r *Runner) itemLine(e entry) string {
	t := r.UI.Theme
	it := e.it
	mark := r.UI.C(t.Muted, t.SymItem)
	if it.Ranked() {
		mark = r.UI.C(t.Rank, fmt.Sprintf("%s%d", t.SymRank, it.RankValue()))
	}
	line := fmt.Sprintf("%3d %s %s", e.n, mark, ui.Truncate(it.Name, 40))
	if it.Budget != "" {
		line += " " + r.UI.C(t.Accent, it.Budget)
	}
	if it.Deadline != "" {
		line += " " + r.UI.C(t.Muted, "by "+it.Deadline)
	}
	if len(it.Photos) > 0 {
		line += " " + r.UI.C(t.Muted, t.SymPhoto)
	}
	return line
}

func (r *Runner) header(title string, ranked, total int) string {
	return fmt.Sprintf("%s  %s %d/%d ranked", r.UI.C(r.UI.Theme.Title, title),
		ui.ProgressBar(ranked, total, 10), ranked, total)
}

// printEntries renders entries flat or grouped by category.
func (r *Runner) printEntries(ctx context.Context, title string, es []entry, group bool) {
	ranked := 0
	for _, e := range es {
		if e.it.Ranked() {
			ranked++
		}
	}
	lines := []string{r.header(title, ranked, len(es)), ""}
	if len(es) == 0 {
		lines = append(lines, r.UI.C(r.UI.Theme.Muted, "(nothing here)"))
		r.UI.Panel(lines)
		return
	}

	if !group {
		for _, e := range es {
			lines = append(lines, r.itemLine(e))
		}
		r.UI.Panel(lines)
		return
	}

	items := make([]model.Item, len(es))
	byID := make(map[string]entry, len(es))
	for i, e := range es {
		items[i] = e.it
		byID[e.it.ID] = e
	}
	grouped := repository.GroupByCategory(items)
	for i, c := range r.Repo.OrderedGroups(ctx, grouped) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, r.UI.C(r.UI.Theme.Category, fmt.Sprintf("%s (%d)", c, len(grouped[c]))))
		for _, it := range grouped[c] {
			lines = append(lines, r.itemLine(byID[it.ID]))
		}
	}
	r.UI.Panel(lines)
}

func (r *Runner) doList(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(r.UI.Err)
	group := fs.Bool("group", r.Opt.Group, "group by category")
	category := fs.String("category", "", "only this category")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() > 0 {
		r.UI.Fail("ls: unexpected argument " + fs.Arg(0))
		return ExitUsage
	}

	es := indexed(r.Repo.List(ctx))
	title := "Wishlist"
	if c := strings.TrimSpace(*category); c != "" {
		kept := es[:0]
		for _, e := range es {
			if e.it.CategoryOrDefault() == c {
				kept = append(kept, e)
			}
		}
		es = kept
		title += " / " + c
	}
	r.printEntries(ctx, title, es, *group)
	return ExitOK
}

func (r *Runner) doSearch(ctx context.Context, args []string) int {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		r.UI.Fail("usage: wishlist search <query...>")
		return ExitUsage
	}
	hits := make(map[string]bool)
	for _, it := range r.Repo.Search(ctx, q) {
		hits[it.ID] = true
	}
	var es []entry
	for _, e := range indexed(r.Repo.List(ctx)) {
		if hits[e.it.ID] {
			es = append(es, e)
		}
	}
	r.printEntries(ctx, fmt.Sprintf("Search %q", q), es, r.Opt.Group)
	return ExitOK
}

func (r *Runner) doRank(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(r.UI.Err)
	reset := fs.Bool("clear", false, "clear the ranking")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if *reset {
		if fs.NArg() > 0 {
			r.UI.Fail("rank: -clear takes no items")
			return ExitUsage
		}
		if err := r.Repo.UpdateRanks(ctx, nil); err != nil {
			return r.failErr("rank", err)
		}
		r.UI.OK("ranking cleared")
		return ExitOK
	}
	if fs.NArg() == 0 {
		r.UI.Fail("usage: wishlist rank <item...> | rank -clear")
		return ExitUsage
	}

	items := r.Repo.List(ctx)
	ids := make([]string, 0, fs.NArg())
	seen := make(map[string]bool)
	for _, a := range fs.Args() {
		it, ok := r.resolveOrFail(items, "rank", a)
		if !ok {
			return ExitUsage
		}
		if seen[it.ID] {
			r.UI.Fail("rank: " + it.Name + " listed twice")
			return ExitUsage
		}
		seen[it.ID] = true
		ids = append(ids, it.ID)
	}
	if err := r.Repo.UpdateRanks(ctx, ids); err != nil {
		return r.failErr("rank", err)
	}
	r.UI.OK(fmt.Sprintf("ranked %d of %d", len(ids), len(items)))
	return ExitOK
}

func (r *Runner) doRanked(ctx context.Context) int {
	items := r.Repo.List(ctx)
	pos := make(map[string]int, len(items))
	for i, it := range items {
		pos[it.ID] = i + 1
	}
	ranked := repository.SortByRank(items)

	lines := []string{r.header("Ranking", len(ranked), len(items)), ""}
	if len(ranked) == 0 {
		lines = append(lines, r.UI.C(r.UI.Theme.Muted, "(nothing ranked yet, try `wishlist rank`)"))
	}
	for _, it := range ranked {
		lines = append(lines, r.itemLine(entry{n: pos[it.ID], it: it}))
	}
	r.UI.Panel(lines)
	return ExitOK
}

func (r *Runner) doCategories(ctx context.Context) int {
	st := r.Repo.Stats(ctx)
	t := r.UI.Theme
	lines := []string{r.UI.C(t.Title, "Categories"), ""}
	for _, c := range r.Repo.Categories(ctx) {
		name := r.UI.C(t.Category, fmt.Sprintf("%-16s", c))
		lines = append(lines, fmt.Sprintf("%s %s", name, r.UI.C(t.Muted, fmt.Sprintf("%d", st.ByCategory[c]))))
	}
	r.UI.Panel(lines)
	return ExitOK
}

func (r *Runner) doAddCategory(ctx context.Context, args []string) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		r.UI.Fail("usage: wishlist cat-add <name...>")
		return ExitUsage
	}
	if err := r.Repo.AddCategory(ctx, name); err != nil {
		return r.failErr("cat-add", err)
	}
	r.UI.OK("category " + name)
	return ExitOK
}
