package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/photo"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

// itemFlags is the add/edit form.
type itemFlags struct {
	fs *flag.FlagSet

	name, budget, deadline, color, design string
	features, url, notes, category        string
	photos                                stringList
	clearPhotos                           bool
}

func (r *Runner) newItemFlags(cmd string, edit bool) *itemFlags {
	f := &itemFlags{fs: flag.NewFlagSet(cmd, flag.ContinueOnError)}
	f.fs.SetOutput(r.UI.Err)
	f.fs.StringVar(&f.name, "name", "", "item name")
	f.fs.StringVar(&f.budget, "budget", "", "budget, free text")
	f.fs.StringVar(&f.deadline, "deadline", "", "deadline as YYYY-MM-DD")
	f.fs.StringVar(&f.color, "color", "", "colour")
	f.fs.StringVar(&f.design, "design", "", "design")
	f.fs.StringVar(&f.features, "features", "", "features")
	f.fs.StringVar(&f.url, "url", "", "product link")
	f.fs.StringVar(&f.notes, "notes", "", "notes")
	f.fs.StringVar(&f.category, "category", "", "category (created when new)")
	f.fs.Var(&f.photos, "photo", "image file to attach (repeatable)")
	if edit {
		f.fs.BoolVar(&f.clearPhotos, "clear-photos", false, "remove existing photos first")
	}
	return f
}

// apply copies the flags the user actually passed onto it.
func (f *itemFlags) apply(it *model.Item) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			it.Name = strings.TrimSpace(f.name)
		case "budget":
			it.Budget = strings.TrimSpace(f.budget)
		case "deadline":
			d := strings.TrimSpace(f.deadline)
			if d != "" {
				if _, perr := time.Parse(time.DateOnly, d); perr != nil {
					err = fmt.Errorf("deadline %q: want YYYY-MM-DD", d)
					return
				}
			}
			it.Deadline = d
		case "color":
			it.Color = strings.TrimSpace(f.color)
		case "design":
			it.Design = strings.TrimSpace(f.design)
		case "features":
			it.Features = strings.TrimSpace(f.features)
		case "url":
			it.URL = strings.TrimSpace(f.url)
		case "notes":
			it.Notes = strings.TrimSpace(f.notes)
		case "category":
			it.Category = strings.TrimSpace(f.category)
			if it.Category == "" {
				it.Category = model.Uncategorized
			}
		case "clear-photos":
			if f.clearPhotos {
				it.Photos = nil
			}
		}
	})
	if err != nil {
		return err
	}
	for _, p := range f.photos {
		enc, perr := photo.EncodeFile(p)
		if perr != nil {
			return fmt.Errorf("photo %s: %w", p, perr)
		}
		it.Photos = append(it.Photos, enc)
	}
	return nil
}

// ensureCategory registers a category the item uses but the list lacks.
func (r *Runner) ensureCategory(ctx context.Context, name string) {
	if name == "" {
		return
	}
	for _, c := range r.Repo.Categories(ctx) {
		if c == name {
			return
		}
	}
	if err := r.Repo.AddCategory(ctx, name); err != nil {
		r.UI.Fail("category: " + err.Error())
		return
	}
	r.UI.OK("new category " + name)
}

func (r *Runner) doAdd(ctx context.Context, args []string) int {
	f := r.newItemFlags("add", false)
	if err := f.fs.Parse(args); err != nil {
		return ExitUsage
	}

	it := model.Item{Category: model.Uncategorized}
	if err := f.apply(&it); err != nil {
		r.UI.Fail("add: " + err.Error())
		return ExitUsage
	}
	if rest := strings.TrimSpace(strings.Join(f.fs.Args(), " ")); rest != "" {
		if it.Name != "" {
			r.UI.Fail("add: name given twice")
			return ExitUsage
		}
		it.Name = rest
	}
	if it.Name == "" {
		r.UI.Fail("usage: wishlist add [flags] <name...>")
		return ExitUsage
	}

	r.ensureCategory(ctx, it.Category)
	saved, err := r.Repo.Upsert(ctx, it)
	if err != nil {
		return r.failErr("add", err)
	}
	r.UI.OK(fmt.Sprintf("added %s (%s)", saved.Name, shortID(saved.ID)))
	return ExitOK
}

func (r *Runner) doEdit(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.UI.Fail("usage: wishlist edit <item> [flags]")
		return ExitUsage
	}
	it, ok := r.resolveOrFail(r.Repo.List(ctx), "edit", args[0])
	if !ok {
		return ExitUsage
	}

	f := r.newItemFlags("edit", true)
	if err := f.fs.Parse(args[1:]); err != nil {
		return ExitUsage
	}
	if f.fs.NArg() > 0 {
		r.UI.Fail("edit: unexpected argument " + f.fs.Arg(0))
		return ExitUsage
	}
	if f.fs.NFlag() == 0 {
		r.UI.Fail("edit: nothing to change")
		return ExitUsage
	}
	// the loaded item goes back whole, so createdAt, rank and photos survive
	if err := f.apply(&it); err != nil {
		r.UI.Fail("edit: " + err.Error())
		return ExitUsage
	}

	r.ensureCategory(ctx, it.Category)
	if _, err := r.Repo.Upsert(ctx, it); err != nil {
		return r.failErr("edit", err)
	}
	r.UI.OK("updated " + it.Name)
	return ExitOK
}

func (r *Runner) doRemove(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.UI.Fail("usage: wishlist rm <item...>")
		return ExitUsage
	}
	items := r.Repo.List(ctx)
	ids := make([]string, 0, len(args))
	for _, a := range args {
		it, ok := r.resolveOrFail(items, "rm", a)
		if !ok {
			return ExitUsage
		}
		ids = append(ids, it.ID)
	}

	var err error
	if len(ids) == 1 {
		err = r.Repo.Delete(ctx, ids[0])
	} else {
		err = r.Repo.DeleteMany(ctx, ids)
	}
	if err != nil {
		return r.failErr("rm", err)
	}
	r.UI.OK(fmt.Sprintf("removed %d", len(ids)))
	return ExitOK
}

func (r *Runner) doShow(ctx context.Context, args []string) int {
	if len(args) != 1 {
		r.UI.Fail("usage: wishlist show <item>")
		return ExitUsage
	}
	it, ok := r.resolveOrFail(r.Repo.List(ctx), "show", args[0])
	if !ok {
		return ExitUsage
	}
	r.UI.Panel(r.detailLines(it))
	return ExitOK
}

func (r *Runner) detailLines(it model.Item) []string {
	t := r.UI.Theme
	now := r.now()
	field := func(label, v string) string {
		if v == "" {
			v = r.UI.C(t.Muted, "-")
		}
		return fmt.Sprintf("%s %s", r.UI.C(t.Muted, fmt.Sprintf("%-9s", label)), v)
	}
	when := func(ts time.Time) string {
		if ts.IsZero() {
			return ""
		}
		return ts.Local().Format("2006-01-02 15:04") + " (" + humanize.RelTime(ts, now, "ago", "from now") + ")"
	}

	lines := []string{r.UI.C(t.Title, it.Name), ""}
	lines = append(lines,
		field("id", it.ID),
		field("category", r.UI.C(t.Category, it.CategoryOrDefault())),
		field("budget", it.Budget),
	)
	deadline := it.Deadline
	if d, err := time.ParseInLocation(time.DateOnly, it.Deadline, time.Local); err == nil {
		deadline += " (" + humanize.RelTime(d, now, "ago", "from now") + ")"
	}
	rank := ""
	if it.Ranked() {
		rank = r.UI.C(t.Rank, fmt.Sprintf("%s %d", t.SymRank, it.RankValue()))
	}
	lines = append(lines,
		field("deadline", deadline),
		field("color", it.Color),
		field("design", it.Design),
		field("features", it.Features),
		field("url", it.URL),
		field("notes", it.Notes),
		field("rank", rank),
		field("photos", photoSummary(it.Photos)),
		field("created", when(it.CreatedAt)),
		field("updated", when(it.UpdatedAt)),
	)
	return lines
}

func photoSummary(photos []string) string {
	if len(photos) == 0 {
		return ""
	}
	total := 0
	for _, p := range photos {
		total += photo.Size(p)
	}
	return fmt.Sprintf("%d (%s)", len(photos), humanize.Bytes(uint64(total)))
}

func (r *Runner) doPhoto(ctx context.Context, args []string) int {
	if len(args) < 2 || len(args) > 3 {
		r.UI.Fail("usage: wishlist photo <item> <n> [out]")
		return ExitUsage
	}
	it, ok := r.resolveOrFail(r.Repo.List(ctx), "photo", args[0])
	if !ok {
		return ExitUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(it.Photos) {
		r.UI.Fail(fmt.Sprintf("photo: %s has %d photos, got %q", it.Name, len(it.Photos), args[1]))
		return ExitUsage
	}
	mime, data, err := photo.Decode(it.Photos[n-1])
	if err != nil {
		r.UI.Fail("photo: " + err.Error())
		return ExitError
	}
	out := fmt.Sprintf("%s_%d%s", shortID(it.ID), n, photo.Extension(mime))
	if len(args) == 3 {
		out = args[2]
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		r.UI.Fail("photo: " + err.Error())
		return ExitError
	}
	r.UI.OK(fmt.Sprintf("wrote %s (%s)", out, humanize.Bytes(uint64(len(data)))))
	return ExitOK
}
