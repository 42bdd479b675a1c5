package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/repository"
	"github.com/idilsaglam/wishlist/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // ls/search grouped by category
}

// Runner dispatches subcommands against a repository.
type Runner struct {
	Repo *repository.Repository
	UI   *ui.Printer
	Opt  Options
	Now  func() time.Time

	// TUI starts the interactive browser; nil disables the tui subcommand.
	TUI func(ctx context.Context, repo *repository.Repository) error
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return ExitOK
	case "ls", "list":
		return r.doList(ctx, a)
	case "show":
		return r.doShow(ctx, a)
	case "add":
		return r.doAdd(ctx, a)
	case "edit":
		return r.doEdit(ctx, a)
	case "rm":
		return r.doRemove(ctx, a)
	case "search":
		return r.doSearch(ctx, a)
	case "rank":
		return r.doRank(ctx, a)
	case "ranked":
		return r.doRanked(ctx)
	case "cats":
		return r.doCategories(ctx)
	case "cat-add":
		return r.doAddCategory(ctx, a)
	case "export":
		return r.doExport(ctx, a)
	case "import":
		return r.doImport(ctx, a)
	case "clear":
		return r.doClear(ctx, a)
	case "photo":
		return r.doPhoto(ctx, a)
	case "tui":
		if r.TUI == nil {
			r.UI.Fail("tui: not available")
			return ExitError
		}
		if err := r.TUI(ctx, r.Repo); err != nil {
			r.UI.Fail("tui: " + err.Error())
			return ExitError
		}
		return ExitOK
	}

	r.UI.Fail("unknown subcommand: " + cmd)
	r.PrintHelp()
	return ExitUsage
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.UI.Out, `wishlist - keep track of the things you want

Usage:
  wishlist [-group] [-theme name] [-no-color] <subcommand> [args]

Subcommands:
  ls [-group] [-category C]        List items (flat, or grouped by category)
  show <item>                      Show every field of an item
  add [flags] [name...]            Add an item (flags go before the name)
  edit <item> [flags]              Change only the given fields of an item
  rm <item...>                     Remove one or more items
  search <query...>                Find items by name, category, features, design, notes
  rank <item...>                   Rank items 1..n in the given order
  rank -clear                      Clear the ranking
  ranked                           List ranked items
  cats                             List categories
  cat-add <name...>                Add a category
  export [-o path]                 Write a JSON backup (-o - for stdout)
  import [-yes] <file>             Replace data with a JSON backup (-yes when data exists)
  clear -yes                       Delete every item and category
  photo <item> <n> [out]           Save the n-th photo of an item to a file
  tui                              Interactive browser

An <item> is an id, a unique id prefix, or the 1-based index shown by ls.

Item flags:
  -name -budget -deadline YYYY-MM-DD -color -design -features -url -notes
  -category -photo path (repeatable)   edit also takes -clear-photos

Examples:
  wishlist add -category electronics -budget "30000" Noise cancelling headphones
  wishlist ls -group
  wishlist rank 3 1
  wishlist export -o backup.json
`)
}

// resolve finds an item by exact id, 1-based storage index, or unique id prefix.
func resolve(items []model.Item, arg string) (model.Item, error) {
	for _, it := range items {
		if it.ID == arg {
			return it, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(items) {
			return model.Item{}, fmt.Errorf("index out of range: have %d, got %d", len(items), n)
		}
		return items[n-1], nil
	}
	var match []model.Item
	for _, it := range items {
		if strings.HasPrefix(it.ID, arg) || strings.HasPrefix(shortID(it.ID), arg) {
			match = append(match, it)
		}
	}
	switch len(match) {
	case 0:
		return model.Item{}, fmt.Errorf("no item %q", arg)
	case 1:
		return match[0], nil
	}
	return model.Item{}, fmt.Errorf("%q matches %d items", arg, len(match))
}

func (r *Runner) resolveOrFail(items []model.Item, cmd, arg string) (model.Item, bool) {
	it, err := resolve(items, arg)
	if err != nil {
		r.UI.Fail(cmd + ": " + err.Error())
		r.UI.Hint("run `wishlist ls` to see valid indexes")
		return model.Item{}, false
	}
	return it, true
}

// shortID drops the item_ prefix and keeps eight characters.
func shortID(id string) string {
	id = strings.TrimPrefix(id, "item_")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// failErr reports err and maps it to an exit code.
func (r *Runner) failErr(cmd string, err error) int {
	r.UI.Fail(cmd + ": " + err.Error())
	if errors.Is(err, repository.ErrValidation) {
		return ExitUsage
	}
	return ExitError
}
