package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/transfer"
)

func (r *Runner) doExport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(r.UI.Err)
	out := fs.String("o", "", "output path, - for stdout (default wishlist_backup_<date>.json)")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() > 0 {
		r.UI.Fail("export: unexpected argument " + fs.Arg(0))
		return ExitUsage
	}

	snap := r.Repo.Export(ctx)
	if *out == "-" {
		if err := transfer.Encode(r.UI.Out, snap); err != nil {
			r.UI.Fail("export: " + err.Error())
			return ExitError
		}
		return ExitOK
	}

	path := *out
	if path == "" {
		path = transfer.Filename(r.now())
	}
	if err := transfer.WriteFile(path, snap); err != nil {
		r.UI.Fail("export: " + err.Error())
		return ExitError
	}
	r.UI.OK(fmt.Sprintf("exported %d items, %d categories to %s", len(snap.Items), len(snap.Categories), path))
	return ExitOK
}

func (r *Runner) doImport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(r.UI.Err)
	yes := fs.Bool("yes", false, "confirm replacing existing data")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 1 {
		r.UI.Fail("usage: wishlist import [-yes] <file>")
		return ExitUsage
	}
	snap, err := transfer.ReadFile(fs.Arg(0))
	if err != nil {
		r.UI.Fail("import: " + err.Error())
		if errors.Is(err, transfer.ErrParse) {
			r.UI.Hint("the file must be a wishlist export")
			return ExitUsage
		}
		return ExitError
	}
	if snap.Items == nil && snap.Categories == nil {
		r.UI.OK("nothing to import, the file has no items or categories")
		return ExitOK
	}
	if lost := r.replaced(ctx, snap); lost != "" && !*yes {
		r.UI.Fail("import: this replaces " + lost)
		r.UI.Hint("export first, then run `wishlist import -yes " + fs.Arg(0) + "`")
		return ExitUsage
	}
	if err := r.Repo.Import(ctx, snap); err != nil {
		return r.failErr("import", err)
	}

	msg := "imported"
	if snap.Items != nil {
		msg += fmt.Sprintf(" %d items", len(snap.Items))
	}
	if snap.Categories != nil {
		msg += fmt.Sprintf(" %d categories", len(snap.Categories))
	}
	r.UI.OK(msg)
	return ExitOK
}

// replaced describes the stored data an import of snap would overwrite, or
// returns "" when nothing would be lost.
func (r *Runner) replaced(ctx context.Context, snap model.Snapshot) string {
	var parts []string
	if snap.Items != nil {
		if n := len(r.Repo.List(ctx)); n > 0 {
			parts = append(parts, fmt.Sprintf("%d items", n))
		}
	}
	if snap.Categories != nil {
		if n := len(r.Repo.Categories(ctx)) - len(model.BuiltinCategories); n > 0 {
			parts = append(parts, fmt.Sprintf("%d categories", n))
		}
	}
	return strings.Join(parts, " and ")
}

func (r *Runner) doClear(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(r.UI.Err)
	yes := fs.Bool("yes", false, "confirm deleting everything")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if !*yes {
		r.UI.Fail("clear: this deletes every item and category")
		r.UI.Hint("export first, then run `wishlist clear -yes`")
		return ExitUsage
	}
	if err := r.Repo.ClearAll(ctx); err != nil {
		return r.failErr("clear", err)
	}
	r.UI.OK("cleared")
	return ExitOK
}
