package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/wishlist/internal/app"
	"github.com/idilsaglam/wishlist/internal/cli"
	"github.com/idilsaglam/wishlist/internal/config"
	"github.com/idilsaglam/wishlist/internal/logging"
	"github.com/idilsaglam/wishlist/internal/tui"
	"github.com/idilsaglam/wishlist/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	group := flag.Bool("group", false, "group ls and search output by category")
	theme := flag.String("theme", "", "classic, neon or mono (default $WISHLIST_THEME)")
	noColor := flag.Bool("no-color", false, "disable colour")
	envFile := flag.String("env-file", "", "settings file (default .env)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return cli.ExitUsage
	}
	if *theme != "" {
		cfg.Theme = *theme
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return cli.ExitUsage
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitError
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	// Hand the remaining args to the CLI runner.
	r := &cli.Runner{
		Repo: a.Repo,
		UI:   ui.New(os.Stdout, os.Stderr, cfg.Theme, *noColor || cfg.NoColor),
		Opt:  cli.Options{Group: *group},
		TUI:  tui.Run,
	}
	code := r.Run(ctx, flag.Args())
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
