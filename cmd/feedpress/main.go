package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedpress/internal/command"
	"feedpress/internal/config"
	"feedpress/internal/fetch"
	"feedpress/internal/registry"
	"feedpress/internal/render"
	feedserver "feedpress/internal/server/feed"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "feedpress",
		Usage: "fetch, merge, and query RSS/Atom feeds from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to TOML config file"},
			&cli.StringFlag{Name: "feeds", Usage: "feed-list file (.opml/.xml or .json), overrides config"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, or error"},
		},
		Commands: []*cli.Command{
			askCmd(),
			listCmd(),
			serveCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type engine struct {
	cfg          *config.Config
	store        *registry.Store
	orchestrator *fetch.Orchestrator
	interp       *command.Interpreter
}

func newEngine(c *cli.Context) (*engine, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if feeds := c.String("feeds"); feeds != "" {
		cfg.Feeds.Path = feeds
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	setupLogging(cfg.Log.Level)

	store := registry.NewStore()
	store.LoadOrDefault(cfg.Feeds.Path)

	orchestrator := fetch.NewOrchestrator(store, fetch.NewGofeedFetcher())
	interp := command.NewInterpreter(store, orchestrator, render.NewTextRenderer())

	return &engine{cfg: cfg, store: store, orchestrator: orchestrator, interp: interp}, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func askCmd() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "interpret one command and print the response",
		ArgsUsage: "<command> [param]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("usage: feedpress ask <command> [param]", 1)
			}
			eng, err := newEngine(c)
			if err != nil {
				return err
			}
			fmt.Println(eng.interp.Handle(c.Context, c.Args().Get(0), c.Args().Get(1)))
			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "print all registered feeds grouped by category",
		Action: func(c *cli.Context) error {
			eng, err := newEngine(c)
			if err != nil {
				return err
			}
			fmt.Println(eng.interp.Handle(c.Context, "list", ""))
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the merged stream as RSS/Atom/JSON over HTTP",
		Action: func(c *cli.Context) error {
			eng, err := newEngine(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			server := feedserver.New("feedpress", feedserver.Config{
				Port:     eng.cfg.Server.Port,
				MaxItems: eng.cfg.Server.MaxItems,
				CacheTTL: eng.cfg.ServerCacheTTL(),
			}, eng.store, eng.orchestrator)

			if err := server.Start(ctx); err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigChan:
				slog.Info("received signal, shutting down", "signal", sig.String())
			case <-ctx.Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
