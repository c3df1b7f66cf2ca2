// # cmd/minibun/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"minibun/internal/core/app"
	"minibun/internal/core/config"
)

var (
	configPath = flag.String("config", "./minibun.toml", "Path to config file")
	entry      = flag.String("entry", "", "Entry module id, overrides config")
	out        = flag.String("out", "", "Bundle output path, overrides config")
	once       = flag.Bool("once", false, "Run a single build and exit")
	watchFlag  = flag.Bool("watch", false, "Rebuild on source changes")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("minibun v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./minibun.toml" {
			cfg, err = config.Load("./minibun.example.toml")
		}
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.SourceDirs = []string{flag.Arg(0)}
	}
	if *entry != "" {
		cfg.Entry = *entry
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *watchFlag {
		cfg.Watch.Enabled = true
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer application.Close(ctx)

	report, err := application.Build(ctx)
	if err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
	fmt.Print(renderSummary(report))

	if *once || !cfg.Watch.Enabled {
		return
	}

	// Watch mode
	err = application.StartWatcher(ctx, func(report app.BuildReport, err error) {
		if err != nil {
			slog.Error("rebuild failed", "error", err)
			return
		}
		fmt.Print(renderSummary(report))
	})
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
