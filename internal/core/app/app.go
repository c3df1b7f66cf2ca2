// # internal/core/app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"minibun/internal/core/config"
	"minibun/internal/core/errors"
	"minibun/internal/core/pipeline"
	"minibun/internal/core/watcher"
	"minibun/internal/data/history"
	"minibun/internal/engine/lexer"
	"minibun/internal/engine/minify"
	"minibun/internal/engine/obfuscate"
	"minibun/internal/shared/observability"
	"minibun/internal/shared/util"
)

// App wires the scanner, pipeline, outputs and observability together.
type App struct {
	Config *config.Config

	steps         []pipeline.Step
	cache         *lexer.Cache
	store         *history.Store
	metricsServer *observability.Server
	watch         *watcher.Watcher
	limiter       *util.Limiter
	shutdownTrace func(context.Context) error
}

// BuildReport summarizes one pipeline run.
type BuildReport struct {
	BuildID     string
	Entry       string
	Steps       []string
	ModuleCount int
	KeptModules int
	BundleBytes int
	Cycles      []string
	Duration    time.Duration
	OutputPath  string
	Bundled     bool
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeUsageError, "config is required")
	}

	steps := make([]pipeline.Step, 0, len(cfg.Steps))
	for _, name := range cfg.Steps {
		step, err := pipeline.ParseStep(name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	cache, err := lexer.NewCache(cfg.Cache.TokenEntries)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create token cache")
	}

	a := &App{
		Config:  cfg,
		steps:   steps,
		cache:   cache,
		limiter: util.NewLimiter(cfg.Watch.MaxRebuilds, 1),
	}

	if cfg.DB.Enabled {
		store, err := history.Open(cfg.DB.Path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "open build history")
		}
		a.store = store
	}

	if cfg.Observability.MetricsEnabled {
		a.metricsServer = observability.NewServer(cfg.Observability.MetricsAddr)
		if err := a.metricsServer.Start(); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "start metrics server")
		}
	}

	shutdown, err := observability.InitTracing(ctx, cfg.Observability.TraceEndpoint)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		a.shutdownTrace = shutdown
	}

	return a, nil
}

// Build runs one full pipeline pass: scan, transform, write, record.
func (a *App) Build(ctx context.Context) (BuildReport, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Build")
	defer span.End()

	start := time.Now()
	report := BuildReport{
		BuildID: uuid.NewString(),
		Entry:   a.Config.Entry,
		Steps:   append([]string(nil), a.Config.Steps...),
	}

	modules, err := a.LoadModules()
	if err != nil {
		observability.BuildsTotal.WithLabelValues("error").Inc()
		return report, err
	}
	report.ModuleCount = modules.Len()
	observability.ModulesLoaded.Set(float64(modules.Len()))

	if !modules.Has(a.Config.Entry) {
		slog.Warn("entry module not found in module map", "entry", a.Config.Entry)
	}

	result, err := pipeline.Run(ctx, pipeline.Request{
		Steps:    a.steps,
		EntryID:  a.Config.Entry,
		Modules:  modules,
		Minify:   minify.Options{KeepComments: a.Config.Minify.KeepComments},
		Obfuscate: obfuscate.Options{
			EncodeStrings:     a.Config.Obfuscate.EncodeStringsEnabled(),
			RenameIdentifiers: a.Config.Obfuscate.RenameIdentifiers,
			FlattenIfs:        a.Config.Obfuscate.FlattenIfs,
		},
		Tokenize: a.cache.Tokenize,
	})
	if err != nil {
		observability.BuildsTotal.WithLabelValues("error").Inc()
		return report, err
	}

	report.KeptModules = result.KeptModules
	report.Cycles = result.Cycles
	report.Bundled = result.Bundled
	report.Duration = time.Since(start)

	for _, id := range result.Cycles {
		slog.Warn("import cycle detected", "module", id)
	}
	observability.CyclesDetected.Set(float64(len(result.Cycles)))

	if result.Bundled {
		report.BundleBytes = len(result.Output)
		report.OutputPath = a.Config.Output.Path
		observability.BundleBytes.Set(float64(len(result.Output)))

		if err := util.WriteStringWithDirs(a.Config.Output.Path, result.Output, 0o644); err != nil {
			observability.BuildsTotal.WithLabelValues("error").Inc()
			return report, errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "write bundle"),
				errors.CtxPath, a.Config.Output.Path)
		}
	}

	observability.BuildDuration.Observe(report.Duration.Seconds())
	observability.BuildsTotal.WithLabelValues("ok").Inc()

	a.recordSnapshot(report)

	slog.Info("build finished",
		"build_id", report.BuildID,
		"modules", report.ModuleCount,
		"kept", report.KeptModules,
		"bytes", report.BundleBytes,
		"cycles", len(report.Cycles),
		"duration", report.Duration,
	)
	return report, nil
}

func (a *App) recordSnapshot(report BuildReport) {
	if a.store == nil {
		return
	}
	err := a.store.SaveSnapshot(history.Snapshot{
		BuildID:         report.BuildID,
		Entry:           report.Entry,
		Steps:           report.Steps,
		ModuleCount:     report.ModuleCount,
		KeptModuleCount: report.KeptModules,
		BundleBytes:     report.BundleBytes,
		CycleCount:      len(report.Cycles),
		Duration:        report.Duration,
	})
	if err != nil {
		slog.Warn("failed to record build snapshot", "error", err)
	}
}

// History returns recorded snapshots since the given time.
func (a *App) History(since time.Time) ([]history.Snapshot, error) {
	if a.store == nil {
		return nil, errors.New(errors.CodeNotSupported, "build history is disabled")
	}
	return a.store.LoadSnapshots(since)
}

func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.watch != nil {
		if err := a.watch.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.shutdownTrace != nil {
		if err := a.shutdownTrace(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return fmt.Errorf("close app: %w", firstErr)
	}
	return nil
}
