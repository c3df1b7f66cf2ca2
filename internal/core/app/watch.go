// # internal/core/app/watch.go
package app

import (
	"context"
	"log/slog"

	"minibun/internal/core/watcher"
	"minibun/internal/shared/observability"
)

// StartWatcher rebuilds whenever source files change. A rate limiter bounds
// rebuild frequency during event storms; delayed batches still run, they just
// wait for a token.
func (a *App) StartWatcher(ctx context.Context, onBuild func(BuildReport, error)) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Extensions,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(paths []string) {
			slog.Debug("source change detected", "files", len(paths))

			if !a.limiter.Allow(1) {
				observability.RebuildsThrottledTotal.Inc()
				if err := a.limiter.Wait(ctx, 1); err != nil {
					return
				}
			}

			report, err := a.Build(ctx)
			if onBuild != nil {
				onBuild(report, err)
			} else if err != nil {
				slog.Error("rebuild failed", "error", err)
			}
		},
	)
	if err != nil {
		return err
	}

	if err := w.Watch(a.Config.SourceDirs); err != nil {
		w.Close()
		return err
	}

	a.watch = w
	slog.Info("watching for changes", "dirs", a.Config.SourceDirs, "debounce", a.Config.Watch.Debounce)
	return nil
}
