package command

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/metrics"
	"github.com/ActuallyHappening/cargo-leptos/internal/util/sets"
	"github.com/ActuallyHappening/cargo-leptos/internal/watch"
)

// Watch builds and serves p, then rebuilds on every change until ctx is
// done. Failed builds are reported and the loop keeps waiting for changes.
func (h *Handlers) Watch(ctx context.Context, p *config.Project) error {
	logger := projectLogger(ctx, p)
	w, err := watch.New(WatchRules(p), logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = w.Run(wctx) }()

	var srv *server
	if err := h.buildProject(ctx, p); err != nil {
		if ctx.Err() == nil {
			logger.Warn("Build failed, waiting for changes", logfields.Error(err))
		}
	} else {
		srv = h.startServer(ctx, p)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watch")
			_ = srv.stop()
			return nil
		case <-w.Notify():
			change := w.Take()
			if change == 0 {
				continue
			}
			logger.Info("Change detected, rebuilding", slog.String("change", change.String()))
			err := h.rebuild(ctx, p, change)
			h.recorder.IncRebuilds(metrics.ResultFor(err, ctx.Err() != nil))
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Rebuild failed", logfields.Error(err))
				}
				continue
			}
			if change.Has(watch.ChangeSource) || !srv.running() {
				_ = srv.stop()
				srv = h.startServer(ctx, p)
			}
		}
	}
}

// rebuild redoes only the parts of the build that change touches.
func (h *Handlers) rebuild(ctx context.Context, p *config.Project, change watch.Change) error {
	if change.Has(watch.ChangeSource) {
		return h.buildProject(ctx, p)
	}
	if change.Has(watch.ChangeStyle) {
		if err := h.step(ctx, p, "style", func(ctx context.Context) error { return buildStyle(ctx, h.exec, p) }); err != nil {
			return err
		}
	}
	if change.Has(watch.ChangeAssets) {
		return h.step(ctx, p, "assets", func(context.Context) error { return copyAssets(p) })
	}
	return nil
}

// WatchRules lists what to watch for p and how to classify changes.
func WatchRules(p *config.Project) watch.Rules {
	abs := func(rel string) string {
		if rel == "" || filepath.IsAbs(rel) {
			return rel
		}
		return filepath.Join(p.WorkingDir, rel)
	}
	var roots sets.Ordered[string]
	for _, pkg := range []config.Package{p.Lib, p.Bin} {
		roots.Add(filepath.Join(pkg.Dir, "src"), filepath.Join(pkg.Dir, config.ManifestName))
	}
	if p.StyleFile != "" {
		roots.Add(filepath.Dir(abs(p.StyleFile)))
	}
	roots.Add(abs(p.AssetsDir))
	extra := make([]string, 0, len(p.WatchExtra))
	for _, e := range p.WatchExtra {
		extra = append(extra, abs(e))
		roots.Add(abs(e))
	}
	return watch.Rules{
		Roots:     roots.Items(),
		StyleFile: abs(p.StyleFile),
		AssetsDir: abs(p.AssetsDir),
		Extra:     extra,
		Ignore:    []string{p.TargetDir(), p.SiteRootPath()},
	}
}
