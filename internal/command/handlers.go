package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/logging"
	"github.com/ActuallyHappening/cargo-leptos/internal/metrics"
)

// Handlers runs cargo, wasm-bindgen, sass and the compiled server through an
// Executor.
type Handlers struct {
	exec     Executor
	recorder metrics.Recorder
}

// NewHandlers returns Handlers using exec for every external program.
func NewHandlers(exec Executor, rec metrics.Recorder) *Handlers {
	if exec == nil {
		exec = ProcessExecutor{}
	}
	return &Handlers{exec: exec, recorder: metrics.OrNoop(rec)}
}

// BuildAll builds every project in cfg, one after the other.
func (h *Handlers) BuildAll(ctx context.Context, cfg *config.Config) error {
	for _, p := range cfg.Projects {
		if err := h.buildProject(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// TestAll runs cargo test for the lib package of every project, and for the
// bin package when it differs.
func (h *Handlers) TestAll(ctx context.Context, cfg *config.Config) error {
	for _, p := range cfg.Projects {
		if err := h.step(ctx, p, "test", func(ctx context.Context) error { return h.testProject(ctx, p) }); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handlers) testProject(ctx context.Context, p *config.Project) error {
	if err := h.exec.Run(ctx, Cmd{
		Program: "cargo",
		Args:    cargoArgs("test", p, p.Lib),
		Dir:     p.WorkingDir,
		Env:     p.Env(),
	}); err != nil {
		return err
	}
	if p.Bin.Name == p.Lib.Name {
		return nil
	}
	return h.exec.Run(ctx, Cmd{
		Program: "cargo",
		Args:    cargoArgs("test", p, p.Bin),
		Dir:     p.WorkingDir,
		Env:     p.Env(),
	})
}

// step times fn and records its result under name.
func (h *Handlers) step(ctx context.Context, p *config.Project, name string, fn func(context.Context) error) error {
	logger := logging.FromContext(ctx)
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	h.recorder.ObserveStepDuration(name, elapsed)
	h.recorder.IncStepResult(name, metrics.ResultFor(err, ctx.Err() != nil))
	attrs := []any{logfields.Project(p.Name), logfields.Step(name), logfields.DurationMS(float64(elapsed.Milliseconds()))}
	if err != nil {
		logger.Debug("Step failed", append(attrs, logfields.Error(err))...)
	} else {
		logger.Debug("Step finished", attrs...)
	}
	return err
}

func projectLogger(ctx context.Context, p *config.Project) *slog.Logger {
	return logging.FromContext(ctx).With(logfields.Project(p.Name))
}
