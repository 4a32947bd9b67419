// Package dispatch routes a resolved configuration to exactly one
// long-running command handler.
//
// Command has no variant for project generation: new is handled before any
// configuration exists, so FromKind refuses it and the routing table below
// cannot be reached with it.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/metrics"
)

// Handlers are the long-running operations a command resolves to.
type Handlers interface {
	BuildAll(ctx context.Context, cfg *config.Config) error
	Serve(ctx context.Context, proj *config.Project) error
	TestAll(ctx context.Context, cfg *config.Config) error
	EndToEndAll(ctx context.Context, cfg *config.Config) error
	Watch(ctx context.Context, proj *config.Project) error
}

// Command is a post-resolution command. Its implementations are the
// package-level values below.
type Command interface {
	Kind() config.CommandKind
	run(ctx context.Context, h Handlers, cfg *config.Config) error
}

type buildCommand struct{}
type serveCommand struct{}
type testCommand struct{}
type endToEndCommand struct{}
type watchCommand struct{}

var (
	Build    Command = buildCommand{}
	Serve    Command = serveCommand{}
	Test     Command = testCommand{}
	EndToEnd Command = endToEndCommand{}
	Watch    Command = watchCommand{}
)

func (buildCommand) Kind() config.CommandKind    { return config.CommandBuild }
func (serveCommand) Kind() config.CommandKind    { return config.CommandServe }
func (testCommand) Kind() config.CommandKind     { return config.CommandTest }
func (endToEndCommand) Kind() config.CommandKind { return config.CommandEndToEnd }
func (watchCommand) Kind() config.CommandKind    { return config.CommandWatch }

func (buildCommand) run(ctx context.Context, h Handlers, cfg *config.Config) error {
	return h.BuildAll(ctx, cfg)
}

func (serveCommand) run(ctx context.Context, h Handlers, cfg *config.Config) error {
	proj, err := cfg.CurrentProject()
	if err != nil {
		return err
	}
	return h.Serve(ctx, proj)
}

func (testCommand) run(ctx context.Context, h Handlers, cfg *config.Config) error {
	return h.TestAll(ctx, cfg)
}

func (endToEndCommand) run(ctx context.Context, h Handlers, cfg *config.Config) error {
	return h.EndToEndAll(ctx, cfg)
}

func (watchCommand) run(ctx context.Context, h Handlers, cfg *config.Config) error {
	proj, err := cfg.CurrentProject()
	if err != nil {
		return err
	}
	return h.Watch(ctx, proj)
}

// FromKind returns the command for kind. It reports false for CommandNew and
// unknown kinds.
func FromKind(kind config.CommandKind) (Command, bool) {
	switch kind {
	case config.CommandBuild:
		return Build, true
	case config.CommandServe:
		return Serve, true
	case config.CommandTest:
		return Test, true
	case config.CommandEndToEnd:
		return EndToEnd, true
	case config.CommandWatch:
		return Watch, true
	default:
		return nil, false
	}
}

// Dispatcher invokes the handler for a command and records its outcome.
type Dispatcher struct {
	handlers Handlers
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewDispatcher returns a Dispatcher routing to h.
func NewDispatcher(h Handlers, rec metrics.Recorder, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{handlers: h, recorder: metrics.OrNoop(rec), logger: logger}
}

// Dispatch runs cmd against cfg and waits for it. Handler errors are
// returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command, cfg *config.Config) error {
	if cmd == nil || cfg == nil {
		return errors.InternalError("dispatch without command or configuration").Build()
	}
	name := cmd.Kind().String()
	d.logger.Debug("Dispatching command", logfields.Command(name))

	start := time.Now()
	err := cmd.run(ctx, d.handlers, cfg)
	d.recorder.ObserveCommandDuration(name, time.Since(start))
	d.recorder.IncCommandOutcome(name, metrics.ResultFor(err, ctx.Err() != nil))
	return err
}
