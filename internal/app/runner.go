// Package app ties the orchestration steps together: configuration
// resolution, PATH preparation, the interrupt monitor and command dispatch.
package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/dispatch"
	"github.com/ActuallyHappening/cargo-leptos/internal/envpath"
	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/interrupt"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/logging"
	"github.com/ActuallyHappening/cargo-leptos/internal/metrics"
	"github.com/ActuallyHappening/cargo-leptos/internal/pathutil"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

// Loader turns options and paths into a resolved configuration.
type Loader interface {
	Load(opts config.Opts, cwd, manifestPath string, watch bool, binArgs []string) (*config.Config, error)
}

// Creator generates a new project.
type Creator interface {
	Create(ctx context.Context, opts config.NewOpts) error
}

// LogSetup initializes logging for the requested verbosity and filter.
type LogSetup func(verbose int, filter []string) *slog.Logger

// Runner executes one invocation. Fields left nil fall back to the real
// process, signals and a no-op recorder.
type Runner struct {
	Process  sysenv.Process
	Loader   Loader
	Handlers dispatch.Handlers
	Creator  Creator
	LogSetup LogSetup
	Token    *interrupt.Token
	Notifier interrupt.Notifier
	Recorder metrics.Recorder
}

// Run executes inv. The new command bypasses resolution entirely; every other
// command is resolved, the environment prepared, the interrupt monitor started
// and the command dispatched, in that order.
func (r *Runner) Run(ctx context.Context, inv config.Invocation) error {
	if inv.Command == config.CommandNew {
		if r.Creator == nil {
			return errors.InternalError("no project creator configured").Build()
		}
		return r.Creator.Create(ctx, inv.New)
	}
	cmd, ok := dispatch.FromKind(inv.Command)
	if !ok {
		return errors.InternalError("unknown command").WithContext("command", inv.Command.String()).Build()
	}
	if r.Loader == nil || r.Handlers == nil {
		return errors.InternalError("runner is missing a loader or handlers").Build()
	}

	cfg, logger, err := r.Resolve(inv)
	if err != nil {
		return err
	}
	envpath.Augment(r.process(), cfg.WorkingDir, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	token := r.token()
	interrupt.StartMonitor(ctx, token, r.Notifier, logger, r.Recorder)

	hctx, hcancel := token.Context(logging.WithLogger(ctx, logger))
	defer hcancel()
	return dispatch.NewDispatcher(r.Handlers, r.Recorder, logger).Dispatch(hctx, cmd, cfg)
}

// Resolve builds the configuration for inv and changes the process working
// directory to it. It returns the logger tagged for this run.
func (r *Runner) Resolve(inv config.Invocation) (*config.Config, *slog.Logger, error) {
	proc := r.process()
	logger := r.setupLogging(inv).With(
		logfields.RunID(uuid.NewString()),
		logfields.Command(inv.Command.String()),
	)

	raw := inv.ManifestPath
	if raw == "" {
		raw = config.ManifestName
	}
	manifest, err := pathutil.Normalize(raw, proc.UserHomeDir)
	if err != nil {
		return nil, logger, errors.WrapError(err, errors.CategoryConfig, "cannot resolve manifest path").
			WithContext("manifest_path", raw).
			Fatal().
			Build()
	}

	cwd, err := r.workingDir(inv)
	if err != nil {
		return nil, logger, err
	}

	watch := inv.Command.IsWatch()
	cfg, err := r.Loader.Load(inv.Opts, cwd, manifest, watch, inv.BinArgs)
	if err != nil {
		if !errors.HasCategory(err, errors.CategoryConfig) {
			err = errors.WrapError(err, errors.CategoryConfig, "cannot load configuration").
				WithContext("manifest_path", manifest).
				Fatal().
				Build()
		}
		return nil, logger, err
	}

	if err := proc.Chdir(cfg.WorkingDir); err != nil {
		return nil, logger, errors.WrapError(err, errors.CategoryIO, "cannot change working directory").
			WithContext("dir", cfg.WorkingDir).
			Fatal().
			Build()
	}
	logger.Debug("Path working dir", logfields.Dir(cfg.WorkingDir))
	return cfg, logger, nil
}

// workingDir returns the normalized process directory with the -C override
// applied on top.
func (r *Runner) workingDir(inv config.Invocation) (string, error) {
	proc := r.process()
	wd, err := proc.Getwd()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryIO, "cannot determine current directory").
			Fatal().
			Build()
	}
	wd = pathutil.Clean(wd)
	if inv.WorkingDir == "" {
		return wd, nil
	}
	override, err := pathutil.Normalize(inv.WorkingDir, proc.UserHomeDir)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "cannot resolve working directory").
			WithContext("dir", inv.WorkingDir).
			Fatal().
			Build()
	}
	return pathutil.Absolute(override, wd), nil
}

func (r *Runner) setupLogging(inv config.Invocation) *slog.Logger {
	if r.LogSetup == nil {
		return logging.Setup(inv.Opts.Verbose, inv.Log)
	}
	return r.LogSetup(inv.Opts.Verbose, inv.Log)
}

func (r *Runner) process() sysenv.Process {
	if r.Process == nil {
		return sysenv.OS{}
	}
	return r.Process
}

func (r *Runner) token() *interrupt.Token {
	if r.Token == nil {
		r.Token = interrupt.NewToken()
	}
	return r.Token
}
