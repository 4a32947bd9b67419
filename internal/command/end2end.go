package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

// EndToEndAll builds and serves each project and runs its end2end-cmd
// against it. Projects without an end2end-cmd are skipped.
func (h *Handlers) EndToEndAll(ctx context.Context, cfg *config.Config) error {
	for _, p := range cfg.Projects {
		if !p.HasEnd2End() {
			projectLogger(ctx, p).Warn("No end2end-cmd configured, skipping")
			continue
		}
		if err := h.endToEnd(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handlers) endToEnd(ctx context.Context, p *config.Project) error {
	argv, err := End2EndArgv(p)
	if err != nil {
		return err
	}
	if err := h.buildProject(ctx, p); err != nil {
		return err
	}

	srv := h.startServer(ctx, p)
	defer func() { _ = srv.stop() }()

	dir := filepath.Join(p.WorkingDir, p.End2EndDir)
	return h.step(ctx, p, "end2end", func(ctx context.Context) error {
		projectLogger(ctx, p).Info("Running end-to-end tests", logfields.Dir(dir))
		return h.exec.Run(ctx, Cmd{Program: argv[0], Args: argv[1:], Dir: dir, Env: p.Env()})
	})
}

// End2EndArgv splits the end2end-cmd of p into arguments with shell quoting
// rules. Variables expand against the project env, then the process env.
func End2EndArgv(p *config.Project) ([]string, error) {
	env := map[string]string{}
	for _, kv := range p.Env() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	argv, err := shell.Fields(p.End2EndCmd, func(name string) string {
		if v, ok := env[name]; ok {
			return v
		}
		return os.Getenv(name)
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "cannot parse end2end-cmd").
			WithContext("project", p.Name).
			WithContext("end2end_cmd", p.End2EndCmd).
			Fatal().
			Build()
	}
	if len(argv) == 0 {
		return nil, errors.ConfigError("end2end-cmd is empty").WithContext("project", p.Name).Build()
	}
	return argv, nil
}
