package command

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

// buildProject compiles the front end, the style sheet, the assets and the
// server of p concurrently.
func (h *Handlers) buildProject(ctx context.Context, p *config.Project) error {
	projectLogger(ctx, p).Info("Building", logfields.Dir(p.WorkingDir), slog.String("profile", p.Profile()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.step(gctx, p, "front", func(ctx context.Context) error { return h.buildFront(ctx, p) }) })
	g.Go(func() error { return h.step(gctx, p, "style", func(ctx context.Context) error { return buildStyle(ctx, h.exec, p) }) })
	g.Go(func() error { return h.step(gctx, p, "assets", func(context.Context) error { return copyAssets(p) }) })
	g.Go(func() error { return h.step(gctx, p, "server", func(ctx context.Context) error { return h.buildServer(ctx, p) }) })
	if err := g.Wait(); err != nil {
		return err
	}
	if p.Release && p.Precompress {
		return h.step(ctx, p, "precompress", func(context.Context) error { return precompress(p.PkgPath()) })
	}
	return nil
}

// buildFront compiles the lib package to wasm and runs wasm-bindgen on it.
func (h *Handlers) buildFront(ctx context.Context, p *config.Project) error {
	err := h.exec.Run(ctx, Cmd{
		Program:   "cargo",
		Args:      cargoArgs("build", p, p.Lib, "--lib", "--target", config.WasmTarget),
		Dir:       p.WorkingDir,
		Env:       p.Env(),
		Subsystem: logfields.SubsystemWasm,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.PkgPath(), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot create site pkg dir").
			WithContext("path", p.PkgPath()).
			Build()
	}
	return h.exec.Run(ctx, Cmd{
		Program:   "wasm-bindgen",
		Args:      bindgenArgs(p),
		Dir:       p.WorkingDir,
		Subsystem: logfields.SubsystemWasm,
	})
}

// buildServer compiles the bin target.
func (h *Handlers) buildServer(ctx context.Context, p *config.Project) error {
	return h.exec.Run(ctx, Cmd{
		Program:   "cargo",
		Args:      cargoArgs("build", p, p.Bin, "--bin", p.BinTarget),
		Dir:       p.WorkingDir,
		Env:       p.Env(),
		Subsystem: logfields.SubsystemServer,
	})
}

func cargoArgs(sub string, p *config.Project, pkg config.Package, extra ...string) []string {
	args := []string{sub, "--package", pkg.Name}
	args = append(args, extra...)
	switch {
	case pkg.Profile != "":
		args = append(args, "--profile", pkg.Profile)
	case p.Release:
		args = append(args, "--release")
	}
	if !pkg.DefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if len(pkg.Features) > 0 {
		args = append(args, "--features", strings.Join(pkg.Features, ","))
	}
	return args
}

func bindgenArgs(p *config.Project) []string {
	args := []string{
		"--target", "web",
		"--out-dir", p.PkgPath(),
		"--out-name", p.OutputName,
		"--no-typescript",
	}
	if p.WasmDebug {
		args = append(args, "--keep-debug")
	}
	return append(args, p.WasmFile())
}

// buildStyle compiles sass or copies plain css to <pkg>/<output-name>.css.
func buildStyle(ctx context.Context, exec Executor, p *config.Project) error {
	if p.StyleFile == "" {
		return nil
	}
	src := filepath.Join(p.WorkingDir, p.StyleFile)
	dst := filepath.Join(p.PkgPath(), p.OutputName+".css")
	if err := os.MkdirAll(p.PkgPath(), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot create site pkg dir").
			WithContext("path", p.PkgPath()).
			Build()
	}
	switch filepath.Ext(src) {
	case ".scss", ".sass":
		args := []string{"--no-source-map"}
		if p.Release {
			args = append(args, "--style=compressed")
		}
		return exec.Run(ctx, Cmd{Program: "sass", Args: append(args, src, dst), Dir: p.WorkingDir})
	case ".css":
		return copyFile(src, dst)
	default:
		return errors.ConfigError("unsupported style-file extension").
			WithContext("project", p.Name).
			WithContext("style_file", p.StyleFile).
			Build()
	}
}

// copyAssets mirrors the assets dir into the site root.
func copyAssets(p *config.Project) error {
	if p.AssetsDir == "" {
		return nil
	}
	src := filepath.Join(p.WorkingDir, p.AssetsDir)
	if _, err := os.Stat(src); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "assets dir not found").
			WithContext("path", src).
			Build()
	}
	return CopyDir(src, p.SiteRootPath())
}
