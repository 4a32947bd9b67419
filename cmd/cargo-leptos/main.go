package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ActuallyHappening/cargo-leptos/cmd/cargo-leptos/commands"
	"github.com/ActuallyHappening/cargo-leptos/internal/app"
	"github.com/ActuallyHappening/cargo-leptos/internal/command"
	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/git"
	"github.com/ActuallyHappening/cargo-leptos/internal/interrupt"
	"github.com/ActuallyHappening/cargo-leptos/internal/metrics"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

func main() {
	var cli commands.CLI
	parser, err := commands.New(&cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(commands.StripCargoSubcommand(os.Args[1:]))
	parser.FatalIfErrorf(err)

	var prom *metrics.PrometheusRecorder
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cli.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	proc := sysenv.OS{}
	global := &commands.Global{
		Ctx: context.Background(),
		Runner: &app.Runner{
			Process:  proc,
			Loader:   config.NewManifestLoader(proc, nil),
			Handlers: command.NewHandlers(command.ProcessExecutor{Process: proc}, rec),
			Creator:  command.NewCreator(git.NewClient(os.Stderr), proc),
			Notifier: interrupt.OSNotifier{},
			Recorder: rec,
		},
	}
	runErr := kctx.Run(global, &cli)

	if prom != nil {
		if err := prom.WriteTextfile(cli.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics", "path", cli.MetricsFile, "error", err)
		}
	}
	errors.NewCLIErrorAdapter(global.Invocation.Opts.Verbose > 0, slog.Default()).HandleError(runErr)
}
