package commands

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/version"
)

// Runner executes one parsed invocation.
type Runner interface {
	Run(ctx context.Context, inv config.Invocation) error
}

// Global carries the collaborators shared by every subcommand.
type Global struct {
	Ctx    context.Context
	Runner Runner

	// Invocation is the last invocation handed to Runner.
	Invocation config.Invocation
}

func (g *Global) run(inv config.Invocation) error {
	g.Invocation = inv
	ctx := g.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return g.Runner.Run(ctx, inv)
}

// CLI definition & global flags.
type CLI struct {
	ManifestPath string           `name:"manifest-path" placeholder:"PATH" help:"Path to Cargo.toml."`
	Log          []string         `name:"log" placeholder:"SUBSYSTEM" help:"Output logs from dependencies (wasm, server). May be repeated."`
	WorkingDir   string           `short:"C" name:"working-dir" placeholder:"DIR" help:"Run as if started in DIR."`
	MetricsFile  string           `name:"metrics-file" placeholder:"FILE" help:"Write Prometheus metrics to FILE on exit."`
	Version      kong.VersionFlag `name:"version" help:"Show version and exit"`

	New      NewCmd      `cmd:"" help:"Create a new project from a git template."`
	Build    BuildCmd    `cmd:"" help:"Build the server (feature ssr) and the client (wasm with feature hydrate)."`
	Test     TestCmd     `cmd:"" help:"Run the cargo tests for app, client and server."`
	EndToEnd EndToEndCmd `cmd:"" name:"end-to-end" help:"Start the server and run the end-to-end tests."`
	Serve    ServeCmd    `cmd:"" help:"Build and serve."`
	Watch    WatchCmd    `cmd:"" help:"Serve and automatically rebuild when files change."`
}

// New returns the kong parser for cli.
func New(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("cargo-leptos"),
		kong.Description("Build tool for Leptos."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	}
	return kong.New(cli, append(base, options...)...)
}

// StripCargoSubcommand drops the "leptos" argument cargo inserts when the
// binary is run as `cargo leptos`.
func StripCargoSubcommand(args []string) []string {
	if len(args) > 0 && args[0] == "leptos" {
		return args[1:]
	}
	return args
}

func (c *CLI) invocation(kind config.CommandKind, opts config.Opts, binArgs []string) config.Invocation {
	return config.Invocation{
		Command:      kind,
		Opts:         opts,
		Log:          c.Log,
		ManifestPath: c.ManifestPath,
		WorkingDir:   c.WorkingDir,
		BinArgs:      binArgs,
	}
}
