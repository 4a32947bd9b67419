package commands

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
)

type recordingRunner struct {
	invs []config.Invocation
	err  error
}

func (r *recordingRunner) Run(_ context.Context, inv config.Invocation) error {
	r.invs = append(r.invs, inv)
	return r.err
}

func newParser(t *testing.T, cli *CLI, out *bytes.Buffer) *kong.Kong {
	t.Helper()
	parser, err := New(cli, kong.Writers(out, out), kong.Exit(func(int) {}))
	require.NoError(t, err)
	return parser
}

func run(t *testing.T, args ...string) (config.Invocation, error) {
	t.Helper()
	var cli CLI
	var out bytes.Buffer
	kctx, err := newParser(t, &cli, &out).Parse(args)
	require.NoError(t, err)
	r := &recordingRunner{}
	err = kctx.Run(&Global{Runner: r}, &cli)
	require.Len(t, r.invs, 1)
	return r.invs[0], err
}

func TestBuild_FlagsAndGlobals(t *testing.T) {
	inv, err := run(t,
		"--manifest-path", "~/app/Cargo.toml", "--log", "wasm", "--log", "server", "-C", "sub",
		"build", "-r", "-P", "-p", "site", "--features", "a,b", "--lib-features", "hydrate", "-vv", "--wasm-debug",
	)
	require.NoError(t, err)

	assert.Equal(t, config.CommandBuild, inv.Command)
	assert.Equal(t, "~/app/Cargo.toml", inv.ManifestPath)
	assert.Equal(t, []string{"wasm", "server"}, inv.Log)
	assert.Equal(t, "sub", inv.WorkingDir)
	assert.Equal(t, config.Opts{
		Release:     true,
		Precompress: true,
		Project:     "site",
		Features:    []string{"a", "b"},
		LibFeatures: []string{"hydrate"},
		Verbose:     2,
		WasmDebug:   true,
	}, inv.Opts)
	assert.Empty(t, inv.BinArgs)
}

func TestCommandKinds(t *testing.T) {
	tests := []struct {
		args []string
		want config.CommandKind
	}{
		{[]string{"test"}, config.CommandTest},
		{[]string{"serve"}, config.CommandServe},
		{[]string{"watch"}, config.CommandWatch},
		{[]string{"end-to-end"}, config.CommandEndToEnd},
		{[]string{"new"}, config.CommandNew},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			inv, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, inv.Command)
		})
	}
}

func TestServe_PassesBinArgs(t *testing.T) {
	inv, err := run(t, "serve", "--release", "--", "--port", "8080")
	require.NoError(t, err)
	assert.True(t, inv.Opts.Release)
	assert.Equal(t, []string{"--port", "8080"}, inv.BinArgs)
}

func TestNew_Options(t *testing.T) {
	inv, err := run(t, "new", "--git", "leptos-rs/start-actix", "--branch", "main", "--name", "my-app")
	require.NoError(t, err)
	assert.Equal(t, config.NewOpts{Git: "leptos-rs/start-actix", Branch: "main", Name: "my-app"}, inv.New)
}

func TestRun_ReturnsRunnerError(t *testing.T) {
	var cli CLI
	var out bytes.Buffer
	kctx, err := newParser(t, &cli, &out).Parse([]string{"build"})
	require.NoError(t, err)

	boom := stderrors.New("boom")
	g := &Global{Runner: &recordingRunner{err: boom}}
	assert.ErrorIs(t, kctx.Run(g, &cli), boom)
	assert.Equal(t, config.CommandBuild, g.Invocation.Command)
}

func TestParse_UnknownCommand(t *testing.T) {
	var cli CLI
	var out bytes.Buffer
	_, err := newParser(t, &cli, &out).Parse([]string{"deploy"})
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	var cli CLI
	var out bytes.Buffer
	_, _ = newParser(t, &cli, &out).Parse([]string{"--version"})
	assert.Contains(t, out.String(), "cargo-leptos")
}

func TestStripCargoSubcommand(t *testing.T) {
	assert.Equal(t, []string{"build"}, StripCargoSubcommand([]string{"leptos", "build"}))
	assert.Equal(t, []string{"build"}, StripCargoSubcommand([]string{"build"}))
	assert.Empty(t, StripCargoSubcommand(nil))
}
