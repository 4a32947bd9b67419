package commands

import "github.com/ActuallyHappening/cargo-leptos/internal/config"

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	config.Opts `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	return g.run(root.invocation(config.CommandBuild, b.Opts, nil))
}

// TestCmd implements the 'test' command.
type TestCmd struct {
	config.Opts `embed:""`
}

func (t *TestCmd) Run(g *Global, root *CLI) error {
	return g.run(root.invocation(config.CommandTest, t.Opts, nil))
}
