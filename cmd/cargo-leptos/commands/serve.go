package commands

import "github.com/ActuallyHappening/cargo-leptos/internal/config"

// BinArgs are forwarded to the server binary after "--".
type BinArgs struct {
	Args []string `arg:"" optional:"" passthrough:"" name:"bin-args" help:"Arguments passed to the server binary."`
}

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	config.Opts `embed:""`
	BinArgs     `embed:""`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	return g.run(root.invocation(config.CommandServe, s.Opts, s.Args))
}

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	config.Opts `embed:""`
	BinArgs     `embed:""`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	return g.run(root.invocation(config.CommandWatch, w.Opts, w.Args))
}

// EndToEndCmd implements the 'end-to-end' command.
type EndToEndCmd struct {
	config.Opts `embed:""`
	BinArgs     `embed:""`
}

func (e *EndToEndCmd) Run(g *Global, root *CLI) error {
	return g.run(root.invocation(config.CommandEndToEnd, e.Opts, e.Args))
}
