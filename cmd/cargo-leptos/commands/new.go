package commands

import "github.com/ActuallyHappening/cargo-leptos/internal/config"

// NewCmd implements the 'new' command.
type NewCmd struct {
	Git    string `short:"g" help:"Git repository to clone the template from. Either a full URL or an owner/repo shortcut on GitHub."`
	Branch string `help:"Branch to use when cloning from git."`
	Name   string `help:"Directory to create and project name."`
}

func (n *NewCmd) Run(g *Global, root *CLI) error {
	inv := root.invocation(config.CommandNew, config.Opts{}, nil)
	inv.New = config.NewOpts{Git: n.Git, Branch: n.Branch, Name: n.Name}
	return g.run(inv)
}
