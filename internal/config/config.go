// Package config resolves Leptos project metadata from Cargo manifests.
package config

import (
	"sort"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
)

// Config is the resolved execution context for one invocation.
type Config struct {
	WorkingDir   string
	ManifestPath string
	Watch        bool
	BinArgs      []string
	Opts         Opts
	Projects     []*Project
}

// CurrentProject returns the single project targeted by serve and watch.
func (c *Config) CurrentProject() (*Project, error) {
	if c != nil && len(c.Projects) == 1 {
		return c.Projects[0], nil
	}
	b := errors.ConfigError("no current project")
	if c != nil && len(c.Projects) > 1 {
		b = b.WithContext("projects", c.ProjectNames()).
			WithContext("hint", "select one with --project")
	}
	return nil, b.Build()
}

// ProjectNames returns the sorted project names.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
