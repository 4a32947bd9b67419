package config

import (
	"net"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
)

// validateProjects checks the fully defaulted projects.
func validateProjects(projects []*Project) error {
	seen := make(map[string]bool, len(projects))
	for _, p := range projects {
		if seen[p.Name] {
			return errors.ConfigError("duplicate project name").WithContext("project", p.Name).Build()
		}
		seen[p.Name] = true
		if err := validateProject(p); err != nil {
			return err
		}
	}
	return nil
}

func validateProject(p *Project) error {
	if p.Lib.Name == "" || p.Bin.Name == "" {
		return errors.ConfigError("project has no lib or bin package").WithContext("project", p.Name).Build()
	}
	if _, _, err := net.SplitHostPort(p.Site.Addr); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid site-addr").
			WithContext("project", p.Name).
			WithContext("site_addr", p.Site.Addr).
			Fatal().
			Build()
	}
	if p.Site.ReloadPort < 1 || p.Site.ReloadPort > 65535 {
		return errors.ConfigError("invalid reload-port").
			WithContext("project", p.Name).
			WithContext("reload_port", p.Site.ReloadPort).
			Build()
	}
	if _, err := envModes.NormalizeWithError(p.EnvMode); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid env").
			WithContext("project", p.Name).
			WithContext("env", p.EnvMode).
			Build()
	}
	return nil
}
