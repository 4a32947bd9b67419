package config

import (
	"github.com/ActuallyHappening/cargo-leptos/internal/foundation/normalization"
	"github.com/ActuallyHappening/cargo-leptos/internal/util/sets"
)

// DefaultApplier fills unset project values for one concern.
type DefaultApplier interface {
	ApplyDefaults(p *Project, opts Opts)
}

type siteDefaultApplier struct{}

func (siteDefaultApplier) ApplyDefaults(p *Project, _ Opts) {
	if p.Site.Root == "" {
		p.Site.Root = "target/site"
	}
	if p.Site.PkgDir == "" {
		p.Site.PkgDir = "pkg"
	}
	if p.Site.Addr == "" {
		p.Site.Addr = "127.0.0.1:3000"
	}
	if p.Site.ReloadPort == 0 {
		p.Site.ReloadPort = 3001
	}
}

type buildDefaultApplier struct{}

func (buildDefaultApplier) ApplyDefaults(p *Project, opts Opts) {
	if p.OutputName == "" {
		p.OutputName = p.Lib.CrateName()
	}
	if p.BinTarget == "" {
		p.BinTarget = p.Bin.Name
	}
	if p.EnvMode == "" {
		p.EnvMode = EnvDev
		if opts.Release {
			p.EnvMode = EnvProd
		}
	}
	if mode, err := envModes.NormalizeWithError(p.EnvMode); err == nil {
		p.EnvMode = mode
	}
	p.Lib.Features = appendUnique(p.Lib.Features, opts.Features, opts.LibFeatures)
	p.Bin.Features = appendUnique(p.Bin.Features, opts.Features, opts.BinFeatures)
}

// envModes accepts the spellings of LEPTOS_ENV seen in the wild.
var envModes = normalization.NewNormalizer(map[string]string{
	"dev":         EnvDev,
	"development": EnvDev,
	"prod":        EnvProd,
	"production":  EnvProd,
}, "")

var defaultAppliers = []DefaultApplier{siteDefaultApplier{}, buildDefaultApplier{}}

func applyDefaults(p *Project, opts Opts) {
	for _, a := range defaultAppliers {
		a.ApplyDefaults(p, opts)
	}
}

func appendUnique(base []string, more ...[]string) []string {
	var out sets.Ordered[string]
	out.Add(base...)
	for _, list := range more {
		out.Add(list...)
	}
	if out.Items() == nil {
		return []string{}
	}
	return out.Items()
}
