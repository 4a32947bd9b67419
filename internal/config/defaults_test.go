package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	p := &Project{
		Lib: Package{Name: "my-app", Features: []string{"hydrate"}},
		Bin: Package{Name: "my-app"},
	}
	applyDefaults(p, Opts{Release: true, Features: []string{"tracing", "hydrate"}})

	assert.Equal(t, Site{Root: "target/site", PkgDir: "pkg", Addr: "127.0.0.1:3000", ReloadPort: 3001}, p.Site)
	assert.Equal(t, "my_app", p.OutputName)
	assert.Equal(t, "my-app", p.BinTarget)
	assert.Equal(t, EnvProd, p.EnvMode)
	assert.Equal(t, []string{"hydrate", "tracing"}, p.Lib.Features)
	assert.Equal(t, []string{"tracing", "hydrate"}, p.Bin.Features)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	p := &Project{
		OutputName: "site",
		EnvMode:    "development",
		Site:       Site{Root: "dist", PkgDir: "assets", Addr: "0.0.0.0:8080", ReloadPort: 9000},
		Lib:        Package{Name: "front"},
		Bin:        Package{Name: "server"},
		BinTarget:  "srv",
	}
	applyDefaults(p, Opts{Release: true})

	assert.Equal(t, Site{Root: "dist", PkgDir: "assets", Addr: "0.0.0.0:8080", ReloadPort: 9000}, p.Site)
	assert.Equal(t, "site", p.OutputName)
	assert.Equal(t, "srv", p.BinTarget)
	assert.Equal(t, EnvDev, p.EnvMode)
	assert.Empty(t, p.Lib.Features)
}
