package config

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	EnvDev  = "DEV"
	EnvProd = "PROD"

	WasmTarget = "wasm32-unknown-unknown"
)

// Metadata is the [package.metadata.leptos] table, or one entry of
// [[workspace.metadata.leptos]].
type Metadata struct {
	Name                 string   `mapstructure:"name"`
	OutputName           string   `mapstructure:"output-name"`
	SiteRoot             string   `mapstructure:"site-root"`
	SitePkgDir           string   `mapstructure:"site-pkg-dir"`
	StyleFile            string   `mapstructure:"style-file"`
	AssetsDir            string   `mapstructure:"assets-dir"`
	SiteAddr             string   `mapstructure:"site-addr"`
	ReloadPort           int      `mapstructure:"reload-port"`
	End2EndCmd           string   `mapstructure:"end2end-cmd"`
	End2EndDir           string   `mapstructure:"end2end-dir"`
	Env                  string   `mapstructure:"env"`
	BinPackage           string   `mapstructure:"bin-package"`
	LibPackage           string   `mapstructure:"lib-package"`
	BinTarget            string   `mapstructure:"bin-target"`
	BinFeatures          []string `mapstructure:"bin-features"`
	LibFeatures          []string `mapstructure:"lib-features"`
	BinDefaultFeatures   *bool    `mapstructure:"bin-default-features"`
	LibDefaultFeatures   *bool    `mapstructure:"lib-default-features"`
	BinProfileRelease    string   `mapstructure:"bin-profile-release"`
	BinProfileDev        string   `mapstructure:"bin-profile-dev"`
	LibProfileRelease    string   `mapstructure:"lib-profile-release"`
	LibProfileDev        string   `mapstructure:"lib-profile-dev"`
	WatchAdditionalFiles []string `mapstructure:"watch-additional-files"`
}

// Package is one cargo package built for a project.
type Package struct {
	Name            string
	Dir             string
	Features        []string
	DefaultFeatures bool
	Profile         string
}

// CrateName is the package name as rustc sees it.
func (p Package) CrateName() string { return strings.ReplaceAll(p.Name, "-", "_") }

// Site describes where the generated site is written and served.
type Site struct {
	Root       string
	PkgDir     string
	Addr       string
	ReloadPort int
}

// Project is one buildable Leptos application.
type Project struct {
	Name       string
	WorkingDir string
	OutputName string
	Lib        Package
	Bin        Package
	BinTarget  string
	Site       Site
	StyleFile  string
	AssetsDir  string
	End2EndCmd string
	End2EndDir string
	EnvMode    string
	WatchExtra []string

	Release     bool
	Precompress bool
	WasmDebug   bool
	Watch       bool
	BinArgs     []string
}

// Profile returns the cargo output directory name for the build mode.
func (p *Project) Profile() string {
	if p.Release {
		return "release"
	}
	return "debug"
}

// TargetDir is the cargo target directory of the project.
func (p *Project) TargetDir() string { return filepath.Join(p.WorkingDir, "target") }

// SiteRootPath is the absolute site root.
func (p *Project) SiteRootPath() string { return filepath.Join(p.WorkingDir, p.Site.Root) }

// PkgPath is the absolute directory holding wasm, js and css output.
func (p *Project) PkgPath() string { return filepath.Join(p.SiteRootPath(), p.Site.PkgDir) }

// OutputDir maps the cargo profile of pkg to its directory under target.
func (p *Project) OutputDir(pkg Package) string {
	switch pkg.Profile {
	case "":
		return p.Profile()
	case "dev":
		return "debug"
	default:
		return pkg.Profile
	}
}

// ServerBinary is the path of the compiled server executable.
func (p *Project) ServerBinary() string {
	return filepath.Join(p.TargetDir(), p.OutputDir(p.Bin), p.BinTarget)
}

// WasmFile is the path of the compiled front-end module before bindgen.
func (p *Project) WasmFile() string {
	return filepath.Join(p.TargetDir(), WasmTarget, p.OutputDir(p.Lib), p.Lib.CrateName()+".wasm")
}

// HasEnd2End reports whether end-to-end tests are configured.
func (p *Project) HasEnd2End() bool { return p.End2EndCmd != "" }

// Env returns the LEPTOS_* variables passed to the server process.
func (p *Project) Env() []string {
	env := []string{
		"LEPTOS_OUTPUT_NAME=" + p.OutputName,
		"LEPTOS_SITE_ROOT=" + p.Site.Root,
		"LEPTOS_SITE_PKG_DIR=" + p.Site.PkgDir,
		"LEPTOS_SITE_ADDR=" + p.Site.Addr,
		"LEPTOS_RELOAD_PORT=" + strconv.Itoa(p.Site.ReloadPort),
		"LEPTOS_ENV=" + p.EnvMode,
	}
	if p.Watch {
		env = append(env, "LEPTOS_WATCH=true")
	}
	return env
}
