package config

import (
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/pathutil"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

// ManifestName is the cargo manifest file name.
const ManifestName = "Cargo.toml"

// ManifestLoader builds a Config from a cargo manifest, its workspace members
// and the environment.
type ManifestLoader struct {
	proc   sysenv.Process
	logger *slog.Logger
}

// NewManifestLoader returns a loader reading process state through proc. A
// nil logger means the default logger at the time of each Load.
func NewManifestLoader(proc sysenv.Process, logger *slog.Logger) *ManifestLoader {
	return &ManifestLoader{proc: proc, logger: logger}
}

func (l *ManifestLoader) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}

// Load resolves every Leptos project reachable from manifestPath. A relative
// manifestPath is taken relative to cwd.
func (l *ManifestLoader) Load(opts Opts, cwd, manifestPath string, watch bool, binArgs []string) (*Config, error) {
	manifest := pathutil.Absolute(manifestPath, cwd)
	info, err := l.proc.Stat(manifest)
	if err != nil || info.IsDir() {
		return nil, errors.WrapError(err, errors.CategoryConfig, "manifest not found").
			WithContext("manifest_path", manifest).
			Fatal().
			Build()
	}

	fileEnv, envPath, err := loadEnvFile(l.proc, cwd)
	if err != nil {
		return nil, err
	}
	if envPath != "" {
		l.log().Debug("Loaded environment variables", logfields.Path(envPath), slog.Int("count", len(fileEnv)))
	}

	root, err := readManifest(manifest)
	if err != nil {
		return nil, err
	}
	projects, err := l.discover(root, filepath.Dir(manifest), manifest, opts)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, errors.ConfigError("no leptos projects found").
			WithContext("manifest_path", manifest).
			WithContext("hint", "add a [package.metadata.leptos] section").
			Build()
	}
	if projects, err = selectProject(projects, opts.Project); err != nil {
		return nil, err
	}

	lookup := layeredEnv(l.proc, fileEnv)
	for _, p := range projects {
		p.Release = opts.Release
		p.Precompress = opts.Precompress
		p.WasmDebug = opts.WasmDebug
		p.Watch = watch
		p.BinArgs = binArgs
		if err := applyEnvOverrides(p, lookup); err != nil {
			return nil, err
		}
		applyDefaults(p, opts)
	}
	if err := validateProjects(projects); err != nil {
		return nil, err
	}

	cfg := &Config{
		WorkingDir:   cwd,
		ManifestPath: manifest,
		Watch:        watch,
		BinArgs:      binArgs,
		Opts:         opts,
		Projects:     projects,
	}
	l.log().Debug("Resolved configuration",
		logfields.Path(manifest),
		logfields.Dir(cwd),
		slog.Any("projects", cfg.ProjectNames()))
	return cfg, nil
}

// discover collects projects from the root package, the workspace metadata
// and every workspace member carrying its own metadata.
func (l *ManifestLoader) discover(root *cargoManifest, rootDir, path string, opts Opts) ([]*Project, error) {
	var projects []*Project

	if raw, ok := root.packageMetadata(); ok {
		var meta Metadata
		if err := decodeMetadata(raw, &meta, path); err != nil {
			return nil, err
		}
		projects = append(projects, projectFromPackage(root.Package.Name, rootDir, meta, opts))
	}
	if root.Workspace == nil {
		return projects, nil
	}

	members, err := l.members(rootDir, root.Workspace.Members)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if raw, ok := m.manifest.packageMetadata(); ok {
			var meta Metadata
			if err := decodeMetadata(raw, &meta, m.path); err != nil {
				return nil, err
			}
			projects = append(projects, projectFromPackage(m.manifest.Package.Name, m.dir, meta, opts))
		}
	}

	raw, ok := root.workspaceMetadata()
	if !ok {
		return projects, nil
	}
	var entries []Metadata
	if err := decodeMetadata(raw, &entries, path); err != nil {
		return nil, err
	}
	dirs := make(map[string]string, len(members))
	for _, m := range members {
		dirs[m.manifest.Package.Name] = m.dir
	}
	for i, meta := range entries {
		p, err := projectFromWorkspace(rootDir, meta, dirs, opts)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid workspace project").
				WithContext("manifest_path", path).
				WithContext("index", i).
				Fatal().
				Build()
		}
		projects = append(projects, p)
	}
	return projects, nil
}

type member struct {
	dir      string
	path     string
	manifest *cargoManifest
}

// members expands workspace member globs into parsed package manifests.
func (l *ManifestLoader) members(rootDir string, patterns []string) ([]member, error) {
	var out []member
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(rootDir, pattern))
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid workspace member pattern").
				WithContext("pattern", pattern).
				Fatal().
				Build()
		}
		sort.Strings(matches)
		for _, dir := range matches {
			path := filepath.Join(dir, ManifestName)
			if seen[dir] || !sysenv.Exists(l.proc, path) {
				continue
			}
			seen[dir] = true
			m, err := readManifest(path)
			if err != nil {
				return nil, err
			}
			if m.Package == nil {
				l.log().Debug("Skipping workspace member without package", logfields.Path(path))
				continue
			}
			out = append(out, member{dir: dir, path: path, manifest: m})
		}
	}
	return out, nil
}

func projectFromPackage(name, dir string, meta Metadata, opts Opts) *Project {
	p := newProject(meta, dir, opts)
	p.Name = name
	if meta.Name != "" {
		p.Name = meta.Name
	}
	p.Lib.Name, p.Lib.Dir = name, dir
	p.Bin.Name, p.Bin.Dir = name, dir
	return p
}

func projectFromWorkspace(rootDir string, meta Metadata, dirs map[string]string, opts Opts) (*Project, error) {
	if meta.Name == "" {
		return nil, errors.ConfigError("workspace project is missing name").Build()
	}
	p := newProject(meta, rootDir, opts)
	p.Name = meta.Name
	for _, pkg := range []struct {
		name   string
		target *Package
		field  string
	}{
		{meta.LibPackage, &p.Lib, "lib-package"},
		{meta.BinPackage, &p.Bin, "bin-package"},
	} {
		if pkg.name == "" {
			return nil, errors.ConfigError("workspace project is missing " + pkg.field).
				WithContext("project", meta.Name).
				Build()
		}
		dir, ok := dirs[pkg.name]
		if !ok {
			return nil, errors.ConfigError("package is not a workspace member").
				WithContext("project", meta.Name).
				WithContext(pkg.field, pkg.name).
				Build()
		}
		pkg.target.Name, pkg.target.Dir = pkg.name, dir
	}
	return p, nil
}

func newProject(meta Metadata, dir string, opts Opts) *Project {
	p := &Project{
		WorkingDir: dir,
		OutputName: meta.OutputName,
		BinTarget:  meta.BinTarget,
		Site: Site{
			Root:       meta.SiteRoot,
			PkgDir:     meta.SitePkgDir,
			Addr:       meta.SiteAddr,
			ReloadPort: meta.ReloadPort,
		},
		StyleFile:  meta.StyleFile,
		AssetsDir:  meta.AssetsDir,
		End2EndCmd: meta.End2EndCmd,
		End2EndDir: meta.End2EndDir,
		EnvMode:    meta.Env,
		WatchExtra: meta.WatchAdditionalFiles,
		Lib: Package{
			Features:        meta.LibFeatures,
			DefaultFeatures: boolOr(meta.LibDefaultFeatures, true),
			Profile:         pickProfile(opts.Release, meta.LibProfileRelease, meta.LibProfileDev),
		},
		Bin: Package{
			Features:        meta.BinFeatures,
			DefaultFeatures: boolOr(meta.BinDefaultFeatures, true),
			Profile:         pickProfile(opts.Release, meta.BinProfileRelease, meta.BinProfileDev),
		},
	}
	return p
}

func selectProject(projects []*Project, name string) ([]*Project, error) {
	if name == "" {
		return projects, nil
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.Name == name {
			return []*Project{p}, nil
		}
		names = append(names, p.Name)
	}
	return nil, errors.ConfigError("project not found").
		WithContext("project", name).
		WithContext("available", names).
		Build()
}

func pickProfile(release bool, releaseProfile, devProfile string) string {
	if release {
		return releaseProfile
	}
	return devProfile
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
