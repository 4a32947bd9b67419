package config

import (
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

// envFiles are tried in order; the first one found is used.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile reads the first env file present in dir without touching the
// process environment. It returns the path it read, or "" if none exists.
func loadEnvFile(proc sysenv.Process, dir string) (map[string]string, string, error) {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if !sysenv.Exists(proc, path) {
			continue
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, path, errors.WrapError(err, errors.CategoryConfig, "cannot parse env file").
				WithContext("path", path).
				Build()
		}
		return vars, path, nil
	}
	return nil, "", nil
}

type envLookup func(key string) (string, bool)

// layeredEnv prefers the process environment over values from the env file.
func layeredEnv(proc sysenv.Process, file map[string]string) envLookup {
	return func(key string) (string, bool) {
		if v, ok := proc.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

// applyEnvOverrides lets LEPTOS_* variables replace manifest metadata.
func applyEnvOverrides(p *Project, lookup envLookup) error {
	strs := map[string]*string{
		"LEPTOS_OUTPUT_NAME":  &p.OutputName,
		"LEPTOS_SITE_ROOT":    &p.Site.Root,
		"LEPTOS_SITE_PKG_DIR": &p.Site.PkgDir,
		"LEPTOS_SITE_ADDR":    &p.Site.Addr,
		"LEPTOS_ENV":          &p.EnvMode,
		"LEPTOS_BIN_TARGET":   &p.BinTarget,
		"LEPTOS_STYLE_FILE":   &p.StyleFile,
		"LEPTOS_ASSETS_DIR":   &p.AssetsDir,
		"LEPTOS_END2END_CMD":  &p.End2EndCmd,
		"LEPTOS_END2END_DIR":  &p.End2EndDir,
	}
	for key, field := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
	if v, ok := lookup("LEPTOS_RELOAD_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid LEPTOS_RELOAD_PORT").
				WithContext("value", v).
				WithContext("project", p.Name).
				Fatal().
				Build()
		}
		p.Site.ReloadPort = port
	}
	return nil
}
