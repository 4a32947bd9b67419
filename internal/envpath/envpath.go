// Package envpath splices the npm binary directory of a project into PATH.
package envpath

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

const (
	PackageJSON = "package.json"
	NodeModules = "node_modules"
	BinDir      = ".bin"
	PathVar     = "PATH"
)

// Augment prepends <workingDir>/node_modules/.bin to PATH when the working
// directory holds a package.json. It reports whether PATH was rewritten.
// Every failure is logged as a warning and leaves PATH untouched.
func Augment(proc sysenv.Process, workingDir string, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if !sysenv.Exists(proc, filepath.Join(workingDir, PackageJSON)) {
		return false
	}
	logger.Debug("Found package.json, adding node_modules/.bin to PATH", logfields.Dir(workingDir))

	modules := filepath.Join(workingDir, NodeModules)
	if !sysenv.IsDir(proc, modules) {
		warn(logger, errors.EnvironmentWarning("node_modules folder not found, please install the required packages first").
			WithContext("path", modules).
			Build())
		logger.Warn("Continuing without using node_modules")
		return false
	}

	current, ok := proc.LookupEnv(PathVar)
	if !ok {
		warn(logger, errors.EnvironmentWarning("PATH environment variable not found, ignoring").Build())
		return false
	}

	entries := SplitList(current)
	if current == "" {
		// A set but empty PATH is one empty entry, which the rewritten value keeps.
		entries = []string{""}
	}
	dirs := append([]string{filepath.Join(modules, BinDir)}, entries...)
	if err := proc.Setenv(PathVar, strings.Join(dirs, string(os.PathListSeparator))); err != nil {
		warn(logger, errors.WrapError(err, errors.CategoryEnvironment, "cannot update PATH").Warning().Build())
		return false
	}
	return true
}

// SplitList splits a PATH value into its entries. An empty value has no
// entries.
func SplitList(value string) []string {
	return filepath.SplitList(value)
}

func warn(logger *slog.Logger, err *errors.ClassifiedError) {
	logger.Warn(err.Message(), logfields.Error(err))
}
