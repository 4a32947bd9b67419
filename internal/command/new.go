package command

import (
	"bytes"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/git"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/logging"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

// DefaultTemplate is used when new is run without --git.
const DefaultTemplate = "leptos-rs/start-axum"

// Cloner fetches a template into dest.
type Cloner interface {
	CloneTemplate(ctx context.Context, url, branch, dest string) error
}

// Creator generates a new project from a git template.
type Creator struct {
	cloner Cloner
	proc   sysenv.Process
}

// NewCreator returns a Creator that creates projects below the current
// directory of proc.
func NewCreator(cloner Cloner, proc sysenv.Process) *Creator {
	if cloner == nil {
		cloner = git.NewClient(nil)
	}
	if proc == nil {
		proc = sysenv.OS{}
	}
	return &Creator{cloner: cloner, proc: proc}
}

// Create clones the template and fills in the project name placeholders.
func (c *Creator) Create(ctx context.Context, opts config.NewOpts) error {
	url := git.ExpandURL(opts.Git)
	if opts.Git == "" {
		url = git.ExpandURL(DefaultTemplate)
	}
	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(path.Base(url), ".git")
	}
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) {
		return errors.NewError(errors.CategoryValidation, "invalid project name").WithContext("name", name).Build()
	}

	cwd, err := c.proc.Getwd()
	if err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot determine current directory").Build()
	}
	dest := filepath.Join(cwd, name)
	if err := c.cloner.CloneTemplate(ctx, url, opts.Branch, dest); err != nil {
		return err
	}
	if err := fillPlaceholders(dest, name); err != nil {
		return err
	}
	logging.FromContext(ctx).Info("Created project", logfields.Project(name), logfields.Path(dest))
	return nil
}

// fillPlaceholders replaces template variables in every text file below dir.
func fillPlaceholders(dir, name string) error {
	crate := strings.ReplaceAll(name, "-", "_")
	replacer := strings.NewReplacer(
		"{{project-name}}", name,
		"{{ project-name }}", name,
		"{{crate_name}}", crate,
		"{{ crate_name }}", crate,
	)
	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		// #nosec G304 -- files of the freshly cloned template
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if isBinary(data) {
			return nil
		}
		out := replacer.Replace(string(data))
		if out == string(data) {
			return nil
		}
		return os.WriteFile(p, []byte(out), info.Mode())
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot fill template placeholders").
			WithContext("path", dir).
			Build()
	}
	return nil
}

func isBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	return bytes.IndexByte(data, 0) >= 0
}
