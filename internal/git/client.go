package git

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

// Client clones template repositories.
type Client struct {
	progress io.Writer
}

// NewClient returns a Client writing clone progress to progress, which may
// be nil.
func NewClient(progress io.Writer) *Client { return &Client{progress: progress} }

// ExpandURL turns the owner/repo shorthand into a GitHub URL. Anything that
// already looks like a URL or a local path is returned unchanged.
func ExpandURL(raw string) string {
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "git@") || filepath.IsAbs(raw) || strings.HasPrefix(raw, ".") {
		return raw
	}
	if strings.Count(raw, "/") == 1 {
		return "https://github.com/" + raw
	}
	return raw
}

// CloneTemplate shallow-clones url at branch into dest and strips the git
// metadata so the result is a plain source tree. dest must not exist.
func (c *Client) CloneTemplate(ctx context.Context, url, branch, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return errors.IOError("destination already exists").WithContext("path", dest).Build()
	}
	slog.Debug("Cloning template", slog.String("url", url), slog.String("branch", branch), logfields.Path(dest))

	opts := &git.CloneOptions{URL: url, Progress: c.progress}
	if !isLocal(url) {
		opts.Depth = 1
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		_ = os.RemoveAll(dest)
		return errors.WrapError(classifyCloneError(url, err), errors.CategoryProcess, "cannot clone template").
			WithContext("url", url).
			Build()
	}
	if ref, herr := repo.Head(); herr == nil {
		slog.Info("Template cloned", slog.String("url", url), slog.String("commit", ref.Hash().String()[:8]), logfields.Path(dest))
	}
	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "cannot remove template git metadata").
			WithContext("path", dest).
			Build()
	}
	return nil
}

func isLocal(url string) bool {
	return filepath.IsAbs(url) || strings.HasPrefix(url, ".") || strings.HasPrefix(url, "file://")
}
