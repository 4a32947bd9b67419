// Package watch turns filesystem events under a project into coalesced
// rebuild requests.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

// Change is a bit set of what needs rebuilding.
type Change uint8

const (
	ChangeSource Change = 1 << iota
	ChangeStyle
	ChangeAssets
)

// Has reports whether all bits of o are set in c.
func (c Change) Has(o Change) bool { return c&o == o && o != 0 }

func (c Change) String() string {
	var parts []string
	if c.Has(ChangeSource) {
		parts = append(parts, "source")
	}
	if c.Has(ChangeStyle) {
		parts = append(parts, "style")
	}
	if c.Has(ChangeAssets) {
		parts = append(parts, "assets")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Rules decide which paths are watched and how a change is classified.
type Rules struct {
	// Roots are watched recursively.
	Roots []string
	// StyleFile and any sass or css file count as style changes.
	StyleFile string
	AssetsDir string
	// Extra files count as source changes.
	Extra []string
	// Ignore lists directories whose events are dropped, e.g. target.
	Ignore []string
}

// Classify returns the change kind for path, or 0 if it should be ignored.
func (r Rules) Classify(path string) Change {
	if shouldIgnoreEvent(path) || r.ignored(path) {
		return 0
	}
	if r.AssetsDir != "" && within(path, r.AssetsDir) {
		return ChangeAssets
	}
	if r.StyleFile != "" && path == r.StyleFile {
		return ChangeStyle
	}
	switch filepath.Ext(path) {
	case ".rs":
		return ChangeSource
	case ".scss", ".sass", ".css":
		return ChangeStyle
	}
	if filepath.Base(path) == "Cargo.toml" {
		return ChangeSource
	}
	for _, extra := range r.Extra {
		if path == extra || within(path, extra) {
			return ChangeSource
		}
	}
	return 0
}

func (r Rules) ignored(path string) bool {
	for _, dir := range r.Ignore {
		if within(path, dir) {
			return true
		}
	}
	return false
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Watcher reports coalesced changes on Notify. Changes arriving while a
// notification is pending merge into it.
type Watcher struct {
	fs      *fsnotify.Watcher
	rules   Rules
	logger  *slog.Logger
	mu      sync.Mutex
	pending Change
	notify  chan struct{}
}

// New starts watching every root in rules.
func New(rules Rules, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryIO, "cannot create file watcher").Build()
	}
	w := &Watcher{fs: fw, rules: rules, logger: logger, notify: make(chan struct{}, 1)}
	for _, root := range rules.Roots {
		if err := w.addDirsRecursive(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Notify receives a value whenever Take has something to return.
func (w *Watcher) Notify() <-chan struct{} { return w.notify }

// Take returns and clears the pending change set.
func (w *Watcher) Take() Change {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.pending
	w.pending = 0
	return c
}

// Record merges c into the pending set and wakes the consumer.
func (w *Watcher) Record(c Change) {
	if c == 0 {
		return
	}
	w.mu.Lock()
	w.pending |= c
	w.mu.Unlock()
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Run forwards filesystem events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error { return w.fs.Close() }

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&fsnotify.Create == fsnotify.Create && !w.rules.ignored(ev.Name) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(ev.Name)
		}
	}
	c := w.rules.Classify(ev.Name)
	if c == 0 {
		return
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()), slog.String("change", c.String()))
	w.Record(c)
}

func (w *Watcher) addDirsRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		w.logger.Debug("Skipping missing watch root", logfields.Path(root))
		return nil
	}
	if !info.IsDir() {
		return w.add(root)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (w.rules.ignored(path) || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return w.add(path)
	})
}

func (w *Watcher) add(path string) error {
	if err := w.fs.Add(path); err != nil {
		w.logger.Warn("watch add failed", logfields.Dir(path), logfields.Error(err))
	}
	return nil
}

// shouldIgnoreEvent returns true for editor and OS noise.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
