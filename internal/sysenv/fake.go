package sysenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrNoHome is returned by Fake.UserHomeDir when no home directory is set.
var ErrNoHome = errors.New("$HOME is not defined")

// Fake is an in-memory Process. Working directory and environment live in
// the struct; Stat and Chdir validation go to the real filesystem so tests
// can lay out fixtures under t.TempDir().
type Fake struct {
	mu      sync.Mutex
	cwd     string
	home    string
	env     map[string]string
	chdirs  int
	setenvs int
}

// NewFake returns a Fake rooted at cwd with the given environment.
func NewFake(cwd string, env map[string]string) *Fake {
	copied := make(map[string]string, len(env))
	for k, v := range env {
		copied[k] = v
	}
	return &Fake{cwd: cwd, env: copied}
}

// WithHome sets the directory returned by UserHomeDir.
func (f *Fake) WithHome(home string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.home = home
	return f
}

func (f *Fake) Getwd() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cwd, nil
}

func (f *Fake) Chdir(dir string) error {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(f.cwdUnlocked(), dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "chdir", Path: dir, Err: fmt.Errorf("not a directory")}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cwd = dir
	f.chdirs++
	return nil
}

func (f *Fake) cwdUnlocked() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cwd
}

func (f *Fake) LookupEnv(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.env[key]
	return v, ok
}

func (f *Fake) Setenv(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.env[key] = value
	f.setenvs++
	return nil
}

func (f *Fake) Environ() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.env))
	for k, v := range f.env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func (f *Fake) UserHomeDir() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.home == "" {
		return "", ErrNoHome
	}
	return f.home, nil
}

func (f *Fake) Stat(name string) (fs.FileInfo, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(f.cwdUnlocked(), name)
	}
	return os.Stat(name)
}

// Chdirs returns how many successful Chdir calls were made.
func (f *Fake) Chdirs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chdirs
}

// Setenvs returns how many Setenv calls were made.
func (f *Fake) Setenvs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setenvs
}
