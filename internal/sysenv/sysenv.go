// Package sysenv abstracts the process-wide state the orchestration core reads
// and mutates: the working directory, environment variables and the home
// directory. The OS implementation touches the real process; Fake keeps the
// same state in memory so tests can run in parallel.
package sysenv

import (
	"io/fs"
	"os"
)

// Process is the process state consumed by configuration resolution,
// PATH augmentation and the command handlers.
type Process interface {
	Getwd() (string, error)
	Chdir(dir string) error
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Environ() []string
	UserHomeDir() (string, error)
	Stat(name string) (fs.FileInfo, error)
}

// OS implements Process on top of package os.
type OS struct{}

func (OS) Getwd() (string, error) { return os.Getwd() }
func (OS) Chdir(dir string) error { return os.Chdir(dir) }
func (OS) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OS) Setenv(key, value string) error { return os.Setenv(key, value) }
func (OS) Environ() []string { return os.Environ() }
func (OS) UserHomeDir() (string, error) { return os.UserHomeDir() }
func (OS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// Exists reports whether name can be stat'ed.
func Exists(p Process, name string) bool {
	_, err := p.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(p Process, name string) bool {
	info, err := p.Stat(name)
	return err == nil && info.IsDir()
}
