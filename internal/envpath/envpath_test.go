package envpath

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func joinList(entries ...string) string {
	return strings.Join(entries, string(os.PathListSeparator))
}

func TestAugment_NoPackageJSON(t *testing.T) {
	dir := t.TempDir()
	original := joinList("/usr/local/bin", "/usr/bin", "")
	proc := sysenv.NewFake(dir, map[string]string{PathVar: original})
	logger, buf := bufferLogger()

	assert.False(t, Augment(proc, dir, logger))

	got, _ := proc.LookupEnv(PathVar)
	assert.Equal(t, original, got)
	assert.Equal(t, 0, proc.Setenvs())
	assert.Empty(t, buf.String())
}

func TestAugment_MissingNodeModulesWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte("{}"), 0o600))
	original := joinList("/usr/bin", "/bin")
	proc := sysenv.NewFake(dir, map[string]string{PathVar: original})
	logger, buf := bufferLogger()

	assert.False(t, Augment(proc, dir, logger))

	got, _ := proc.LookupEnv(PathVar)
	assert.Equal(t, original, got)
	assert.Equal(t, 0, proc.Setenvs())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "node_modules folder not found")
}

func TestAugment_MissingPathWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte("{}"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, NodeModules), 0o750))
	proc := sysenv.NewFake(dir, nil)
	logger, buf := bufferLogger()

	assert.False(t, Augment(proc, dir, logger))

	_, ok := proc.LookupEnv(PathVar)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "PATH environment variable not found")
}

func TestAugment_PrependsBinDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte("{}"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, NodeModules), 0o750))
	proc := sysenv.NewFake(dir, map[string]string{PathVar: joinList("/opt/tools", "/usr/bin", "/bin")})
	logger, _ := bufferLogger()

	assert.True(t, Augment(proc, dir, logger))

	got, _ := proc.LookupEnv(PathVar)
	assert.Equal(t, []string{
		filepath.Join(dir, NodeModules, BinDir),
		"/opt/tools",
		"/usr/bin",
		"/bin",
	}, SplitList(got))
	assert.Equal(t, 1, proc.Setenvs())
}

func TestAugment_EmptyPathKeepsEmptyEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte("{}"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, NodeModules), 0o750))
	proc := sysenv.NewFake(dir, map[string]string{PathVar: ""})
	logger, _ := bufferLogger()

	assert.True(t, Augment(proc, dir, logger))

	got, _ := proc.LookupEnv(PathVar)
	assert.Equal(t, joinList(filepath.Join(dir, NodeModules, BinDir), ""), got)
}

func TestAugment_NodeModulesFileIsNotADirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PackageJSON), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, NodeModules), []byte(""), 0o600))
	proc := sysenv.NewFake(dir, map[string]string{PathVar: "/usr/bin"})
	logger, buf := bufferLogger()

	assert.False(t, Augment(proc, dir, logger))

	got, _ := proc.LookupEnv(PathVar)
	assert.Equal(t, "/usr/bin", got)
	assert.Contains(t, buf.String(), "node_modules folder not found")
}

func TestAugment_NilLoggerUsesDefault(t *testing.T) {
	dir := t.TempDir()
	proc := sysenv.NewFake(dir, map[string]string{PathVar: "/usr/bin"})
	assert.False(t, Augment(proc, dir, nil))
}
