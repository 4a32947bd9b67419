package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError_ErrorIncludesContextAndCause(t *testing.T) {
	cause := stderrors.New("home directory unavailable")
	err := WrapError(cause, CategoryConfig, "invalid manifest path").
		WithContext("manifest_path", "~/Cargo.toml").
		Fatal().
		Build()

	assert.Equal(t, "invalid manifest path (manifest_path=~/Cargo.toml): home directory unavailable", err.Error())
	assert.True(t, err.IsFatal())
	assert.Same(t, cause, stderrors.Unwrap(err))
}

func TestHasCategory_WalksChain(t *testing.T) {
	inner := ResolutionError("cannot resolve home directory").Build()
	outer := WrapError(inner, CategoryConfig, "invalid manifest path").Build()
	wrapped := fmt.Errorf("resolve: %w", outer)

	assert.True(t, HasCategory(wrapped, CategoryConfig))
	assert.True(t, HasCategory(wrapped, CategoryResolution))
	assert.False(t, HasCategory(wrapped, CategoryIO))
	assert.Equal(t, CategoryConfig, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestClassifiedError_Is(t *testing.T) {
	a := ConfigError("no current project").WithContext("projects", 2).Build()
	b := ConfigError("no current project").Build()

	assert.ErrorIs(t, fmt.Errorf("dispatch: %w", a), b)
	assert.NotErrorIs(t, a, IOError("no current project").Build())
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	base := IOError("change working directory").Build()
	annotated := base.WithContext("dir", "/proj")

	_, ok := base.Context().Get("dir")
	assert.False(t, ok)
	dir, ok := annotated.Context().GetString("dir")
	require.True(t, ok)
	assert.Equal(t, "/proj", dir)
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"resolution", ResolutionError("home").Build(), 3},
		{"io", IOError("chdir").Build(), 4},
		{"config", ConfigError("bad manifest").Build(), 7},
		{"wrapped config", fmt.Errorf("run: %w", ConfigError("bad manifest").Build()), 7},
		{"build", BuildError("cargo failed").Build(), 11},
		{"process", ProcessError("server exited").Build(), 12},
		{"internal", InternalError("nil command").Build(), 10},
		{"unclassified", stderrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("no current project").Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: no current project\n", out.String())
	assert.Empty(t, logs.String())
}

func TestCLIErrorAdapter_FormatInternalHidesDetailsUnlessVerbose(t *testing.T) {
	err := InternalError("unexpected state").Build()

	assert.Equal(t, "Internal error occurred (use -v for details)", NewCLIErrorAdapter(false, nil).FormatError(err))
	assert.Equal(t, "Error: unexpected state", NewCLIErrorAdapter(true, nil).FormatError(err))
}
