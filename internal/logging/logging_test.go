package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LevelFor(0))
	assert.Equal(t, slog.LevelDebug, LevelFor(1))
	assert.Equal(t, LevelTrace, LevelFor(2))
	assert.Equal(t, LevelTrace, LevelFor(5))
}

func TestNew_SubsystemRecordsRequireFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0, nil)

	logger.Info("compiling", logfields.Subsystem(logfields.SubsystemWasm))
	logger.With(logfields.Subsystem(logfields.SubsystemServer)).Info("listening")
	assert.Empty(t, buf.String())

	logger.Warn("wasm-bindgen version mismatch", logfields.Subsystem(logfields.SubsystemWasm))
	assert.Contains(t, buf.String(), "wasm-bindgen version mismatch")

	logger.Info("untagged")
	assert.Contains(t, buf.String(), "untagged")
}

func TestNew_FilterEnablesSubsystem(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0, []string{" WASM "})

	logger.Info("compiling front", logfields.Subsystem(logfields.SubsystemWasm))
	logger.Info("server output", logfields.Subsystem(logfields.SubsystemServer))

	assert.Contains(t, buf.String(), "compiling front")
	assert.NotContains(t, buf.String(), "server output")
}

func TestNew_UnknownFilterWarns(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 0, []string{"client"})

	assert.Contains(t, buf.String(), "Ignoring unknown log filter")
	assert.Contains(t, buf.String(), "client")
}

func TestNew_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 2, nil)

	logger.Log(t.Context(), LevelTrace, "deep detail")
	logger.Debug("debug detail")

	assert.Contains(t, buf.String(), "level=TRACE")
	assert.Contains(t, buf.String(), "debug detail")
}
