// Package logging configures the process logger from the CLI verbosity and
// the --log subsystem filter.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ActuallyHappening/cargo-leptos/internal/foundation/normalization"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

// LevelTrace sits below debug and is enabled with -vv.
const LevelTrace = slog.Level(-8)

var subsystems = normalization.NewNormalizer(map[string]string{
	logfields.SubsystemWasm:   logfields.SubsystemWasm,
	logfields.SubsystemServer: logfields.SubsystemServer,
}, "")

// LevelFor maps the -v count to a slog level.
func LevelFor(verbose int) slog.Level {
	switch {
	case verbose <= 0:
		return slog.LevelInfo
	case verbose == 1:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Setup builds the logger on stderr and installs it as the slog default.
func Setup(verbose int, filter []string) *slog.Logger {
	logger := New(os.Stderr, verbose, filter)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing text records to w. Unknown filter entries are
// reported once on the returned logger and otherwise ignored.
func New(w io.Writer, verbose int, filter []string) *slog.Logger {
	enabled := make(map[string]bool, len(filter))
	var unknown []string
	for _, raw := range filter {
		name, err := subsystems.NormalizeWithError(raw)
		if err != nil {
			unknown = append(unknown, raw)
			continue
		}
		enabled[name] = true
	}

	text := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       LevelFor(verbose),
		ReplaceAttr: replaceLevel,
	})
	logger := slog.New(&filterHandler{next: text, enabled: enabled})
	if len(unknown) > 0 {
		logger.Warn("Ignoring unknown log filter", slog.Any("values", unknown), slog.Any("valid", subsystems.ValidKeys()))
	}
	return logger
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level <= LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// filterHandler drops records tagged with a subsystem that was not enabled
// via --log. Warnings and errors always pass.
type filterHandler struct {
	next      slog.Handler
	enabled   map[string]bool
	subsystem string
}

func (h *filterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *filterHandler) Handle(ctx context.Context, r slog.Record) error {
	sub := h.subsystem
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == logfields.KeySubsystem {
			sub = a.Value.String()
			return false
		}
		return true
	})
	if sub != "" && !h.enabled[sub] && r.Level < slog.LevelWarn {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *filterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sub := h.subsystem
	for _, a := range attrs {
		if a.Key == logfields.KeySubsystem {
			sub = a.Value.String()
		}
	}
	return &filterHandler{next: h.next.WithAttrs(attrs), enabled: h.enabled, subsystem: sub}
}

func (h *filterHandler) WithGroup(name string) slog.Handler {
	return &filterHandler{next: h.next.WithGroup(name), enabled: h.enabled, subsystem: h.subsystem}
}
