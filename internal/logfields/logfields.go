package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyCommand    = "command"
	KeyProject    = "project"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyStep       = "step"
	KeySubsystem  = "subsystem"
	KeyProgram    = "program"
	KeyPID        = "pid"
	KeySignal     = "signal"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Subsystems accepted by the --log filter.
const (
	SubsystemWasm   = "wasm"
	SubsystemServer = "server"
)

func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func Command(c string) slog.Attr { return slog.String(KeyCommand, c) }
func Project(name string) slog.Attr { return slog.String(KeyProject, name) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr { return slog.String(KeyDir, d) }
func Step(name string) slog.Attr { return slog.String(KeyStep, name) }
func Subsystem(s string) slog.Attr { return slog.String(KeySubsystem, s) }
func Program(p string) slog.Attr { return slog.String(KeyProgram, p) }
func PID(pid int) slog.Attr { return slog.Int(KeyPID, pid) }
func Signal(s string) slog.Attr { return slog.String(KeySignal, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
