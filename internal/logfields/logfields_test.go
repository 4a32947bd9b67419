package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"Command", KeyCommand, "build", Command("build")},
		{"Project", KeyProject, "app", Project("app")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Dir", KeyDir, "/proj", Dir("/proj")},
		{"Step", KeyStep, "front", Step("front")},
		{"Subsystem", KeySubsystem, "wasm", Subsystem("wasm")},
		{"Program", KeyProgram, "cargo", Program("cargo")},
		{"Signal", KeySignal, "interrupt", Signal("interrupt")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := PID(42); a.Key != KeyPID || a.Value.Int64() != 42 {
		t.Fatalf("unexpected PID attr %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("unexpected DurationMS attr %v", a)
	}
}
