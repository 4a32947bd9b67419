package command

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ActuallyHappening/cargo-leptos/internal/errors"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/logging"
	"github.com/ActuallyHappening/cargo-leptos/internal/sysenv"
)

// Cmd describes one external program invocation.
type Cmd struct {
	Program   string
	Args      []string
	Dir       string
	Env       []string
	Subsystem string
}

func (c Cmd) String() string {
	return strings.TrimSpace(c.Program + " " + strings.Join(c.Args, " "))
}

// Executor runs external programs. Run blocks until the program exits or ctx
// is done.
type Executor interface {
	Run(ctx context.Context, c Cmd) error
}

// ProcessExecutor runs programs as child processes and logs their output
// line by line.
type ProcessExecutor struct {
	// Process supplies the environment inherited by children. Nil means the
	// current process.
	Process sysenv.Process

	// WaitDelay bounds how long a program may keep running after it was
	// interrupted.
	WaitDelay time.Duration
}

func (e ProcessExecutor) Run(ctx context.Context, c Cmd) error {
	output := logging.FromContext(ctx).With(logfields.Program(c.Program))
	logger := output
	if c.Subsystem != "" {
		logger = output.With(logfields.Subsystem(c.Subsystem))
	}

	path, err := exec.LookPath(c.Program)
	if err != nil {
		return errors.WrapError(err, errors.CategoryProcess, "program not found").
			WithContext("program", c.Program).
			WithContext("hint", "make sure it is installed and on PATH").
			Build()
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(e.process().Environ(), c.Env...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = e.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = 5 * time.Second
	}
	stdout := &lineLogger{logger: output, level: slog.LevelInfo}
	stderr := &lineLogger{logger: output, level: slog.LevelInfo}
	cmd.Stdout, cmd.Stderr = stdout, stderr

	logger.Debug("Running command", slog.String("cmd", c.String()), logfields.Dir(c.Dir))
	start := time.Now()
	if err := cmd.Start(); err != nil {
		return errors.WrapError(err, errors.CategoryProcess, "cannot start program").
			WithContext("program", c.Program).
			Build()
	}
	logger.Log(ctx, logging.LevelTrace, "Started", logfields.PID(cmd.Process.Pid))
	err = cmd.Wait()
	stdout.Flush()
	stderr.Flush()
	logger.Debug("Command finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b := errors.WrapError(err, errors.CategoryProcess, "command failed").
		WithContext("cmd", c.String())
	if exitErr, ok := err.(*exec.ExitError); ok {
		b = b.WithContext("exit_code", exitErr.ExitCode())
	}
	return b.Build()
}

func (e ProcessExecutor) process() sysenv.Process {
	if e.Process == nil {
		return sysenv.OS{}
	}
	return e.Process
}

// lineLogger logs every complete line written to it.
type lineLogger struct {
	mu     sync.Mutex
	logger *slog.Logger
	level  slog.Level
	buf    bytes.Buffer
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Write(p)
	for {
		line, err := l.buf.ReadString('\n')
		if err != nil {
			l.buf.Reset()
			l.buf.WriteString(line)
			return len(p), nil
		}
		l.emit(line)
	}
}

// Flush logs a trailing line without newline.
func (l *lineLogger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buf.Len() > 0 {
		l.emit(l.buf.String())
		l.buf.Reset()
	}
}

func (l *lineLogger) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	l.logger.Log(context.Background(), l.level, line)
}
