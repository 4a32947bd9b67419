package command

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/ActuallyHappening/cargo-leptos/internal/config"
	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
)

// Serve builds p and runs its server until the server exits or ctx is done.
func (h *Handlers) Serve(ctx context.Context, p *config.Project) error {
	if err := h.buildProject(ctx, p); err != nil {
		return err
	}
	return h.runServer(ctx, p)
}

// runServer runs the compiled server. Cancellation of ctx is a clean stop.
func (h *Handlers) runServer(ctx context.Context, p *config.Project) error {
	projectLogger(ctx, p).Info("Serving", slog.String("addr", p.Site.Addr), logfields.Subsystem(logfields.SubsystemServer))
	err := h.exec.Run(ctx, Cmd{
		Program:   p.ServerBinary(),
		Args:      p.BinArgs,
		Dir:       p.WorkingDir,
		Env:       p.Env(),
		Subsystem: logfields.SubsystemServer,
	})
	if err != nil && ctx.Err() != nil && stderrors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// server supervises one background server process.
type server struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func (h *Handlers) startServer(ctx context.Context, p *config.Project) *server {
	sctx, cancel := context.WithCancel(ctx)
	s := &server{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		s.err = h.runServer(sctx, p)
		if s.err != nil {
			projectLogger(ctx, p).Warn("Server exited", logfields.Error(s.err))
		}
	}()
	return s
}

// stop interrupts the server and waits for it. It is safe on a nil server.
func (s *server) stop() error {
	if s == nil {
		return nil
	}
	s.cancel()
	<-s.done
	return s.err
}

func (s *server) running() bool {
	if s == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}
