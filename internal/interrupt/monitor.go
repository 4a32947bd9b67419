package interrupt

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ActuallyHappening/cargo-leptos/internal/logfields"
	"github.com/ActuallyHappening/cargo-leptos/internal/metrics"
)

// Notifier delivers operating system signals. It matches os/signal so tests
// can feed signals by hand.
type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// OSNotifier forwards to package os/signal.
type OSNotifier struct{}

func (OSNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (OSNotifier) Stop(c chan<- os.Signal)                     { signal.Stop(c) }

// Signals are the signals treated as an abort request.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// StartMonitor subscribes to Signals and starts a detached goroutine that
// requests cancellation on token when one arrives. Subsequent signals leave
// the token unchanged. The goroutine unsubscribes and exits when ctx is done;
// it is never joined.
func StartMonitor(ctx context.Context, token *Token, n Notifier, logger *slog.Logger, rec metrics.Recorder) {
	if n == nil {
		n = OSNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	rec = metrics.OrNoop(rec)

	sigs := make(chan os.Signal, 1)
	n.Notify(sigs, Signals...)
	go func() {
		defer n.Stop(sigs)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigs:
				rec.IncInterrupts()
				if token.Request() {
					logger.Info("Interrupt received, shutting down", logfields.Signal(sig.String()))
				} else {
					logger.Debug("Interrupt already requested", logfields.Signal(sig.String()))
				}
			}
		}
	}()
}
