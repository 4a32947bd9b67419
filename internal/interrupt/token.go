// Package interrupt carries the operator's abort request from the signal
// monitor to the long-running command handlers.
//
// Cancellation is cooperative: handlers select on Token.Done, or on a context
// derived with Token.Context, at their own suspension points. Nothing here
// stops a handler preemptively.
package interrupt

import (
	"context"
	"sync"
	"sync/atomic"
)

// Token is a one-shot cancellation flag. The zero value is not usable; call
// NewToken.
type Token struct {
	requested atomic.Bool
	once      sync.Once
	done      chan struct{}
}

// NewToken returns a token in the idle state.
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Request moves the token to the requested state. It returns true only for
// the call that performed the transition.
func (t *Token) Request() bool {
	first := t.requested.CompareAndSwap(false, true)
	if first {
		t.once.Do(func() { close(t.done) })
	}
	return first
}

// Requested reports whether cancellation has been requested.
func (t *Token) Requested() bool { return t.requested.Load() }

// Done is closed once cancellation has been requested.
func (t *Token) Done() <-chan struct{} { return t.done }

// Context returns a context that is canceled when either parent is done or
// the token is requested. Callers must call the returned cancel func.
func (t *Token) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-t.done:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
