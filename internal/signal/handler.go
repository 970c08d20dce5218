// Package signal turns SIGINT and SIGTERM into context cancellation for the
// svnop CLI.
//
// The first signal cancels the context, which kills any running svn
// subprocess through exec.CommandContext and lets the operation report a
// cancellation. A second signal exits immediately with ExitCode.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ExitCode is the process status used after a forced exit: 128 + SIGINT.
const ExitCode = 130

// Handler cancels its context on the first signal and force-exits on the second.
type Handler struct {
	ctx         context.Context //nolint:containedctx // the handler owns the context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	sigChan     chan os.Signal
	exit        func(code int)

	mu       sync.Mutex
	received int
	stopOnce sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := run(h.Context())
//	if h.WasInterrupted() { ... }
func NewHandler(parent context.Context) *Handler {
	return newHandler(parent, os.Exit)
}

func newHandler(parent context.Context, exit func(int)) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		sigChan:     make(chan os.Signal, 1),
		exit:        exit,
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context canceled by the first signal.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel closed by the first signal.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// WasInterrupted reports whether a signal has been received.
func (h *Handler) WasInterrupted() bool {
	select {
	case <-h.interrupted:
		return true
	default:
		return false
	}
}

// Stop stops listening and cancels the context. Safe to call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

func (h *Handler) handleSignal() {
	h.mu.Lock()
	h.received++
	n := h.received
	h.mu.Unlock()

	switch n {
	case 1:
		h.cancel()
		close(h.interrupted)
	case 2:
		h.exit(ExitCode)
	}
}

// listen keeps receiving after the first signal so the second one can
// force the exit; it returns once Stop is called.
func (h *Handler) listen() {
	for {
		select {
		case <-h.done:
			return
		case <-h.sigChan:
			h.handleSignal()
		}
	}
}
