// Package boundary implements the catch-at-boundary convention shared by
// every exported lantern operation.
//
// Guard runs an operation, turns a returned error or a panic into an
// *Error, records it in the last-error slot and hands back the
// operation's failure sentinel. Nothing escapes a guarded call.
package boundary

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrPanic marks failures recovered from a panic.
var ErrPanic = errors.New("panic")

// Error is a failure trapped at the boundary.
type Error struct {
	Op  string // Boundary operation name, e.g. "vector_string_at"
	Err error  // Underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Boundary holds the last-error slot and failure logging settings.
//
// The slot is process-wide for a given Boundary, not per goroutine or per
// OS thread: every failing call overwrites it and successful calls leave
// it alone. Concurrent failures race for the slot; the last writer wins.
type Boundary struct {
	mu      sync.Mutex
	last    *Error
	log     zerolog.Logger
	logFail bool
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithLogger sets the logger for trapped failures.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Boundary) {
		b.log = l
	}
}

// WithFailureLogging enables a warn-level log line per trapped failure.
func WithFailureLogging(enabled bool) Option {
	return func(b *Boundary) {
		b.logFail = enabled
	}
}

// New creates a Boundary with an empty last-error slot.
func New(opts ...Option) *Boundary {
	b := &Boundary{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Guard runs fn as operation op. On error or panic it records the failure
// and returns fallback.
func Guard[T any](b *Boundary, op string, fallback T, fn func() (T, error)) (result T) {
	defer func() {
		if p := recover(); p != nil {
			b.fail(op, recovered(p))
			result = fallback
		}
	}()

	v, err := fn()
	if err != nil {
		b.fail(op, err)
		return fallback
	}
	return v
}

// GuardVoid is Guard for operations without a result.
func GuardVoid(b *Boundary, op string, fn func() error) {
	Guard(b, op, struct{}{}, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// LastError returns the most recent trapped failure, or nil.
func (b *Boundary) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.last == nil {
		return nil
	}
	return b.last
}

// ClearLastError empties the last-error slot.
func (b *Boundary) ClearLastError() {
	b.mu.Lock()
	b.last = nil
	b.mu.Unlock()
}

func (b *Boundary) fail(op string, err error) {
	e := &Error{Op: op, Err: err}

	b.mu.Lock()
	b.last = e
	b.mu.Unlock()

	if b.logFail {
		b.log.Warn().Str("op", op).Err(err).Msg("boundary call failed")
	}
}

func recovered(p any) error {
	if err, ok := p.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, p)
}
