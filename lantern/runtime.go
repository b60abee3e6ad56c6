// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lantern

import (
	"os"
	"sync"

	"github.com/born-ml/lantern/internal/boundary"
	"github.com/born-ml/lantern/internal/config"
	"github.com/born-ml/lantern/internal/handle"
	"github.com/born-ml/lantern/internal/logging"
	"github.com/born-ml/lantern/internal/value"
	"github.com/rs/zerolog"
)

// Handle is an opaque reference to a boxed value. Null is never valid.
type Handle = handle.Handle

// Null is the handle returned by failed constructors.
const Null = handle.Null

// Kind identifies the type of value behind a handle.
type Kind = value.Kind

// Value kinds.
const (
	KindInvalid        = value.Invalid
	KindInt            = value.Int
	KindInt64          = value.Int64
	KindDouble         = value.Double
	KindBool           = value.Bool
	KindOptionalDouble = value.OptionalDouble
	KindOptionalInt64  = value.OptionalInt64
	KindIntArray       = value.IntArray
	KindIntArrayRef    = value.IntArrayRef
	KindHandleVector   = value.HandleVector
	KindStringVector   = value.StringVector
	KindBoolVector     = value.BoolVector
	KindTensor         = value.Tensor
)

// Kinds returns every value kind a handle can refer to.
func Kinds() []Kind {
	return value.Kinds()
}

// Runtime owns a handle registry and its last-error slot.
type Runtime struct {
	reg        *handle.Registry
	bnd        *boundary.Boundary
	log        zerolog.Logger
	mu         sync.RWMutex
	invalidate []func(Handle)
}

// New creates a Runtime configured by cfg, logging to log.
func New(cfg config.Config, log zerolog.Logger) *Runtime {
	rt := &Runtime{log: log}
	rt.reg = handle.New(
		handle.WithLimit(cfg.Registry.MaxHandles),
		handle.WithLogger(log),
		handle.WithReleaseHook(rt.notify),
	)
	rt.bnd = boundary.New(
		boundary.WithLogger(log),
		boundary.WithFailureLogging(cfg.Log.Failures),
	)
	return rt
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime, configured from the
// environment on first use. An invalid configuration is logged and the
// built-in defaults are used instead.
func Default() *Runtime {
	defaultOnce.Do(func() {
		cfg, cfgErr := config.Load()
		if cfgErr != nil {
			cfg = config.Default()
		}
		log, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			log = zerolog.Nop()
		}
		if cfgErr != nil {
			log.Error().Err(cfgErr).Msg("invalid configuration, using defaults")
		}
		defaultRuntime = New(cfg, log)
	})
	return defaultRuntime
}

// Boundary returns the error boundary guarding this runtime's operations.
// Bindings use it to guard work they do before or after calling into the
// runtime, so their failures land in the same last-error slot.
func (rt *Runtime) Boundary() *boundary.Boundary {
	return rt.bnd
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() zerolog.Logger {
	return rt.log
}

// OnInvalidate registers fn to run whenever data previously read from a
// handle may have become stale: when the handle is released, and when a
// string vector is appended to. Bindings that hand out pointers into
// vector storage use it to free them.
func (rt *Runtime) OnInvalidate(fn func(Handle)) {
	rt.mu.Lock()
	rt.invalidate = append(rt.invalidate, fn)
	rt.mu.Unlock()
}

func (rt *Runtime) notify(h Handle) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	for _, fn := range rt.invalidate {
		fn(h)
	}
}

// LastError returns the most recent failure, or nil if none was recorded
// since the runtime started or ClearLastError was called.
func (rt *Runtime) LastError() error {
	return rt.bnd.LastError()
}

// LastErrorMessage returns LastError's message, or "" when there is none.
func (rt *Runtime) LastErrorMessage() string {
	if err := rt.bnd.LastError(); err != nil {
		return err.Error()
	}
	return ""
}

// ClearLastError empties the last-error slot.
func (rt *Runtime) ClearLastError() {
	rt.bnd.ClearLastError()
}

// Live returns the number of handles not yet released.
func (rt *Runtime) Live() int {
	return rt.reg.Len()
}
