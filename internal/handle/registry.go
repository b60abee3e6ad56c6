// Package handle maps opaque handles to boxed values.
//
// A Handle is a non-zero integer id handed to the foreign caller in place
// of a pointer. Ids are never reused within a Registry, so a stale handle
// fails lookup instead of aliasing a newer value.
package handle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/born-ml/lantern/internal/value"
	"github.com/rs/zerolog"
)

// Handle is an opaque reference to a boxed value.
type Handle uint64

// Null is the handle returned by failed constructors.
const Null Handle = 0

// Common errors.
var (
	ErrNullHandle    = errors.New("null handle")
	ErrInvalidHandle = errors.New("invalid or released handle")
	ErrExhausted     = errors.New("handle limit reached")
	ErrOwned         = errors.New("handle is owned by a vector")
	ErrCycle         = errors.New("handle vector cannot contain itself")
)

// Registry owns every live box and the handles that reach them.
//
// The registry itself is safe for concurrent use. The containers inside
// the boxes are not: concurrent mutation of one vector must be serialized
// by the caller.
type Registry struct {
	mu     sync.RWMutex
	boxes  map[Handle]*value.Box
	owners map[Handle]Handle
	next   Handle
	maxID  Handle
	limit  int
	log    zerolog.Logger
	hook   func(Handle)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLimit bounds the number of live handles. Zero means unlimited.
func WithLimit(n int) Option {
	return func(r *Registry) {
		r.limit = n
	}
}

// WithLogger sets the logger used for allocation traces.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithReleaseHook sets fn to run for every released handle, including
// handles released because their owning vector was. fn runs with the
// registry locked and must not call back into it.
func WithReleaseHook(fn func(Handle)) Option {
	return func(r *Registry) {
		r.hook = fn
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		boxes:  make(map[Handle]*value.Box),
		owners: make(map[Handle]Handle),
		maxID:  Handle(^uintptr(0)),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Put stores b and returns a fresh handle for it. Ids are bounded by the
// platform's uintptr so a handle always survives the trip through C.
func (r *Registry) Put(b *value.Box) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.boxes) >= r.limit {
		return Null, fmt.Errorf("%w: %d live", ErrExhausted, len(r.boxes))
	}
	if r.next >= r.maxID {
		return Null, fmt.Errorf("%w: ids past %d", ErrExhausted, uint64(r.maxID))
	}

	r.next++
	h := r.next
	r.boxes[h] = b
	r.log.Trace().Uint64("handle", uint64(h)).Stringer("kind", b.Kind()).Msg("allocated")
	return h, nil
}

// Get returns the box behind h.
func (r *Registry) Get(h Handle) (*value.Box, error) {
	if h == Null {
		return nil, ErrNullHandle
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boxes[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, uint64(h))
	}
	return b, nil
}

// Adopt appends child to the handle vector behind parent and transfers
// ownership of child to it.
func (r *Registry) Adopt(parent, child Handle) error {
	if parent == Null || child == Null {
		return ErrNullHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pb, ok := r.boxes[parent]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, uint64(parent))
	}
	vec, err := pb.HandleVector()
	if err != nil {
		return err
	}
	if _, ok := r.boxes[child]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, uint64(child))
	}
	if _, owned := r.owners[child]; owned {
		return fmt.Errorf("%w: %d", ErrOwned, uint64(child))
	}
	for h, ok := parent, true; ok; h, ok = r.owners[h] {
		if h == child {
			return ErrCycle
		}
	}

	vec.PushBack(uint64(child))
	r.owners[child] = parent
	return nil
}

// Release frees h. Releasing a handle vector releases every handle it owns.
// Handles owned by a vector cannot be released directly.
func (r *Registry) Release(h Handle) error {
	if h == Null {
		return ErrNullHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boxes[h]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, uint64(h))
	}
	if owner, owned := r.owners[h]; owned {
		return fmt.Errorf("%w: %d (owner %d)", ErrOwned, uint64(h), uint64(owner))
	}
	r.releaseLocked(h)
	return nil
}

func (r *Registry) releaseLocked(h Handle) {
	b := r.boxes[h]
	delete(r.boxes, h)
	delete(r.owners, h)
	r.log.Trace().Uint64("handle", uint64(h)).Stringer("kind", b.Kind()).Msg("released")
	if r.hook != nil {
		r.hook(h)
	}

	if vec, err := b.HandleVector(); err == nil {
		for _, child := range vec.Items() {
			r.releaseLocked(Handle(child))
		}
	}
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.boxes)
}

// Lookup resolves h and reads it with get, typically a value.Box accessor
// method expression such as (*value.Box).StringVector.
func Lookup[T any](r *Registry, h Handle, get func(*value.Box) (T, error)) (T, error) {
	b, err := r.Get(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return get(b)
}
