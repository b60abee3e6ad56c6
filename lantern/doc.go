// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package lantern exposes tensor-library value types through opaque handles.
//
// Every operation allocates, mutates or reads a boxed value reachable only
// through a Handle. Operations never return errors or panic: a failing call
// returns its sentinel (the Null handle, 0, false or an empty string with
// ok == false) and records the cause, which LastError reports until the
// next failure or ClearLastError.
//
// # Basic Usage
//
//	rt := lantern.Default()
//
//	v := rt.VectorStringNew()
//	rt.VectorStringPushBack(v, "a")
//	rt.VectorStringPushBack(v, "b")
//	n := rt.VectorStringSize(v) // 2
//	s, ok := rt.VectorStringAt(v, 1) // "b", true
//	rt.Release(v)
//
// # Ownership
//
// Constructors transfer ownership of the new handle to the caller, who must
// Release it exactly once. Handles pushed into a handle vector are owned by
// that vector: VectorGet returns them without transferring ownership and
// releasing the vector releases them too.
//
// # Concurrency
//
// Distinct handles may be used from different goroutines. Mutating the same
// container from several goroutines at once is a data race the caller must
// prevent. The last-error slot is shared by the whole Runtime.
package lantern
