// Package main builds liblantern, the C ABI over the lantern value boundary.
//
//	go build -buildmode=c-shared -o liblantern.so ./cmd/liblantern
//
// Handles are pointer-sized integer tokens (lantern_handle); 0 is the null
// handle. Allocation fails once ids no longer fit in uintptr_t, which on
// 32-bit targets caps a process at 2^32-1 allocations.
//
// Every function traps its own failures: constructors return 0, size and
// read functions return 0 or false, mutators return nothing, and the cause
// is available from _lantern_last_error.
package main

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>

typedef uintptr_t lantern_handle;
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/born-ml/lantern/internal/boundary"
	"github.com/born-ml/lantern/lantern"
)

var errNullBuffer = errors.New("null buffer with non-zero length")

var rt = lantern.Default()

// cstrings holds the C copies handed out by _lantern_vector_string_at,
// per vector and index, until the vector is appended to or released.
var cstrings = struct {
	sync.Mutex
	byHandle map[lantern.Handle]map[int64]*C.char
}{byHandle: make(map[lantern.Handle]map[int64]*C.char)}

// lastError holds the C copy handed out by _lantern_last_error.
var lastError struct {
	sync.Mutex
	msg *C.char
}

func init() {
	rt.OnInvalidate(unpin)
}

func main() {}

func cString(s string) *C.char {
	return C.CString(s)
}

func goString(cs *C.char) string {
	return C.GoString(cs)
}

func freeCString(cs *C.char) {
	C.free(unsafe.Pointer(cs))
}

// pin returns the C copy of element i of vector h, reusing an earlier copy
// of the same element.
func pin(h lantern.Handle, i int64, s string) *C.char {
	cstrings.Lock()
	defer cstrings.Unlock()
	byIndex, ok := cstrings.byHandle[h]
	if !ok {
		byIndex = make(map[int64]*C.char)
		cstrings.byHandle[h] = byIndex
	}
	if cs, ok := byIndex[i]; ok {
		return cs
	}
	cs := cString(s)
	byIndex[i] = cs
	return cs
}

func unpin(h lantern.Handle) {
	cstrings.Lock()
	defer cstrings.Unlock()
	for _, cs := range cstrings.byHandle[h] {
		freeCString(cs)
	}
	delete(cstrings.byHandle, h)
}

func int64s(x *C.int64_t, n C.size_t) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	if x == nil {
		return nil, errNullBuffer
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(x)), int(n)), nil
}

func handleOf(h C.lantern_handle) lantern.Handle {
	return lantern.Handle(h)
}

func cHandle(h lantern.Handle) C.lantern_handle {
	return C.lantern_handle(h)
}

func setLastErrorMessage(msg string) *C.char {
	lastError.Lock()
	defer lastError.Unlock()
	if lastError.msg != nil {
		freeCString(lastError.msg)
		lastError.msg = nil
	}
	if msg != "" {
		lastError.msg = cString(msg)
	}
	return lastError.msg
}

// Arrays

//export _lantern_vector_int64_t
func _lantern_vector_int64_t(x *C.int64_t, n C.size_t) C.lantern_handle {
	return cHandle(boundary.Guard(rt.Boundary(), lantern.OpVectorInt64, lantern.Null, func() (lantern.Handle, error) {
		xs, err := int64s(x, n)
		if err != nil {
			return lantern.Null, err
		}
		return rt.VectorInt64(xs), nil
	}))
}

//export _lantern_IntArrayRef
func _lantern_IntArrayRef(x *C.int64_t, n C.size_t) C.lantern_handle {
	return cHandle(boundary.Guard(rt.Boundary(), lantern.OpIntArrayRef, lantern.Null, func() (lantern.Handle, error) {
		xs, err := int64s(x, n)
		if err != nil {
			return lantern.Null, err
		}
		return rt.IntArrayRef(xs), nil
	}))
}

//export _lantern_vector_int64_t_size
func _lantern_vector_int64_t_size(self C.lantern_handle) C.int64_t {
	return C.int64_t(rt.IntArraySize(handleOf(self)))
}

//export _lantern_vector_int64_t_at
func _lantern_vector_int64_t_at(self C.lantern_handle, i C.int64_t) C.int64_t {
	return C.int64_t(rt.IntArrayAt(handleOf(self), int64(i)))
}

// Scalars

//export _lantern_int
func _lantern_int(x C.int) C.lantern_handle {
	return cHandle(rt.Int(int32(x)))
}

//export _lantern_int64_t
func _lantern_int64_t(x C.int64_t) C.lantern_handle {
	return cHandle(rt.Int64(int64(x)))
}

//export _lantern_double
func _lantern_double(x C.double) C.lantern_handle {
	return cHandle(rt.Double(float64(x)))
}

//export _lantern_bool
func _lantern_bool(x C.bool) C.lantern_handle {
	return cHandle(rt.Bool(bool(x)))
}

//export _lantern_optional_double
func _lantern_optional_double(x C.double, isNull C.bool) C.lantern_handle {
	return cHandle(rt.OptionalDouble(float64(x), bool(isNull)))
}

//export _lantern_optional_int64_t
func _lantern_optional_int64_t(x C.int64_t, isNull C.bool) C.lantern_handle {
	return cHandle(rt.OptionalInt64(int64(x), bool(isNull)))
}

//export _lantern_int_get
func _lantern_int_get(self C.lantern_handle) C.int {
	return C.int(rt.IntValue(handleOf(self)))
}

//export _lantern_int64_t_get
func _lantern_int64_t_get(self C.lantern_handle) C.int64_t {
	return C.int64_t(rt.Int64Value(handleOf(self)))
}

//export _lantern_double_get
func _lantern_double_get(self C.lantern_handle) C.double {
	return C.double(rt.DoubleValue(handleOf(self)))
}

//export _lantern_bool_get
func _lantern_bool_get(self C.lantern_handle) C.bool {
	return C.bool(rt.BoolValue(handleOf(self)))
}

//export _lantern_optional_double_has_value
func _lantern_optional_double_has_value(self C.lantern_handle) C.bool {
	_, ok := rt.OptionalDoubleValue(handleOf(self))
	return C.bool(ok)
}

//export _lantern_optional_double_value
func _lantern_optional_double_value(self C.lantern_handle) C.double {
	x, _ := rt.OptionalDoubleValue(handleOf(self))
	return C.double(x)
}

//export _lantern_optional_int64_t_has_value
func _lantern_optional_int64_t_has_value(self C.lantern_handle) C.bool {
	_, ok := rt.OptionalInt64Value(handleOf(self))
	return C.bool(ok)
}

//export _lantern_optional_int64_t_value
func _lantern_optional_int64_t_value(self C.lantern_handle) C.int64_t {
	x, _ := rt.OptionalInt64Value(handleOf(self))
	return C.int64_t(x)
}

// Tensors

//export _lantern_Tensor_undefined
func _lantern_Tensor_undefined() C.lantern_handle {
	return cHandle(rt.TensorUndefined())
}

//export _lantern_Tensor_is_defined
func _lantern_Tensor_is_defined(self C.lantern_handle) C.bool {
	return C.bool(rt.TensorIsDefined(handleOf(self)))
}

// Handle vectors

//export _lantern_vector_handle_new
func _lantern_vector_handle_new() C.lantern_handle {
	return cHandle(rt.VectorHandleNew())
}

//export _lantern_vector_handle_push_back
func _lantern_vector_handle_push_back(self, x C.lantern_handle) {
	rt.VectorHandlePushBack(handleOf(self), handleOf(x))
}

//export _lantern_vector_handle_size
func _lantern_vector_handle_size(self C.lantern_handle) C.int64_t {
	return C.int64_t(rt.VectorHandleSize(handleOf(self)))
}

//export _lantern_vector_get
func _lantern_vector_get(self C.lantern_handle, i C.int) C.lantern_handle {
	return cHandle(rt.VectorGet(handleOf(self), int32(i)))
}

// String vectors

//export _lantern_vector_string_new
func _lantern_vector_string_new() C.lantern_handle {
	return cHandle(rt.VectorStringNew())
}

//export _lantern_vector_string_push_back
func _lantern_vector_string_push_back(self C.lantern_handle, x *C.char) {
	boundary.GuardVoid(rt.Boundary(), lantern.OpVectorStringPushBack, func() error {
		if x == nil {
			return errNullBuffer
		}
		rt.VectorStringPushBack(handleOf(self), goString(x))
		return nil
	})
}

//export _lantern_vector_string_size
func _lantern_vector_string_size(self C.lantern_handle) C.int64_t {
	return C.int64_t(rt.VectorStringSize(handleOf(self)))
}

// _lantern_vector_string_at returns a pointer owned by the vector. It stays
// valid until the next push_back on the same vector or its release. Reading
// the same element again returns the same pointer.
//
//export _lantern_vector_string_at
func _lantern_vector_string_at(self C.lantern_handle, i C.int64_t) *C.char {
	h := handleOf(self)
	s, ok := rt.VectorStringAt(h, int64(i))
	if !ok {
		return nil
	}
	return pin(h, int64(i), s)
}

// Bool vectors

//export _lantern_vector_bool_new
func _lantern_vector_bool_new() C.lantern_handle {
	return cHandle(rt.VectorBoolNew())
}

//export _lantern_vector_bool_push_back
func _lantern_vector_bool_push_back(self C.lantern_handle, x C.bool) {
	rt.VectorBoolPushBack(handleOf(self), bool(x))
}

//export _lantern_vector_bool_size
func _lantern_vector_bool_size(self C.lantern_handle) C.int64_t {
	return C.int64_t(rt.VectorBoolSize(handleOf(self)))
}

//export _lantern_vector_bool_at
func _lantern_vector_bool_at(self C.lantern_handle, i C.int64_t) C.bool {
	return C.bool(rt.VectorBoolAt(handleOf(self), int64(i)))
}

// Lifetime and errors

//export _lantern_delete
func _lantern_delete(self C.lantern_handle) {
	rt.Release(handleOf(self))
}

//export _lantern_kind
func _lantern_kind(self C.lantern_handle) C.int {
	return C.int(rt.KindOf(handleOf(self)))
}

//export _lantern_live_handles
func _lantern_live_handles() C.int64_t {
	return C.int64_t(rt.Live())
}

// _lantern_last_error returns the message of the most recent failure, or
// NULL. The pointer stays valid until the next call to this function or to
// _lantern_last_error_clear.
//
//export _lantern_last_error
func _lantern_last_error() *C.char {
	return setLastErrorMessage(rt.LastErrorMessage())
}

//export _lantern_last_error_clear
func _lantern_last_error_clear() {
	rt.ClearLastError()
	setLastErrorMessage("")
}
