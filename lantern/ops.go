// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lantern

import (
	"github.com/born-ml/lantern/internal/boundary"
	"github.com/born-ml/lantern/internal/handle"
	"github.com/born-ml/lantern/internal/tensor"
	"github.com/born-ml/lantern/internal/value"
)

// Operation names as reported in LastError and exported over the C ABI.
const (
	OpVectorInt64          = "vector_int64_t"
	OpIntArrayRef          = "IntArrayRef"
	OpInt                  = "int"
	OpInt64                = "int64_t"
	OpDouble               = "double"
	OpBool                 = "bool"
	OpOptionalDouble       = "optional_double"
	OpOptionalInt64        = "optional_int64_t"
	OpTensorUndefined      = "Tensor_undefined"
	OpVectorGet            = "vector_get"
	OpVectorStringNew      = "vector_string_new"
	OpVectorStringPushBack = "vector_string_push_back"
	OpVectorStringSize     = "vector_string_size"
	OpVectorStringAt       = "vector_string_at"
	OpVectorBoolNew        = "vector_bool_new"
	OpVectorBoolPushBack   = "vector_bool_push_back"
	OpVectorBoolSize       = "vector_bool_size"
	OpVectorBoolAt         = "vector_bool_at"

	OpDelete               = "delete"
	OpKind                 = "kind"
	OpIntGet               = "int_get"
	OpInt64Get             = "int64_t_get"
	OpDoubleGet            = "double_get"
	OpBoolGet              = "bool_get"
	OpOptionalDoubleGet    = "optional_double_get"
	OpOptionalInt64Get     = "optional_int64_t_get"
	OpIntArraySize         = "vector_int64_t_size"
	OpIntArrayAt           = "vector_int64_t_at"
	OpVectorHandleNew      = "vector_handle_new"
	OpVectorHandlePushBack = "vector_handle_push_back"
	OpVectorHandleSize     = "vector_handle_size"
	OpTensorIsDefined      = "Tensor_is_defined"
	OpTensor               = "Tensor"
	OpTensorGet            = "Tensor_get"
	OpIntArrayValues       = "vector_int64_t_values"
)

func (rt *Runtime) put(op string, b *value.Box) Handle {
	return boundary.Guard(rt.bnd, op, Null, func() (Handle, error) {
		return rt.reg.Put(b)
	})
}

func read[T any](rt *Runtime, op string, h Handle, fallback T, fn func(*value.Box) (T, error)) T {
	return boundary.Guard(rt.bnd, op, fallback, func() (T, error) {
		return handle.Lookup(rt.reg, h, fn)
	})
}

// Scalars

// Int boxes a C int.
func (rt *Runtime) Int(x int32) Handle { return rt.put(OpInt, value.NewInt(x)) }

// Int64 boxes an int64.
func (rt *Runtime) Int64(x int64) Handle { return rt.put(OpInt64, value.NewInt64(x)) }

// Double boxes a float64.
func (rt *Runtime) Double(x float64) Handle { return rt.put(OpDouble, value.NewDouble(x)) }

// Bool boxes a bool.
func (rt *Runtime) Bool(x bool) Handle { return rt.put(OpBool, value.NewBool(x)) }

// OptionalDouble boxes x, or an empty optional when isNull is set.
// The flag decides; x is ignored when isNull is true.
func (rt *Runtime) OptionalDouble(x float64, isNull bool) Handle {
	return rt.put(OpOptionalDouble, value.NewOptionalDouble(value.OptionalOf(x, isNull)))
}

// OptionalInt64 boxes x, or an empty optional when isNull is set.
func (rt *Runtime) OptionalInt64(x int64, isNull bool) Handle {
	return rt.put(OpOptionalInt64, value.NewOptionalInt64(value.OptionalOf(x, isNull)))
}

// TensorUndefined boxes an undefined tensor.
func (rt *Runtime) TensorUndefined() Handle {
	return rt.put(OpTensorUndefined, value.NewTensor(tensor.Undefined()))
}

// IntValue reads a boxed C int.
func (rt *Runtime) IntValue(h Handle) int32 {
	return read(rt, OpIntGet, h, 0, (*value.Box).Int)
}

// Int64Value reads a boxed int64.
func (rt *Runtime) Int64Value(h Handle) int64 {
	return read(rt, OpInt64Get, h, 0, (*value.Box).Int64)
}

// DoubleValue reads a boxed float64.
func (rt *Runtime) DoubleValue(h Handle) float64 {
	return read(rt, OpDoubleGet, h, 0, (*value.Box).Double)
}

// BoolValue reads a boxed bool.
func (rt *Runtime) BoolValue(h Handle) bool {
	return read(rt, OpBoolGet, h, false, (*value.Box).Bool)
}

// OptionalDoubleValue reads a boxed optional float64. ok is false when the
// optional is empty or the call failed.
func (rt *Runtime) OptionalDoubleValue(h Handle) (x float64, ok bool) {
	o := read(rt, OpOptionalDoubleGet, h, value.None[float64](), (*value.Box).OptionalDouble)
	return o.Get()
}

// OptionalInt64Value reads a boxed optional int64.
func (rt *Runtime) OptionalInt64Value(h Handle) (x int64, ok bool) {
	o := read(rt, OpOptionalInt64Get, h, value.None[int64](), (*value.Box).OptionalInt64)
	return o.Get()
}

// Tensor boxes t. A nil t is boxed as the undefined tensor.
func (rt *Runtime) Tensor(t *tensor.RawTensor) Handle {
	return rt.put(OpTensor, value.NewTensor(t))
}

// TensorValue returns the tensor behind h, or nil on failure.
func (rt *Runtime) TensorValue(h Handle) *tensor.RawTensor {
	return read(rt, OpTensorGet, h, nil, (*value.Box).Tensor)
}

// TensorIsDefined reports whether h refers to a defined tensor.
func (rt *Runtime) TensorIsDefined(h Handle) bool {
	return read(rt, OpTensorIsDefined, h, false, func(b *value.Box) (bool, error) {
		t, err := b.Tensor()
		if err != nil {
			return false, err
		}
		return t.Defined(), nil
	})
}

// Int64 arrays

// VectorInt64 boxes an owned copy of xs. xs may be reused once it returns.
func (rt *Runtime) VectorInt64(xs []int64) Handle {
	return rt.put(OpVectorInt64, value.NewIntArray(xs))
}

// IntArrayRef boxes a read-only view over an owned copy of xs.
func (rt *Runtime) IntArrayRef(xs []int64) Handle {
	return rt.put(OpIntArrayRef, value.NewIntArrayRef(xs))
}

// IntArraySize returns the length of either int64 array kind.
func (rt *Runtime) IntArraySize(h Handle) int64 {
	return read(rt, OpIntArraySize, h, 0, func(b *value.Box) (int64, error) {
		seq, err := b.Int64s()
		if err != nil {
			return 0, err
		}
		return int64(seq.Len()), nil
	})
}

// IntArrayAt returns element i of either int64 array kind.
func (rt *Runtime) IntArrayAt(h Handle, i int64) int64 {
	return read(rt, OpIntArrayAt, h, 0, func(b *value.Box) (int64, error) {
		seq, err := b.Int64s()
		if err != nil {
			return 0, err
		}
		return seq.At(i)
	})
}

// IntArrayValues returns a copy of the elements of either int64 array kind,
// or nil on failure.
func (rt *Runtime) IntArrayValues(h Handle) []int64 {
	return read(rt, OpIntArrayValues, h, nil, func(b *value.Box) ([]int64, error) {
		seq, err := b.Int64s()
		if err != nil {
			return nil, err
		}
		return seq.Values(), nil
	})
}

// String vectors

// VectorStringNew creates an empty string vector.
func (rt *Runtime) VectorStringNew() Handle {
	return rt.put(OpVectorStringNew, value.NewStringVector())
}

// VectorStringPushBack appends a copy of s to the vector behind h.
// Any C string previously read from h is invalidated.
func (rt *Runtime) VectorStringPushBack(h Handle, s string) {
	boundary.GuardVoid(rt.bnd, OpVectorStringPushBack, func() error {
		v, err := handle.Lookup(rt.reg, h, (*value.Box).StringVector)
		if err != nil {
			return err
		}
		v.PushBack(s)
		rt.notify(h)
		return nil
	})
}

// VectorStringSize returns the number of strings, 0 on failure.
func (rt *Runtime) VectorStringSize(h Handle) int64 {
	return read(rt, OpVectorStringSize, h, 0, func(b *value.Box) (int64, error) {
		v, err := b.StringVector()
		if err != nil {
			return 0, err
		}
		return v.Size(), nil
	})
}

// VectorStringAt returns string i. ok is false on failure.
func (rt *Runtime) VectorStringAt(h Handle, i int64) (s string, ok bool) {
	type result struct {
		s  string
		ok bool
	}
	r := read(rt, OpVectorStringAt, h, result{}, func(b *value.Box) (result, error) {
		v, err := b.StringVector()
		if err != nil {
			return result{}, err
		}
		s, err := v.At(i)
		if err != nil {
			return result{}, err
		}
		return result{s: s, ok: true}, nil
	})
	return r.s, r.ok
}

// Bool vectors

// VectorBoolNew creates an empty bool vector.
func (rt *Runtime) VectorBoolNew() Handle {
	return rt.put(OpVectorBoolNew, value.NewBoolVector())
}

// VectorBoolPushBack appends x to the vector behind h.
func (rt *Runtime) VectorBoolPushBack(h Handle, x bool) {
	boundary.GuardVoid(rt.bnd, OpVectorBoolPushBack, func() error {
		v, err := handle.Lookup(rt.reg, h, (*value.Box).BoolVector)
		if err != nil {
			return err
		}
		v.PushBack(x)
		return nil
	})
}

// VectorBoolSize returns the number of bools, 0 on failure.
func (rt *Runtime) VectorBoolSize(h Handle) int64 {
	return read(rt, OpVectorBoolSize, h, 0, func(b *value.Box) (int64, error) {
		v, err := b.BoolVector()
		if err != nil {
			return 0, err
		}
		return v.Size(), nil
	})
}

// VectorBoolAt returns bool i, false on failure.
func (rt *Runtime) VectorBoolAt(h Handle, i int64) bool {
	return read(rt, OpVectorBoolAt, h, false, func(b *value.Box) (bool, error) {
		v, err := b.BoolVector()
		if err != nil {
			return false, err
		}
		return v.At(i)
	})
}

// Handle vectors

// VectorHandleNew creates an empty handle vector.
func (rt *Runtime) VectorHandleNew() Handle {
	return rt.put(OpVectorHandleNew, value.NewHandleVector())
}

// VectorHandlePushBack moves x into the vector behind h. After the call the
// vector owns x; the caller must not release it.
func (rt *Runtime) VectorHandlePushBack(h, x Handle) {
	boundary.GuardVoid(rt.bnd, OpVectorHandlePushBack, func() error {
		return rt.reg.Adopt(h, x)
	})
}

// VectorHandleSize returns the number of handles, 0 on failure.
func (rt *Runtime) VectorHandleSize(h Handle) int64 {
	return read(rt, OpVectorHandleSize, h, 0, func(b *value.Box) (int64, error) {
		v, err := b.HandleVector()
		if err != nil {
			return 0, err
		}
		return v.Size(), nil
	})
}

// VectorGet returns handle i of the vector behind h. The result stays owned
// by the vector.
func (rt *Runtime) VectorGet(h Handle, i int32) Handle {
	return read(rt, OpVectorGet, h, Null, func(b *value.Box) (Handle, error) {
		v, err := b.HandleVector()
		if err != nil {
			return Null, err
		}
		x, err := v.At(int64(i))
		if err != nil {
			return Null, err
		}
		return Handle(x), nil
	})
}

// Lifetime

// KindOf returns the kind of value behind h, KindInvalid on failure.
func (rt *Runtime) KindOf(h Handle) Kind {
	return read(rt, OpKind, h, KindInvalid, func(b *value.Box) (Kind, error) {
		return b.Kind(), nil
	})
}

// Release frees h and, for handle vectors, every handle the vector owns.
// Each handle must be released exactly once.
func (rt *Runtime) Release(h Handle) {
	boundary.GuardVoid(rt.bnd, OpDelete, func() error {
		return rt.reg.Release(h)
	})
}
