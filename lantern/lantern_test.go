// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lantern

import (
	"math"
	"testing"

	"github.com/born-ml/lantern/internal/config"
	"github.com/born-ml/lantern/internal/handle"
	"github.com/born-ml/lantern/internal/value"
	"github.com/born-ml/lantern/tensor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := New(config.Default(), zerolog.Nop())
	t.Cleanup(func() {
		assert.NoError(t, rt.LastError())
	})
	return rt
}

func TestScalarRoundTrip(t *testing.T) {
	rt := newRuntime(t)

	for _, x := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32} {
		h := rt.Int(x)
		require.NotEqual(t, Null, h)
		assert.Equal(t, x, rt.IntValue(h))
		assert.Equal(t, KindInt, rt.KindOf(h))
		rt.Release(h)
	}

	for _, x := range []int64{0, math.MaxInt64, math.MinInt64} {
		h := rt.Int64(x)
		assert.Equal(t, x, rt.Int64Value(h))
		rt.Release(h)
	}

	for _, x := range []float64{0, 3.14, -2.5e-300, math.Inf(1), math.SmallestNonzeroFloat64} {
		h := rt.Double(x)
		assert.Equal(t, x, rt.DoubleValue(h))
		rt.Release(h)
	}

	for _, x := range []bool{true, false} {
		h := rt.Bool(x)
		assert.Equal(t, x, rt.BoolValue(h))
		rt.Release(h)
	}

	assert.Equal(t, 0, rt.Live())
}

func TestOptionalDouble(t *testing.T) {
	rt := newRuntime(t)

	h := rt.OptionalDouble(3.14, false)
	x, ok := rt.OptionalDoubleValue(h)
	assert.True(t, ok)
	assert.Equal(t, 3.14, x)

	empty := rt.OptionalDouble(0.0, true)
	_, ok = rt.OptionalDoubleValue(empty)
	assert.False(t, ok)

	// The flag, not the value, decides.
	flagged := rt.OptionalDouble(3.14, true)
	_, ok = rt.OptionalDoubleValue(flagged)
	assert.False(t, ok)

	zero := rt.OptionalDouble(0.0, false)
	x, ok = rt.OptionalDoubleValue(zero)
	assert.True(t, ok)
	assert.Zero(t, x)
}

func TestOptionalInt64(t *testing.T) {
	rt := newRuntime(t)

	for _, x := range []int64{0, -1, math.MaxInt64} {
		got, ok := rt.OptionalInt64Value(rt.OptionalInt64(x, false))
		assert.True(t, ok)
		assert.Equal(t, x, got)

		_, ok = rt.OptionalInt64Value(rt.OptionalInt64(x, true))
		assert.False(t, ok)
	}
}

func TestIntArraysAreIndependentOfSource(t *testing.T) {
	rt := newRuntime(t)

	src := []int64{4, 5, 6}
	owned := rt.VectorInt64(src)
	view := rt.IntArrayRef(src)

	for i := range src {
		src[i] = -1
	}

	for _, h := range []Handle{owned, view} {
		assert.Equal(t, int64(3), rt.IntArraySize(h))
		assert.Equal(t, []int64{4, 5, 6}, rt.IntArrayValues(h))
		assert.Equal(t, int64(6), rt.IntArrayAt(h, 2))
	}
	assert.Equal(t, KindIntArray, rt.KindOf(owned))
	assert.Equal(t, KindIntArrayRef, rt.KindOf(view))
}

func TestEmptyIntArray(t *testing.T) {
	rt := newRuntime(t)

	h := rt.VectorInt64(nil)
	require.NotEqual(t, Null, h)
	assert.Equal(t, int64(0), rt.IntArraySize(h))
}

func TestIntArrayAtOutOfRange(t *testing.T) {
	rt := New(config.Default(), zerolog.Nop())

	h := rt.VectorInt64([]int64{1})
	assert.Equal(t, int64(0), rt.IntArrayAt(h, 1))
	assert.ErrorIs(t, rt.LastError(), value.ErrIndexOutOfRange)
}

func TestStringVectorScenario(t *testing.T) {
	rt := New(config.Default(), zerolog.Nop())

	v := rt.VectorStringNew()
	require.NotEqual(t, Null, v)
	for _, s := range []string{"a", "b", "c"} {
		rt.VectorStringPushBack(v, s)
	}
	require.NoError(t, rt.LastError())

	assert.Equal(t, int64(3), rt.VectorStringSize(v))
	assert.Equal(t, int64(3), rt.VectorStringSize(v), "size must be idempotent")

	s, ok := rt.VectorStringAt(v, 0)
	assert.True(t, ok)
	assert.Equal(t, "a", s)

	s, ok = rt.VectorStringAt(v, 2)
	assert.True(t, ok)
	assert.Equal(t, "c", s)

	s, ok = rt.VectorStringAt(v, 3)
	assert.False(t, ok)
	assert.Empty(t, s)
	assert.ErrorIs(t, rt.LastError(), value.ErrIndexOutOfRange)
	assert.Contains(t, rt.LastErrorMessage(), OpVectorStringAt)

	_, ok = rt.VectorStringAt(v, -1)
	assert.False(t, ok)
}

func TestStringVectorReadAfterEachPush(t *testing.T) {
	rt := newRuntime(t)

	v := rt.VectorStringNew()
	pushed := []string{"first", "", "third with spaces"}
	for i, s := range pushed {
		rt.VectorStringPushBack(v, s)
		got, ok := rt.VectorStringAt(v, int64(i))
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, int64(len(pushed)), rt.VectorStringSize(v))
}

func TestBoolVector(t *testing.T) {
	rt := New(config.Default(), zerolog.Nop())

	v := rt.VectorBoolNew()
	pushed := []bool{true, false, false, true, true}
	for _, x := range pushed {
		rt.VectorBoolPushBack(v, x)
	}

	assert.Equal(t, int64(len(pushed)), rt.VectorBoolSize(v))
	for i, x := range pushed {
		assert.Equal(t, x, rt.VectorBoolAt(v, int64(i)), "index %d", i)
	}
	require.NoError(t, rt.LastError())

	rt.VectorBoolPushBack(v, true)
	assert.False(t, rt.VectorBoolAt(v, 99))
	assert.ErrorIs(t, rt.LastError(), value.ErrIndexOutOfRange)
}

func TestTensorUndefined(t *testing.T) {
	rt := newRuntime(t)

	h := rt.TensorUndefined()
	require.NotEqual(t, Null, h)
	assert.Equal(t, KindTensor, rt.KindOf(h))
	assert.False(t, rt.TensorIsDefined(h))
}

func TestDefinedTensor(t *testing.T) {
	rt := newRuntime(t)

	raw, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	h := rt.Tensor(raw)
	assert.True(t, rt.TensorIsDefined(h))
	assert.Same(t, raw, rt.TensorValue(h))

	none := rt.Tensor(nil)
	assert.False(t, rt.TensorIsDefined(none))
	assert.False(t, rt.TensorValue(none).Defined())
}

func TestHandleVector(t *testing.T) {
	rt := New(config.Default(), zerolog.Nop())

	vec := rt.VectorHandleNew()
	a := rt.Int64(1)
	b := rt.VectorStringNew()
	rt.VectorHandlePushBack(vec, a)
	rt.VectorHandlePushBack(vec, b)
	require.NoError(t, rt.LastError())

	assert.Equal(t, int64(2), rt.VectorHandleSize(vec))
	assert.Equal(t, a, rt.VectorGet(vec, 0))
	assert.Equal(t, b, rt.VectorGet(vec, 1))
	assert.Equal(t, int64(1), rt.Int64Value(rt.VectorGet(vec, 0)))

	assert.Equal(t, Null, rt.VectorGet(vec, 2))
	assert.ErrorIs(t, rt.LastError(), value.ErrIndexOutOfRange)

	// Owned handles are released with their vector only.
	rt.Release(a)
	assert.ErrorIs(t, rt.LastError(), handle.ErrOwned)

	rt.Release(vec)
	assert.Equal(t, 0, rt.Live())
}

func TestFailuresReturnSentinels(t *testing.T) {
	rt := New(config.Default(), zerolog.Nop())

	h := rt.Double(1)
	assert.Equal(t, int64(0), rt.VectorStringSize(h))
	assert.ErrorIs(t, rt.LastError(), value.ErrKindMismatch)

	rt.ClearLastError()
	assert.NoError(t, rt.LastError())
	assert.Empty(t, rt.LastErrorMessage())

	rt.VectorStringPushBack(h, "x")
	assert.ErrorIs(t, rt.LastError(), value.ErrKindMismatch)

	assert.Equal(t, int64(0), rt.VectorBoolSize(Null))
	assert.ErrorIs(t, rt.LastError(), handle.ErrNullHandle)

	assert.Equal(t, KindInvalid, rt.KindOf(Handle(12345)))
	assert.ErrorIs(t, rt.LastError(), handle.ErrInvalidHandle)
}

func TestUseAfterRelease(t *testing.T) {
	rt := New(config.Default(), zerolog.Nop())

	h := rt.Int64(5)
	rt.Release(h)
	require.NoError(t, rt.LastError())

	assert.Equal(t, int64(0), rt.Int64Value(h))
	assert.ErrorIs(t, rt.LastError(), handle.ErrInvalidHandle)

	rt.ClearLastError()
	rt.Release(h)
	assert.ErrorIs(t, rt.LastError(), handle.ErrInvalidHandle)
}

func TestFailedConstructionPropagates(t *testing.T) {
	cfg := config.Default()
	cfg.Registry.MaxHandles = 1
	rt := New(cfg, zerolog.Nop())

	first := rt.VectorStringNew()
	require.NotEqual(t, Null, first)

	second := rt.VectorStringNew()
	assert.Equal(t, Null, second)
	assert.ErrorIs(t, rt.LastError(), handle.ErrExhausted)

	// Using the null handle fails instead of reading garbage.
	rt.ClearLastError()
	rt.VectorStringPushBack(second, "x")
	assert.ErrorIs(t, rt.LastError(), handle.ErrNullHandle)
}

func TestInvalidateHook(t *testing.T) {
	rt := newRuntime(t)

	var seen []Handle
	rt.OnInvalidate(func(h Handle) { seen = append(seen, h) })

	v := rt.VectorStringNew()
	rt.VectorStringPushBack(v, "a")
	rt.VectorStringPushBack(v, "b")
	rt.Release(v)

	assert.Equal(t, []Handle{v, v, v}, seen)
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Contains(t, kinds, KindStringVector)
	assert.NotContains(t, kinds, KindInvalid)
}

func TestDefault(t *testing.T) {
	rt := Default()
	require.NotNil(t, rt)
	assert.Same(t, rt, Default())
}
