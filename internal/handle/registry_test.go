package handle

import (
	"testing"

	"github.com/born-ml/lantern/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPutGetRelease(t *testing.T) {
	r := New()

	h, err := r.Put(value.NewInt64(42))
	require.NoError(t, err)
	assert.NotEqual(t, Null, h)
	assert.Equal(t, 1, r.Len())

	x, err := Lookup(r, h, (*value.Box).Int64)
	require.NoError(t, err)
	assert.Equal(t, int64(42), x)

	require.NoError(t, r.Release(h))
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(h)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.ErrorIs(t, r.Release(h), ErrInvalidHandle, "double release must fail")
}

func TestHandlesAreNotReused(t *testing.T) {
	r := New()

	a, err := r.Put(value.NewBool(true))
	require.NoError(t, err)
	require.NoError(t, r.Release(a))

	b, err := r.Put(value.NewBool(false))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNullHandle(t *testing.T) {
	r := New()

	_, err := r.Get(Null)
	assert.ErrorIs(t, err, ErrNullHandle)
	assert.ErrorIs(t, r.Release(Null), ErrNullHandle)
	assert.ErrorIs(t, r.Adopt(Null, Null), ErrNullHandle)
}

func TestLookupKindMismatch(t *testing.T) {
	r := New()
	h, err := r.Put(value.NewDouble(1.5))
	require.NoError(t, err)

	_, err = Lookup(r, h, (*value.Box).StringVector)
	assert.ErrorIs(t, err, value.ErrKindMismatch)
}

func TestLimit(t *testing.T) {
	r := New(WithLimit(2))

	a, err := r.Put(value.NewInt(1))
	require.NoError(t, err)
	_, err = r.Put(value.NewInt(2))
	require.NoError(t, err)

	h, err := r.Put(value.NewInt(3))
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, Null, h)

	require.NoError(t, r.Release(a))
	_, err = r.Put(value.NewInt(3))
	assert.NoError(t, err)
}

func TestAdoptAndCascadingRelease(t *testing.T) {
	r := New()

	vec, err := r.Put(value.NewHandleVector())
	require.NoError(t, err)
	inner, err := r.Put(value.NewHandleVector())
	require.NoError(t, err)
	leaf, err := r.Put(value.NewInt64(9))
	require.NoError(t, err)

	require.NoError(t, r.Adopt(inner, leaf))
	require.NoError(t, r.Adopt(vec, inner))

	v, err := Lookup(r, vec, (*value.Box).HandleVector)
	require.NoError(t, err)
	got, err := v.At(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(inner), got)

	assert.ErrorIs(t, r.Release(leaf), ErrOwned)
	assert.ErrorIs(t, r.Adopt(vec, leaf), ErrOwned)

	require.NoError(t, r.Release(vec))
	assert.Equal(t, 0, r.Len())
}

func TestAdoptRejectsCycles(t *testing.T) {
	r := New()

	a, err := r.Put(value.NewHandleVector())
	require.NoError(t, err)
	b, err := r.Put(value.NewHandleVector())
	require.NoError(t, err)

	assert.ErrorIs(t, r.Adopt(a, a), ErrCycle)

	require.NoError(t, r.Adopt(a, b))
	// a is not owned, so only the ancestry check can stop this.
	assert.ErrorIs(t, r.Adopt(b, a), ErrCycle)
}

func TestAdoptRequiresHandleVector(t *testing.T) {
	r := New()

	s, err := r.Put(value.NewStringVector())
	require.NoError(t, err)
	x, err := r.Put(value.NewInt(1))
	require.NoError(t, err)

	assert.ErrorIs(t, r.Adopt(s, x), value.ErrKindMismatch)
	assert.ErrorIs(t, r.Adopt(s, Handle(999)), value.ErrKindMismatch)
}

func TestConcurrentDistinctHandles(t *testing.T) {
	r := New()

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			h, err := r.Put(value.NewStringVector())
			if err != nil {
				return err
			}
			v, err := Lookup(r, h, (*value.Box).StringVector)
			if err != nil {
				return err
			}
			for i := 0; i < 100; i++ {
				v.PushBack("x")
			}
			if v.Size() != 100 {
				t.Errorf("Size() = %d, want 100", v.Size())
			}
			return r.Release(h)
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 0, r.Len())
}

func TestReleaseHookSeesCascade(t *testing.T) {
	var released []Handle
	r := New(WithReleaseHook(func(h Handle) { released = append(released, h) }))

	vec, err := r.Put(value.NewHandleVector())
	require.NoError(t, err)
	child, err := r.Put(value.NewStringVector())
	require.NoError(t, err)
	require.NoError(t, r.Adopt(vec, child))

	require.NoError(t, r.Release(vec))
	assert.ElementsMatch(t, []Handle{vec, child}, released)
}

func TestIdsStayWithinUintptr(t *testing.T) {
	r := New()
	assert.Equal(t, Handle(^uintptr(0)), r.maxID)

	r.maxID = 2
	for i := 0; i < 2; i++ {
		_, err := r.Put(value.NewInt(int32(i)))
		require.NoError(t, err)
	}
	h, err := r.Put(value.NewInt(2))
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, Null, h)

	// Releasing does not make ids reusable.
	require.NoError(t, r.Release(1))
	_, err = r.Put(value.NewInt(3))
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1, r.Len())
}
