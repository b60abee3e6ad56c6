package value

import "github.com/born-ml/lantern/internal/tensor"

// Box owns exactly one value of a supported kind.
type Box struct {
	kind    Kind
	payload any
}

// NewInt boxes a C int.
func NewInt(x int32) *Box { return &Box{kind: Int, payload: x} }

// NewInt64 boxes an int64.
func NewInt64(x int64) *Box { return &Box{kind: Int64, payload: x} }

// NewDouble boxes a float64.
func NewDouble(x float64) *Box { return &Box{kind: Double, payload: x} }

// NewBool boxes a bool.
func NewBool(x bool) *Box { return &Box{kind: Bool, payload: x} }

// NewOptionalDouble boxes an optional float64.
func NewOptionalDouble(o Optional[float64]) *Box {
	return &Box{kind: OptionalDouble, payload: o}
}

// NewOptionalInt64 boxes an optional int64.
func NewOptionalInt64(o Optional[int64]) *Box {
	return &Box{kind: OptionalInt64, payload: o}
}

// NewIntArray boxes an owned copy of xs.
func NewIntArray(xs []int64) *Box {
	return &Box{kind: IntArray, payload: CopyIntArray(xs)}
}

// NewIntArrayRef boxes a view over an owned copy of xs.
func NewIntArrayRef(xs []int64) *Box {
	return &Box{kind: IntArrayRef, payload: ViewOf(CopyIntArray(xs))}
}

// NewStringVector boxes an empty string vector.
func NewStringVector() *Box { return &Box{kind: StringVector, payload: &Strings{}} }

// NewBoolVector boxes an empty bool vector.
func NewBoolVector() *Box { return &Box{kind: BoolVector, payload: &Bools{}} }

// NewHandleVector boxes an empty handle vector.
func NewHandleVector() *Box { return &Box{kind: HandleVector, payload: &Handles{}} }

// NewTensor boxes t. A nil t is stored as the undefined tensor.
func NewTensor(t *tensor.RawTensor) *Box {
	if t == nil {
		t = tensor.Undefined()
	}
	return &Box{kind: Tensor, payload: t}
}

// Kind returns the kind tag of the box. A nil box reports Invalid.
func (b *Box) Kind() Kind {
	if b == nil {
		return Invalid
	}
	return b.kind
}

// Int returns the boxed C int.
func (b *Box) Int() (int32, error) { return as[int32](b, Int) }

// Int64 returns the boxed int64.
func (b *Box) Int64() (int64, error) { return as[int64](b, Int64) }

// Double returns the boxed float64.
func (b *Box) Double() (float64, error) { return as[float64](b, Double) }

// Bool returns the boxed bool.
func (b *Box) Bool() (bool, error) { return as[bool](b, Bool) }

// OptionalDouble returns the boxed optional float64.
func (b *Box) OptionalDouble() (Optional[float64], error) {
	return as[Optional[float64]](b, OptionalDouble)
}

// OptionalInt64 returns the boxed optional int64.
func (b *Box) OptionalInt64() (Optional[int64], error) {
	return as[Optional[int64]](b, OptionalInt64)
}

// Int64s returns the boxed int64 array of either array kind.
func (b *Box) Int64s() (Int64Sequence, error) {
	switch b.Kind() {
	case IntArray:
		return b.payload.(*Ints), nil
	case IntArrayRef:
		return b.payload.(*IntsView), nil
	default:
		return nil, kindMismatch(IntArray, b.Kind())
	}
}

// StringVector returns the boxed string vector.
func (b *Box) StringVector() (*Strings, error) { return as[*Strings](b, StringVector) }

// BoolVector returns the boxed bool vector.
func (b *Box) BoolVector() (*Bools, error) { return as[*Bools](b, BoolVector) }

// HandleVector returns the boxed handle vector.
func (b *Box) HandleVector() (*Handles, error) { return as[*Handles](b, HandleVector) }

// Tensor returns the boxed tensor.
func (b *Box) Tensor() (*tensor.RawTensor, error) { return as[*tensor.RawTensor](b, Tensor) }

func as[T any](b *Box, want Kind) (T, error) {
	var zero T
	if b.Kind() != want {
		return zero, kindMismatch(want, b.Kind())
	}
	return b.payload.(T), nil
}
