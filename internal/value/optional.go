package value

// Optional holds either a value of type T or nothing.
// The present flag is authoritative; the zero Optional is empty.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalOf returns None when isNull is set and Some(v) otherwise.
func OptionalOf[T any](v T, isNull bool) Optional[T] {
	if isNull {
		return None[T]()
	}
	return Some(v)
}

// Get returns the held value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.present
}
