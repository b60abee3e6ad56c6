package value

import "github.com/bits-and-blooms/bitset"

// Strings is a growable vector of strings.
type Strings struct {
	items []string
}

// PushBack appends a copy of s.
func (v *Strings) PushBack(s string) {
	v.items = append(v.items, s)
}

// Size returns the number of elements.
func (v *Strings) Size() int64 { return int64(len(v.items)) }

// At returns the element at index i.
func (v *Strings) At(i int64) (string, error) {
	if err := checkIndex(i, len(v.items)); err != nil {
		return "", err
	}
	return v.items[i], nil
}

// Bools is a growable, bit-packed vector of bools.
// Bits at or past Size() are always clear.
type Bools struct {
	bits bitset.BitSet
	n    uint
}

// PushBack appends x.
func (v *Bools) PushBack(x bool) {
	if x {
		v.bits.Set(v.n)
	}
	v.n++
}

// Size returns the number of elements.
func (v *Bools) Size() int64 { return int64(v.n) }

// At returns the element at index i by value.
func (v *Bools) At(i int64) (bool, error) {
	if err := checkIndex(i, int(v.n)); err != nil {
		return false, err
	}
	return v.bits.Test(uint(i)), nil
}

// Handles is a vector of handles owned by the vector.
type Handles struct {
	items []uint64
}

// PushBack appends h. The vector takes ownership of h.
func (v *Handles) PushBack(h uint64) {
	v.items = append(v.items, h)
}

// Size returns the number of elements.
func (v *Handles) Size() int64 { return int64(len(v.items)) }

// At returns the handle at index i. Ownership stays with the vector.
func (v *Handles) At(i int64) (uint64, error) {
	if err := checkIndex(i, len(v.items)); err != nil {
		return 0, err
	}
	return v.items[i], nil
}

// Items returns a copy of the contained handles.
func (v *Handles) Items() []uint64 {
	return append([]uint64(nil), v.items...)
}
