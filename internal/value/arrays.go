package value

// Int64Sequence is the read side shared by the int64 array kinds.
type Int64Sequence interface {
	Len() int
	At(i int64) (int64, error)
	Values() []int64
}

// Ints is an owned array of int64 values.
type Ints struct {
	data []int64
}

// CopyIntArray returns an Ints owning a copy of src.
// The caller may reuse src as soon as the call returns.
func CopyIntArray(src []int64) *Ints {
	data := make([]int64, len(src))
	copy(data, src)
	return &Ints{data: data}
}

// Len returns the number of elements.
func (a *Ints) Len() int { return len(a.data) }

// At returns the element at index i.
func (a *Ints) At(i int64) (int64, error) {
	if err := checkIndex(i, len(a.data)); err != nil {
		return 0, err
	}
	return a.data[i], nil
}

// Values returns a copy of the elements.
func (a *Ints) Values() []int64 {
	return append([]int64(nil), a.data...)
}

// IntsView is a read-only view over int64 storage.
//
// The boundary builds every view over an owned copy that lives in the same
// Box, so the view can never outlive its storage.
type IntsView struct {
	owner *Ints
	view  []int64
}

// ViewOf returns a view spanning the whole of owner.
func ViewOf(owner *Ints) *IntsView {
	return &IntsView{owner: owner, view: owner.data}
}

// Len returns the number of elements.
func (r *IntsView) Len() int { return len(r.view) }

// At returns the element at index i.
func (r *IntsView) At(i int64) (int64, error) {
	if err := checkIndex(i, len(r.view)); err != nil {
		return 0, err
	}
	return r.view[i], nil
}

// Values returns a copy of the viewed elements.
func (r *IntsView) Values() []int64 {
	return append([]int64(nil), r.view...)
}
