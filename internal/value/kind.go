// Package value defines the boxed values that cross the lantern boundary.
//
// A Box is a tagged variant: it records which of the supported kinds it
// holds, and its typed accessors refuse to read a payload of another kind.
// Containers (arrays and vectors) are owned by their box.
package value

// Kind enumerates the value kinds a Box can hold.
type Kind int

// Supported kinds. Invalid is the zero value and never stored in a Box.
const (
	Invalid Kind = iota
	Int
	Int64
	Double
	Bool
	OptionalDouble
	OptionalInt64
	IntArray
	IntArrayRef
	HandleVector
	StringVector
	BoolVector
	Tensor
)

var kindNames = [...]string{
	Invalid:        "invalid",
	Int:            "int",
	Int64:          "int64_t",
	Double:         "double",
	Bool:           "bool",
	OptionalDouble: "optional_double",
	OptionalInt64:  "optional_int64_t",
	IntArray:       "vector_int64_t",
	IntArrayRef:    "IntArrayRef",
	HandleVector:   "vector_handle",
	StringVector:   "vector_string",
	BoolVector:     "vector_bool",
	Tensor:         "Tensor",
}

// String returns the boundary name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every storable kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := Int; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
