package tensor

import "fmt"

// Device represents the compute device a tensor lives on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Metal
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Metal:
		return "Metal"
	default:
		return "Unknown"
	}
}

// RawTensor is the untyped tensor representation handed across the boundary.
//
// The zero value is the undefined tensor: it has no storage, no shape and
// reports Defined() == false. Callers use it as the "no tensor" argument of
// operations that accept an optional tensor.
type RawTensor struct {
	data    []byte
	shape   Shape
	dtype   DataType
	device  Device
	defined bool
}

// Undefined returns a new undefined tensor.
func Undefined() *RawTensor {
	return &RawTensor{}
}

// NewRaw allocates a zero-filled tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if dtype.Size() == 0 {
		return nil, fmt.Errorf("unsupported data type %d", int(dtype))
	}

	return &RawTensor{
		data:    make([]byte, shape.NumElements()*dtype.Size()),
		shape:   shape.Clone(),
		dtype:   dtype,
		device:  device,
		defined: true,
	}, nil
}

// Defined reports whether the tensor holds storage.
func (r *RawTensor) Defined() bool {
	return r != nil && r.defined
}

// Shape returns the tensor's shape. Undefined tensors have an empty shape.
func (r *RawTensor) Shape() Shape {
	if !r.Defined() {
		return Shape{}
	}
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements, 0 for undefined tensors.
func (r *RawTensor) NumElements() int {
	if !r.Defined() {
		return 0
	}
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.Data())
}

// Data returns the raw byte slice. Undefined tensors return nil.
func (r *RawTensor) Data() []byte {
	if !r.Defined() {
		return nil
	}
	return r.data
}

// String implements fmt.Stringer.
func (r *RawTensor) String() string {
	if !r.Defined() {
		return "Tensor(undefined)"
	}
	return fmt.Sprintf("Tensor(shape=%v, dtype=%s, device=%s)", []int(r.shape), r.dtype, r.device)
}
