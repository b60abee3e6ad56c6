// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/lantern/internal/tensor"
)

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU   Device = tensor.CPU
	CUDA  Device = tensor.CUDA
	Metal Device = tensor.Metal
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the untyped tensor value carried by lantern handles.
// Its zero value is the undefined tensor.
type RawTensor = tensor.RawTensor

// Undefined returns an undefined tensor.
//
// Example:
//
//	t := tensor.Undefined()
//	t.Defined() // false
func Undefined() *RawTensor {
	return tensor.Undefined()
}

// NewRaw allocates a zero-filled tensor.
//
// Example:
//
//	t, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
