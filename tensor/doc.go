// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor value type carried through the
// lantern boundary.
//
// # Overview
//
// The boundary does not compute on tensors. It only needs to carry them,
// and most often to carry the undefined tensor: the marker passed where an
// operation accepts an optional tensor argument.
//
// # Basic Usage
//
//	import "github.com/born-ml/lantern/tensor"
//
//	func main() {
//	    none := tensor.Undefined()
//	    t, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	    if err != nil {
//	        // invalid shape or dtype
//	    }
//	    _ = none.Defined() // false
//	    _ = t.NumElements() // 6
//	}
//
// # Supported Data Types
//
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
package tensor
