package value

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrKindMismatch    = errors.New("value kind mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
)

func kindMismatch(want, got Kind) error {
	return fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, want, got)
}

func checkIndex(i int64, size int) error {
	if i < 0 || i >= int64(size) {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, size)
	}
	return nil
}
