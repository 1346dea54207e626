// Package shape converts row-major 2D arrays to and from linear buffers.
package shape

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when array has no rows or an empty row.
	ErrEmptyInput = errors.New("empty input")
	// ErrShapeMismatch is returned when dimensions are inconsistent.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Array2D is an ordered sequence of rows of identical length.
type Array2D[T any] [][]T

// Height returns number of rows.
func (a Array2D[T]) Height() int {
	return len(a)
}

// Width returns length of the first row.
func (a Array2D[T]) Width() int {
	if len(a) == 0 {
		return 0
	}
	return len(a[0])
}

// Validate checks that array is not empty and rows have the same length.
func (a Array2D[T]) Validate() error {
	if len(a) == 0 {
		return fmt.Errorf("%w: no rows", ErrEmptyInput)
	}
	width := len(a[0])
	for i := range a {
		if len(a[i]) == 0 {
			return fmt.Errorf("%w: row %d has no elements", ErrEmptyInput, i)
		}
		if len(a[i]) != width {
			return fmt.Errorf("%w: row %d has %d elements, expected %d", ErrShapeMismatch, i, len(a[i]), width)
		}
	}
	return nil
}

// Flatten concatenates rows into a linear buffer.
func Flatten[T any](a Array2D[T]) ([]T, int, int, error) {
	if err := a.Validate(); err != nil {
		return nil, 0, 0, err
	}
	width, height := a.Width(), a.Height()
	buf := make([]T, 0, width*height)
	for i := range a {
		buf = append(buf, a[i]...)
	}
	return buf, width, height, nil
}

// Unflatten splits linear buffer into rows of width elements. Rows share
// the memory of buf.
func Unflatten[T any](buf []T, width, height int) (Array2D[T], error) {
	if width <= 0 || height <= 0 || len(buf) != width*height {
		return nil, fmt.Errorf("%w: buffer of %d elements is not %dx%d", ErrShapeMismatch, len(buf), width, height)
	}
	a := make(Array2D[T], height)
	for i := range a {
		a[i] = buf[i*width : (i+1)*width : (i+1)*width]
	}
	return a, nil
}

// Blank allocates array with the same row lengths as template.
func Blank[T any](template Array2D[T]) Array2D[T] {
	a := make(Array2D[T], len(template))
	for i := range template {
		a[i] = make([]T, len(template[i]))
	}
	return a
}

// Map converts every element of the array.
func Map[T, U any](a Array2D[T], fn func(T) U) Array2D[U] {
	out := make(Array2D[U], len(a))
	for i := range a {
		out[i] = make([]U, len(a[i]))
		for j := range a[i] {
			out[i][j] = fn(a[i][j])
		}
	}
	return out
}
