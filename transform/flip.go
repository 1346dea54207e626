package transform

import "github.com/pipelined/lanes/partition"

// Flipper reverses order of elements within every row.
type Flipper[T Element] struct{}

// Name implements Operation.
func (Flipper[T]) Name() string {
	return Flip.String()
}

// Arity implements Operation.
func (Flipper[T]) Arity() int {
	return 1
}

// Validate implements Operation.
func (Flipper[T]) Validate(width, height int) error {
	return nil
}

// Shape implements Operation.
func (Flipper[T]) Shape(width, height int) (int, int) {
	return width, height
}

// Rows implements Operation.
func (Flipper[T]) Rows(r partition.Range) partition.Range {
	return r
}

// Produce emits row elements from the last column to the first.
func (Flipper[T]) Produce(inputs [][]T, width int, r partition.Range, emit func(T) error) error {
	in := inputs[0]
	for i := r.Start; i < r.End; i++ {
		last := i*width + width - 1
		for j := 0; j < width; j++ {
			if err := emit(in[last-j]); err != nil {
				return err
			}
		}
	}
	return nil
}
