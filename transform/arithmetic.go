package transform

import "github.com/pipelined/lanes/partition"

// Arithmetic combines two arrays of the same shape element by element.
// Overflow wraps around.
type Arithmetic[T Element] struct {
	Kind Kind
	Fn   func(a, b T) T
}

// Name implements Operation.
func (op Arithmetic[T]) Name() string {
	return op.Kind.String()
}

// Arity implements Operation.
func (Arithmetic[T]) Arity() int {
	return 2
}

// Validate implements Operation.
func (Arithmetic[T]) Validate(width, height int) error {
	return nil
}

// Shape implements Operation.
func (Arithmetic[T]) Shape(width, height int) (int, int) {
	return width, height
}

// Rows implements Operation.
func (Arithmetic[T]) Rows(r partition.Range) partition.Range {
	return r
}

// Produce emits combined values in row-major order.
func (op Arithmetic[T]) Produce(inputs [][]T, width int, r partition.Range, emit func(T) error) error {
	a, b := inputs[0], inputs[1]
	for k := r.Start * width; k < r.End*width; k++ {
		if err := emit(op.Fn(a[k], b[k])); err != nil {
			return err
		}
	}
	return nil
}
