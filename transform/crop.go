package transform

import (
	"fmt"

	"github.com/pipelined/lanes/partition"
)

// Region is a rectangle with origin in the top left corner.
type Region struct {
	X, Y          int
	Width, Height int
}

func (r Region) String() string {
	return fmt.Sprintf("%d,%d+%dx%d", r.X, r.Y, r.Width, r.Height)
}

// ParseRegion parses region in "x,y,width,height" form.
func ParseRegion(s string) (Region, error) {
	var r Region
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X, &r.Y, &r.Width, &r.Height); err != nil {
		return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
	}
	return r, nil
}

// Cropper copies elements within the region.
type Cropper[T Element] struct {
	Region Region
}

// Name implements Operation.
func (Cropper[T]) Name() string {
	return Crop.String()
}

// Arity implements Operation.
func (Cropper[T]) Arity() int {
	return 1
}

// Validate checks that region is not empty and fits into the input.
func (op Cropper[T]) Validate(width, height int) error {
	r := op.Region
	if r.Width <= 0 || r.Height <= 0 || r.X < 0 || r.Y < 0 ||
		r.X+r.Width > width || r.Y+r.Height > height {
		return fmt.Errorf("%w: region %v, input %dx%d", ErrOutOfBounds, r, width, height)
	}
	return nil
}

// Shape implements Operation.
func (op Cropper[T]) Shape(width, height int) (int, int) {
	return op.Region.Width, op.Region.Height
}

// Rows clips input rows to the region and shifts them to region origin.
func (op Cropper[T]) Rows(r partition.Range) partition.Range {
	return partition.Range{
		Start: clamp(r.Start-op.Region.Y, 0, op.Region.Height),
		End:   clamp(r.End-op.Region.Y, 0, op.Region.Height),
	}
}

// Produce traverses input rows in row-major order and emits only values
// within the region.
func (op Cropper[T]) Produce(inputs [][]T, width int, r partition.Range, emit func(T) error) error {
	in := inputs[0]
	reg := op.Region
	for i := r.Start; i < r.End; i++ {
		if i < reg.Y || i >= reg.Y+reg.Height {
			continue
		}
		for j := 0; j < width; j++ {
			if j < reg.X || j >= reg.X+reg.Width {
				continue
			}
			if err := emit(in[i*width+j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
