// Package partition divides row index space into lanes.
package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidLaneCount is returned when lane count is zero, negative or
// exceeds number of rows.
var ErrInvalidLaneCount = errors.New("invalid lane count")

// Range is a half-open range of rows [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns number of rows in range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Plan is an ordered sequence of disjoint ranges that cover all rows.
type Plan []Range

// Build divides [0, height) into lanes contiguous ranges. Sizes differ by
// at most one row, first ranges get the remainder.
func Build(height, lanes int) (Plan, error) {
	if lanes <= 0 || lanes > height {
		return nil, fmt.Errorf("%w: %d lanes for %d rows", ErrInvalidLaneCount, lanes, height)
	}
	size, rem := height/lanes, height%lanes
	p := make(Plan, lanes)
	start := 0
	for i := range p {
		end := start + size
		if i < rem {
			end++
		}
		p[i] = Range{Start: start, End: end}
		start = end
	}
	return p, nil
}

// Lanes returns number of lanes.
func (p Plan) Lanes() int {
	return len(p)
}

// Rows returns number of covered rows.
func (p Plan) Rows() int {
	rows := 0
	for _, r := range p {
		rows += r.Len()
	}
	return rows
}
