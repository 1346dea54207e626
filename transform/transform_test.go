package transform_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/lanes/partition"
	"github.com/pipelined/lanes/transform"
)

func collect[T transform.Element](t *testing.T, op transform.Operation[T], width int, r partition.Range, inputs ...[]T) []T {
	t.Helper()
	var out []T
	err := op.Produce(inputs, width, r, func(v T) error {
		out = append(out, v)
		return nil
	})
	assert.Nil(t, err)
	return out
}

func mustNew[T transform.Element](t *testing.T, k transform.Kind, r transform.Region) transform.Operation[T] {
	t.Helper()
	op, err := transform.New[T](k, r)
	assert.Nil(t, err)
	return op
}

func TestFlip(t *testing.T) {
	op := mustNew[int](t, transform.Flip, transform.Region{})
	in := []int{1, 2, 3, 4, 5, 6}
	assert.Equal(t, []int{3, 2, 1, 6, 5, 4}, collect(t, op, 3, partition.Range{Start: 0, End: 2}, in))
	assert.Equal(t, []int{6, 5, 4}, collect(t, op, 3, partition.Range{Start: 1, End: 2}, in))
	assert.Equal(t, 1, op.Arity())
	assert.Equal(t, "flip", op.Name())
}

func TestArithmetic(t *testing.T) {
	a := []int64{1, 1}
	b := []int64{2, 3}
	r := partition.Range{Start: 0, End: 1}
	tests := []struct {
		kind     transform.Kind
		expected []int64
	}{
		{kind: transform.Add, expected: []int64{3, 4}},
		{kind: transform.Subtract, expected: []int64{-1, -2}},
		{kind: transform.Multiply, expected: []int64{2, 3}},
	}
	for _, test := range tests {
		op := mustNew[int64](t, test.kind, transform.Region{})
		assert.Equal(t, 2, op.Arity())
		assert.Equal(t, test.kind.String(), op.Name())
		assert.Equal(t, test.expected, collect(t, op, 2, r, a, b))
	}
}

func TestArithmeticWraps(t *testing.T) {
	op := mustNew[uint8](t, transform.Add, transform.Region{})
	out := collect(t, op, 1, partition.Range{Start: 0, End: 1}, []uint8{math.MaxUint8}, []uint8{2})
	assert.Equal(t, []uint8{1}, out)
}

func TestCrop(t *testing.T) {
	in := []int{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	tests := []struct {
		region   transform.Region
		lane     partition.Range
		expected []int
		rows     partition.Range
	}{
		{
			region:   transform.Region{X: 0, Y: 0, Width: 1, Height: 1},
			lane:     partition.Range{Start: 0, End: 3},
			expected: []int{1},
			rows:     partition.Range{Start: 0, End: 1},
		},
		{
			region:   transform.Region{X: 1, Y: 1, Width: 2, Height: 2},
			lane:     partition.Range{Start: 0, End: 3},
			expected: []int{5, 6, 8, 9},
			rows:     partition.Range{Start: 0, End: 2},
		},
		{
			region:   transform.Region{X: 1, Y: 1, Width: 2, Height: 2},
			lane:     partition.Range{Start: 0, End: 1},
			expected: nil,
			rows:     partition.Range{Start: 0, End: 0},
		},
		{
			region:   transform.Region{X: 1, Y: 1, Width: 2, Height: 2},
			lane:     partition.Range{Start: 2, End: 3},
			expected: []int{8, 9},
			rows:     partition.Range{Start: 1, End: 2},
		},
	}
	for _, test := range tests {
		op := mustNew[int](t, transform.Crop, test.region)
		assert.Nil(t, op.Validate(3, 3))
		w, h := op.Shape(3, 3)
		assert.Equal(t, test.region.Width, w)
		assert.Equal(t, test.region.Height, h)
		assert.Equal(t, test.expected, collect(t, op, 3, test.lane, in))
		rows := op.Rows(test.lane)
		assert.Equal(t, test.rows, rows)
		assert.Equal(t, len(test.expected), rows.Len()*w)
	}
}

func TestCropBounds(t *testing.T) {
	regions := []transform.Region{
		{X: 0, Y: 0, Width: 0, Height: 1},
		{X: 0, Y: 0, Width: 1, Height: 0},
		{X: -1, Y: 0, Width: 1, Height: 1},
		{X: 0, Y: -1, Width: 1, Height: 1},
		{X: 1, Y: 0, Width: 2, Height: 1},
		{X: 0, Y: 2, Width: 1, Height: 1},
	}
	for _, r := range regions {
		op := mustNew[int](t, transform.Crop, r)
		assert.True(t, errors.Is(op.Validate(2, 2), transform.ErrOutOfBounds), "region %v", r)
	}
}

func TestEmitError(t *testing.T) {
	stop := errors.New("stop")
	for _, k := range transform.Kinds() {
		op := mustNew[int](t, k, transform.Region{Width: 1, Height: 1})
		calls := 0
		err := op.Produce([][]int{{1, 2}, {3, 4}}, 2, partition.Range{Start: 0, End: 1}, func(int) error {
			calls++
			return stop
		})
		assert.Equal(t, stop, err)
		assert.Equal(t, 1, calls)
	}
}

func TestKind(t *testing.T) {
	for _, k := range transform.Kinds() {
		parsed, err := transform.ParseKind(k.String())
		assert.Nil(t, err)
		assert.Equal(t, k, parsed)
		assert.NotEmpty(t, k.Help())
	}
	k, err := transform.ParseKind(" Flip ")
	assert.Nil(t, err)
	assert.Equal(t, transform.Flip, k)

	_, err = transform.ParseKind("rotate")
	assert.True(t, errors.Is(err, transform.ErrUnknownKind))
	_, err = transform.New[int](transform.Kind(42), transform.Region{})
	assert.True(t, errors.Is(err, transform.ErrUnknownKind))
	assert.Equal(t, "unknown", transform.Kind(42).String())

	assert.True(t, transform.Add.Arithmetic())
	assert.False(t, transform.Crop.Arithmetic())
}

func TestParseRegion(t *testing.T) {
	r, err := transform.ParseRegion("1,2,3,4")
	assert.Nil(t, err)
	assert.Equal(t, transform.Region{X: 1, Y: 2, Width: 3, Height: 4}, r)

	_, err = transform.ParseRegion("1,2")
	assert.NotNil(t, err)
}
