package shape_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/lanes/shape"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		in       shape.Array2D[int]
		expected []int
		width    int
		height   int
		err      error
	}{
		{
			in:       shape.Array2D[int]{{1, 2, 3}, {4, 5, 6}},
			expected: []int{1, 2, 3, 4, 5, 6},
			width:    3,
			height:   2,
		},
		{
			in:       shape.Array2D[int]{{7}},
			expected: []int{7},
			width:    1,
			height:   1,
		},
		{
			in:  shape.Array2D[int]{},
			err: shape.ErrEmptyInput,
		},
		{
			in:  shape.Array2D[int]{{1}, {}},
			err: shape.ErrEmptyInput,
		},
		{
			in:  shape.Array2D[int]{{1, 2}, {3}},
			err: shape.ErrShapeMismatch,
		},
	}

	for _, test := range tests {
		buf, width, height, err := shape.Flatten(test.in)
		if test.err != nil {
			assert.True(t, errors.Is(err, test.err), "got %v", err)
			continue
		}
		assert.Nil(t, err)
		assert.Equal(t, test.expected, buf)
		assert.Equal(t, test.width, width)
		assert.Equal(t, test.height, height)
	}
}

func TestRoundTrip(t *testing.T) {
	arrays := []shape.Array2D[int64]{
		{{1}},
		{{1, 2, 3}, {4, 5, 6}},
		{{-1, 0}, {2, 3}, {4, 5}, {6, 7}},
	}
	for _, a := range arrays {
		buf, width, height, err := shape.Flatten(a)
		assert.Nil(t, err)
		b, err := shape.Unflatten(buf, width, height)
		assert.Nil(t, err)
		assert.Equal(t, a, b)
	}
}

func TestUnflatten(t *testing.T) {
	_, err := shape.Unflatten([]int{1, 2, 3}, 2, 2)
	assert.True(t, errors.Is(err, shape.ErrShapeMismatch))
	_, err = shape.Unflatten([]int{}, 0, 0)
	assert.True(t, errors.Is(err, shape.ErrShapeMismatch))

	a, err := shape.Unflatten([]int{1, 2, 3, 4}, 2, 2)
	assert.Nil(t, err)
	// appending to a row must not overwrite the next one
	a[0] = append(a[0], 9)
	assert.Equal(t, []int{3, 4}, a[1])
}

func TestBlank(t *testing.T) {
	template := shape.Array2D[int]{{1, 2}, {3}, {4, 5, 6}}
	b := shape.Blank(template)
	assert.Equal(t, shape.Array2D[int]{{0, 0}, {0}, {0, 0, 0}}, b)
	b[0][0] = 10
	assert.Equal(t, 1, template[0][0])
}

func TestMap(t *testing.T) {
	a := shape.Array2D[int]{{1, 2}, {3, 4}}
	m := shape.Map(a, func(v int) int64 { return int64(v * 10) })
	assert.Equal(t, shape.Array2D[int64]{{10, 20}, {30, 40}}, m)
	assert.Equal(t, 2, m.Width())
	assert.Equal(t, 2, m.Height())
}
