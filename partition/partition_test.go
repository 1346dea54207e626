package partition_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/lanes/partition"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		height   int
		lanes    int
		expected partition.Plan
		err      error
	}{
		{
			height:   2,
			lanes:    1,
			expected: partition.Plan{{0, 2}},
		},
		{
			height:   2,
			lanes:    2,
			expected: partition.Plan{{0, 1}, {1, 2}},
		},
		{
			height:   10,
			lanes:    3,
			expected: partition.Plan{{0, 4}, {4, 7}, {7, 10}},
		},
		{
			height:   11,
			lanes:    4,
			expected: partition.Plan{{0, 3}, {3, 6}, {6, 9}, {9, 11}},
		},
		{
			height: 2,
			lanes:  0,
			err:    partition.ErrInvalidLaneCount,
		},
		{
			height: 2,
			lanes:  -1,
			err:    partition.ErrInvalidLaneCount,
		},
		{
			height: 2,
			lanes:  3,
			err:    partition.ErrInvalidLaneCount,
		},
	}

	for _, test := range tests {
		p, err := partition.Build(test.height, test.lanes)
		if test.err != nil {
			assert.True(t, errors.Is(err, test.err))
			assert.Nil(t, p)
			continue
		}
		assert.Nil(t, err)
		assert.Equal(t, test.expected, p)
	}
}

func TestCoverage(t *testing.T) {
	for height := 1; height <= 64; height++ {
		for lanes := 1; lanes <= height; lanes++ {
			p, err := partition.Build(height, lanes)
			assert.Nil(t, err)
			assert.Equal(t, lanes, p.Lanes())
			assert.Equal(t, height, p.Rows())

			next, min, max := 0, height, 0
			for _, r := range p {
				assert.Equal(t, next, r.Start)
				next = r.End
				if r.Len() < min {
					min = r.Len()
				}
				if r.Len() > max {
					max = r.Len()
				}
			}
			assert.Equal(t, height, next)
			assert.True(t, max-min <= 1)
			assert.True(t, min >= 1)
		}
	}
}

func TestRange(t *testing.T) {
	assert.Equal(t, 3, partition.Range{Start: 2, End: 5}.Len())
	assert.Equal(t, 0, partition.Range{Start: 5, End: 2}.Len())
	assert.Equal(t, "[2,5)", partition.Range{Start: 2, End: 5}.String())
}
