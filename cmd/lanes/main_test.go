package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/codec/csv"
	"github.com/pipelined/lanes/codec/png"
	"github.com/pipelined/lanes/pixel"
	"github.com/pipelined/lanes/shape"
)

func TestInit(t *testing.T) {
	//check if commands are registered
	assert.Equal(t, len(commands), 2)
}

func runArgs(args ...string) (int, string) {
	var out bytes.Buffer
	c := config{
		args: append([]string{"lanes"}, args...),
		out:  &out,
	}
	return c.run(), out.String()
}

func TestUsage(t *testing.T) {
	code, out := runArgs()
	assert.Equal(t, errorExitCode, code)
	assert.Contains(t, out, "Usage")

	code, _ = runArgs("unknown")
	assert.Equal(t, errorExitCode, code)

	code, out = runArgs("list")
	assert.Equal(t, successExitCode, code)
	for _, name := range []string{"flip", "add", "subtract", "multiply", "crop"} {
		assert.Contains(t, out, name)
	}
}

func TestRunCSV(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv.zst")
	require.Nil(t, csv.WriteFile(a, shape.Array2D[int64]{{1, 2, 3}, {4, 5, 6}}))
	require.Nil(t, csv.WriteFile(b, shape.Array2D[int64]{{1, 1, 1}, {2, 2, 2}}))

	tests := []struct {
		args     []string
		expected shape.Array2D[int64]
	}{
		{
			args:     []string{"-op=flip", "-lanes=2", "-reps=3"},
			expected: shape.Array2D[int64]{{3, 2, 1}, {6, 5, 4}},
		},
		{
			args:     []string{"-op=subtract", "-in2=" + b},
			expected: shape.Array2D[int64]{{0, 1, 2}, {2, 3, 4}},
		},
		{
			args:     []string{"-op=crop", "-crop=1,1,1,1", "-batch=1", "-capacity=1"},
			expected: shape.Array2D[int64]{{5}},
		},
	}
	for _, test := range tests {
		out := filepath.Join(dir, "out.csv")
		code, printed := runArgs(append([]string{"run", "-in=" + a, "-out=" + out}, test.args...)...)
		require.Equal(t, successExitCode, code, printed)
		assert.Contains(t, printed, "Computation and I/O was")
		res, err := csv.ReadFile(out)
		require.Nil(t, err)
		assert.Equal(t, test.expected, res)
	}
}

func TestRunImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	img := codec.Image{
		Rows: [][]pixel.RGBA16{
			{{R: 1, G: 2, B: 3, A: 4}, {R: 5, G: 6, B: 7, A: 8}},
		},
		Channels: pixel.RGBA,
	}
	f, err := os.Create(in)
	require.Nil(t, err)
	require.Nil(t, png.Write(f, img))
	require.Nil(t, f.Close())

	code, printed := runArgs("run", "-op=flip", "-in="+in, "-out="+out)
	require.Equal(t, successExitCode, code, printed)

	f, err = os.Open(out)
	require.Nil(t, err)
	defer f.Close()
	flipped, err := png.Read(f)
	require.Nil(t, err)
	assert.Equal(t, [][]pixel.RGBA16{{img.Rows[0][1], img.Rows[0][0]}}, flipped.Rows)

	code, _ = runArgs("run", "-op=add", "-in="+in, "-in2="+in, "-out="+out)
	assert.Equal(t, errorExitCode, code)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	require.Nil(t, csv.WriteFile(a, shape.Array2D[int64]{{1, 2}}))
	tests := [][]string{
		{"run"},
		{"run", "-op=rotate", "-in=" + a, "-out=" + a},
		{"run", "-op=add", "-in=" + a, "-out=" + a},
		{"run", "-op=crop", "-in=" + a, "-out=" + a},
		{"run", "-op=crop", "-crop=oops", "-in=" + a, "-out=" + a},
		{"run", "-op=flip", "-lanes=2", "-in=" + a, "-out=" + filepath.Join(dir, "b.csv")},
		{"run", "-op=flip", "-in=" + a, "-out=" + filepath.Join(dir, "b.txt")},
		{"run", "-op=flip", "-in=" + filepath.Join(dir, "missing.csv"), "-out=" + a},
	}
	for _, args := range tests {
		code, _ := runArgs(args...)
		assert.Equal(t, errorExitCode, code, "%v", args)
	}
}
