package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/pixel"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path   string
		format codec.Format
		err    error
	}{
		{path: "in.csv", format: codec.CSV},
		{path: "dir.v2/IN.CSV", format: codec.CSV},
		{path: "in.csv.zst", format: codec.CSVZst},
		{path: "a.png", format: codec.PNG},
		{path: "a.qoi", format: codec.QOI},
		{path: "/tmp/a.wav", format: codec.WAV},
		{path: "a.zst", err: codec.ErrUnknownFormat},
		{path: "a", err: codec.ErrUnknownFormat},
	}
	for _, test := range tests {
		f, err := codec.Detect(test.path)
		if test.err != nil {
			assert.True(t, errors.Is(err, test.err))
			continue
		}
		assert.Nil(t, err)
		assert.Equal(t, test.format, f, test.path)
	}
	assert.True(t, codec.PNG.Image())
	assert.False(t, codec.CSVZst.Image())
	assert.Equal(t, "csv.zst", codec.CSVZst.String())
}

func TestPacked(t *testing.T) {
	img := codec.Image{
		Rows: [][]pixel.RGBA16{
			{{R: 1, G: 2, B: 3, A: 4}, {R: 0xFFFF}},
			{{G: 7}, {A: 0x8000}},
		},
		Channels: pixel.RGBA,
	}
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 2, img.Height())
	packed := img.Packed()
	assert.Equal(t, uint64(0x0001000200030004), packed[0][0])

	back, err := codec.FromPacked(packed, pixel.RGBA)
	assert.Nil(t, err)
	assert.Equal(t, img, back)

	_, err = codec.FromPacked(packed, 2)
	assert.True(t, errors.Is(err, pixel.ErrUnsupportedFormat))
}
