// Package codec moves arrays between files and the engine. Subpackages
// implement concrete formats, this package holds the types they share.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pipelined/lanes/pixel"
	"github.com/pipelined/lanes/shape"
)

// ErrUnknownFormat is returned when file format can't be detected.
var ErrUnknownFormat = errors.New("unknown file format")

// Format of a file.
type Format int

// Supported formats.
const (
	CSV Format = iota + 1
	CSVZst
	PNG
	QOI
	WAV
)

var extensions = []struct {
	ext    string
	format Format
}{
	// longest suffix first
	{".csv.zst", CSVZst},
	{".csv", CSV},
	{".png", PNG},
	{".qoi", QOI},
	{".wav", WAV},
}

func (f Format) String() string {
	for _, e := range extensions {
		if e.format == f {
			return strings.TrimPrefix(e.ext, ".")
		}
	}
	return "unknown"
}

// Image reports if format stores pixels.
func (f Format) Image() bool {
	return f == PNG || f == QOI
}

// Detect returns format of the file by its extension.
func Detect(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	for _, e := range extensions {
		if strings.HasSuffix(name, e.ext) {
			return e.format, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Image is a decoded picture. Channels is the number of channels of the
// source, alpha of 3-channel images is zero.
type Image struct {
	Rows     [][]pixel.RGBA16
	Channels int
}

// Width of the image.
func (img Image) Width() int {
	if len(img.Rows) == 0 {
		return 0
	}
	return len(img.Rows[0])
}

// Height of the image.
func (img Image) Height() int {
	return len(img.Rows)
}

// Packed returns pixels packed into words.
func (img Image) Packed() shape.Array2D[uint64] {
	a := make(shape.Array2D[uint64], len(img.Rows))
	for i := range img.Rows {
		a[i] = pixel.PackRow(img.Rows[i])
	}
	return a
}

// FromPacked unpacks words into an image.
func FromPacked(a shape.Array2D[uint64], channels int) (Image, error) {
	if err := pixel.Supported(channels); err != nil {
		return Image{}, err
	}
	img := Image{
		Rows:     make([][]pixel.RGBA16, len(a)),
		Channels: channels,
	}
	for i := range a {
		img.Rows[i] = pixel.UnpackRow(a[i])
	}
	return img, nil
}

// Samples is decoded audio. Frames has one row per frame and one column
// per channel.
type Samples struct {
	Frames     shape.Array2D[int64]
	SampleRate int
	BitDepth   int
}

// NumChannels returns number of channels.
func (s Samples) NumChannels() int {
	return s.Frames.Width()
}
