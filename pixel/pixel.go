/*
Package pixel converts 16-bit-per-sample pixels between raw interleaved
sample rows, the canonical RGBA16 record and a packed 64-bit word.

Raw rows hold either 3 (RGB) or 4 (RGBA) samples per pixel. Decoding an RGB
row sets alpha to zero, encoding into an RGB row drops alpha.

The packed word layout, most significant bits first:

    r[63:48] g[47:32] b[31:16] a[15:0]
*/
package pixel

import (
	"errors"
	"fmt"
)

const (
	// RGB is the number of samples of a pixel without alpha.
	RGB = 3
	// RGBA is the number of samples of a pixel with alpha.
	RGBA = 4
)

var (
	// ErrUnsupportedFormat is returned when channel count is neither 3 nor 4.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrShortRow is returned when a raw row has no samples for the column.
	ErrShortRow = errors.New("raw row is too short")
)

// RGBA16 is a pixel with four 16-bit samples.
type RGBA16 struct {
	R, G, B, A uint16
}

// Array returns samples in r, g, b, a order.
func (p RGBA16) Array() [4]uint16 {
	return [4]uint16{p.R, p.G, p.B, p.A}
}

// FromArray builds a pixel from samples in r, g, b, a order.
func FromArray(s [4]uint16) RGBA16 {
	return RGBA16{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Pack encodes pixel into a 64-bit word.
func (p RGBA16) Pack() uint64 {
	return uint64(p.R)<<48 | uint64(p.G)<<32 | uint64(p.B)<<16 | uint64(p.A)
}

// Unpack decodes a 64-bit word into a pixel.
func Unpack(w uint64) RGBA16 {
	return RGBA16{
		R: uint16(w >> 48),
		G: uint16(w >> 32),
		B: uint16(w >> 16),
		A: uint16(w),
	}
}

// Supported checks the channel count.
func Supported(channels int) error {
	if channels != RGB && channels != RGBA {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}
	return nil
}

func inRow(row []uint16, channels, column int) error {
	if column < 0 || (column+1)*channels > len(row) {
		return fmt.Errorf("%w: column %d of %d samples with %d channels", ErrShortRow, column, len(row), channels)
	}
	return nil
}

// Decode reads pixel at column from a raw sample row.
func Decode(raw []uint16, channels, column int) (RGBA16, error) {
	if err := Supported(channels); err != nil {
		return RGBA16{}, err
	}
	if err := inRow(raw, channels, column); err != nil {
		return RGBA16{}, err
	}
	s := raw[column*channels : column*channels+channels]
	p := RGBA16{R: s[0], G: s[1], B: s[2]}
	if channels == RGBA {
		p.A = s[3]
	}
	return p, nil
}

// Encode writes pixel at column into a raw sample row.
func Encode(p RGBA16, channels, column int, dst []uint16) error {
	if err := Supported(channels); err != nil {
		return err
	}
	if err := inRow(dst, channels, column); err != nil {
		return err
	}
	s := dst[column*channels : column*channels+channels]
	s[0], s[1], s[2] = p.R, p.G, p.B
	if channels == RGBA {
		s[3] = p.A
	}
	return nil
}

// DecodeRow decodes every pixel of a raw sample row. Trailing samples that
// don't form a full pixel are ignored.
func DecodeRow(raw []uint16, channels int) ([]RGBA16, error) {
	if err := Supported(channels); err != nil {
		return nil, err
	}
	row := make([]RGBA16, len(raw)/channels)
	for i := range row {
		row[i], _ = Decode(raw, channels, i)
	}
	return row, nil
}

// EncodeRow encodes pixels into a raw sample row. If dst is too short, a
// new row is allocated.
func EncodeRow(row []RGBA16, channels int, dst []uint16) ([]uint16, error) {
	if err := Supported(channels); err != nil {
		return nil, err
	}
	if n := len(row) * channels; cap(dst) < n {
		dst = make([]uint16, n)
	} else {
		dst = dst[:n]
	}
	for i := range row {
		_ = Encode(row[i], channels, i, dst)
	}
	return dst, nil
}

// PackRow packs a row of pixels.
func PackRow(row []RGBA16) []uint64 {
	words := make([]uint64, len(row))
	for i := range row {
		words[i] = row[i].Pack()
	}
	return words
}

// UnpackRow unpacks a row of words.
func UnpackRow(words []uint64) []RGBA16 {
	row := make([]RGBA16, len(words))
	for i := range words {
		row[i] = Unpack(words[i])
	}
	return row
}
