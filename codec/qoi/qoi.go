// Package qoi decodes and encodes QOI images. QOI stores 8-bit samples,
// they are widened to 16 bits on read and narrowed on write. Colour samples
// are stored without alpha premultiplication, so 8-bit values round trip
// exactly at any alpha.
package qoi

import (
	"image"
	"image/color"
	"io"

	"github.com/xfmoulet/qoi"

	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/pixel"
	"github.com/pipelined/lanes/shape"
)

// Read decodes the image. Images with transparency have 4 channels, opaque
// images have 3 and their alpha is zero.
func Read(r io.Reader) (codec.Image, error) {
	src, err := qoi.Decode(r)
	if err != nil {
		return codec.Image{}, err
	}
	b := src.Bounds()
	rows := make(shape.Array2D[color.NRGBA], b.Dy())
	channels := pixel.RGB
	for y := range rows {
		rows[y] = make([]color.NRGBA, b.Dx())
		for x := range rows[y] {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A != 0xFF {
				channels = pixel.RGBA
			}
			rows[y][x] = c
		}
	}
	return codec.Image{
		Rows: shape.Map(rows, func(c color.NRGBA) pixel.RGBA16 {
			p := pixel.RGBA16{R: widen(c.R), G: widen(c.G), B: widen(c.B)}
			if channels == pixel.RGBA {
				p.A = widen(c.A)
			}
			return p
		}),
		Channels: channels,
	}, nil
}

// Write encodes the image. Alpha of 3-channel images is ignored and the
// result is opaque.
func Write(w io.Writer, img codec.Image) error {
	if err := pixel.Supported(img.Channels); err != nil {
		return err
	}
	rows := shape.Map(shape.Array2D[pixel.RGBA16](img.Rows), func(p pixel.RGBA16) color.NRGBA {
		c := color.NRGBA{R: narrow(p.R), G: narrow(p.G), B: narrow(p.B), A: 0xFF}
		if img.Channels == pixel.RGBA {
			c.A = narrow(p.A)
		}
		return c
	})
	dst := image.NewNRGBA(image.Rect(0, 0, img.Width(), img.Height()))
	for y := range rows {
		for x, c := range rows[y] {
			dst.SetNRGBA(x, y, c)
		}
	}
	return qoi.Encode(w, straight{dst})
}

// straight is an image whose colours report non-premultiplied samples from
// RGBA. The encoder stores RGBA results as is, while QOI keeps straight
// alpha.
type straight struct {
	*image.NRGBA
}

func (s straight) At(x, y int) color.Color {
	return straightColor(s.NRGBAAt(x, y))
}

type straightColor color.NRGBA

func (c straightColor) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, uint32(c.A) * 0x101
}

func widen(v uint8) uint16 {
	return uint16(v) * 0x101
}

func narrow(v uint16) uint8 {
	return uint8(v >> 8)
}
