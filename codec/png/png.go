// Package png decodes and encodes PNG images as 16-bit pixels.
package png

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/pixel"
)

type opaquer interface {
	Opaque() bool
}

// Read decodes the image. Images with transparency have 4 channels, opaque
// images have 3 and their alpha is zero.
func Read(r io.Reader) (codec.Image, error) {
	src, err := png.Decode(r)
	if err != nil {
		return codec.Image{}, err
	}
	channels := pixel.RGBA
	if o, ok := src.(opaquer); ok && o.Opaque() {
		channels = pixel.RGB
	}
	return FromImage(src, channels)
}

// FromImage converts any image into 16-bit pixels with provided number of
// channels.
func FromImage(src image.Image, channels int) (codec.Image, error) {
	if err := pixel.Supported(channels); err != nil {
		return codec.Image{}, err
	}
	b := src.Bounds()
	img := codec.Image{
		Rows:     make([][]pixel.RGBA16, b.Dy()),
		Channels: channels,
	}
	raw := make([]uint16, b.Dx()*channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
			s := raw[(x-b.Min.X)*channels:]
			s[0], s[1], s[2] = c.R, c.G, c.B
			if channels == pixel.RGBA {
				s[3] = c.A
			}
		}
		row, err := pixel.DecodeRow(raw, channels)
		if err != nil {
			return codec.Image{}, err
		}
		img.Rows[y-b.Min.Y] = row
	}
	return img, nil
}

// ToImage converts pixels into image. Alpha of 3-channel images is ignored
// and the result is opaque.
func ToImage(img codec.Image) (*image.NRGBA64, error) {
	if err := pixel.Supported(img.Channels); err != nil {
		return nil, err
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, img.Width(), img.Height()))
	var raw []uint16
	for y, row := range img.Rows {
		var err error
		if raw, err = pixel.EncodeRow(row, img.Channels, raw); err != nil {
			return nil, err
		}
		for x := range row {
			s := raw[x*img.Channels:]
			c := color.NRGBA64{R: s[0], G: s[1], B: s[2], A: 0xFFFF}
			if img.Channels == pixel.RGBA {
				c.A = s[3]
			}
			dst.SetNRGBA64(x, y, c)
		}
	}
	return dst, nil
}

// Write encodes the image with 16-bit samples.
func Write(w io.Writer, img codec.Image) error {
	dst, err := ToImage(img)
	if err != nil {
		return err
	}
	return png.Encode(w, dst)
}
