// Package wav reads and writes PCM wav files as integer arrays with one
// row per frame and one column per channel.
package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/shape"
)

const pcmFormat = 1

var (
	// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32 bit depth is supported")
	// ErrInvalidFile is returned when input is not a valid wav file.
	ErrInvalidFile = errors.New("wav is not valid")
)

func supported(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}

// Read decodes all frames.
func Read(r io.ReadSeeker) (codec.Samples, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return codec.Samples{}, ErrInvalidFile
	}
	if err := supported(int(decoder.BitDepth)); err != nil {
		return codec.Samples{}, err
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return codec.Samples{}, err
	}
	numChannels := buf.Format.NumChannels
	if numChannels <= 0 {
		return codec.Samples{}, fmt.Errorf("%w: %d channels", ErrInvalidFile, numChannels)
	}
	frames := make([]int64, len(buf.Data)-len(buf.Data)%numChannels)
	for i := range frames {
		frames[i] = int64(buf.Data[i])
	}
	a, err := shape.Unflatten(frames, numChannels, len(frames)/numChannels)
	if err != nil {
		return codec.Samples{}, err
	}
	return codec.Samples{
		Frames:     a,
		SampleRate: int(decoder.SampleRate),
		BitDepth:   int(decoder.BitDepth),
	}, nil
}

// Write encodes frames. Samples must fit into bit depth.
func Write(w io.WriteSeeker, s codec.Samples) error {
	if err := supported(s.BitDepth); err != nil {
		return err
	}
	data, numChannels, _, err := shape.Flatten(s.Frames)
	if err != nil {
		return err
	}
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  s.SampleRate,
		},
		Data:           make([]int, len(data)),
		SourceBitDepth: s.BitDepth,
	}
	for i := range data {
		ib.Data[i] = int(data[i])
	}
	e := wav.NewEncoder(w, s.SampleRate, s.BitDepth, numChannels, pcmFormat)
	if err := e.Write(ib); err != nil {
		e.Close()
		return err
	}
	return e.Close()
}

// ReadFile reads samples from the file.
func ReadFile(path string) (codec.Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return codec.Samples{}, err
	}
	defer f.Close()
	return Read(f)
}

// WriteFile saves samples to the file.
func WriteFile(path string, s codec.Samples) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, s)
}
