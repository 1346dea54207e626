package main

import (
	"fmt"
	"os"

	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/codec/csv"
	"github.com/pipelined/lanes/codec/png"
	"github.com/pipelined/lanes/codec/qoi"
	"github.com/pipelined/lanes/codec/wav"
	"github.com/pipelined/lanes/shape"
)

// dataset is a loaded file. Images are kept as pixels, everything else as
// integers.
type dataset struct {
	format  codec.Format
	ints    shape.Array2D[int64]
	image   codec.Image
	samples codec.Samples
}

func load(path string) (dataset, error) {
	format, err := codec.Detect(path)
	if err != nil {
		return dataset{}, err
	}
	ds := dataset{format: format}
	switch format {
	case codec.CSV, codec.CSVZst:
		ds.ints, err = csv.ReadFile(path)
	case codec.WAV:
		ds.samples, err = wav.ReadFile(path)
		ds.ints = ds.samples.Frames
	case codec.PNG, codec.QOI:
		ds.image, err = readImage(path, format)
	}
	if err != nil {
		return dataset{}, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

func readImage(path string, format codec.Format) (codec.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return codec.Image{}, err
	}
	defer f.Close()
	if format == codec.QOI {
		return qoi.Read(f)
	}
	return png.Read(f)
}

func save(path string, ds dataset) error {
	format, err := codec.Detect(path)
	if err != nil {
		return err
	}
	if format.Image() != ds.format.Image() {
		return fmt.Errorf("can't save %v data as %v", ds.format, format)
	}
	switch format {
	case codec.CSV, codec.CSVZst:
		err = csv.WriteFile(path, ds.ints)
	case codec.WAV:
		if ds.format != codec.WAV {
			return fmt.Errorf("can't save %v data as %v", ds.format, format)
		}
		s := ds.samples
		s.Frames = ds.ints
		err = wav.WriteFile(path, s)
	case codec.PNG, codec.QOI:
		err = writeImage(path, format, ds.image)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeImage(path string, format codec.Format, img codec.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if format == codec.QOI {
		return qoi.Write(f, img)
	}
	return png.Write(f, img)
}
