// Package csv reads and writes integer arrays as comma separated values.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pipelined/lanes/shape"
)

// ZstdExt is the suffix of compressed files.
const ZstdExt = ".zst"

// Read parses one row per line. Values are separated with commas and may be
// surrounded with whitespace. Empty lines are skipped.
func Read(r io.Reader) (shape.Array2D[int64], error) {
	cr := stdcsv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var a shape.Array2D[int64]
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]int64, 0, len(record))
		for i, field := range record {
			field = strings.TrimSpace(field)
			if field == "" && i == len(record)-1 && i > 0 {
				// trailing comma
				continue
			}
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row = append(row, v)
		}
		a = append(a, row)
	}
	return a, nil
}

// Write writes one row per line. Rows with a single value have no
// separators.
func Write(w io.Writer, a shape.Array2D[int64]) error {
	cw := stdcsv.NewWriter(w)
	var record []string
	for i := range a {
		record = record[:0]
		for _, v := range a[i] {
			record = append(record, strconv.FormatInt(v, 10))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFile reads array from the file. Files with ZstdExt suffix are
// decompressed.
func ReadFile(path string) (shape.Array2D[int64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !compressed(path) {
		return Read(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return Read(dec)
}

// WriteFile writes array to the file. Files with ZstdExt suffix are
// compressed.
func WriteFile(path string, a shape.Array2D[int64]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !compressed(path) {
		return Write(f, a)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := Write(enc, a); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func compressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ZstdExt)
}
