package lanes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pipelined/lanes/partition"
	"github.com/pipelined/lanes/pixel"
	"github.com/pipelined/lanes/shape"
	"github.com/pipelined/lanes/transform"
)

var (
	// ErrInvalidRepetitions is returned when repetitions is less than one.
	ErrInvalidRepetitions = errors.New("invalid repetitions")
	// ErrInvalidChannel is returned for negative channel capacity or batch size.
	ErrInvalidChannel = errors.New("invalid channel settings")

	// ErrUnsupportedFormat is returned for pixels with unsupported channel count.
	ErrUnsupportedFormat = pixel.ErrUnsupportedFormat
	// ErrEmptyInput is returned for arrays without elements.
	ErrEmptyInput = shape.ErrEmptyInput
	// ErrShapeMismatch is returned for arrays with inconsistent dimensions.
	ErrShapeMismatch = shape.ErrShapeMismatch
	// ErrInvalidLaneCount is returned when lanes can't be planned.
	ErrInvalidLaneCount = partition.ErrInvalidLaneCount
	// ErrOutOfBounds is returned when crop region exceeds the input.
	ErrOutOfBounds = transform.ErrOutOfBounds
	// ErrArity is returned when number of inputs doesn't match operation.
	ErrArity = transform.ErrArity
)

// ErrorConfig is returned if engine can't be configured or run can't be
// started. No lanes are started when this error is returned.
type ErrorConfig struct {
	Op  string
	Err error
}

func (e *ErrorConfig) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}
	return fmt.Sprintf("config error: %s: %v", e.Op, e.Err)
}

// Unwrap returns underlying error.
func (e *ErrorConfig) Unwrap() error {
	return e.Err
}

// ErrorRun is returned if lanes were successfully started, but execution
// failed.
type ErrorRun struct {
	Lane int
	Err  error
}

func (e *ErrorRun) Error() string {
	return fmt.Sprintf("lane %d error: %v", e.Lane, e.Err)
}

// Unwrap returns underlying error.
func (e *ErrorRun) Unwrap() error {
	return e.Err
}

// execErrors wraps errors that might occure when both stages of a lane
// are failing.
type execErrors []error

func (e execErrors) Error() string {
	s := []string{}
	for _, se := range e {
		s = append(s, se.Error())
	}
	return strings.Join(s, ",")
}

// Unwrap allows errors.Is to check all errors.
func (e execErrors) Unwrap() []error {
	return e
}

// ret returns untyped nil if error is list is empty.
func (e execErrors) ret() error {
	if len(e) > 0 {
		return e
	}
	return nil
}

func configError(op string, err error) error {
	return &ErrorConfig{Op: op, Err: err}
}
