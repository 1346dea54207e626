// Package transform defines element-wise operations executed by lanes.
//
// Operation describes how a producer traverses input buffers for a range
// of rows. Any index permutation happens in Produce, so consumers only
// append values to the output in arrival order.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pipelined/lanes/partition"
)

// Element is the constraint for values processed by operations.
type Element interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	// ErrOutOfBounds is returned when crop region exceeds source bounds.
	ErrOutOfBounds = errors.New("region out of bounds")
	// ErrArity is returned when number of inputs doesn't match operation.
	ErrArity = errors.New("wrong number of inputs")
	// ErrUnknownKind is returned when operation name is not recognised.
	ErrUnknownKind = errors.New("unknown operation")
)

// Operation is a stateless rule applied by producer stages.
type Operation[T Element] interface {
	// Name of the operation.
	Name() string
	// Arity is the number of input buffers.
	Arity() int
	// Validate checks that operation can be applied to the input shape.
	Validate(width, height int) error
	// Shape returns output dimensions for input dimensions.
	Shape(width, height int) (int, int)
	// Rows maps input rows to the output rows they produce.
	Rows(r partition.Range) partition.Range
	// Produce emits output values for input rows in r.
	Produce(inputs [][]T, width int, r partition.Range, emit func(T) error) error
}

// Kind enumerates operations.
type Kind int

// Supported kinds of operations.
const (
	Flip Kind = iota
	Add
	Subtract
	Multiply
	Crop
)

var kindNames = []string{
	Flip:     "flip",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Crop:     "crop",
}

var kindHelp = []string{
	Flip:     "reverse every row",
	Add:      "element-wise sum of two arrays",
	Subtract: "element-wise difference of two arrays",
	Multiply: "element-wise product of two arrays",
	Crop:     "copy a rectangular region",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Help returns short description of the operation.
func (k Kind) Help() string {
	if k < 0 || int(k) >= len(kindHelp) {
		return ""
	}
	return kindHelp[k]
}

// Arithmetic reports if the kind combines two arrays.
func (k Kind) Arithmetic() bool {
	return k == Add || k == Subtract || k == Multiply
}

// Kinds returns all supported kinds.
func Kinds() []Kind {
	return []Kind{Flip, Add, Subtract, Multiply, Crop}
}

// ParseKind returns kind by its name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New returns operation of provided kind. Region is used only by crop.
func New[T Element](k Kind, region Region) (Operation[T], error) {
	switch k {
	case Flip:
		return Flipper[T]{}, nil
	case Add:
		return Arithmetic[T]{Kind: Add, Fn: func(a, b T) T { return a + b }}, nil
	case Subtract:
		return Arithmetic[T]{Kind: Subtract, Fn: func(a, b T) T { return a - b }}, nil
	case Multiply:
		return Arithmetic[T]{Kind: Multiply, Fn: func(a, b T) T { return a * b }}, nil
	case Crop:
		return Cropper[T]{Region: region}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
}
