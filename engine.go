package lanes

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/pipelined/lanes/internal/channel"
	"github.com/pipelined/lanes/log"
	"github.com/pipelined/lanes/partition"
	"github.com/pipelined/lanes/shape"
	"github.com/pipelined/lanes/transform"
)

// Config is the immutable configuration of the engine.
type Config struct {
	// Lanes is the number of parallel partitions of the row space.
	Lanes int
	// Repetitions is how many times the operation is executed. Only the
	// last output is retained.
	Repetitions int
	// ChannelCapacity is the number of values buffered between stages of
	// a lane. Zero means channel.DefaultCapacity.
	ChannelCapacity int
	// BatchSize is the number of values handed over between stages at
	// once. Zero means channel.DefaultBatchSize.
	BatchSize int
}

// DefaultConfig returns configuration with a single lane and repetition.
func DefaultConfig() Config {
	return Config{
		Lanes:           1,
		Repetitions:     1,
		ChannelCapacity: channel.DefaultCapacity,
		BatchSize:       channel.DefaultBatchSize,
	}
}

// Validate checks the values that don't depend on input.
func (c Config) Validate() error {
	if c.Lanes <= 0 {
		return fmt.Errorf("%w: %d lanes", ErrInvalidLaneCount, c.Lanes)
	}
	if c.Repetitions < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRepetitions, c.Repetitions)
	}
	if c.ChannelCapacity < 0 || c.BatchSize < 0 {
		return fmt.Errorf("%w: capacity %d, batch size %d", ErrInvalidChannel, c.ChannelCapacity, c.BatchSize)
	}
	return nil
}

// Engine runs operations over linear buffers.
type Engine[T transform.Element] struct {
	uid  string
	name string
	cfg  Config
	log  log.Logger
}

// Result is the output of the last repetition.
type Result[T transform.Element] struct {
	Output  []T
	Width   int
	Height  int
	Timings []time.Duration
}

// Array returns output as 2D array. Rows share memory with Output.
func (r Result[T]) Array() (shape.Array2D[T], error) {
	return shape.Unflatten(r.Output, r.Width, r.Height)
}

// Elapsed returns total time of all repetitions.
func (r Result[T]) Elapsed() time.Duration {
	var d time.Duration
	for _, t := range r.Timings {
		d += t
	}
	return d
}

// New creates a new engine and applies provided options.
func New[T transform.Element](cfg Config, options ...Option) (*Engine[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError("new", err)
	}
	s := settings{log: log.Silent()}
	for _, option := range options {
		option(&s)
	}
	return &Engine[T]{
		uid:  xid.New().String(),
		name: s.name,
		cfg:  cfg,
		log:  s.log,
	}, nil
}

// Config returns engine configuration.
func (e *Engine[T]) Config() Config {
	return e.cfg
}

// Convert engine to string. Name is included if has value.
func (e *Engine[T]) String() string {
	if e.name == "" {
		return e.uid
	}
	return fmt.Sprintf("%v %v", e.name, e.uid)
}

// Run applies operation to inputs of width x height elements. It blocks
// until all lanes of the last repetition are done.
func (e *Engine[T]) Run(op transform.Operation[T], width, height int, inputs ...[]T) (Result[T], error) {
	plan, err := e.plan(op, width, height, inputs)
	if err != nil {
		return Result[T]{}, err
	}
	ow, oh := op.Shape(width, height)
	res := Result[T]{
		Output:  make([]T, ow*oh),
		Width:   ow,
		Height:  oh,
		Timings: make([]time.Duration, 0, e.cfg.Repetitions),
	}
	e.log.Debug(fmt.Sprintf("%v run %s %dx%d -> %dx%d with %d lanes", e, op.Name(), width, height, ow, oh, plan.Lanes()))
	for i := 0; i < e.cfg.Repetitions; i++ {
		start := time.Now()
		if err := e.repeat(op, plan, width, inputs, res.Output, ow); err != nil {
			return Result[T]{}, err
		}
		res.Timings = append(res.Timings, time.Since(start))
		e.log.Debug(fmt.Sprintf("%v repetition %d took %v", e, i, res.Timings[i]))
	}
	return res, nil
}

// plan validates inputs and divides rows into lanes.
func (e *Engine[T]) plan(op transform.Operation[T], width, height int, inputs [][]T) (partition.Plan, error) {
	if op == nil {
		return nil, configError("run", fmt.Errorf("%w: no operation", ErrArity))
	}
	if len(inputs) != op.Arity() {
		return nil, configError(op.Name(), fmt.Errorf("%w: %d inputs, expected %d", ErrArity, len(inputs), op.Arity()))
	}
	if width <= 0 || height <= 0 {
		return nil, configError(op.Name(), fmt.Errorf("%w: %dx%d", ErrEmptyInput, width, height))
	}
	for i := range inputs {
		if len(inputs[i]) != width*height {
			return nil, configError(op.Name(), fmt.Errorf("%w: input %d has %d elements, expected %dx%d", ErrShapeMismatch, i, len(inputs[i]), width, height))
		}
	}
	if err := op.Validate(width, height); err != nil {
		return nil, configError(op.Name(), err)
	}
	plan, err := partition.Build(height, e.cfg.Lanes)
	if err != nil {
		return nil, configError(op.Name(), err)
	}
	return plan, nil
}

// repeat executes all lanes once and waits for them.
func (e *Engine[T]) repeat(op transform.Operation[T], plan partition.Plan, width int, inputs [][]T, dst []T, outWidth int) error {
	g, ctx := errgroup.WithContext(context.Background())
	for i, r := range plan {
		out := op.Rows(r)
		l := lane[T]{
			id:    xid.New().String(),
			index: i,
			op:    op,
			in: input[T]{
				buffers: inputs,
				width:   width,
				rows:    r,
			},
			out: output[T]{
				dst:    dst,
				offset: out.Start * outWidth,
				count:  out.Len() * outWidth,
			},
			capacity:  e.cfg.ChannelCapacity,
			batchSize: e.cfg.BatchSize,
			log:       e.log,
		}
		g.Go(func() error {
			return l.run(ctx)
		})
	}
	return g.Wait()
}

// Run creates engine with provided configuration and runs the operation.
func Run[T transform.Element](cfg Config, op transform.Operation[T], width, height int, inputs ...[]T) (Result[T], error) {
	e, err := New[T](cfg)
	if err != nil {
		return Result[T]{}, err
	}
	return e.Run(op, width, height, inputs...)
}

// Run2D flattens arrays, runs the operation and returns the output as 2D
// array. All inputs must have the same shape.
func Run2D[T transform.Element](cfg Config, op transform.Operation[T], inputs ...shape.Array2D[T]) (shape.Array2D[T], error) {
	if len(inputs) == 0 {
		return nil, configError("run", fmt.Errorf("%w: no inputs", ErrEmptyInput))
	}
	bufs := make([][]T, len(inputs))
	var width, height int
	for i := range inputs {
		buf, w, h, err := shape.Flatten(inputs[i])
		if err != nil {
			return nil, configError("flatten", err)
		}
		if i > 0 && (w != width || h != height) {
			return nil, configError("flatten", fmt.Errorf("%w: input %d is %dx%d, expected %dx%d", ErrShapeMismatch, i, w, h, width, height))
		}
		bufs[i], width, height = buf, w, h
	}
	res, err := Run(cfg, op, width, height, bufs...)
	if err != nil {
		return nil, err
	}
	return res.Array()
}
