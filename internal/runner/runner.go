// Package runner executes the two stages of a lane. Every stage runs in its
// own goroutine and reports errors through a channel that is closed when
// the stage is done.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pipelined/lanes/internal/channel"
	"github.com/pipelined/lanes/metric"
	"github.com/pipelined/lanes/partition"
	"github.com/pipelined/lanes/transform"
)

var (
	// ErrShortLane is returned when producer emits less values than
	// consumer expects.
	ErrShortLane = errors.New("lane produced less values than expected")
	// ErrLongLane is returned when producer emits more values than
	// consumer expects.
	ErrLongLane = errors.New("lane produced more values than expected")
)

type (
	// Producer executes producer stage of a lane: it traverses input rows
	// with the operation and writes every value into the channel.
	Producer[T transform.Element] struct {
		Op     transform.Operation[T]
		Inputs [][]T
		Width  int
		Rows   partition.Range
		Out    *channel.Channel[T]
		Meter  metric.ResetFunc
		Flush
	}

	// Consumer executes consumer stage of a lane: it reads Count values
	// from the channel and stores them into Dst starting at Offset.
	Consumer[T transform.Element] struct {
		In     *channel.Channel[T]
		Dst    []T
		Offset int
		Count  int
		Meter  metric.ResetFunc
		Flush
	}
)

// Flush is a closure that is called when stage is done.
type Flush func(context.Context) error

func (fn Flush) call(ctx context.Context) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func measure(r metric.ResetFunc) metric.MeasureFunc {
	if r == nil {
		return func(int64) {}
	}
	return r()
}

// Run starts the producer.
func (r Producer[T]) Run(ctx context.Context) <-chan error {
	errs := make(chan error, 2)
	go func() {
		defer close(errs)
		// Flush hook on return
		defer func() {
			if err := r.Flush.call(ctx); err != nil {
				errs <- fmt.Errorf("error flushing producer: %w", err)
			}
		}()
		meter := measure(r.Meter)
		batchSize := int64(r.Out.BatchSize())
		var n int64
		err := r.Op.Produce(r.Inputs, r.Width, r.Rows, func(v T) error {
			if err := r.Out.Write(v); err != nil {
				return err
			}
			if n++; n == batchSize {
				meter(n) // capture metrics
				n = 0
			}
			return nil
		})
		// channel is closed in any case to release the consumer
		if cerr := r.Out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			errs <- fmt.Errorf("error running producer: %w", err)
			return
		}
		if n > 0 {
			meter(n)
		}
	}()
	return errs
}

// Run starts the consumer.
func (r Consumer[T]) Run(ctx context.Context) <-chan error {
	errs := make(chan error, 2)
	go func() {
		defer close(errs)
		// Flush hook on return
		defer func() {
			if err := r.Flush.call(ctx); err != nil {
				errs <- fmt.Errorf("error flushing consumer: %w", err)
			}
		}()
		meter := measure(r.Meter)
		batchSize := r.In.BatchSize()
		var (
			v   T
			err error
			n   int
		)
		for k := 0; k < r.Count; k++ {
			if v, err = r.In.Read(); err != nil {
				if err == io.EOF {
					err = fmt.Errorf("%w: %d of %d", ErrShortLane, k, r.Count)
				}
				errs <- fmt.Errorf("error running consumer: %w", err)
				return
			}
			r.Dst[r.Offset+k] = v
			if n++; n == batchSize {
				meter(int64(n)) // capture metrics
				n = 0
			}
		}
		if n > 0 {
			meter(int64(n))
		}
		// producer must be done after the last value
		switch _, err = r.In.Read(); err {
		case io.EOF:
		case nil:
			errs <- fmt.Errorf("error running consumer: %w", ErrLongLane)
		default:
			errs <- fmt.Errorf("error running consumer: %w", err)
		}
	}()
	return errs
}
