package lanes

import (
	"context"
	"fmt"

	"github.com/pipelined/lanes/internal/channel"
	"github.com/pipelined/lanes/internal/runner"
	"github.com/pipelined/lanes/log"
	"github.com/pipelined/lanes/metric"
	"github.com/pipelined/lanes/partition"
	"github.com/pipelined/lanes/transform"
)

type (
	// lane is a producer/consumer pair coupled with a channel.
	lane[T transform.Element] struct {
		id        string
		index     int
		op        transform.Operation[T]
		in        input[T]
		out       output[T]
		capacity  int
		batchSize int
		log       log.Logger
	}

	// input is the read-only view of lane rows.
	input[T transform.Element] struct {
		buffers [][]T
		width   int
		rows    partition.Range
	}

	// output is the region of destination buffer owned by the lane.
	output[T transform.Element] struct {
		dst    []T
		offset int
		count  int
	}
)

// run starts both stages and blocks until they are done. The first error
// aborts the channel, so the other stage is released.
func (l lane[T]) run(ctx context.Context) error {
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	ch := channel.New[T](l.capacity, l.batchSize, ctx.Done())
	p := runner.Producer[T]{
		Op:     l.op,
		Inputs: l.in.buffers,
		Width:  l.in.width,
		Rows:   l.in.rows,
		Out:    ch,
		Meter:  metric.Meter(runner.Producer[T]{}),
	}
	c := runner.Consumer[T]{
		In:     ch,
		Dst:    l.out.dst,
		Offset: l.out.offset,
		Count:  l.out.count,
		Meter:  metric.Meter(runner.Consumer[T]{}),
	}
	l.log.Debug(fmt.Sprintf("lane %d %v started rows %v", l.index, l.id, l.in.rows))

	var errs execErrors
	for err := range mergeErrors(p.Run(ctx), c.Run(ctx)) {
		cancelFn()
		errs = append(errs, err)
	}
	if err := errs.ret(); err != nil {
		l.log.Debug(fmt.Sprintf("lane %d %v failed: %v", l.index, l.id, err))
		return &ErrorRun{Lane: l.index, Err: err}
	}
	l.log.Debug(fmt.Sprintf("lane %d %v consumed %d values into [%d,%d)", l.index, l.id, l.out.count, l.out.offset, l.out.offset+l.out.count))
	return nil
}
