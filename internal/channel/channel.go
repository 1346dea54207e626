// Package channel provides bounded single-producer single-consumer FIFO
// that couples two pipeline stages.
//
// Values are handed over in batches to reduce synchronisation cost. Both
// sides still see a per-value interface: Write blocks while the channel is
// full, Read blocks while it's empty.
package channel

import (
	"errors"
	"io"

	"golang.org/x/sys/cpu"

	"github.com/pipelined/lanes/internal/pool"
)

const (
	// DefaultCapacity is the number of values buffered between stages.
	DefaultCapacity = 1000
	// DefaultBatchSize is the number of values handed over at once.
	DefaultBatchSize = 16
)

// ErrAborted is returned when blocked operation is interrupted by done
// channel.
var ErrAborted = errors.New("channel aborted")

// Channel is a bounded FIFO. It's NOT safe for multiple producers or
// multiple consumers.
type Channel[T any] struct {
	batches chan []T
	done    <-chan struct{}
	pool    *pool.Pool[T]

	_      cpu.CacheLinePad
	w      []T
	closed bool

	_    cpu.CacheLinePad
	r    []T
	rpos int
}

// New creates a channel that buffers at least capacity values and transfers
// them in batches of batchSize. Non-positive values fall back to defaults.
// Closing done aborts blocked reads and writes.
func New[T any](capacity, batchSize int, done <-chan struct{}) *Channel[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > capacity {
		batchSize = capacity
	}
	return &Channel[T]{
		batches: make(chan []T, (capacity+batchSize-1)/batchSize),
		done:    done,
		pool:    pool.Get[T](batchSize),
	}
}

// Cap returns number of values that can be buffered without blocking.
func (c *Channel[T]) Cap() int {
	return cap(c.batches) * c.pool.BatchSize()
}

// BatchSize returns number of values transferred at once.
func (c *Channel[T]) BatchSize() int {
	return c.pool.BatchSize()
}

// Write enqueues the value. Full batch is handed over to the reader,
// blocking if there is no space.
func (c *Channel[T]) Write(v T) error {
	if c.w == nil {
		c.w = c.pool.Alloc()
	}
	c.w = append(c.w, v)
	if len(c.w) < cap(c.w) {
		return nil
	}
	return c.send()
}

// Close hands over the last incomplete batch and closes the channel. Reader
// receives io.EOF after all values are drained.
func (c *Channel[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	defer close(c.batches)
	if len(c.w) > 0 {
		return c.send()
	}
	return nil
}

func (c *Channel[T]) send() error {
	select {
	case c.batches <- c.w:
		c.w = nil
		return nil
	case <-c.done:
		return ErrAborted
	}
}

// Read dequeues the next value, blocking until one is available.
func (c *Channel[T]) Read() (T, error) {
	for c.rpos >= len(c.r) {
		if c.r != nil {
			c.pool.Free(c.r)
			c.r = nil
		}
		select {
		case b, ok := <-c.batches:
			if !ok {
				var zero T
				return zero, io.EOF
			}
			c.r, c.rpos = b, 0
		case <-c.done:
			var zero T
			return zero, ErrAborted
		}
	}
	v := c.r[c.rpos]
	c.rpos++
	return v, nil
}
