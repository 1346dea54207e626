/*
Package lanes executes element-wise transformations of 2D arrays with a
streaming producer/consumer dataflow.

Concept

The row space of the input is divided into lanes. Every lane has two
stages:

    Producer - traverses lane rows and emits transformed values;
    Consumer - stores values into the output in arrival order;

Stages of a lane are coupled with a bounded FIFO channel, so a fast
producer is slowed down by its consumer. All lanes run concurrently and
write disjoint regions of the output, so no locking is required. It is
inspired with the pipeline pattern explained in the go blog
https://blog.golang.org/pipelines.

Operations

Operations are defined in transform package: flip, add, subtract,
multiply and crop. Any index permutation is done by the producer, the
channel only carries values.

Execution

Engine is created with immutable configuration:

    e, err := lanes.New[int64](lanes.Config{
        Lanes:       4,
        Repetitions: 1,
    })

Run validates inputs, builds the partition plan and blocks until all lanes
are done:

    op, _ := transform.New[int64](transform.Flip, transform.Region{})
    res, err := e.Run(op, width, height, buf)

Structural errors are detected before any lane starts and returned as
*ErrorConfig. Repetitions recompute the same output and only exist to get
stable timings.
*/
package lanes
