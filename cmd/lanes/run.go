package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/pipelined/lanes"
	"github.com/pipelined/lanes/codec"
	"github.com/pipelined/lanes/log"
	"github.com/pipelined/lanes/metric"
	"github.com/pipelined/lanes/shape"
	"github.com/pipelined/lanes/transform"
)

type runCommand struct {
	op       string
	in       string
	in2      string
	out      string
	lanes    int
	reps     int
	capacity int
	batch    int
	crop     regionValue
}

// regionValue implements flag.Value for crop region.
type regionValue struct {
	transform.Region
	set bool
}

func (v *regionValue) String() string {
	if v == nil || !v.set {
		return ""
	}
	return v.Region.String()
}

func (v *regionValue) Set(s string) error {
	r, err := transform.ParseRegion(s)
	if err != nil {
		return err
	}
	v.Region, v.set = r, true
	return nil
}

func (cmd *runCommand) Name() string {
	return "run"
}

func (cmd *runCommand) Help() string {
	return "Apply operation to input files and save the result"
}

func (cmd *runCommand) Register(fs *flag.FlagSet) {
	def := lanes.DefaultConfig()
	fs.StringVar(&cmd.op, "op", "", "operation to apply, see list command (required)")
	fs.StringVar(&cmd.in, "in", "", "input file: csv, csv.zst, wav, png or qoi (required)")
	fs.StringVar(&cmd.in2, "in2", "", "second input file for arithmetic operations")
	fs.StringVar(&cmd.out, "out", "", "output file (required)")
	fs.IntVar(&cmd.lanes, "lanes", def.Lanes, "number of parallel lanes")
	fs.IntVar(&cmd.reps, "reps", def.Repetitions, "number of repetitions")
	fs.IntVar(&cmd.capacity, "capacity", def.ChannelCapacity, "values buffered between stages of a lane")
	fs.IntVar(&cmd.batch, "batch", def.BatchSize, "values handed over between stages at once")
	fs.Var(&cmd.crop, "crop", "crop region as x,y,width,height")
}

func (cmd *runCommand) Validate() (transform.Kind, error) {
	var message string
	if cmd.in == "" {
		message = message + "Missing -in required flag\n"
	}
	if cmd.out == "" {
		message = message + "Missing -out required flag\n"
	}
	kind, err := transform.ParseKind(cmd.op)
	if err != nil {
		message = message + fmt.Sprintf("Invalid -op flag: %v\n", err)
	}
	if err == nil && kind.Arithmetic() && cmd.in2 == "" {
		message = message + fmt.Sprintf("Missing -in2 flag required by %v\n", kind)
	}
	if err == nil && kind == transform.Crop && !cmd.crop.set {
		message = message + "Missing -crop flag required by crop\n"
	}
	if message != "" {
		return 0, errors.New(message)
	}
	return kind, nil
}

func (cmd *runCommand) config() lanes.Config {
	return lanes.Config{
		Lanes:           cmd.lanes,
		Repetitions:     cmd.reps,
		ChannelCapacity: cmd.capacity,
		BatchSize:       cmd.batch,
	}
}

func (cmd *runCommand) Run(w io.Writer) error {
	start := time.Now()
	kind, err := cmd.Validate()
	if err != nil {
		return err
	}
	logger := log.GetLogger()
	cfg := cmd.config()
	logger.Debugf("configuration: %s", spew.Sdump(cfg))

	in, err := load(cmd.in)
	if err != nil {
		return err
	}
	var out dataset
	if in.format.Image() {
		if kind.Arithmetic() {
			return fmt.Errorf("%v is not supported for %v images", kind, in.format)
		}
		res, err := execute(w, logger, cfg, kind, cmd.crop.Region, in.image.Packed())
		if err != nil {
			return err
		}
		if out.image, err = codec.FromPacked(res, in.image.Channels); err != nil {
			return err
		}
		out.format = in.format
	} else {
		inputs := []shape.Array2D[int64]{in.ints}
		if kind.Arithmetic() {
			in2, err := load(cmd.in2)
			if err != nil {
				return err
			}
			if in2.format.Image() {
				return fmt.Errorf("%v is not supported for %v images", kind, in2.format)
			}
			inputs = append(inputs, in2.ints)
		}
		res, err := execute(w, logger, cfg, kind, cmd.crop.Region, inputs...)
		if err != nil {
			return err
		}
		out = in
		out.ints = res
	}
	if err := save(cmd.out, out); err != nil {
		return err
	}
	logMetrics(logger)
	fmt.Fprintf(w, "Computation and I/O was %v\n", time.Since(start))
	return nil
}

// execute runs operation and prints computation time of every repetition.
func execute[T transform.Element](w io.Writer, logger *logrus.Logger, cfg lanes.Config, kind transform.Kind, region transform.Region, inputs ...shape.Array2D[T]) (shape.Array2D[T], error) {
	op, err := transform.New[T](kind, region)
	if err != nil {
		return nil, err
	}
	bufs := make([][]T, len(inputs))
	var width, height int
	for i := range inputs {
		buf, bw, bh, err := shape.Flatten(inputs[i])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i+1, err)
		}
		if i > 0 && (bw != width || bh != height) {
			return nil, fmt.Errorf("input %d is %dx%d, expected %dx%d: %w", i+1, bw, bh, width, height, shape.ErrShapeMismatch)
		}
		bufs[i], width, height = buf, bw, bh
	}

	e, err := lanes.New[T](cfg, lanes.WithLogger(logger), lanes.WithName(kind.String()))
	if err != nil {
		return nil, err
	}
	res, err := e.Run(op, width, height, bufs...)
	if err != nil {
		return nil, err
	}
	for i, d := range res.Timings {
		fmt.Fprintf(w, "Repetition %d computation was %v\n", i+1, d)
	}
	return res.Array()
}

func logMetrics(logger *logrus.Logger) {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	all := metric.GetAll()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.WithFields(toFields(all[name])).Debug(name)
	}
}

func toFields(m map[string]string) logrus.Fields {
	f := make(logrus.Fields, len(m))
	for k, v := range m {
		f[k] = v
	}
	return f
}
