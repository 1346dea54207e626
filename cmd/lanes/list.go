package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pipelined/lanes/transform"
)

type listCommand struct{}

func (cmd *listCommand) Name() string {
	return "list"
}

func (cmd *listCommand) Help() string {
	return "Show the list of available operations"
}

func (cmd *listCommand) Register(*flag.FlagSet) {}

func (cmd *listCommand) Run(w io.Writer) error {
	fmt.Fprintln(w, "Available operations:")
	for _, k := range transform.Kinds() {
		fmt.Fprintf(w, "\t%s\t%s\n", k, k.Help())
	}
	return nil
}
