// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/lvla/internal/engine"
)

func opsCmd() *cli.Command {
	return &cli.Command{
		Name:  "ops",
		Usage: "List the available operations",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return listOps(os.Stdout, engine.New(nil))
		},
	}
}

func listOps(w io.Writer, eng *engine.Engine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tARGS\tSCALAR\tDESCRIPTION")
	for _, op := range eng.Ops() {
		s := op.Scalar
		if s == "" {
			s = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", op.Name, op.Arity, s, op.Usage)
	}
	return tw.Flush()
}
