// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/lvla/internal/engine"
	"github.com/katalvlaran/lvla/matrix"
)

func evalCmd() *cli.Command {
	var scalar float64

	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate one operation and print the result as JSON",
		ArgsUsage: "OP MATRIX...",
		Description: "Each MATRIX is JSON (an array of rows, a flat row or a number) " +
			"or @path to a file holding it.",
		Flags: append(append(append(configFlags(), numericFlags()...), loggingFlags()...),
			&cli.Float64Flag{
				Name:        "scalar",
				Aliases:     []string{"p"},
				Usage:       "scalar parameter (exponent, tolerance, ddof, norm kind)",
				Destination: &scalar,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return cli.Exit("error: missing operation (see `lvla ops`)", 1)
			}
			cfg, err := loadConfig(cmd.IsSet)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			eng := engine.New(newLogger(cfg, nil), cfg.Options()...)

			req, err := buildRequest(cmd.Args().First(), cmd.Args().Tail())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if cmd.IsSet("scalar") {
				req.Scalar = &scalar
			}
			if err := runEval(ctx, os.Stdout, eng, req); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

// buildRequest decodes the positional operands of eval.
func buildRequest(op string, operands []string) (engine.Request, error) {
	req := engine.Request{Op: op, Args: make([]*matrix.Dense, 0, len(operands))}
	for i, raw := range operands {
		data := []byte(raw)
		if path, ok := strings.CutPrefix(raw, "@"); ok {
			b, err := os.ReadFile(path)
			if err != nil {
				return engine.Request{}, fmt.Errorf("operand %d: %w", i+1, err)
			}
			data = b
		}
		var m matrix.Dense
		if err := json.Unmarshal(data, &m); err != nil {
			return engine.Request{}, fmt.Errorf("operand %d: %w", i+1, err)
		}
		req.Args = append(req.Args, &m)
	}
	return req, nil
}

// runEval evaluates req and writes the indented JSON result to w.
func runEval(ctx context.Context, w io.Writer, eng *engine.Engine, req engine.Request) error {
	res, err := eng.Eval(ctx, req)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encode result: %w", req.Op, err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
