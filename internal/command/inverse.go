// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/invcache/cachesolve"
	"github.com/katalvlaran/invcache/gonuminv"
	"github.com/katalvlaran/invcache/internal/matrixio"
	"github.com/katalvlaran/invcache/matrix"
)

// Inversion engines selectable with --engine.
const (
	EngineLU    = "lu"
	EngineGonum = "gonum"
)

var (
	// ErrUsage reports bad arguments or flag values.
	ErrUsage = errors.New("usage error")

	// ErrCheckFailed reports that --check found M×inv too far from I.
	ErrCheckFailed = errors.New("inverse check failed")
)

// InverseCommandBuilder constructs the cli.Command for "inverse". Flags
// engine, output, digits, tol and no-pivot fall back to the inverse.* keys
// of the config file.
func InverseCommandBuilder(meta Meta) *cli.Command {
	src := altsrc.StringSourcer(meta.Config.Source)

	return &cli.Command{
		Name:      "inverse",
		Usage:     "print the inverse of a square matrix",
		UsageText: `invcache inverse [options] FILE`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "verify that M×inv is within --tol of the identity",
			},
			&cli.IntFlag{
				Name:  "digits",
				Usage: "decimals kept by text output, 0 to 6; extra digits are truncated",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("inverse.digits", src),
				),
				Value: matrixio.DefaultDigits,
			},
			&cli.StringFlag{
				Name:  "engine",
				Usage: "inversion engine: lu or gonum",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("inverse.engine", src),
				),
				Value: EngineLU,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "input format: yaml or json (default: from the file extension)",
			},
			&cli.BoolFlag{
				Name:  "no-pivot",
				Usage: "disable partial pivoting in the lu engine",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("inverse.no-pivot", src),
				),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format: text, yaml or json",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("inverse.output", src),
				),
				Value: matrixio.OutputText,
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "gjson path of the matrix inside a json document",
			},
			&cli.FloatFlag{
				Name:  "pivot-tol",
				Usage: "absolute pivot threshold for the lu engine; 0 keeps the relative n·ε·max|A| default",
				Value: 0,
			},
			&cli.IntFlag{
				Name:  "repeat",
				Usage: "resolve the inverse this many times; repeats are cache hits",
				Value: 1,
			},
			&cli.FloatFlag{
				Name:  "tol",
				Usage: "absolute tolerance for --check",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("inverse.tol", src),
				),
				Value: matrix.DefaultEpsilon,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := InverseCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return InverseCommandAction(ctx, cmd)
		},
	}
}

// InverseCommandValidator checks arguments and flag values before any
// file is read.
func InverseCommandValidator(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("inverse: expected one FILE argument, got %d: %w", cmd.NArg(), ErrUsage)
	}
	switch strings.ToLower(cmd.String("engine")) {
	case EngineLU, EngineGonum:
	default:
		return fmt.Errorf("inverse: --engine %q: %w", cmd.String("engine"), ErrUsage)
	}
	switch strings.ToLower(cmd.String("output")) {
	case matrixio.OutputText, matrixio.OutputYAML, matrixio.OutputJSON:
	default:
		return fmt.Errorf("inverse: --output %q: %w", cmd.String("output"), ErrUsage)
	}
	if d := cmd.Int("digits"); d < 0 || d > matrixio.MaxDigits {
		return fmt.Errorf("inverse: --digits must be between 0 and %d: %w", matrixio.MaxDigits, ErrUsage)
	}
	if cmd.Int("repeat") < 1 {
		return fmt.Errorf("inverse: --repeat must be at least 1: %w", ErrUsage)
	}
	for _, name := range []string{"tol", "pivot-tol"} {
		if v := cmd.Float(name); v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("inverse: --%s must be finite and non-negative: %w", name, ErrUsage)
		}
	}

	return nil
}

// InverseCommandAction decodes FILE, resolves its inverse --repeat times
// through one CachedMatrix and prints the result.
func InverseCommandAction(_ context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	file := cmd.Args().First()
	format := cmd.String("format")
	if format == "" {
		var err error
		if format, err = matrixio.FormatFromPath(file); err != nil {
			return fmt.Errorf("inverse: %w", err)
		}
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("inverse: %w", err)
	}
	a, err := matrixio.Decode(data, format, cmd.String("path"))
	if err != nil {
		return fmt.Errorf("inverse: %s: %w", file, err)
	}
	log.WithFields(log.Fields{
		"file": file,
		"rows": a.Rows(),
		"cols": a.Cols(),
	}).Debug("decoded matrix")

	solver := cachesolve.NewSolver(cachesolve.WithInverse(engine(cmd.String("engine"))))
	cm := cachesolve.NewCachedMatrix(a)
	opts := inverseOptions(cmd)

	var inv matrix.Matrix
	for i := 0; i < cmd.Int("repeat"); i++ {
		if inv, err = solver.Solve(cm, opts...); err != nil {
			return fmt.Errorf("inverse: %s: %w", file, err)
		}
	}

	if cmd.Bool("check") {
		ok, err := matrix.IsInverse(a, inv, cmd.Float("tol"))
		if err != nil {
			return fmt.Errorf("inverse: %w", err)
		}
		residual, err := matrix.Residual(a, inv)
		if err != nil {
			return fmt.Errorf("inverse: %w", err)
		}
		if !ok {
			return fmt.Errorf("inverse: %s: residual %g exceeds tol %g: %w",
				file, residual, cmd.Float("tol"), ErrCheckFailed)
		}
		log.WithField("residual", residual).Debug("inverse check passed")
	}

	return matrixio.Encode(cmd.Root().Writer, inv, cmd.String("output"), cmd.Int("digits"))
}

// engine maps an --engine value to an inversion function.
func engine(name string) cachesolve.InverseFunc {
	if strings.EqualFold(name, EngineGonum) {
		return gonuminv.Inverse
	}

	return matrix.Inverse
}

// inverseOptions translates the pivoting flags into matrix options.
func inverseOptions(cmd *cli.Command) []matrix.Option {
	var opts []matrix.Option
	if cmd.Bool("no-pivot") {
		opts = append(opts, matrix.WithNoPivoting())
	}
	if tol := cmd.Float("pivot-tol"); tol > 0 {
		opts = append(opts, matrix.WithPivotTolerance(tol))
	}

	return opts
}
