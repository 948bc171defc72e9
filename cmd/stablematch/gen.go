// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"

	"github.com/urfave/cli/v2"

	sm "github.com/someonegg/stablematch"
	"github.com/someonegg/stablematch/instance"
)

var genCmd = &cli.Command{
	Name:    "gen",
	Usage:   "Generate a random instance",
	Aliases: []string{"g"},
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "n",
			Required: true,
			Usage:    "specify the number of agents per side",
		},
		&cli.Float64Flag{
			Name:  "density",
			Value: 1.0,
			Usage: "specify the share of acceptable partners (0.0-1.0)",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "specify the random seed",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   stdio,
			Usage:   "specify the output instance (- for stdout)",
		},
		&cli.StringFlag{
			Name:  "out-format",
			Usage: "specify the output format (text, json, yaml)",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			n       = ctx.Int("n")
			density = ctx.Float64("density")
			seed    = ctx.Int64("seed")
			output  = ctx.String("output")
		)
		if n < 0 || n > sm.MaxAgents {
			return errors.New("invalid n")
		}
		if !(density >= 0.0 && density <= 1.0) {
			return errors.New("invalid density")
		}

		f, err := formatFor(ctx.String("out-format"), "", output)
		if err != nil {
			return err
		}

		in := instance.Random(n, density, seed)
		return writeTo(ctx, output, func(w io.Writer) error {
			return instance.Write(w, in, f)
		})
	},
}
