// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var verifyCmd = &cli.Command{
	Name:    "verify",
	Usage:   "Check a matching for blocking pairs",
	Aliases: []string{"v"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Required: true,
			Usage:    "specify the input instance",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "specify the input format (text, json, yaml)",
		},
		&cli.StringFlag{
			Name:     "matching",
			Required: true,
			Usage:    "specify the matching to check",
		},
		&cli.StringFlag{
			Name:  "matching-format",
			Usage: "specify the matching format (text, json, yaml)",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			input    = ctx.String("input")
			matching = ctx.String("matching")
		)
		if input == stdio && matching == stdio {
			return errors.New("only one of input and matching may be stdin")
		}

		inFormat, err := formatFor(ctx.String("format"), "", input)
		if err != nil {
			return err
		}
		mFormat, err := formatFor(ctx.String("matching-format"), "", matching)
		if err != nil {
			return err
		}

		in, err := loadInstance(ctx, input, inFormat)
		if err != nil {
			return fmt.Errorf("load input failed: %w", err)
		}
		tbl, err := in.Table()
		if err != nil {
			return err
		}

		o, err := loadOutcome(ctx, matching, mFormat)
		if err != nil {
			return fmt.Errorf("load matching failed: %w", err)
		}
		if o.N == 0 {
			o.N = tbl.N()
		}
		if o.N != tbl.N() {
			return fmt.Errorf("matching covers %d agents, instance has %d", o.N, tbl.N())
		}
		ps, err := o.PairSet()
		if err != nil {
			return err
		}

		if err := checkStable(tbl, ps, ctx.App.Writer); err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, "stable")
		return nil
	},
}
