// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/someonegg/stablematch/instance"
	"github.com/someonegg/stablematch/prefscore"
)

var deriveCmd = &cli.Command{
	Name:    "derive",
	Usage:   "Derive an instance from a score sheet",
	Aliases: []string{"d"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "sheet",
			Required: true,
			Usage:    "specify the input score sheet (json or yaml)",
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
			sheetFile = ctx.String("sheet")
			output    = ctx.String("output")
		)

		sheet, err := loadSheet(ctx, sheetFile)
		if err != nil {
			return fmt.Errorf("load sheet failed: %w", err)
		}
		proposers, receivers, err := sheet.Derive()
		if err != nil {
			return err
		}
		in := &instance.Instance{N: sheet.N, Proposers: proposers, Receivers: receivers}

		f, err := formatFor(ctx.String("out-format"), "", output)
		if err != nil {
			return err
		}
		return writeTo(ctx, output, func(w io.Writer) error {
			return instance.Write(w, in, f)
		})
	},
}

func loadSheet(ctx *cli.Context, path string) (*prefscore.ScoreSheet, error) {
	var sheet prefscore.ScoreSheet
	if path == stdio {
		if err := instance.Decode(ctx.App.Reader, instance.YAML, &sheet); err != nil {
			return nil, err
		}
		return &sheet, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f := instance.FormatOf(path)
	if f == instance.Text {
		f = instance.YAML
	}
	if err := instance.Decode(file, f, &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}
