// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/someonegg/stablematch/config"
	"github.com/someonegg/stablematch/logging"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}

const configKey = "config"

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	var verbosity int

	return &cli.App{
		Name:                   "stablematch",
		Usage:                  "Utility for computing stable one-to-one matchings",
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "specify an optional config.toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Count:   &verbosity,
				Usage:   "increase log verbosity (repeatable)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "set the log level explicitly (trace, debug, info, warn, error)",
			},
		},
		Before: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.String("config"), true)
			if err != nil {
				return err
			}
			ctx.App.Metadata = map[string]interface{}{configKey: cfg}

			switch {
			case ctx.IsSet("log-level"):
				level, err := logging.ParseLevel(ctx.String("log-level"))
				if err != nil {
					return err
				}
				logging.SetupLevel(level, ctx.App.ErrWriter)
			case verbosity > 0:
				logging.Setup(verbosity, ctx.App.ErrWriter)
			default:
				level, _ := logging.ParseLevel(cfg.LogLevel)
				logging.SetupLevel(level, ctx.App.ErrWriter)
			}
			return nil
		},
		Commands: []*cli.Command{
			matchCmd,
			verifyCmd,
			genCmd,
			deriveCmd,
		},
	}
}

func configOf(ctx *cli.Context) config.Config {
	if cfg, ok := ctx.App.Metadata[configKey].(config.Config); ok {
		return cfg
	}
	return config.Config{}
}
