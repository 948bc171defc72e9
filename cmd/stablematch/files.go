// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/someonegg/stablematch/instance"
)

const stdio = "-"

// formatFor resolves a format: the flag, then the config value, then the
// file extension.
func formatFor(flag, configured, path string) (instance.Format, error) {
	switch {
	case flag != "":
		return instance.ParseFormat(flag)
	case configured != "":
		return instance.ParseFormat(configured)
	case path == stdio:
		return instance.Text, nil
	}
	return instance.FormatOf(path), nil
}

func loadInstance(ctx *cli.Context, path string, f instance.Format) (*instance.Instance, error) {
	if path == stdio {
		return instance.Read(ctx.App.Reader, f)
	}
	return instance.Load(path, f)
}

func loadOutcome(ctx *cli.Context, path string, f instance.Format) (*instance.Outcome, error) {
	if path == stdio {
		return instance.ReadOutcome(ctx.App.Reader, f)
	}
	return instance.LoadOutcome(path, f)
}

// writeTo runs fn against the named output, buffered.
func writeTo(ctx *cli.Context, path string, fn func(w io.Writer) error) error {
	if path == stdio {
		w := bufio.NewWriter(ctx.App.Writer)
		if err := fn(w); err != nil {
			return err
		}
		return w.Flush()
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := fn(w); err != nil {
		file.Close()
		return fmt.Errorf("write %s failed: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s failed: %w", path, err)
	}
	return file.Close()
}
