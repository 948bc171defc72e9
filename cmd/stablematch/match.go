// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	sm "github.com/someonegg/stablematch"
	"github.com/someonegg/stablematch/instance"
	"github.com/someonegg/stablematch/logging"
)

var errUnstable = errors.New("matching is not stable")

var matchCmd = &cli.Command{
	Name:    "match",
	Usage:   "Compute the proposer-optimal stable matching",
	Aliases: []string{"m"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Required: true,
			Usage:    "specify the input instance (- for stdin)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "specify the input format (text, json, yaml)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   stdio,
			Usage:   "specify the output matching (- for stdout)",
		},
		&cli.StringFlag{
			Name:  "out-format",
			Usage: "specify the output format (text, json, yaml)",
		},
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "check the result for blocking pairs before writing it",
		},
		&cli.IntFlag{
			Name:  "budget",
			Usage: "specify a step budget (0 for none)",
		},
		&cli.BoolFlag{
			Name:  "receivers-propose",
			Usage: "compute the receiver-optimal matching instead",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg := configOf(ctx)
		var (
			input  = ctx.String("input")
			output = ctx.String("output")
			verify = cfg.Verify || ctx.Bool("verify")
			budget = cfg.StepBudget
		)
		if ctx.IsSet("budget") {
			budget = ctx.Int("budget")
		}
		if budget < 0 {
			return errors.New("invalid budget")
		}

		inFormat, err := formatFor(ctx.String("format"), cfg.Format, input)
		if err != nil {
			return err
		}
		outFormat, err := formatFor(ctx.String("out-format"), cfg.OutFormat, output)
		if err != nil {
			return err
		}

		runCtx := ctx.Context
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, cfg.Timeout)
			defer cancel()
		}

		in, err := loadInstance(ctx, input, inFormat)
		if err != nil {
			return fmt.Errorf("load input failed: %w", err)
		}

		o, err := doMatch(runCtx, in, budget, ctx.Bool("receivers-propose"), verify)
		if err != nil {
			return err
		}

		return writeTo(ctx, output, func(w io.Writer) error {
			return instance.WriteOutcome(w, o, outFormat)
		})
	},
}

func doMatch(ctx context.Context, in *instance.Instance, budget int, transpose, verify bool) (*instance.Outcome, error) {
	logger := logging.Get("match")
	defer logging.LogOperationStart(logger, "match")()

	tbl, err := in.Table()
	if err != nil {
		return nil, err
	}

	run := tbl
	if transpose {
		run = tbl.Transpose()
	}

	matcher := sm.DeferredAcceptance(
		sm.WithStepBudget(budget),
		sm.WithLogger(logging.Get("engine")),
	)
	res, err := matcher.Match(ctx, run)
	if err != nil {
		return nil, err
	}

	o := instance.OutcomeOf(res)
	if transpose {
		o = swapSides(o)
	}

	logger.Info().
		Int("n", o.N).
		Int("steps", o.Steps).
		Int("matched", len(o.Pairs)).
		Msg("matching computed")

	if verify {
		ps, err := o.PairSet()
		if err != nil {
			return nil, err
		}
		if err := checkStable(tbl, ps, nil); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// swapSides turns the outcome of a transposed run back into proposer and
// receiver terms.
func swapSides(o *instance.Outcome) *instance.Outcome {
	// a transposed run proposes with the original receivers
	proposerOf := make(map[sm.ID]sm.ID, len(o.Pairs))
	for _, p := range o.Pairs {
		proposerOf[p.Proposer] = p.Receiver
	}

	pairs := make([]sm.Pair, 0, len(o.Pairs))
	for r := sm.ID(1); int(r) <= o.N; r++ {
		if p, ok := proposerOf[r]; ok {
			pairs = append(pairs, sm.Pair{Proposer: p, Receiver: r})
		}
	}

	return &instance.Outcome{
		N:                  o.N,
		Steps:              o.Steps,
		Pairs:              pairs,
		UnmatchedProposers: o.UnmatchedReceivers,
		UnmatchedReceivers: o.UnmatchedProposers,
	}
}

// checkStable reports blocking and unacceptable pairs to w, when given,
// and fails if there are any.
func checkStable(tbl *sm.Table, m sm.Matching, w io.Writer) error {
	blocking := sm.BlockingPairs(tbl, m)
	unacceptable := sm.UnacceptablePairs(tbl, m)

	if w != nil {
		for _, p := range unacceptable {
			fmt.Fprintf(w, "unacceptable: P%d R%d\n", p.Proposer, p.Receiver)
		}
		for _, p := range blocking {
			fmt.Fprintf(w, "blocking: P%d R%d\n", p.Proposer, p.Receiver)
		}
	}

	if len(blocking) > 0 || len(unacceptable) > 0 {
		return fmt.Errorf("%w: %d blocking, %d unacceptable",
			errUnstable, len(blocking), len(unacceptable))
	}
	return nil
}
