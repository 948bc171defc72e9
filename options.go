// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "github.com/rs/zerolog"

// Options configures an Engine.
//
//   - SeedOrder:  initial queue order; nil means ascending proposer id.
//   - StepBudget: stop with ErrStepBudget after this many steps; 0 disables.
//   - Logger:     receives per-step trace events and a debug summary.
//   - OnPropose, OnEngage, OnReject: optional hooks fired during Step.
type Options struct {
	SeedOrder  []ID
	StepBudget int
	Logger     zerolog.Logger

	OnPropose func(p, r ID)
	OnEngage  func(r, p, prev ID) // prev is Unmatched on a first engagement
	OnReject  func(p, r ID)
}

// Option is a functional option for NewEngine and DeferredAcceptance.
type Option func(*Options)

// DefaultOptions returns ascending seeding, no budget and a disabled logger.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

// WithSeedOrder seeds the queue in the given order instead of ascending id.
// The order must be a permutation of 1..n.
func WithSeedOrder(order []ID) Option {
	return func(o *Options) {
		o.SeedOrder = append([]ID(nil), order...)
	}
}

// WithStepBudget caps the number of steps a run may take.
func WithStepBudget(steps int) Option {
	return func(o *Options) {
		o.StepBudget = steps
	}
}

// WithLogger enables step tracing on the given logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOnPropose registers a hook called for every proposal.
func WithOnPropose(fn func(p, r ID)) Option {
	return func(o *Options) {
		o.OnPropose = fn
	}
}

// WithOnEngage registers a hook called whenever a receiver accepts.
func WithOnEngage(fn func(r, p, prev ID)) Option {
	return func(o *Options) {
		o.OnEngage = fn
	}
}

// WithOnReject registers a hook called whenever a proposal is refused.
func WithOnReject(fn func(p, r ID)) Option {
	return func(o *Options) {
		o.OnReject = fn
	}
}
