// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "context"

// Matcher computes a matching over a preference table.
type Matcher interface {
	Match(ctx context.Context, t *Table) (*Result, error)
}

// ID identifies an agent within one side, in [1, n].
type ID int

// Unmatched is the partner reported for an agent without one.
const Unmatched ID = 0

// Prefs maps an agent to its preference list, most preferred first.
// A missing key is the same as an empty list.
type Prefs map[ID][]ID

// Ranks maps a receiver to the rank it gives each acceptable proposer.
// Lower is better; a missing proposer is unacceptable.
type Ranks map[ID]map[ID]int

// Side names one of the two agent sets.
type Side int

const (
	Proposers Side = iota
	Receivers
)

func (s Side) String() string {
	switch s {
	case Proposers:
		return "proposer"
	case Receivers:
		return "receiver"
	default:
		return "unknown"
	}
}

// Pair is one engaged proposer/receiver couple.
type Pair struct {
	Proposer ID `json:"proposer" yaml:"proposer"`
	Receiver ID `json:"receiver" yaml:"receiver"`
}

// Assignment is a receiver with its partner, Unmatched when free.
type Assignment struct {
	Receiver ID `json:"receiver" yaml:"receiver"`
	Proposer ID `json:"proposer" yaml:"proposer"`
}

type deferredAcceptance struct {
	opts []Option
}

// DeferredAcceptance returns a Matcher that runs a fresh proposer-proposing
// Gale–Shapley engine on every call.
func DeferredAcceptance(opts ...Option) Matcher {
	return deferredAcceptance{opts}
}

func (m deferredAcceptance) Match(ctx context.Context, t *Table) (*Result, error) {
	e, err := NewEngine(t, m.opts...)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
