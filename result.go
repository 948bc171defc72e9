// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

// Status describes where a proposer stands.
type Status int

const (
	// NeverProcessed: still in its initial queue slot.
	NeverProcessed Status = iota
	// Waiting: processed at least once and queued again.
	Waiting
	Matched
	// Exhausted: proposed to every receiver on its list and holds none.
	Exhausted
	// NoPreferences: started with an empty list.
	NoPreferences
)

func (s Status) String() string {
	switch s {
	case NeverProcessed:
		return "never-processed"
	case Waiting:
		return "waiting"
	case Matched:
		return "matched"
	case Exhausted:
		return "exhausted"
	case NoPreferences:
		return "no-preferences"
	default:
		return "unknown"
	}
}

// Result is the frozen terminal matching of one run.
type Result struct {
	n          int
	steps      int
	byReceiver []ID
	byProposer []ID
	status     []Status
}

func assemble(e *Engine) *Result {
	return &Result{
		n:          e.t.n,
		steps:      e.steps,
		byReceiver: append([]ID(nil), e.engaged...),
		byProposer: append([]ID(nil), e.partner...),
		status:     append([]Status(nil), e.status...),
	}
}

// N returns the number of agents on each side.
func (m *Result) N() int { return m.n }

// Steps returns how many steps the run took.
func (m *Result) Steps() int { return m.steps }

// ProposerOf returns the proposer matched to receiver r.
func (m *Result) ProposerOf(r ID) (ID, bool) {
	if r < 1 || int(r) > m.n {
		return Unmatched, false
	}
	p := m.byReceiver[r]
	return p, p != Unmatched
}

// ReceiverOf returns the receiver matched to proposer p.
func (m *Result) ReceiverOf(p ID) (ID, bool) {
	if p < 1 || int(p) > m.n {
		return Unmatched, false
	}
	r := m.byProposer[p]
	return r, r != Unmatched
}

// Status returns proposer p's terminal status.
func (m *Result) Status(p ID) Status {
	if p < 1 || int(p) > m.n {
		return NeverProcessed
	}
	return m.status[p]
}

// Size returns the number of matched pairs.
func (m *Result) Size() int {
	size := 0
	for r := 1; r <= m.n; r++ {
		if m.byReceiver[r] != Unmatched {
			size++
		}
	}
	return size
}

// Pairs returns the matched pairs in ascending receiver order.
func (m *Result) Pairs() []Pair {
	pairs := make([]Pair, 0, m.n)
	for r := 1; r <= m.n; r++ {
		if p := m.byReceiver[r]; p != Unmatched {
			pairs = append(pairs, Pair{Proposer: p, Receiver: ID(r)})
		}
	}
	return pairs
}

// Assignments returns one entry per receiver in ascending order.
func (m *Result) Assignments() []Assignment {
	as := make([]Assignment, m.n)
	for r := 1; r <= m.n; r++ {
		as[r-1] = Assignment{Receiver: ID(r), Proposer: m.byReceiver[r]}
	}
	return as
}

// UnmatchedProposers returns the free proposers in ascending order.
func (m *Result) UnmatchedProposers() []ID {
	return free(m.byProposer)
}

// UnmatchedReceivers returns the free receivers in ascending order.
func (m *Result) UnmatchedReceivers() []ID {
	return free(m.byReceiver)
}

func free(partners []ID) []ID {
	var ids []ID
	for id := 1; id < len(partners); id++ {
		if partners[id] == Unmatched {
			ids = append(ids, ID(id))
		}
	}
	return ids
}
