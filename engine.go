// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// State is the engine's run state.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Engine runs proposer-proposing deferred acceptance over a Table.
// It owns all mutable matching state of one run and is not safe for
// concurrent use; the Table it reads may be shared.
type Engine struct {
	t    *Table
	opts Options
	log  zerolog.Logger

	sched  *scheduler
	queued []bool
	cursor []int

	engaged  []ID    // receiver -> proposer
	partner  []ID    // proposer -> receiver
	bestRank []int32 // receiver -> rank+1 of best partner so far, 0 before any
	status   []Status

	steps   int
	ceiling int
}

// NewEngine prepares a run over t and seeds the scheduler.
func NewEngine(t *Table, opts ...Option) (*Engine, error) {
	if t == nil {
		return nil, ErrNilTable
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.StepBudget < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, cfg.StepBudget)
	}

	n := t.n
	seed, err := seedOrder(n, cfg.SeedOrder)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		t:        t,
		opts:     cfg,
		log:      cfg.Logger,
		sched:    newScheduler(n),
		queued:   make([]bool, n+1),
		cursor:   make([]int, n+1),
		engaged:  make([]ID, n+1),
		partner:  make([]ID, n+1),
		bestRank: make([]int32, n+1),
		status:   make([]Status, n+1),
		ceiling:  n * n,
	}
	e.sched.initialize(seed)
	for _, p := range seed {
		e.queued[p] = true
	}
	return e, nil
}

func seedOrder(n int, order []ID) ([]ID, error) {
	if order == nil {
		seed := make([]ID, n)
		for i := range seed {
			seed[i] = ID(i + 1)
		}
		return seed, nil
	}
	if len(order) != n {
		return nil, fmt.Errorf("%w: %d ids for %d proposers", ErrBadSeedOrder, len(order), n)
	}
	seen := make([]bool, n+1)
	for _, p := range order {
		if p < 1 || int(p) > n || seen[p] {
			return nil, fmt.Errorf("%w: bad or repeated id %d", ErrBadSeedOrder, p)
		}
		seen[p] = true
	}
	return order, nil
}

// State reports Terminated once no proposer is waiting.
func (e *Engine) State() State {
	if e.sched.len() == 0 {
		return Terminated
	}
	return Running
}

// Steps returns the number of steps performed so far.
func (e *Engine) Steps() int {
	return e.steps
}

// Status returns proposer p's current status.
func (e *Engine) Status(p ID) Status {
	if !e.t.valid(p) {
		return NeverProcessed
	}
	return e.status[p]
}

// Step dequeues one proposer and lets it act. It returns false, without
// error, once the engine has terminated.
func (e *Engine) Step() (bool, error) {
	if e.sched.len() == 0 {
		return false, nil
	}
	if e.steps >= e.ceiling {
		return false, &InvariantViolation{
			Kind:   StepCeiling,
			Detail: fmt.Sprintf("%d steps taken with %d proposers still queued", e.steps, e.sched.len()),
		}
	}
	if e.opts.StepBudget > 0 && e.steps >= e.opts.StepBudget {
		return false, fmt.Errorf("%w: %d steps", ErrStepBudget, e.steps)
	}

	p, _ := e.sched.dequeue()
	e.queued[p] = false
	e.steps++

	list := e.t.proposerLists[p]
	if e.cursor[p] >= len(list) {
		e.retire(p)
		return true, nil
	}

	r := list[e.cursor[p]]
	e.cursor[p]++
	if e.opts.OnPropose != nil {
		e.opts.OnPropose(p, r)
	}

	rank, ok := e.t.RankOf(r, p)
	if !ok {
		e.log.Trace().Int("proposer", int(p)).Int("receiver", int(r)).Msg("unacceptable")
		e.reject(p, r)
		return true, e.requeue(p)
	}

	q := e.engaged[r]
	if q == Unmatched {
		return true, e.engage(r, p, rank, Unmatched)
	}

	qrank, _ := e.t.RankOf(r, q)
	if rank < qrank {
		e.partner[q] = Unmatched
		if err := e.engage(r, p, rank, q); err != nil {
			return true, err
		}
		e.log.Trace().Int("receiver", int(r)).Int("displaced", int(q)).Msg("trade up")
		return true, e.requeue(q)
	}

	e.reject(p, r)
	return true, e.requeue(p)
}

// Run drives Step until termination and returns the assembled result.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		more, err := e.Step()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	res, err := e.Result()
	if err != nil {
		return nil, err
	}
	e.log.Debug().
		Int("n", e.t.n).
		Int("steps", e.steps).
		Int("matched", res.Size()).
		Msg("matching terminated")
	return res, nil
}

// Result assembles the terminal matching. It fails with ErrNotTerminated
// while proposers are still queued.
func (e *Engine) Result() (*Result, error) {
	if e.State() != Terminated {
		return nil, ErrNotTerminated
	}
	return assemble(e), nil
}

func (e *Engine) engage(r, p ID, rank int, prev ID) error {
	if e.partner[p] != Unmatched {
		return &InvariantViolation{
			Kind:   DoubleEngagement,
			Detail: fmt.Sprintf("proposer %d already engaged to receiver %d", p, e.partner[p]),
		}
	}
	if best := e.bestRank[r]; best != 0 && int32(rank+1) >= best {
		return &InvariantViolation{
			Kind:   RankRegression,
			Detail: fmt.Sprintf("receiver %d moved from rank %d to %d", r, best-1, rank),
		}
	}

	e.engaged[r] = p
	e.partner[p] = r
	e.bestRank[r] = int32(rank + 1)
	e.status[p] = Matched
	if prev != Unmatched {
		e.status[prev] = Waiting
	}

	e.log.Trace().Int("proposer", int(p)).Int("receiver", int(r)).Int("rank", rank).Msg("engaged")
	if e.opts.OnEngage != nil {
		e.opts.OnEngage(r, p, prev)
	}
	return nil
}

func (e *Engine) reject(p, r ID) {
	e.log.Trace().Int("proposer", int(p)).Int("receiver", int(r)).Msg("rejected")
	if e.opts.OnReject != nil {
		e.opts.OnReject(p, r)
	}
}

// requeue puts p back in line, or retires it when its list is used up.
func (e *Engine) requeue(p ID) error {
	if e.cursor[p] >= len(e.t.proposerLists[p]) {
		e.retire(p)
		return nil
	}
	if e.queued[p] {
		return &InvariantViolation{
			Kind:   DoubleEnqueue,
			Detail: fmt.Sprintf("proposer %d is already queued", p),
		}
	}
	e.queued[p] = true
	e.status[p] = Waiting
	e.sched.enqueue(p)
	return nil
}

func (e *Engine) retire(p ID) {
	if len(e.t.proposerLists[p]) == 0 {
		e.status[p] = NoPreferences
	} else {
		e.status[p] = Exhausted
	}
	e.log.Trace().Int("proposer", int(p)).Stringer("status", e.status[p]).Msg("retired")
}
