// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPreference matches every *MalformedPreferenceError.
	ErrMalformedPreference = errors.New("stablematch: malformed preference")

	// ErrIDOutOfRange indicates an id outside [1, n].
	ErrIDOutOfRange = errors.New("stablematch: id out of range")

	// ErrDuplicate indicates an id listed twice in one preference list.
	ErrDuplicate = errors.New("stablematch: duplicate id in preference list")

	// ErrTie indicates two distinct agents sharing a rank in one list.
	ErrTie = errors.New("stablematch: tied ranks in preference list")

	// ErrSideCount indicates the two sides do not describe the same agents.
	ErrSideCount = errors.New("stablematch: mismatched side counts")

	// ErrBadSize indicates a negative rank, or an agent count outside
	// [0, MaxAgents].
	ErrBadSize = errors.New("stablematch: size or rank out of bounds")

	// ErrBadSeedOrder indicates a seed order that is not a permutation of 1..n.
	ErrBadSeedOrder = errors.New("stablematch: seed order is not a permutation of proposers")

	// ErrStepBudget indicates the caller-imposed step budget ran out.
	ErrStepBudget = errors.New("stablematch: step budget exhausted")

	// ErrNotTerminated indicates a result was requested from a running engine.
	ErrNotTerminated = errors.New("stablematch: engine has not terminated")

	// ErrNilTable indicates a nil *Table was passed to the engine.
	ErrNilTable = errors.New("stablematch: table is nil")

	// ErrBadMatching indicates an inconsistent externally supplied matching.
	ErrBadMatching = errors.New("stablematch: invalid matching")
)

// MalformedPreferenceError describes a structural defect in preference input.
// Err is one of the sentinels above.
type MalformedPreferenceError struct {
	Side  Side
	Agent ID  // owner of the offending list
	Index int // position inside the list, -1 when the owner itself is bad
	Value ID  // offending value
	Err   error
}

func (e *MalformedPreferenceError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %v %d", e.Err, e.Side, e.Value)
	}
	return fmt.Sprintf("%v: %v %d, position %d: %d", e.Err, e.Side, e.Agent, e.Index, e.Value)
}

func (e *MalformedPreferenceError) Unwrap() error {
	return e.Err
}

func (e *MalformedPreferenceError) Is(target error) bool {
	return target == ErrMalformedPreference
}

// ViolationKind classifies an InvariantViolation.
type ViolationKind int

const (
	DoubleEnqueue ViolationKind = iota + 1
	DoubleEngagement
	RankRegression
	StepCeiling
)

func (k ViolationKind) String() string {
	switch k {
	case DoubleEnqueue:
		return "double enqueue"
	case DoubleEngagement:
		return "double engagement"
	case RankRegression:
		return "rank regression"
	case StepCeiling:
		return "step ceiling exceeded"
	default:
		return "unknown"
	}
}

// InvariantViolation reports a defect inside the engine, never bad input.
type InvariantViolation struct {
	Kind   ViolationKind
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("stablematch: invariant violation (%v): %s", e.Kind, e.Detail)
}
