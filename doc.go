// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stablematch computes stable matchings between two equal-sized sets
// of agents, proposers and receivers, with deferred acceptance (Gale–Shapley).
//
// Overview:
//
//   - A Table holds every agent's strict preference list. Lists may be
//     partial: an omitted counterpart is unacceptable. Receivers' lists are
//     also stored as rank rows, so "does r prefer p to q" is O(1). n is
//     capped at MaxAgents.
//   - An Engine seeds a FIFO with all proposers in ascending id order. Each
//     Step dequeues one proposer, which proposes to the next receiver on its
//     list. The receiver keeps the better of the proposer and its current
//     partner. Whoever loses goes back in the queue, unless its list is
//     used up.
//   - The run terminates when the queue is empty. The Result is the
//     proposer-optimal stable matching, and it does not depend on the seed
//     order.
//
// Complexity:
//
//   - Time:  O(n²). Every proposal consumes one list entry, so a run takes at
//     most n² steps. The engine reports an InvariantViolation if it ever needs
//     more.
//   - Space: O(n + L) for the table, where L is the total list length, and
//     O(n) per run.
//
// Errors:
//
//   - *MalformedPreferenceError (matches ErrMalformedPreference) from
//     NewTable / NewTableFromRanks: out-of-range ids, duplicates, ties.
//   - *InvariantViolation from Step / Run: an engine defect, never input.
//   - ErrStepBudget, context errors: limits imposed by the caller.
//
// Unmatched agents are a valid outcome: Result.Status distinguishes a
// proposer that exhausted its list from one that had no list at all.
//
// Example:
//
//	t, err := stablematch.NewTable(2,
//	    stablematch.Prefs{1: {1, 2}, 2: {1, 2}},
//	    stablematch.Prefs{1: {2, 1}, 2: {1, 2}},
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := stablematch.DeferredAcceptance().Match(ctx, t)
package stablematch
