// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "fmt"

// Matching is any one-to-one assignment that can be checked against a Table.
type Matching interface {
	ProposerOf(r ID) (ID, bool)
	ReceiverOf(p ID) (ID, bool)
}

// BlockingPairs lists every acceptable pair (p, r), not matched together,
// where both p and r strictly prefer each other to their current partners.
// Being unmatched, or matched to an unacceptable partner, loses to any
// acceptable partner. Pairs come out ordered by proposer, then receiver.
func BlockingPairs(t *Table, m Matching) []Pair {
	var pairs []Pair
	for p := ID(1); int(p) <= t.n; p++ {
		cur, _ := m.ReceiverOf(p)
		for _, r := range t.proposerLists[p] {
			if r == cur {
				// everything after r on p's list is worse than cur
				break
			}
			rank, ok := t.RankOf(r, p)
			if !ok {
				continue
			}
			if q, matched := m.ProposerOf(r); matched {
				if qrank, ok := t.RankOf(r, q); ok && qrank < rank {
					continue
				}
			}
			pairs = append(pairs, Pair{Proposer: p, Receiver: r})
		}
	}
	return pairs
}

// UnacceptablePairs lists matched pairs where either side finds the other
// unacceptable.
func UnacceptablePairs(t *Table, m Matching) []Pair {
	var pairs []Pair
	for p := ID(1); int(p) <= t.n; p++ {
		r, ok := m.ReceiverOf(p)
		if !ok {
			continue
		}
		_, pok := t.ProposerRankOf(p, r)
		_, rok := t.RankOf(r, p)
		if !pok || !rok {
			pairs = append(pairs, Pair{Proposer: p, Receiver: r})
		}
	}
	return pairs
}

// IsStable reports whether m has neither blocking nor unacceptable pairs.
func IsStable(t *Table, m Matching) bool {
	return len(BlockingPairs(t, m)) == 0 && len(UnacceptablePairs(t, m)) == 0
}

// PairSet is a Matching built from an explicit list of pairs, such as one
// read back from a file.
type PairSet struct {
	n          int
	byReceiver []ID
	byProposer []ID
}

// NewPairSet validates that pairs is one-to-one over [1, n].
func NewPairSet(n int, pairs []Pair) (*PairSet, error) {
	if n < 0 || n > MaxAgents {
		return nil, fmt.Errorf("%w: size %d out of bounds", ErrBadMatching, n)
	}
	s := &PairSet{
		n:          n,
		byReceiver: make([]ID, n+1),
		byProposer: make([]ID, n+1),
	}
	for _, pr := range pairs {
		if pr.Proposer < 1 || int(pr.Proposer) > n || pr.Receiver < 1 || int(pr.Receiver) > n {
			return nil, fmt.Errorf("%w: pair %d-%d out of range", ErrBadMatching, pr.Proposer, pr.Receiver)
		}
		if s.byProposer[pr.Proposer] != Unmatched {
			return nil, fmt.Errorf("%w: proposer %d matched twice", ErrBadMatching, pr.Proposer)
		}
		if s.byReceiver[pr.Receiver] != Unmatched {
			return nil, fmt.Errorf("%w: receiver %d matched twice", ErrBadMatching, pr.Receiver)
		}
		s.byProposer[pr.Proposer] = pr.Receiver
		s.byReceiver[pr.Receiver] = pr.Proposer
	}
	return s, nil
}

func (s *PairSet) ProposerOf(r ID) (ID, bool) {
	if r < 1 || int(r) > s.n {
		return Unmatched, false
	}
	return s.byReceiver[r], s.byReceiver[r] != Unmatched
}

func (s *PairSet) ReceiverOf(p ID) (ID, bool) {
	if p < 1 || int(p) > s.n {
		return Unmatched, false
	}
	return s.byProposer[p], s.byProposer[p] != Unmatched
}

// Pairs returns the pairs in ascending receiver order.
func (s *PairSet) Pairs() []Pair {
	pairs := make([]Pair, 0, s.n)
	for r := 1; r <= s.n; r++ {
		if p := s.byReceiver[r]; p != Unmatched {
			pairs = append(pairs, Pair{Proposer: p, Receiver: ID(r)})
		}
	}
	return pairs
}
