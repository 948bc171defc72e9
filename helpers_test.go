// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	sm "github.com/someonegg/stablematch"
)

// mustTable builds a table or fails the test.
func mustTable(t testing.TB, n int, proposers, receivers sm.Prefs) *sm.Table {
	t.Helper()
	tbl, err := sm.NewTable(n, proposers, receivers)
	require.NoError(t, err)
	return tbl
}

// randomPrefs gives every agent a shuffled list over the other side. With
// density < 1 each entry survives with that probability, producing partial
// lists (possibly empty).
func randomPrefs(r *rand.Rand, n int, density float64) sm.Prefs {
	prefs := make(sm.Prefs, n)
	for a := 1; a <= n; a++ {
		perm := r.Perm(n)
		list := make([]sm.ID, 0, n)
		for _, i := range perm {
			if density >= 1 || r.Float64() < density {
				list = append(list, sm.ID(i+1))
			}
		}
		prefs[sm.ID(a)] = list
	}
	return prefs
}

func randomTable(t testing.TB, seed int64, n int, density float64) *sm.Table {
	r := rand.New(rand.NewSource(seed))
	return mustTable(t, n, randomPrefs(r, n, density), randomPrefs(r, n, density))
}

// permutations returns every ordering of 1..n.
func permutations(n int) [][]sm.ID {
	var out [][]sm.ID
	cur := make([]sm.ID, 0, n)
	used := make([]bool, n+1)
	var rec func()
	rec = func() {
		if len(cur) == n {
			out = append(out, append([]sm.ID(nil), cur...))
			return
		}
		for id := 1; id <= n; id++ {
			if used[id] {
				continue
			}
			used[id] = true
			cur = append(cur, sm.ID(id))
			rec()
			cur = cur[:len(cur)-1]
			used[id] = false
		}
	}
	rec()
	return out
}

// allStableMatchings enumerates every mutually acceptable partial matching
// and keeps the stable ones. Exponential; only for small n.
func allStableMatchings(t testing.TB, tbl *sm.Table) []*sm.PairSet {
	n := tbl.N()
	var out []*sm.PairSet
	usedR := make([]bool, n+1)
	pairs := make([]sm.Pair, 0, n)
	var rec func(p int)
	rec = func(p int) {
		if p > n {
			ps, err := sm.NewPairSet(n, pairs)
			require.NoError(t, err)
			if sm.IsStable(tbl, ps) {
				out = append(out, ps)
			}
			return
		}
		// p stays unmatched
		rec(p + 1)
		for _, r := range tbl.PreferenceListOf(sm.ID(p)) {
			if usedR[r] {
				continue
			}
			if _, ok := tbl.RankOf(r, sm.ID(p)); !ok {
				continue
			}
			usedR[r] = true
			pairs = append(pairs, sm.Pair{Proposer: sm.ID(p), Receiver: r})
			rec(p + 1)
			pairs = pairs[:len(pairs)-1]
			usedR[r] = false
		}
	}
	rec(1)
	return out
}

// proposerRank ranks p's partner in m; unmatched ranks after every receiver.
func proposerRank(tbl *sm.Table, m sm.Matching, p sm.ID) int {
	r, ok := m.ReceiverOf(p)
	if !ok {
		return tbl.N() + 1
	}
	rank, ok := tbl.ProposerRankOf(p, r)
	if !ok {
		return tbl.N() + 1
	}
	return rank
}
