// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch_test

import (
	"context"
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sm "github.com/someonegg/stablematch"
)

func TestNewTable_RankLookup(t *testing.T) {
	tbl := mustTable(t, 3,
		sm.Prefs{1: {1, 2, 3}, 2: {2}, 3: {}},
		sm.Prefs{1: {2, 1, 3}, 2: {3, 1}},
	)

	assert.Equal(t, 3, tbl.N())

	rank, ok := tbl.RankOf(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 0, rank)
	rank, ok = tbl.RankOf(1, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	// omitted proposer is unacceptable
	_, ok = tbl.RankOf(2, 2)
	assert.False(t, ok)
	// receiver without a list accepts nobody
	_, ok = tbl.RankOf(3, 1)
	assert.False(t, ok)
	// out of range lookups are absent, not panics
	_, ok = tbl.RankOf(0, 1)
	assert.False(t, ok)
	_, ok = tbl.RankOf(1, 4)
	assert.False(t, ok)

	rank, ok = tbl.ProposerRankOf(1, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	assert.Equal(t, []sm.ID{2}, tbl.PreferenceListOf(2))
	assert.Empty(t, tbl.PreferenceListOf(3))
	assert.Equal(t, []sm.ID{3, 1}, tbl.ReceiverListOf(2))
	assert.Nil(t, tbl.PreferenceListOf(9))
}

func TestNewTable_ListsAreCopies(t *testing.T) {
	props := sm.Prefs{1: {1, 2}, 2: {2, 1}}
	tbl := mustTable(t, 2, props, sm.Prefs{1: {1, 2}, 2: {1, 2}})

	props[1][0] = 2
	assert.Equal(t, []sm.ID{1, 2}, tbl.PreferenceListOf(1), "table must not alias caller input")

	got := tbl.PreferenceListOf(1)
	got[0] = 2
	assert.Equal(t, []sm.ID{1, 2}, tbl.PreferenceListOf(1), "callers must not alias table storage")
}

func TestNewTable_Malformed(t *testing.T) {
	cases := []struct {
		name      string
		n         int
		proposers sm.Prefs
		receivers sm.Prefs
		sentinel  error
		side      sm.Side
	}{
		{"IDAboveN", 3, sm.Prefs{1: {1, 5}}, nil, sm.ErrIDOutOfRange, sm.Proposers},
		{"IDZero", 3, nil, sm.Prefs{2: {0}}, sm.ErrIDOutOfRange, sm.Receivers},
		{"OwnerOutOfRange", 2, sm.Prefs{3: {1}}, nil, sm.ErrIDOutOfRange, sm.Proposers},
		{"ReceiverOwnerOutOfRange", 2, nil, sm.Prefs{-1: {1}}, sm.ErrIDOutOfRange, sm.Receivers},
		{"Duplicate", 3, sm.Prefs{2: {1, 2, 1}}, nil, sm.ErrDuplicate, sm.Proposers},
		{"NegativeN", -1, nil, nil, sm.ErrBadSize, sm.Proposers},
		{"AboveMaxAgents", sm.MaxAgents + 1, nil, nil, sm.ErrBadSize, sm.Proposers},
		{"HugeN", math.MaxInt, nil, nil, sm.ErrBadSize, sm.Proposers},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tbl, err := sm.NewTable(tc.n, tc.proposers, tc.receivers)
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.ErrorIs(t, err, sm.ErrMalformedPreference)
			assert.ErrorIs(t, err, tc.sentinel)

			var mpe *sm.MalformedPreferenceError
			require.True(t, errors.As(err, &mpe))
			assert.Equal(t, tc.side, mpe.Side)
		})
	}
}

func TestNewTable_MalformedDetails(t *testing.T) {
	_, err := sm.NewTable(3, sm.Prefs{1: {1, 2, 3}, 2: {3, 5}}, nil)

	var mpe *sm.MalformedPreferenceError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, sm.ID(2), mpe.Agent)
	assert.Equal(t, 1, mpe.Index)
	assert.Equal(t, sm.ID(5), mpe.Value)
	assert.Contains(t, err.Error(), "proposer 2")
}

func TestNewTable_Empty(t *testing.T) {
	tbl, err := sm.NewTable(0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.N())
}

func TestNewTable_SparseRows(t *testing.T) {
	const n = 20000
	proposers := sm.Prefs{1: {n, 7, 1}, 2: {2, n, 3}}
	receivers := sm.Prefs{1: {1}, 7: {1, n}, n: {2, 1}}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	tbl, err := sm.NewTable(n, proposers, receivers)
	runtime.ReadMemStats(&after)
	require.NoError(t, err)

	// per-agent headers only; dense rows would need 2*n*n*4 bytes
	allocated := after.TotalAlloc - before.TotalAlloc
	assert.Less(t, allocated, uint64(16<<20), "allocated %d bytes", allocated)

	for i, r := range []sm.ID{n, 7, 1} {
		rank, ok := tbl.ProposerRankOf(1, r)
		assert.True(t, ok)
		assert.Equal(t, i, rank)
	}
	rank, ok := tbl.RankOf(7, n)
	assert.True(t, ok)
	assert.Equal(t, 1, rank)
	rank, ok = tbl.ProposerRankOf(2, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	for _, k := range [][2]sm.ID{{7, 2}, {n, n}, {5, 1}, {n, n - 1}} {
		_, ok = tbl.RankOf(k[0], k[1])
		assert.False(t, ok, "RankOf%v", k)
	}

	res, err := sm.DeferredAcceptance().Match(context.Background(), tbl)
	require.NoError(t, err)
	assert.True(t, sm.IsStable(tbl, res))
	assert.Equal(t, 2, res.Size())
}

func TestNewTableFromRanks(t *testing.T) {
	t.Run("SparseRanks", func(t *testing.T) {
		tbl, err := sm.NewTableFromRanks(3,
			sm.Prefs{1: {1}, 2: {1}, 3: {1}},
			sm.Ranks{1: {3: 10, 1: 20}},
		)
		require.NoError(t, err)
		assert.Equal(t, []sm.ID{3, 1}, tbl.ReceiverListOf(1))

		rank, ok := tbl.RankOf(1, 1)
		assert.True(t, ok)
		assert.Equal(t, 1, rank)
		_, ok = tbl.RankOf(1, 2)
		assert.False(t, ok)
	})

	t.Run("Tie", func(t *testing.T) {
		_, err := sm.NewTableFromRanks(3, nil, sm.Ranks{2: {1: 1, 2: 1, 3: 2}})
		assert.ErrorIs(t, err, sm.ErrTie)
		assert.ErrorIs(t, err, sm.ErrMalformedPreference)
	})

	t.Run("NegativeRank", func(t *testing.T) {
		_, err := sm.NewTableFromRanks(2, nil, sm.Ranks{1: {1: -1}})
		assert.ErrorIs(t, err, sm.ErrBadSize)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := sm.NewTableFromRanks(2, nil, sm.Ranks{1: {4: 0}})
		assert.ErrorIs(t, err, sm.ErrIDOutOfRange)

		_, err = sm.NewTableFromRanks(2, nil, sm.Ranks{3: {1: 0}})
		assert.ErrorIs(t, err, sm.ErrIDOutOfRange)
	})
}

func TestTable_Transpose(t *testing.T) {
	tbl := mustTable(t, 2,
		sm.Prefs{1: {2, 1}, 2: {1}},
		sm.Prefs{1: {1}, 2: {2, 1}},
	)
	tr := tbl.Transpose()

	assert.Equal(t, tbl.ReceiverListOf(2), tr.PreferenceListOf(2))
	assert.Equal(t, tbl.PreferenceListOf(1), tr.ReceiverListOf(1))

	r1, ok1 := tbl.ProposerRankOf(1, 2)
	r2, ok2 := tr.RankOf(1, 2)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, r1, r2)
}
