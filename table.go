// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "sort"

// MaxAgents bounds n. Per-agent state is allocated up front, so larger
// counts are rejected with ErrBadSize instead.
const MaxAgents = 1 << 20

// Table stores both sides' preference lists and rank rows for O(1)
// comparisons. It is immutable once built and safe for concurrent readers.
type Table struct {
	n int

	// indexed by agent id, slot 0 unused
	proposerLists [][]ID
	receiverLists [][]ID

	// receiverRanks[r] maps p, and proposerRanks[p] maps r, to rank+1
	receiverRanks []rankRow
	proposerRanks []rankRow
}

// rankRow maps an id to rank+1, 0 when absent. Rows are dense slices sized
// by the largest listed id, or maps when the list is sparse in [1, n].
type rankRow struct {
	dense  []int32
	sparse map[ID]int32
}

// sparse rows kick in once a dense row would be this many times the list
const sparseFactor = 8

func newRankRow(list []ID) rankRow {
	if len(list) == 0 {
		return rankRow{}
	}
	top := ID(0)
	for _, id := range list {
		if id > top {
			top = id
		}
	}

	if int(top) < sparseFactor*(len(list)+1) {
		dense := make([]int32, top+1)
		for i, id := range list {
			dense[id] = int32(i + 1)
		}
		return rankRow{dense: dense}
	}

	sparse := make(map[ID]int32, len(list))
	for i, id := range list {
		sparse[id] = int32(i + 1)
	}
	return rankRow{sparse: sparse}
}

func (row rankRow) lookup(id ID) int32 {
	if int(id) < len(row.dense) {
		return row.dense[id]
	}
	return row.sparse[id]
}

// NewTable builds a table from ordered preference lists on both sides.
func NewTable(n int, proposers, receivers Prefs) (*Table, error) {
	t, err := newTable(n, proposers)
	if err != nil {
		return nil, err
	}
	if err := checkOwners(n, Receivers, keysOf(receivers)); err != nil {
		return nil, err
	}
	for r := 1; r <= n; r++ {
		list := receivers[ID(r)]
		if err := checkList(n, Receivers, ID(r), list); err != nil {
			return nil, err
		}
		t.setReceiver(ID(r), list)
	}
	return t, nil
}

// NewTableFromRanks builds a table whose receiver side is given in rank form.
// Ranks need not be contiguous; only their order matters, and two proposers
// sharing a rank is rejected as ErrTie.
func NewTableFromRanks(n int, proposers Prefs, receivers Ranks) (*Table, error) {
	t, err := newTable(n, proposers)
	if err != nil {
		return nil, err
	}
	owners := make([]ID, 0, len(receivers))
	for r := range receivers {
		owners = append(owners, r)
	}
	if err := checkOwners(n, Receivers, owners); err != nil {
		return nil, err
	}
	for r := 1; r <= n; r++ {
		list, err := orderRanks(n, ID(r), receivers[ID(r)])
		if err != nil {
			return nil, err
		}
		t.setReceiver(ID(r), list)
	}
	return t, nil
}

func newTable(n int, proposers Prefs) (*Table, error) {
	if n < 0 || n > MaxAgents {
		return nil, &MalformedPreferenceError{Side: Proposers, Index: -1, Value: ID(n), Err: ErrBadSize}
	}
	if err := checkOwners(n, Proposers, keysOf(proposers)); err != nil {
		return nil, err
	}

	t := &Table{
		n:             n,
		proposerLists: make([][]ID, n+1),
		receiverLists: make([][]ID, n+1),
		receiverRanks: make([]rankRow, n+1),
		proposerRanks: make([]rankRow, n+1),
	}
	for p := 1; p <= n; p++ {
		list := proposers[ID(p)]
		if err := checkList(n, Proposers, ID(p), list); err != nil {
			return nil, err
		}
		t.proposerLists[p] = append([]ID(nil), list...)
		t.proposerRanks[p] = newRankRow(list)
	}
	return t, nil
}

func (t *Table) setReceiver(r ID, list []ID) {
	t.receiverLists[r] = append([]ID(nil), list...)
	t.receiverRanks[r] = newRankRow(list)
}

func keysOf(prefs Prefs) []ID {
	keys := make([]ID, 0, len(prefs))
	for id := range prefs {
		keys = append(keys, id)
	}
	return keys
}

func checkOwners(n int, side Side, owners []ID) error {
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	for _, id := range owners {
		if id < 1 || int(id) > n {
			return &MalformedPreferenceError{Side: side, Agent: id, Index: -1, Value: id, Err: ErrIDOutOfRange}
		}
	}
	return nil
}

func checkList(n int, side Side, owner ID, list []ID) error {
	seen := make(map[ID]struct{}, len(list))
	for i, id := range list {
		if id < 1 || int(id) > n {
			return &MalformedPreferenceError{Side: side, Agent: owner, Index: i, Value: id, Err: ErrIDOutOfRange}
		}
		if _, dup := seen[id]; dup {
			return &MalformedPreferenceError{Side: side, Agent: owner, Index: i, Value: id, Err: ErrDuplicate}
		}
		seen[id] = struct{}{}
	}
	return nil
}

func orderRanks(n int, r ID, ranks map[ID]int) ([]ID, error) {
	list := make([]ID, 0, len(ranks))
	for p, rank := range ranks {
		if p < 1 || int(p) > n {
			return nil, &MalformedPreferenceError{Side: Receivers, Agent: r, Index: rank, Value: p, Err: ErrIDOutOfRange}
		}
		if rank < 0 {
			return nil, &MalformedPreferenceError{Side: Receivers, Agent: r, Index: rank, Value: p, Err: ErrBadSize}
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		ri, rj := ranks[list[i]], ranks[list[j]]
		return ri < rj || ri == rj && list[i] < list[j]
	})
	for i := 1; i < len(list); i++ {
		if ranks[list[i]] == ranks[list[i-1]] {
			return nil, &MalformedPreferenceError{Side: Receivers, Agent: r, Index: ranks[list[i]], Value: list[i], Err: ErrTie}
		}
	}
	return list, nil
}

// N returns the number of agents on each side.
func (t *Table) N() int {
	return t.n
}

// RankOf returns receiver r's rank for proposer p, 0 being the most
// preferred. ok is false when p is unacceptable to r or either id is out of
// range.
func (t *Table) RankOf(r, p ID) (rank int, ok bool) {
	if !t.valid(r) || !t.valid(p) {
		return 0, false
	}
	v := t.receiverRanks[r].lookup(p)
	return int(v) - 1, v != 0
}

// ProposerRankOf returns proposer p's rank for receiver r, with the same
// conventions as RankOf.
func (t *Table) ProposerRankOf(p, r ID) (rank int, ok bool) {
	if !t.valid(r) || !t.valid(p) {
		return 0, false
	}
	v := t.proposerRanks[p].lookup(r)
	return int(v) - 1, v != 0
}

// PreferenceListOf returns a copy of proposer p's list. It may be empty.
func (t *Table) PreferenceListOf(p ID) []ID {
	if !t.valid(p) {
		return nil
	}
	return append([]ID(nil), t.proposerLists[p]...)
}

// ReceiverListOf returns a copy of receiver r's list in rank order.
func (t *Table) ReceiverListOf(r ID) []ID {
	if !t.valid(r) {
		return nil
	}
	return append([]ID(nil), t.receiverLists[r]...)
}

// Transpose returns a table with the sides swapped, so that running it lets
// the receivers propose and yields the receiver-optimal matching.
func (t *Table) Transpose() *Table {
	return &Table{
		n:             t.n,
		proposerLists: t.receiverLists,
		receiverLists: t.proposerLists,
		receiverRanks: t.proposerRanks,
		proposerRanks: t.receiverRanks,
	}
}

func (t *Table) valid(id ID) bool {
	return id >= 1 && int(id) <= t.n
}
