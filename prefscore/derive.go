// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prefscore

import (
	"fmt"
	"sort"

	sm "github.com/someonegg/stablematch"
)

// Derive ranks, for every agent on both sides, the acceptable counterparts
// by ascending score. Candidates scoring at or above reject are dropped.
// Equal scores within one list are an ErrTie: there is no tie-breaking.
func Derive(n int, proposerView, receiverView Scorer, reject float32) (proposers, receivers sm.Prefs, err error) {
	if n < 0 || n > sm.MaxAgents {
		return nil, nil, &sm.MalformedPreferenceError{Side: sm.Proposers, Index: -1, Value: sm.ID(n), Err: sm.ErrBadSize}
	}
	if proposers, err = deriveSide(n, sm.Proposers, proposerView, reject); err != nil {
		return nil, nil, err
	}
	if receivers, err = deriveSide(n, sm.Receivers, receiverView, reject); err != nil {
		return nil, nil, err
	}
	return proposers, receivers, nil
}

type candidate struct {
	id    sm.ID
	score float32
}

func deriveSide(n int, side sm.Side, view Scorer, reject float32) (sm.Prefs, error) {
	prefs := make(sm.Prefs)
	var cands []candidate

	for from := sm.ID(1); int(from) <= n; from++ {
		cands = cands[:0]
		for to := sm.ID(1); int(to) <= n; to++ {
			score, ok := view.Score(from, to)
			if !ok || score >= reject {
				continue
			}
			cands = append(cands, candidate{to, score})
		}

		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].score < cands[j].score
		})

		list := make([]sm.ID, len(cands))
		for i, c := range cands {
			if i > 0 && c.score == cands[i-1].score {
				return nil, fmt.Errorf("score %g: %w", c.score, &sm.MalformedPreferenceError{
					Side: side, Agent: from, Index: i, Value: c.id, Err: sm.ErrTie,
				})
			}
			list[i] = c.id
		}
		prefs[from] = list
	}
	return prefs, nil
}
