// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prefscore

import (
	"fmt"
	"math"

	sm "github.com/someonegg/stablematch"
)

// ScoreSheet is the document form of a scored instance. Row i of Proposers
// holds proposer i+1's score for each receiver; null entries are
// unacceptable. Overrides are applied on top of the matrices.
type ScoreSheet struct {
	N         int           `json:"n" yaml:"n"`
	Proposers [][]*float32  `json:"proposers" yaml:"proposers"`
	Receivers [][]*float32  `json:"receivers" yaml:"receivers"`
	Overrides SheetOverride `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Reject    *float32      `json:"reject,omitempty" yaml:"reject,omitempty"`
}

type SheetOverride struct {
	Proposers []ScoreRecord `json:"proposers,omitempty" yaml:"proposers,omitempty"`
	Receivers []ScoreRecord `json:"receivers,omitempty" yaml:"receivers,omitempty"`
}

// Derive builds both preference sides from the sheet.
func (s *ScoreSheet) Derive() (proposers, receivers sm.Prefs, err error) {
	pm, err := toMatrix(s.N, sm.Proposers, s.Proposers)
	if err != nil {
		return nil, nil, err
	}
	rm, err := toMatrix(s.N, sm.Receivers, s.Receivers)
	if err != nil {
		return nil, nil, err
	}

	reject := NoReject
	if s.Reject != nil {
		reject = *s.Reject
	}

	return Derive(s.N,
		NewOverrideScorer(pm, s.Overrides.Proposers),
		NewOverrideScorer(rm, s.Overrides.Receivers),
		reject)
}

func toMatrix(n int, side sm.Side, rows [][]*float32) (MatrixScorer, error) {
	if len(rows) != n {
		return nil, &sm.MalformedPreferenceError{Side: side, Index: -1, Value: sm.ID(len(rows)), Err: sm.ErrSideCount}
	}
	m := make(MatrixScorer, n)
	nan := float32(math.NaN())
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%d scores: %w", len(row), &sm.MalformedPreferenceError{
				Side: side, Agent: sm.ID(i + 1), Index: -1, Value: sm.ID(i + 1), Err: sm.ErrBadSize,
			})
		}
		m[i] = make([]float32, n)
		for j, v := range row {
			if v == nil {
				m[i][j] = nan
			} else {
				m[i][j] = *v
			}
		}
	}
	return m, nil
}
