// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prefscore derives strict preference lists from pairwise scores.
package prefscore

import (
	"math"

	sm "github.com/someonegg/stablematch"
)

// Scorer scores a candidate from one agent's point of view. Lower is better;
// ok is false when the candidate is unacceptable.
type Scorer interface {
	Score(from, to sm.ID) (score float32, ok bool)
}

// NoReject disables the reject threshold in Derive.
var NoReject = float32(math.Inf(1))

// MatrixScorer is a dense scorer indexed [from-1][to-1]. NaN entries, and
// entries outside the matrix, are unacceptable.
type MatrixScorer [][]float32

func (m MatrixScorer) Score(from, to sm.ID) (float32, bool) {
	if from < 1 || int(from) > len(m) || to < 1 || int(to) > len(m[from-1]) {
		return 0, false
	}
	s := m[from-1][to-1]
	if s != s { // NaN
		return 0, false
	}
	return s, true
}
