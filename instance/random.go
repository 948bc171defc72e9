// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instance

import (
	"math/rand"

	sm "github.com/someonegg/stablematch"
)

// Random generates a reproducible instance. Every agent ranks a random
// permutation of the other side; with density < 1 each entry is kept with
// that probability, so lists may be partial or empty.
func Random(n int, density float64, seed int64) *Instance {
	r := rand.New(rand.NewSource(seed))
	return &Instance{
		N:         n,
		Proposers: randomSide(r, n, density),
		Receivers: randomSide(r, n, density),
	}
}

func randomSide(r *rand.Rand, n int, density float64) sm.Prefs {
	prefs := make(sm.Prefs, n)
	for a := 1; a <= n; a++ {
		list := make([]sm.ID, 0, n)
		for _, i := range r.Perm(n) {
			if density >= 1 || r.Float64() < density {
				list = append(list, sm.ID(i+1))
			}
		}
		prefs[sm.ID(a)] = list
	}
	return prefs
}
