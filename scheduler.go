// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

// scheduler is the FIFO of proposers waiting for their next proposal.
//
// Precondition for enqueue: the id is not already queued. The scheduler does
// not check it; the engine tracks membership.
type scheduler struct {
	items []ID
	head  int
}

func newScheduler(capacity int) *scheduler {
	return &scheduler{items: make([]ID, 0, capacity)}
}

func (s *scheduler) initialize(ids []ID) {
	s.items = append(s.items[:0], ids...)
	s.head = 0
}

func (s *scheduler) dequeue() (ID, bool) {
	if s.head == len(s.items) {
		return 0, false
	}
	p := s.items[s.head]
	s.head++
	if s.head == len(s.items) {
		s.items, s.head = s.items[:0], 0
	}
	return p, true
}

func (s *scheduler) enqueue(p ID) {
	// reclaim the consumed prefix once it dominates the buffer
	if s.head > 0 && s.head >= len(s.items)/2 && len(s.items) == cap(s.items) {
		n := copy(s.items, s.items[s.head:])
		s.items, s.head = s.items[:n], 0
	}
	s.items = append(s.items, p)
}

func (s *scheduler) len() int {
	return len(s.items) - s.head
}
