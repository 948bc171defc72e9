// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	sm "github.com/someonegg/stablematch"
)

const maxLine = 16 << 20

// ReadText parses the line format:
//
//	n
//	id pref pref ...   (2n lines)
//
// The first line for an id is that receiver's list, the second that
// proposer's. Blank lines are ignored.
func ReadText(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	in := &Instance{N: -1}
	// keyed lazily: memory follows the input, not n
	seenR := make(map[sm.ID]bool)
	seenP := make(map[sm.ID]bool)

	ln := 0
	for sc.Scan() {
		ln++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		ids, err := atoiAll(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, ln, err)
		}

		if in.N < 0 {
			if len(ids) != 1 || ids[0] < 0 {
				return nil, fmt.Errorf("%w: line %d: want a non-negative agent count", ErrSyntax, ln)
			}
			if int(ids[0]) > sm.MaxAgents {
				return nil, fmt.Errorf("line %d: %w", ln, &sm.MalformedPreferenceError{
					Side: sm.Proposers, Index: -1, Value: ids[0], Err: sm.ErrBadSize,
				})
			}
			in.N = int(ids[0])
			in.Proposers = make(sm.Prefs)
			in.Receivers = make(sm.Prefs)
			continue
		}

		id, prefs := ids[0], ids[1:]
		switch {
		case id < 1 || int(id) > in.N:
			return nil, fmt.Errorf("line %d: %w", ln, &sm.MalformedPreferenceError{
				Side: sm.Receivers, Agent: id, Index: -1, Value: id, Err: sm.ErrIDOutOfRange,
			})
		case !seenR[id]:
			seenR[id] = true
			in.Receivers[id] = prefs
		case !seenP[id]:
			seenP[id] = true
			in.Proposers[id] = prefs
		default:
			return nil, fmt.Errorf("line %d: %w", ln, &sm.MalformedPreferenceError{
				Side: sm.Proposers, Agent: id, Index: -1, Value: id, Err: sm.ErrSideCount,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if in.N < 0 {
		return nil, fmt.Errorf("%w: missing agent count", ErrSyntax)
	}

	for id := 1; id <= in.N; id++ {
		side := sm.Side(-1)
		if !seenR[sm.ID(id)] {
			side = sm.Receivers
		} else if !seenP[sm.ID(id)] {
			side = sm.Proposers
		}
		if side >= 0 {
			return nil, &sm.MalformedPreferenceError{
				Side: side, Agent: sm.ID(id), Index: -1, Value: sm.ID(id), Err: sm.ErrSideCount,
			}
		}
	}
	return in, nil
}

func atoiAll(fields []string) ([]sm.ID, error) {
	ids := make([]sm.ID, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ids[i] = sm.ID(v)
	}
	return ids, nil
}

// WriteText writes an instance in the format ReadText accepts.
func WriteText(w io.Writer, in *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, in.N)
	for _, side := range []sm.Prefs{in.Receivers, in.Proposers} {
		for id := 1; id <= in.N; id++ {
			bw.WriteString(strconv.Itoa(id))
			for _, p := range side[sm.ID(id)] {
				bw.WriteByte(' ')
				bw.WriteString(strconv.Itoa(int(p)))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteOutcomeText prints one line per receiver in ascending order: the
// matched proposer, or "-" when the receiver is unmatched.
func WriteOutcomeText(w io.Writer, o *Outcome) error {
	byReceiver := make([]sm.ID, o.N+1)
	for _, pr := range o.Pairs {
		if pr.Receiver >= 1 && int(pr.Receiver) <= o.N {
			byReceiver[pr.Receiver] = pr.Proposer
		}
	}

	bw := bufio.NewWriter(w)
	for r := 1; r <= o.N; r++ {
		if p := byReceiver[r]; p != sm.Unmatched {
			fmt.Fprintln(bw, int(p))
		} else {
			fmt.Fprintln(bw, "-")
		}
	}
	return bw.Flush()
}

// ReadOutcomeText parses the output of WriteOutcomeText. Line i belongs to
// receiver i.
func ReadOutcomeText(r io.Reader) (*Outcome, error) {
	sc := bufio.NewScanner(r)
	o := &Outcome{}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		o.N++
		if line == "-" {
			o.UnmatchedReceivers = append(o.UnmatchedReceivers, sm.ID(o.N))
			continue
		}
		p, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%w: receiver %d: %v", ErrSyntax, o.N, err)
		}
		o.Pairs = append(o.Pairs, sm.Pair{Proposer: sm.ID(p), Receiver: sm.ID(o.N)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return o, nil
}
