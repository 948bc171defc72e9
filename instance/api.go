// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instance reads and writes matching problems and their outcomes.
package instance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sm "github.com/someonegg/stablematch"
)

// Instance is a matching problem: n agents per side and their lists.
type Instance struct {
	N         int      `json:"n" yaml:"n"`
	Proposers sm.Prefs `json:"proposers" yaml:"proposers"`
	Receivers sm.Prefs `json:"receivers" yaml:"receivers"`
}

// Table validates the instance and builds its preference table.
func (in *Instance) Table() (*sm.Table, error) {
	return sm.NewTable(in.N, in.Proposers, in.Receivers)
}

// Outcome is the serialized form of a matching.
type Outcome struct {
	N                  int       `json:"n" yaml:"n"`
	Steps              int       `json:"steps,omitempty" yaml:"steps,omitempty"`
	Pairs              []sm.Pair `json:"pairs" yaml:"pairs"`
	UnmatchedProposers []sm.ID   `json:"unmatched_proposers,omitempty" yaml:"unmatched_proposers,omitempty"`
	UnmatchedReceivers []sm.ID   `json:"unmatched_receivers,omitempty" yaml:"unmatched_receivers,omitempty"`
}

// OutcomeOf projects a result into its serialized form.
func OutcomeOf(res *sm.Result) *Outcome {
	return &Outcome{
		N:                  res.N(),
		Steps:              res.Steps(),
		Pairs:              res.Pairs(),
		UnmatchedProposers: res.UnmatchedProposers(),
		UnmatchedReceivers: res.UnmatchedReceivers(),
	}
}

// PairSet checks the outcome is one-to-one and returns it as a Matching.
func (o *Outcome) PairSet() (*sm.PairSet, error) {
	return sm.NewPairSet(o.N, o.Pairs)
}

// Format names a serialization.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("instance: unknown format")
	ErrSyntax        = errors.New("instance: syntax error")
)

// ParseFormat accepts the format names used on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf guesses the format from a file extension, defaulting to Text.
func FormatOf(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return Text
}
