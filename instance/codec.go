// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Read decodes an instance in the given format.
func Read(r io.Reader, f Format) (*Instance, error) {
	switch f {
	case Text:
		return ReadText(r)
	case JSON, YAML:
		var in Instance
		if err := Decode(r, f, &in); err != nil {
			return nil, err
		}
		return &in, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Load reads an instance file. An empty format is guessed from the
// file extension.
func Load(path string, f Format) (*Instance, error) {
	if f == "" {
		f = FormatOf(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	in, err := Read(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return in, nil
}

// Write encodes an instance in the given format.
func Write(w io.Writer, in *Instance, f Format) error {
	if f == Text {
		return WriteText(w, in)
	}
	return Encode(w, f, in)
}

// ReadOutcome decodes a matching in the given format.
func ReadOutcome(r io.Reader, f Format) (*Outcome, error) {
	if f == Text {
		return ReadOutcomeText(r)
	}
	var o Outcome
	if err := Decode(r, f, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// LoadOutcome reads a matching file, guessing an empty format from the
// extension.
func LoadOutcome(path string, f Format) (*Outcome, error) {
	if f == "" {
		f = FormatOf(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := ReadOutcome(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return o, nil
}

// WriteOutcome encodes a matching in the given format.
func WriteOutcome(w io.Writer, o *Outcome, f Format) error {
	if f == Text {
		return WriteOutcomeText(w, o)
	}
	return Encode(w, f, o)
}

// Decode reads one JSON or YAML document into v, rejecting unknown fields.
func Decode(r io.Reader, f Format, v interface{}) error {
	switch f {
	case JSON:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrSyntax, err)
		}
	case YAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", ErrSyntax, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return nil
}

// Encode writes v as an indented JSON or YAML document.
func Encode(w io.Writer, f Format, v interface{}) error {
	switch f {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "   ")
		return encoder.Encode(v)
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
