// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

// Package hmmfile reads and writes profile models as YAML documents.
//
// The format stores the full-precision profile (name, alphabet, mode,
// configured length, and the match score table in nats); the striped
// filter representation is always derived in memory via phmm.NewOProfile.
package hmmfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-profilehmm/phmm"
)

type document struct {
	Name        string      `yaml:"name"`
	Alphabet    string      `yaml:"alphabet"`
	Mode        string      `yaml:"mode"`
	Length      int         `yaml:"length"`
	MatchScores [][]float32 `yaml:"match_scores"`
}

// Read parses a profile from r.
func Read(r io.Reader) (*phmm.Profile, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("hmmfile: decode: %w", err)
	}

	var abc phmm.Alphabet
	switch doc.Alphabet {
	case phmm.DNA.Name:
		abc = phmm.DNA
	case phmm.Amino.Name:
		abc = phmm.Amino
	default:
		return nil, fmt.Errorf("hmmfile: unknown alphabet %q", doc.Alphabet)
	}

	var mode phmm.Mode
	switch doc.Mode {
	case "", phmm.ModeMultihit.String():
		mode = phmm.ModeMultihit
	case phmm.ModeUnilocal.String():
		mode = phmm.ModeUnilocal
	default:
		return nil, fmt.Errorf("hmmfile: unknown mode %q", doc.Mode)
	}

	if len(doc.MatchScores) == 0 {
		return nil, fmt.Errorf("hmmfile: profile %q has no match scores", doc.Name)
	}
	for k, row := range doc.MatchScores {
		if len(row) != abc.K() {
			return nil, fmt.Errorf("hmmfile: position %d has %d scores, want %d (%s alphabet)",
				k+1, len(row), abc.K(), abc.Name)
		}
	}

	gm := phmm.NewProfile(abc, len(doc.MatchScores))
	gm.Name = doc.Name
	gm.Mode = mode
	gm.Msc = doc.MatchScores
	if doc.Length > 0 {
		gm.SetLength(doc.Length)
	}
	return gm, nil
}

// Write serializes gm to w.
func Write(w io.Writer, gm *phmm.Profile) error {
	doc := document{
		Name:        gm.Name,
		Alphabet:    gm.Abc.Name,
		Mode:        gm.Mode.String(),
		Length:      gm.L,
		MatchScores: gm.Msc,
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("hmmfile: encode: %w", err)
	}
	return nil
}

// Load reads a profile from the file at path.
func Load(path string) (*phmm.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hmmfile: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes gm to the file at path, replacing any existing file.
func Save(path string, gm *phmm.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hmmfile: %w", err)
	}
	if err := Write(f, gm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
