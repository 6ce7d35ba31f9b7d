// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

package phmm

import (
	"fmt"
	"strings"
)

// SentinelCode marks the boundaries of a digital sequence. Digital sequences
// are 1-indexed: dsq[0] and dsq[L+1] hold SentinelCode and dsq[1..L] hold
// residue codes in [0, K).
const SentinelCode = 0xff

// Alphabet describes a biological residue alphabet and maps between symbol
// characters and small-integer residue codes.
type Alphabet struct {
	Name    string
	Symbols string // canonical symbol per code, Symbols[x] is code x
}

// DNA is the 4-symbol nucleotide alphabet.
var DNA = Alphabet{Name: "dna", Symbols: "ACGT"}

// Amino is the 20-symbol amino acid alphabet.
var Amino = Alphabet{Name: "amino", Symbols: "ACDEFGHIKLMNPQRSTVWY"}

// K returns the alphabet size.
func (a Alphabet) K() int { return len(a.Symbols) }

// Digitize converts a residue string into a digital sequence of length
// len(s)+2 with sentinel codes at both ends. Matching is case-insensitive.
func (a Alphabet) Digitize(s string) ([]byte, error) {
	dsq := make([]byte, len(s)+2)
	dsq[0] = SentinelCode
	dsq[len(s)+1] = SentinelCode
	up := strings.ToUpper(s)
	for i := 0; i < len(up); i++ {
		x := strings.IndexByte(a.Symbols, up[i])
		if x < 0 {
			return nil, fmt.Errorf("phmm: symbol %q at position %d not in %s alphabet", s[i], i+1, a.Name)
		}
		dsq[i+1] = byte(x)
	}
	return dsq, nil
}

// Textize converts the residue codes dsq[1..L] back into a symbol string.
// Codes outside the alphabet render as '?'.
func (a Alphabet) Textize(dsq []byte) string {
	if len(dsq) < 2 {
		return ""
	}
	var b strings.Builder
	for _, x := range dsq[1 : len(dsq)-1] {
		if int(x) < a.K() {
			b.WriteByte(a.Symbols[x])
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// NewDigital allocates an empty digital sequence for L residues, with the
// sentinels already in place.
func NewDigital(L int) []byte {
	dsq := make([]byte, L+2)
	dsq[0] = SentinelCode
	dsq[L+1] = SentinelCode
	return dsq
}
