// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

package phmm

import "math"

// Mode selects the alignment mode a profile is configured for. The MSP
// filter only distinguishes multihit local from single-hit (uni) local;
// the mode picks the special transition costs and the fixed length
// correction applied to the final nat score.
type Mode int

const (
	// ModeMultihit allows multiple local alignments per target sequence.
	ModeMultihit Mode = iota
	// ModeUnilocal allows exactly one local alignment per target sequence.
	ModeUnilocal
)

// String returns "multihit" or "unilocal".
func (m Mode) String() string {
	if m == ModeUnilocal {
		return "unilocal"
	}
	return "multihit"
}

// Profile is a full-precision profile model: per-position, per-residue
// match emission scores as log-odds in nats, plus the scalar configuration
// the MSP scorers need. Only match emissions matter to the MSP filter;
// insert and delete states never enter an ungapped alignment.
//
// A Profile is immutable for scoring purposes once configured, except for
// SetLength, which retargets the length-dependent transition costs.
type Profile struct {
	Name string
	Abc  Alphabet
	M    int         // number of model positions
	Msc  [][]float32 // Msc[k][x]: match score of residue x at position k+1, nats
	Mode Mode
	L    int // configured target sequence length
}

// NewProfile allocates a zero-scored profile of M positions.
func NewProfile(abc Alphabet, M int) *Profile {
	msc := make([][]float32, M)
	for k := range msc {
		msc[k] = make([]float32, abc.K())
	}
	return &Profile{Abc: abc, M: M, Msc: msc, Mode: ModeMultihit, L: 400}
}

// SetLength reconfigures the profile for target sequences of length L.
func (gm *Profile) SetLength(L int) { gm.L = L }

// MaxScore returns the largest match emission score in the profile.
func (gm *Profile) MaxScore() float32 {
	best := float32(math.Inf(-1))
	for _, row := range gm.Msc {
		for _, sc := range row {
			if sc > best {
				best = sc
			}
		}
	}
	return best
}

// Consensus returns the residue code with the best match score at each
// position, 1-indexed with sentinels, ready to feed to a scorer.
func (gm *Profile) Consensus() []byte {
	dsq := NewDigital(gm.M)
	for k, row := range gm.Msc {
		best := 0
		for x := 1; x < len(row); x++ {
			if row[x] > row[best] {
				best = x
			}
		}
		dsq[k+1] = byte(best)
	}
	return dsq
}

// Special transition scores of the implicit MSP model, in nats. The MSP
// scorers use these instead of the profile's own transitions: one uniform
// begin->match entry, a 0.5 match->end exit, and a length-dependent
// join/begin move. See GenericMSP.

func (gm *Profile) tbmScore() float64 {
	return math.Log(2.0 / (float64(gm.M) * float64(gm.M+1)))
}

func (gm *Profile) tecScore() float64 {
	return math.Log(0.5)
}

func (gm *Profile) tjbScore() float64 {
	if gm.Mode == ModeUnilocal {
		return math.Log(2.0 / float64(gm.L+2))
	}
	return math.Log(3.0 / float64(gm.L+3))
}

// lengthCorrection is the fixed constant restoring the N/C/J loop
// contributions that the MSP recurrence leaves out; approximately
// L*log(L/(L+3)) for multihit mode, L*log(L/(L+2)) for unilocal.
func lengthCorrection(mode Mode) float32 {
	if mode == ModeUnilocal {
		return 2.0
	}
	return 3.0
}
