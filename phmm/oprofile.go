// Copyright 2025 go-profilehmm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package phmm

import (
	"math"

	"github.com/ajroetker/go-highway/hwy"
)

// Fixed-point encoding of the uint8 filter. Scores are held as offset
// unsigned costs: 0 is -infinity, oBase is zero, and one unit is
// 1/oScale nats (a third of a bit). Emission lookups carry a uniform
// +bias so that every intermediate stays non-negative.
const (
	oBase  = 190
	oScale = 3.0 / math.Ln2 // units per nat
)

// OProfile is a profile converted to the filter's striped uint8 layout.
//
// Match emission costs for residue x live in a row of Q vectors of V lanes
// each, where V is the SIMD lane count for uint8 and Q = ceil(M/V). Profile
// position k (0-based) maps to segment k%Q, lane k/Q: segment q holds
// positions q, q+Q, q+2Q, ... With this striping, sliding the last segment
// up by one lane yields the stored value of every position's predecessor,
// which is what lets the filter run the whole recurrence with one shift per
// row. Lanes past position M hold 255, the maximum cost, and can never
// enter an alignment.
//
// An OProfile is read-only after conversion (ReconfigLength aside) and may
// be shared freely across goroutines.
type OProfile struct {
	Name string
	Abc  Alphabet
	Mode Mode

	M int // model positions
	Q int // striped segments per row
	V int // uint8 lanes per vector
	L int // configured target length

	rbv [][]uint8 // rbv[x][q*V+j]: biased emission cost, position j*Q+q

	base  uint8 // offset of score zero
	bias  uint8 // uniform emission bias
	tbm   uint8 // begin->match entry cost
	tec   uint8 // match->end exit cost
	tjb   uint8 // join/begin move cost, length dependent
	scale float32
}

// numSegments returns the striped segment count for an M-position model
// at V lanes per vector.
func numSegments(M, V int) int {
	q := (M + V - 1) / V
	if q < 1 {
		q = 1
	}
	return q
}

// unbiasedByteify converts a nat score to an unsigned cost:
// cost = round(-scale * sc), clamped to [0,255].
func unbiasedByteify(sc float64) uint8 {
	c := math.Round(-oScale * sc)
	if c < 0 {
		c = 0
	}
	if c > 255 {
		c = 255
	}
	return uint8(c)
}

// biasedByteify converts a nat score to a cost with the emission bias
// folded in, saturating at 255 for scores too poor to represent.
func biasedByteify(sc float64, bias uint8) uint8 {
	c := math.Round(-oScale * sc)
	if c > float64(255-bias) {
		return 255
	}
	if c < float64(-int(bias)) {
		c = float64(-int(bias))
	}
	return uint8(int(c) + int(bias))
}

// NewOProfile converts a full-precision profile into the striped uint8
// representation the MSP filter consumes.
func NewOProfile(gm *Profile) *OProfile {
	V := hwy.MaxLanes[uint8]()
	Q := numSegments(gm.M, V)

	om := &OProfile{
		Name:  gm.Name,
		Abc:   gm.Abc,
		Mode:  gm.Mode,
		M:     gm.M,
		Q:     Q,
		V:     V,
		base:  oBase,
		scale: oScale,
	}

	// The bias is the rounded cost magnitude of the best emission in the
	// model; adding it before subtracting any emission cost keeps all
	// values unsigned.
	if best := float64(gm.MaxScore()); best > 0 {
		om.bias = unbiasedByteify(-best)
	}

	om.rbv = make([][]uint8, gm.Abc.K())
	for x := range om.rbv {
		row := make([]uint8, Q*V)
		for q := 0; q < Q; q++ {
			for j := 0; j < V; j++ {
				k := j*Q + q
				if k < gm.M {
					row[q*V+j] = biasedByteify(float64(gm.Msc[k][x]), om.bias)
				} else {
					row[q*V+j] = 255
				}
			}
		}
		om.rbv[x] = row
	}

	om.tbm = unbiasedByteify(gm.tbmScore())
	om.tec = unbiasedByteify(gm.tecScore())
	om.ReconfigLength(gm.L)
	return om
}

// ReconfigLength retargets the length-dependent join/begin cost for
// target sequences of length L. Cheap; safe to call between sequences,
// but not concurrently with scoring.
func (om *OProfile) ReconfigLength(L int) {
	om.L = L
	if om.Mode == ModeUnilocal {
		om.tjb = unbiasedByteify(math.Log(2.0 / float64(L+2)))
	} else {
		om.tjb = unbiasedByteify(math.Log(3.0 / float64(L+3)))
	}
}

// Base returns the fixed-point offset of score zero.
func (om *OProfile) Base() uint8 { return om.base }

// Bias returns the uniform emission bias. The filter's numeric range ends
// at 255-Bias(); any row maximum reaching it aborts with ErrRange.
func (om *OProfile) Bias() uint8 { return om.bias }

// Scale returns the number of fixed-point units per nat.
func (om *OProfile) Scale() float32 { return om.scale }

// translateScore converts a raw fixed-point xC accumulator into a
// calibrated nat score, applying the mode-dependent length correction.
// Shared by MSPFilter and RoundedMSP so the two cannot drift.
func (om *OProfile) translateScore(xC int) float32 {
	sc := (float32(xC-int(om.tjb)) - float32(om.base)) / om.scale
	return sc - lengthCorrection(om.Mode)
}
