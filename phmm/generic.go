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

import "math"

// GenericMSP computes the MSP score of dsq[1..L] against gm in full float
// precision, using the same recurrence and the same length correction as
// MSPFilter but unrounded emission scores. It is the exact scorer that
// callers escalate to on ErrRange, and the reference that bounds the
// filter's quantization error.
//
// O(M*L) time, O(M) space. Unlike MSPFilter it cannot overflow.
func GenericMSP(dsq []byte, L int, gm *Profile) float32 {
	M := gm.M
	negInf := math.Inf(-1)

	tbm := gm.tbmScore()
	tec := gm.tecScore()
	tjb := gm.tjbScore()

	prev := make([]float64, M+1)
	cur := make([]float64, M+1)
	for k := range prev {
		prev[k] = negInf
	}
	cur[0] = negInf

	xB := tjb
	xC := negInf

	for i := 1; i <= L; i++ {
		x := dsq[i]
		offer := xB + tbm
		xE := negInf

		for k := 1; k <= M; k++ {
			v := prev[k-1]
			if offer > v {
				v = offer
			}
			v += float64(gm.Msc[k-1][x])
			cur[k] = v
			if v > xE {
				xE = v
			}
		}

		if e := xE + tec; e > xC {
			xC = e
		}
		xB = tjb
		if xC > 0 {
			xB += xC
		}

		prev, cur = cur, prev
	}

	return float32(xC+tjb) - lengthCorrection(gm.Mode)
}

// RoundedMSP is the calibrated-rounding emulation of MSPFilter: it runs
// the identical recurrence on the identical byteified costs, but in plain
// ints with no lane striping. Whenever MSPFilter returns a finite score,
// RoundedMSP returns the same score; whenever the filter overflows,
// RoundedMSP returns ErrRange from the same sequence position.
//
// It exists to validate the filter (and its score translation) against an
// unconstrained-precision implementation, and as readable documentation of
// what the vector code computes.
func RoundedMSP(dsq []byte, L int, om *OProfile) (float32, error) {
	M := om.M
	base := int(om.base)
	bias := int(om.bias)
	tbm := int(om.tbm)
	tec := int(om.tec)
	tjb := int(om.tjb)

	prev := make([]int, M+1)
	cur := make([]int, M+1)

	xB := max(0, base-tjb)
	xC := 0

	for i := 1; i <= L; i++ {
		x := dsq[i]
		offer := max(0, xB-tbm)
		xE := 0

		for k := 1; k <= M; k++ {
			v := max(prev[k-1], offer)
			v += bias - int(om.emissionCost(k, x))
			if v < 0 {
				v = 0 // the filter's subtraction saturates at 0
			}
			cur[k] = v
			if v > xE {
				xE = v
			}
		}

		if xE >= 255-bias {
			return float32(math.Inf(1)), ErrRange
		}

		xC = max(xC, max(0, xE-tec))
		xB = max(0, max(base, xC)-tjb)

		prev, cur = cur, prev
	}

	return om.translateScore(xC), nil
}

// emissionCost returns the biased byte cost of residue x at model position
// k (1-indexed), read back out of the striped layout.
func (om *OProfile) emissionCost(k int, x byte) uint8 {
	k--
	q := k % om.Q
	j := k / om.Q
	return om.rbv[x][q*om.V+j]
}
