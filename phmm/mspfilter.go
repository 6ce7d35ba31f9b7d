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
	"fmt"
	"math"

	"github.com/ajroetker/go-highway/hwy"
)

// MSPFilter estimates the MSP score of digital sequence dsq[1..L] against
// the optimized profile om, in limited uint8 precision, using the one-row
// workspace ox. The returned score is in nats.
//
// The score may overflow the filter's range (and will, on high-scoring
// sequences), but never underflows. On overflow MSPFilter returns +Inf and
// ErrRange; treat that as a strong hit and rescore with a full-precision
// method. An undersized workspace returns an error wrapping ErrTooSmall
// before any scoring work is done.
//
// The filter inherently assumes local alignment and uses its own special
// transition costs from om, not a profile's full transition set.
func MSPFilter(dsq []byte, L int, om *OProfile, ox *FilterRow) (float32, error) {
	Q := om.Q
	if Q > ox.allocQ || om.V != ox.V {
		return 0, fmt.Errorf("%w: need %d segments of %d lanes, have %d of %d",
			ErrTooSmall, Q, om.V, ox.allocQ, ox.V)
	}
	ox.M = om.M
	V := om.V
	dp := ox.dp[:Q*V]

	// In offset unsigned arithmetic, -infinity is 0 and score zero is
	// om.base. All transition values are costs to be subtracted.
	clear(dp)
	biasv := hwy.Set(om.bias)
	xB := subU8(om.base, om.tjb)
	xC := uint8(0)

	for i := 1; i <= L; i++ {
		rbv := om.rbv[dsq[i]]
		xEv := hwy.Zero[uint8]()
		xBv := hwy.Set(subU8(xB, om.tbm))

		// One lane slide of the last segment gives every position its
		// predecessor's stored value; the zero shifted into lane 0 is
		// -infinity, so position 1 sees only the begin offer below.
		mpv := hwy.Slide1Up(hwy.Load(dp[(Q-1)*V:]))
		for q := 0; q < Q; q++ {
			cell := dp[q*V : (q+1)*V]

			sv := hwy.Max(mpv, xBv)
			sv = hwy.SaturatedAdd(sv, biasv)
			sv = hwy.SaturatedSub(sv, hwy.Load(rbv[q*V:(q+1)*V]))
			xEv = hwy.Max(xEv, sv)

			// Delayed store: the old cell feeds the next segment's
			// predecessor lookup.
			mpv = hwy.Load(cell)
			hwy.Store(sv, cell)
		}

		xE := hwy.ReduceMax(xEv)
		if xE >= 255-om.bias {
			// Overflow. The exact inequality matters: past this point
			// saturation could wrap a detectable overflow into a wrong
			// finite score.
			return float32(math.Inf(1)), ErrRange
		}

		xC = max(xC, subU8(xE, om.tec))
		xB = subU8(max(om.base, xC), om.tjb)

		if ox.trace != nil {
			ox.trace(i, xE, xB, xC)
		}
	}

	// C->T, then restore the missing N/C/J loop contributions.
	return om.translateScore(int(xC)), nil
}

// subU8 is saturating uint8 subtraction, clamping at 0.
func subU8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}
