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

// Package phmm implements the MSP acceleration filter for profile HMM
// homology search: a one-row, O(M) dynamic-programming pass that estimates
// the best ungapped local alignment score of a target sequence against a
// profile, in reduced (uint8 fixed-point) precision.
//
// The filter is the first stage of a multi-stage search pipeline. It is
// cheap enough to run on every candidate sequence; only sequences whose
// estimated score clears a threshold, or whose score overflows the filter's
// limited numeric range (reported as ErrRange), are escalated to slower
// full-precision scoring.
//
// Basic usage:
//
//	gm := phmm.Sample(rng, phmm.Amino, 145)
//	gm.SetLength(400)
//	om := phmm.NewOProfile(gm)
//	ox := phmm.NewFilterRow(om.M)
//
//	sc, err := phmm.MSPFilter(dsq, L, om, ox)
//	if errors.Is(err, phmm.ErrRange) {
//		sc = phmm.GenericMSP(dsq, L, gm) // escalate to the exact scorer
//	}
//
// The inner loop is built on go-highway's portable SIMD operations and
// processes one vector of profile positions per instruction, using the
// striped layout described in the OProfile documentation.
package phmm
