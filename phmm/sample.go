// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

package phmm

import (
	"math"
	"math/rand"
)

// UniformBackground returns the flat background residue distribution for
// an alphabet: 1/K per residue.
func UniformBackground(abc Alphabet) []float32 {
	f := make([]float32, abc.K())
	for x := range f {
		f[x] = 1.0 / float32(abc.K())
	}
	return f
}

// Sample generates a random M-position profile over abc: per-position
// emission distributions drawn from a flat Dirichlet, scored as log-odds
// against the uniform background. Intended for tests and benchmarks.
func Sample(rng *rand.Rand, abc Alphabet, M int) *Profile {
	gm := NewProfile(abc, M)
	gm.Name = "sampled"
	K := abc.K()
	p := make([]float64, K)
	for k := 0; k < M; k++ {
		var sum float64
		for x := range p {
			p[x] = rng.ExpFloat64()
			sum += p[x]
		}
		for x := range p {
			gm.Msc[k][x] = float32(math.Log(p[x] / sum * float64(K)))
		}
	}
	return gm
}

// SamplePeaked is like Sample but concentrates each position's emission
// distribution on one preferred residue with probability peak. Useful for
// constructing models whose consensus sequence scores high enough to
// overflow the filter.
func SamplePeaked(rng *rand.Rand, abc Alphabet, M int, peak float64) *Profile {
	gm := NewProfile(abc, M)
	gm.Name = "peaked"
	K := abc.K()
	rest := (1.0 - peak) / float64(K-1)
	for k := 0; k < M; k++ {
		hot := rng.Intn(K)
		for x := 0; x < K; x++ {
			p := rest
			if x == hot {
				p = peak
			}
			gm.Msc[k][x] = float32(math.Log(p * float64(K)))
		}
	}
	return gm
}

// SampleSequence draws an i.i.d. digital sequence of length L from the
// background distribution f.
func SampleSequence(rng *rand.Rand, f []float32, L int) []byte {
	dsq := NewDigital(L)
	for i := 1; i <= L; i++ {
		r := rng.Float64()
		var cum float64
		x := len(f) - 1
		for xi, fx := range f {
			cum += float64(fx)
			if r < cum {
				x = xi
				break
			}
		}
		dsq[i] = byte(x)
	}
	return dsq
}
