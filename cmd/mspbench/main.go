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

// Command mspbench benchmarks the MSP filter and compares its scores
// against the full-precision reference implementations.
//
// Usage:
//
//	mspbench                          benchmark a sampled 145-position model
//	mspbench -profile model.yaml      benchmark a model loaded from YAML
//	mspbench -N 100 -c                compare filter vs. generic float scores
//	mspbench -N 100 -x                compare filter vs. exact rounded emulation
//	mspbench -b                       baseline: sequence generation only
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/ajroetker/go-profilehmm/phmm"
	"github.com/ajroetker/go-profilehmm/phmm/hmmfile"
)

var (
	profilePath = flag.String("profile", "", "YAML profile to benchmark (default: sample a random model)")
	modelSize   = flag.Int("M", 145, "size of the sampled model, ignored with -profile")
	alphabet    = flag.String("alphabet", "amino", "alphabet of the sampled model: dna or amino")
	seqLen      = flag.Int("L", 400, "length of random target sequences")
	numSeqs     = flag.Int("N", 50000, "number of random target sequences")
	seed        = flag.Int64("seed", 42, "random number seed")
	baseline    = flag.Bool("b", false, "baseline timing: generate sequences but don't score")
	compareGen  = flag.Bool("c", false, "print filter vs. generic float scores (implies small -N)")
	compareEmu  = flag.Bool("x", false, "print filter vs. exact rounded emulation scores")
)

func main() {
	flag.Parse()
	if *compareGen && *compareEmu {
		fmt.Fprintln(os.Stderr, "mspbench: -c and -x are mutually exclusive")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	var gm *phmm.Profile
	if *profilePath != "" {
		var err error
		if gm, err = hmmfile.Load(*profilePath); err != nil {
			fmt.Fprintf(os.Stderr, "mspbench: %v\n", err)
			os.Exit(1)
		}
	} else {
		var abc phmm.Alphabet
		switch *alphabet {
		case "dna":
			abc = phmm.DNA
		case "amino":
			abc = phmm.Amino
		default:
			fmt.Fprintf(os.Stderr, "mspbench: unknown alphabet %q\n", *alphabet)
			os.Exit(1)
		}
		gm = phmm.Sample(rng, abc, *modelSize)
	}
	gm.SetLength(*seqLen)

	om := phmm.NewOProfile(gm)
	ox := phmm.NewFilterRow(om.M)
	bg := phmm.UniformBackground(gm.Abc)

	fmt.Printf("# SIMD: %s, %d uint8 lanes/vector, %d segments\n",
		hwy.CurrentName(), om.V, om.Q)

	overflows := 0
	start := time.Now()
	for n := 0; n < *numSeqs; n++ {
		dsq := phmm.SampleSequence(rng, bg, *seqLen)
		if *baseline {
			continue
		}

		sc1, err := phmm.MSPFilter(dsq, *seqLen, om, ox)
		if errors.Is(err, phmm.ErrRange) {
			overflows++
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "mspbench: %v\n", err)
			os.Exit(1)
		}

		if *compareGen {
			sc2 := phmm.GenericMSP(dsq, *seqLen, gm)
			fmt.Printf("%.4f %.4f\n", sc1, sc2)
		}
		if *compareEmu {
			sc2, err2 := phmm.RoundedMSP(dsq, *seqLen, om)
			if errors.Is(err2, phmm.ErrRange) != errors.Is(err, phmm.ErrRange) {
				fmt.Fprintln(os.Stderr, "mspbench: overflow decisions disagree")
				os.Exit(1)
			}
			fmt.Printf("%.4f %.4f\n", sc1, sc2)
		}
	}
	elapsed := time.Since(start)

	mc := float64(gm.M) * float64(*seqLen) * float64(*numSeqs) / 1e6
	fmt.Printf("# CPU time: %v\n", elapsed)
	fmt.Printf("# M        = %d\n", gm.M)
	fmt.Printf("# Mc/s     = %.1f\n", mc/elapsed.Seconds())
	fmt.Printf("# overflow = %d/%d\n", overflows, *numSeqs)
}
