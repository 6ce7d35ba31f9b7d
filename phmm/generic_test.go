package phmm

import (
	"math/rand"
	"testing"
)

func TestGenericMSPPrefersConsensus(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	gm := SamplePeaked(rng, DNA, 40, 0.8)
	gm.SetLength(40)

	cons := gm.Consensus()
	consensusScore := GenericMSP(cons, gm.M, gm)

	f := UniformBackground(DNA)
	for n := 0; n < 20; n++ {
		dsq := SampleSequence(rng, f, 40)
		if sc := GenericMSP(dsq, 40, gm); sc >= consensusScore {
			t.Fatalf("random sequence scored %.3f, consensus only %.3f", sc, consensusScore)
		}
	}
}

func TestGenericMSPModeCorrection(t *testing.T) {
	// With identical inputs the unilocal score differs from the multihit
	// one only through the tjb term and the fixed length correction.
	rng := rand.New(rand.NewSource(4))
	gm := Sample(rng, Amino, 25)
	gm.SetLength(80)
	dsq := SampleSequence(rng, UniformBackground(Amino), 80)

	gm.Mode = ModeMultihit
	multi := GenericMSP(dsq, 80, gm)
	gm.Mode = ModeUnilocal
	uni := GenericMSP(dsq, 80, gm)

	if multi == uni {
		t.Fatal("mode change did not affect the score")
	}
}

func TestRoundedMSPTranslatorAgainstClosedForm(t *testing.T) {
	// Exercise the score translation on its own: a hand-built xC maps to
	// ((xC - tjb) - base)/scale minus the per-mode constant.
	om := &OProfile{Mode: ModeMultihit, base: oBase, tjb: 9, scale: oScale}
	got := om.translateScore(230)
	want := (float32(230-9) - float32(oBase)) / float32(oScale)
	want -= 3.0
	if got != want {
		t.Fatalf("translateScore = %v, want %v", got, want)
	}

	om.Mode = ModeUnilocal
	if got := om.translateScore(230); got != want+1.0 {
		t.Fatalf("unilocal translateScore = %v, want %v", got, want+1.0)
	}
}
