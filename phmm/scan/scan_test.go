package scan

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-profilehmm/phmm"
)

func testDatabase(t *testing.T, n, L int) ([][]byte, *phmm.Profile, *phmm.OProfile) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	gm := phmm.Sample(rng, phmm.Amino, 120)
	gm.SetLength(L)
	om := phmm.NewOProfile(gm)

	f := phmm.UniformBackground(phmm.Amino)
	seqs := make([][]byte, n)
	for i := range seqs {
		seqs[i] = phmm.SampleSequence(rng, f, L)
	}
	return seqs, gm, om
}

func TestScanMatchesSequentialFiltering(t *testing.T) {
	seqs, gm, om := testDatabase(t, 200, 180)

	s := New(om, gm, Config{Workers: 4, Threshold: -5})
	defer s.Close()
	results := s.Scan(seqs)
	require.Len(t, results, len(seqs))

	ox := phmm.NewFilterRow(om.M)
	for i, dsq := range seqs {
		require.NoError(t, results[i].Err)
		assert.Equal(t, i, results[i].Index)

		want, err := phmm.MSPFilter(dsq, 180, om, ox)
		if err != nil {
			want = phmm.GenericMSP(dsq, 180, gm)
			assert.True(t, results[i].Escalated, "sequence %d", i)
		} else {
			assert.False(t, results[i].Escalated, "sequence %d", i)
		}
		assert.InDelta(t, want, results[i].Score, 1e-6, "sequence %d", i)
		assert.Equal(t, results[i].Score >= -5, results[i].Pass, "sequence %d", i)
	}
}

func TestScanEscalatesOverflows(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	gm := phmm.SamplePeaked(rng, phmm.Amino, 145, 0.9)
	gm.SetLength(400)
	om := phmm.NewOProfile(gm)

	// A consensus repeat overflows; random sequences do not.
	cons := gm.Consensus()
	hot := phmm.NewDigital(400)
	for i := 1; i <= 400; i++ {
		hot[i] = cons[(i-1)%gm.M+1]
	}
	cold := phmm.SampleSequence(rng, phmm.UniformBackground(phmm.Amino), 400)

	s := New(om, gm, Config{Workers: 2, Threshold: 0})
	defer s.Close()
	results := s.Scan([][]byte{hot, cold})

	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Escalated)
	assert.False(t, math.IsInf(float64(results[0].Score), 1), "fallback must produce a finite score")
	assert.True(t, results[0].Pass)

	require.NoError(t, results[1].Err)
	assert.False(t, results[1].Escalated)
}

func TestScanWithoutFallbackKeepsInfSentinel(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	gm := phmm.SamplePeaked(rng, phmm.Amino, 145, 0.9)
	gm.SetLength(400)
	om := phmm.NewOProfile(gm)

	cons := gm.Consensus()
	hot := phmm.NewDigital(400)
	for i := 1; i <= 400; i++ {
		hot[i] = cons[(i-1)%gm.M+1]
	}

	s := New(om, nil, Config{Workers: 1})
	defer s.Close()
	results := s.Scan([][]byte{hot})

	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Escalated)
	assert.True(t, math.IsInf(float64(results[0].Score), 1))
	assert.True(t, results[0].Pass)
}

func TestScanReusableAcrossCalls(t *testing.T) {
	seqs, gm, om := testDatabase(t, 30, 90)
	s := New(om, gm, Config{Workers: 3})
	defer s.Close()

	first := s.Scan(seqs)
	second := s.Scan(seqs)
	require.Equal(t, first, second)
}
