// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

// Package scan runs the MSP filter over a database of digital sequences,
// in parallel, and escalates overflowed scores to a full-precision scorer.
//
// The optimized profile is shared read-only across all workers; each worker
// owns one FilterRow workspace for the duration of its chunk, which is the
// only state the filter mutates.
package scan

import (
	"errors"
	"runtime"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"

	"github.com/ajroetker/go-profilehmm/phmm"
)

// Result is the outcome of filtering one database sequence.
type Result struct {
	Index     int     // position in the input slice
	Score     float32 // nat score, from the filter or the fallback
	Escalated bool    // the filter's numeric range was exceeded
	Pass      bool    // Score cleared the threshold
	Err       error   // non-nil only on a configuration defect
}

// Config parameterizes a Scanner.
type Config struct {
	// Threshold in nats; sequences scoring at or above it are marked Pass.
	Threshold float32
	// Workers is the pool size; <= 0 means GOMAXPROCS.
	Workers int
	// Fallback rescores sequences whose filter score overflowed. If nil,
	// the Scanner uses phmm.GenericMSP with the generic profile given to
	// New; if that is also nil, overflowed sequences keep a +Inf score.
	Fallback func(dsq []byte, L int) (float32, error)
}

// Scanner filters sequence databases against one profile. Create once,
// reuse for many Scan calls, and Close when done.
type Scanner struct {
	om        *phmm.OProfile
	pool      *workerpool.Pool
	threshold float32
	fallback  func(dsq []byte, L int) (float32, error)
}

// New creates a Scanner for om. gm, when non-nil, provides the default
// full-precision fallback scorer; it must describe the same model as om.
func New(om *phmm.OProfile, gm *phmm.Profile, cfg Config) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	fallback := cfg.Fallback
	if fallback == nil && gm != nil {
		fallback = func(dsq []byte, L int) (float32, error) {
			return phmm.GenericMSP(dsq, L, gm), nil
		}
	}
	return &Scanner{
		om:        om,
		pool:      workerpool.New(workers),
		threshold: cfg.Threshold,
		fallback:  fallback,
	}
}

// Close shuts down the worker pool.
func (s *Scanner) Close() { s.pool.Close() }

// Scan filters every sequence in seqs and returns one Result per input, in
// input order. Each seq is a digital sequence (1-indexed, sentinels at both
// ends). Scan may be called repeatedly on the same Scanner; calls are
// serialized by the caller, not the Scanner.
//
// The profile's length-dependent transition cost is fixed at conversion
// time; score all sequences of one length class per ReconfigLength call,
// as the filter's own calibration does.
func (s *Scanner) Scan(seqs [][]byte) []Result {
	results := make([]Result, len(seqs))
	s.pool.ParallelFor(len(seqs), func(start, end int) {
		ox := phmm.NewFilterRow(s.om.M)
		for i := start; i < end; i++ {
			results[i] = s.scoreOne(i, seqs[i], ox)
		}
	})
	return results
}

func (s *Scanner) scoreOne(i int, dsq []byte, ox *phmm.FilterRow) Result {
	L := len(dsq) - 2
	r := Result{Index: i}

	sc, err := phmm.MSPFilter(dsq, L, s.om, ox)
	switch {
	case err == nil:
		r.Score = sc
	case errors.Is(err, phmm.ErrRange):
		r.Escalated = true
		r.Score = sc // +Inf sentinel still ranks the hit first
		if s.fallback != nil {
			if sc2, ferr := s.fallback(dsq, L); ferr == nil {
				r.Score = sc2
			}
		}
	default:
		r.Err = err
		return r
	}

	r.Pass = r.Score >= s.threshold
	return r
}
