// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

package phmm

import "github.com/ajroetker/go-highway/hwy"

// FilterRow is the reusable one-row DP workspace for MSPFilter. Allocate
// one per worker, sized for the largest model you will score, and reuse it
// across sequences: the filter fully reinitializes the row on every call,
// so no state leaks between calls.
//
// A FilterRow is exclusively owned by one MSPFilter call at a time; it is
// not safe for concurrent use.
type FilterRow struct {
	dp     []uint8 // Q*V accumulator cells, striped like OProfile rows
	allocQ int     // segment capacity
	V      int     // uint8 lanes per vector at allocation time

	// M records the model size of the last filter call, for callers that
	// interleave models of different sizes and want to sanity-check reuse.
	M int

	// trace, when set, observes the special-state bytes after each row.
	// Used by tests; nil in normal operation.
	trace func(i int, xE, xB, xC uint8)
}

// NewFilterRow allocates a workspace large enough for models of up to
// allocM positions.
func NewFilterRow(allocM int) *FilterRow {
	V := hwy.MaxLanes[uint8]()
	Q := numSegments(allocM, V)
	return &FilterRow{
		dp:     make([]uint8, Q*V),
		allocQ: Q,
		V:      V,
	}
}

// SegmentCapacity returns the number of striped segments the row can hold.
func (ox *FilterRow) SegmentCapacity() int { return ox.allocQ }

// Grow reallocates the row to fit models of up to allocM positions.
// Never called by the filter itself; an undersized row is a caller error,
// not something the hot path fixes up.
func (ox *FilterRow) Grow(allocM int) {
	Q := numSegments(allocM, ox.V)
	if Q <= ox.allocQ {
		return
	}
	ox.dp = make([]uint8, Q*ox.V)
	ox.allocQ = Q
}
