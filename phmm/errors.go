// Copyright 2025 go-profilehmm Authors. SPDX-License-Identifier: Apache-2.0

package phmm

import "errors"

// ErrRange reports that a score overflowed the filter's uint8 numeric
// range. This is an expected outcome for high-scoring sequences, not a
// failure: the sequence is already known to be interesting, and the caller
// should rescore it with a full-precision method such as GenericMSP.
var ErrRange = errors.New("phmm: score exceeds filter numeric range")

// ErrTooSmall reports a workspace whose capacity is insufficient for the
// profile being scored. This is a caller configuration defect; the filter
// never resizes a workspace itself.
var ErrTooSmall = errors.New("phmm: filter row allocated too small")
