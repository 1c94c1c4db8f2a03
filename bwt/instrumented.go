// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import (
	"time"

	"github.com/jltsiren/gbwt-go/internal/metrics"
)

// InstrumentedRecord wraps a Record, reporting the latency and count of LF,
// Follow, BdFollow, and PredecessorAt queries to a metrics.Registry; other
// Record methods pass through unreported. It is a thin decorator; the underlying
// Record is still safe to query directly and concurrently.
type InstrumentedRecord struct {
	*Record
	registry *metrics.Registry
}

// Instrument wraps record with metrics reporting against registry.
func Instrument(record *Record, registry *metrics.Registry) *InstrumentedRecord {
	return &InstrumentedRecord{Record: record, registry: registry}
}

// LF overrides Record.LF to record latency under "lf".
func (r *InstrumentedRecord) LF(i uint64) (Pos, bool) {
	start := time.Now()
	pos, ok := r.Record.LF(i)
	r.registry.Observe("lf", time.Since(start))
	return pos, ok
}

// Follow overrides Record.Follow to record latency under "follow".
func (r *InstrumentedRecord) Follow(rng Range, successor uint64) (Range, bool) {
	start := time.Now()
	result, ok := r.Record.Follow(rng, successor)
	r.registry.Observe("follow", time.Since(start))
	return result, ok
}

// BdFollow overrides Record.BdFollow to record latency under "bd_follow".
func (r *InstrumentedRecord) BdFollow(rng Range, successor uint64) (Range, uint64, bool) {
	start := time.Now()
	result, before, ok := r.Record.BdFollow(rng, successor)
	r.registry.Observe("bd_follow", time.Since(start))
	return result, before, ok
}

// PredecessorAt overrides Record.PredecessorAt to record latency under
// "predecessor_at".
func (r *InstrumentedRecord) PredecessorAt(i uint64) (Pos, bool) {
	start := time.Now()
	pos, ok := r.Record.PredecessorAt(i)
	r.registry.Observe("predecessor_at", time.Since(start))
	return pos, ok
}
