// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bwt implements the per-node Burrows-Wheeler Transform record
// format and the container that owns an array of such records: the core of
// a GBWT (Graph Burrows-Wheeler Transform) index. Records are opaque
// variable-length byte strings; every structural query (successor
// enumeration, LF-mapping, range-restricted follow, predecessor lookup) is
// answered by decoding bytes on the fly rather than materializing the
// record.
package bwt

import (
	"github.com/cockroachdb/errors"
	"github.com/jltsiren/gbwt-go/internal/bytecode"
	"github.com/jltsiren/gbwt-go/internal/rle"
	"github.com/jltsiren/gbwt-go/internal/support"
)

// Endmarker is the reserved node id terminating paths. It is never a legal
// original node, and lf, follow, bd_follow, and offset_to never report a
// result for it.
const Endmarker uint64 = 0

// Pos is a position (node, offset) inside a node's record. Ordering is
// lexicographic by (Node, Offset).
type Pos struct {
	Node   uint64
	Offset uint64
}

// Less reports whether p sorts before q.
func (p Pos) Less(q Pos) bool {
	if p.Node != q.Node {
		return p.Node < q.Node
	}
	return p.Offset < q.Offset
}

// Run is a (value, length) pair, where value indexes the containing
// record's edge list. It is the same shape as the run-length encoder's Run;
// the core reuses that type directly rather than wrapping it.
type Run = rle.Run

// Range is a half-open interval of BWT sequence positions, [Start, End).
type Range = support.Range

// Record is a non-owning, read-only view over one node's BWT record: its
// decoded edge list plus a borrowed slice of the run-coded BWT bytes. A
// Record must not outlive the byte slice it was built from (ordinarily the
// BWT container that produced it).
//
// All fields are populated once at construction and never mutated, so a
// *Record may be shared and queried concurrently by multiple goroutines.
type Record struct {
	id     uint64
	edges  []Pos
	bwt    []byte
	length uint64
}

// newRecord eagerly decodes the edge list and the record's total BWT length
// from bytes, retaining a borrowed slice of the remaining run-coded bytes.
func newRecord(id uint64, bytes []byte) (*Record, error) {
	edges, consumed, ok := DecompressEdges(bytes)
	if !ok {
		return nil, errors.Newf("bwt: record %d: truncated or malformed edge list", id)
	}
	r := &Record{id: id, edges: edges, bwt: bytes[consumed:]}
	r.length = r.scanLength()
	return r, nil
}

// DecompressEdges parses the edge-list prefix of a record's bytes (VarInt k,
// then k node ids in gap-encoded form, then k offsets) and reports how many
// bytes were consumed. It is exposed standalone so external tooling can
// inspect a record's edges without constructing a full Record.
func DecompressEdges(bytes []byte) (edges []Pos, consumed int, ok bool) {
	it := bytecode.NewIter(bytes)
	k, ok := it.Next()
	if !ok {
		return nil, 0, false
	}
	edges = make([]Pos, k)
	if k > 0 {
		node, ok := it.Next()
		if !ok {
			return nil, 0, false
		}
		edges[0].Node = node
		for r := uint64(1); r < k; r++ {
			gap, ok := it.Next()
			if !ok {
				return nil, 0, false
			}
			edges[r].Node = edges[r-1].Node + gap
		}
		for r := uint64(0); r < k; r++ {
			offset, ok := it.Next()
			if !ok {
				return nil, 0, false
			}
			edges[r].Offset = offset
		}
	}
	return edges, it.Offset(), true
}

// ID returns the record's id, equal to its position in the container.
func (r *Record) ID() uint64 {
	return r.id
}

// Outdegree returns the number of successors in the record's edge list.
func (r *Record) Outdegree() int {
	return len(r.edges)
}

// Successor returns the node id of the rank-th successor.
//
// Panics if rank is out of range.
func (r *Record) Successor(rank int) uint64 {
	return r.edges[rank].Node
}

// Offset returns the base offset of the rank-th successor.
//
// Panics if rank is out of range.
func (r *Record) Offset(rank int) uint64 {
	return r.edges[rank].Offset
}

// Len returns the total length of the record's BWT sequence.
func (r *Record) Len() uint64 {
	return r.length
}

func (r *Record) decoder() *rle.Decoder {
	return rle.NewDecoder(r.bwt, uint64(len(r.edges)))
}

func (r *Record) scanLength() uint64 {
	var total uint64
	dec := r.decoder()
	for {
		run, ok := dec.Next()
		if !ok {
			break
		}
		total += run.Len
	}
	return total
}

// rankOf returns the edge-list rank of node, or false if node has no edge in
// this record. Successors are few enough in practice that a linear scan
// outperforms the bookkeeping of a binary search; see DESIGN.md for the
// explicit choice not to take the sorted-binary-search quality-of-
// implementation option spec.md calls out as permitted.
func (r *Record) rankOf(node uint64) (int, bool) {
	for i, e := range r.edges {
		if e.Node == node {
			return i, true
		}
	}
	return 0, false
}

// Decompress returns the record's full BWT sequence as an ordered slice of
// Pos, of length Len().
func (r *Record) Decompress() []Pos {
	result := make([]Pos, 0, r.length)
	localCount := make([]uint64, len(r.edges))
	dec := r.decoder()
	for {
		run, ok := dec.Next()
		if !ok {
			break
		}
		e := r.edges[run.Value]
		for i := uint64(0); i < run.Len; i++ {
			result = append(result, Pos{Node: e.Node, Offset: e.Offset + localCount[run.Value]})
			localCount[run.Value]++
		}
	}
	return result
}

// LF maps BWT position i to the corresponding position in its successor's
// record, or reports false if i is past the end of the record or its
// successor is the endmarker.
func (r *Record) LF(i uint64) (Pos, bool) {
	if i >= r.length {
		return Pos{}, false
	}
	localCount := make([]uint64, len(r.edges))
	dec := r.decoder()
	var pos uint64
	for {
		run, ok := dec.Next()
		if !ok {
			break
		}
		if i < pos+run.Len {
			within := i - pos
			e := r.edges[run.Value]
			if e.Node == Endmarker {
				return Pos{}, false
			}
			return Pos{Node: e.Node, Offset: e.Offset + localCount[run.Value] + within}, true
		}
		localCount[run.Value] += run.Len
		pos += run.Len
	}
	return Pos{}, false
}

// findOccurrence returns the BWT offset of the (target)-th (0-indexed)
// occurrence of rank in the run stream, or false if there is no such
// occurrence. This single pass underlies both OffsetTo (the inverse of LF)
// and PredecessorAt (the inverse of LF across the reverse record).
func (r *Record) findOccurrence(rank uint64, target uint64) (uint64, bool) {
	dec := r.decoder()
	var pos, count uint64
	for {
		run, ok := dec.Next()
		if !ok {
			break
		}
		if run.Value == rank {
			if target < count+run.Len {
				return pos + (target - count), true
			}
			count += run.Len
		}
		pos += run.Len
	}
	return 0, false
}

// OffsetTo returns the BWT offset i such that LF(i) == p, or false if p is
// the endmarker, names a node with no edge in this record, or falls outside
// that successor's allotted offset interval.
func (r *Record) OffsetTo(p Pos) (uint64, bool) {
	if p.Node == Endmarker {
		return 0, false
	}
	rank, ok := r.rankOf(p.Node)
	if !ok {
		return 0, false
	}
	base := r.edges[rank].Offset
	if p.Offset < base {
		return 0, false
	}
	return r.findOccurrence(uint64(rank), p.Offset-base)
}

// rangeCounts computes, in one pass over the run stream, the per-rank
// occurrence counts in [0, start) and in [0, limit). Both results are
// sized to Outdegree(). Requires start <= limit <= Len().
func (r *Record) rangeCounts(start, limit uint64) (atStart, atLimit []uint64) {
	k := len(r.edges)
	atStart = make([]uint64, k)
	atLimit = make([]uint64, k)
	running := make([]uint64, k)
	dec := r.decoder()
	var pos uint64
	haveStart, haveLimit := false, false

	for {
		run, ok := dec.Next()
		if !ok {
			break
		}
		runStart := pos
		runEnd := pos + run.Len

		if !haveStart && start <= runEnd {
			copy(atStart, running)
			atStart[run.Value] += overlapCount(run.Len, runStart, start)
			haveStart = true
		}
		if !haveLimit && limit <= runEnd {
			copy(atLimit, running)
			atLimit[run.Value] += overlapCount(run.Len, runStart, limit)
			haveLimit = true
		}

		running[run.Value] += run.Len
		pos = runEnd
		if haveStart && haveLimit {
			break
		}
	}
	if !haveStart {
		copy(atStart, running)
	}
	if !haveLimit {
		copy(atLimit, running)
	}
	return atStart, atLimit
}

// overlapCount returns the number of a run's runLen occurrences that fall
// in [runStart, boundary).
func overlapCount(runLen, runStart, boundary uint64) uint64 {
	if boundary <= runStart {
		return 0
	}
	length := boundary - runStart
	if length > runLen {
		length = runLen
	}
	return length
}

// clampRange clamps rng to [0, Len()], matching the documented policy for
// limit > len (§ DESIGN NOTES, Open question: clamp rather than reject).
func (r *Record) clampRange(rng Range) Range {
	start, limit := rng.Start, rng.End
	if limit > r.length {
		limit = r.length
	}
	if start > limit {
		start = limit
	}
	return Range{Start: start, End: limit}
}

// Follow restricts rng to the positions whose LF maps to successor,
// returning the corresponding range in successor's own record. It reports
// false if successor is the endmarker, has no edge in this record, or no
// position in rng maps to it.
func (r *Record) Follow(rng Range, successor uint64) (Range, bool) {
	if successor == Endmarker {
		return Range{}, false
	}
	rank, ok := r.rankOf(successor)
	if !ok {
		return Range{}, false
	}
	clamped := r.clampRange(rng)
	atStart, atLimit := r.rangeCounts(clamped.Start, clamped.End)
	base := r.edges[rank].Offset
	result := Range{Start: base + atStart[rank], End: base + atLimit[rank]}
	if result.IsEmpty() {
		return Range{}, false
	}
	return result, true
}

// BdFollow is Follow plus the count of positions in rng whose successor
// rank is strictly smaller than successor's rank, supporting bidirectional
// search in the enclosing system.
func (r *Record) BdFollow(rng Range, successor uint64) (result Range, before uint64, ok bool) {
	if successor == Endmarker {
		return Range{}, 0, false
	}
	rank, ok := r.rankOf(successor)
	if !ok {
		return Range{}, 0, false
	}
	clamped := r.clampRange(rng)
	atStart, atLimit := r.rangeCounts(clamped.Start, clamped.End)
	base := r.edges[rank].Offset
	result = Range{Start: base + atStart[rank], End: base + atLimit[rank]}
	if result.IsEmpty() {
		return Range{}, 0, false
	}
	for rr := 0; rr < rank; rr++ {
		before += atLimit[rr] - atStart[rr]
	}
	return result, before, true
}

// PredecessorAt treats this record as the reverse orientation of a node v
// and i as a position in v's record (see spec §6.2: callers look up the
// reverse record of a node and call PredecessorAt on it). Positions of v
// are grouped by this record's edge ranks in rank order, each rank taking
// as many positions as it has occurrences here. PredecessorAt returns the
// offset inside this record of the matching occurrence of i's rank, paired
// with this record's id. It reports false if i falls in the endmarker's
// group (a starting position) or i >= Len().
func (r *Record) PredecessorAt(i uint64) (Pos, bool) {
	base := make([]uint64, len(r.edges)+1)
	for dec := r.decoder(); ; {
		run, ok := dec.Next()
		if !ok {
			break
		}
		base[run.Value+1] += run.Len
	}
	for rank := 1; rank < len(base); rank++ {
		base[rank] += base[rank-1]
	}
	localCount := make([]uint64, len(r.edges))
	dec := r.decoder()
	var pos uint64
	for {
		run, ok := dec.Next()
		if !ok {
			break
		}
		e := r.edges[run.Value]
		within := base[run.Value] + localCount[run.Value]
		if e.Node != Endmarker && i >= within && i < within+run.Len {
			return Pos{Node: r.id, Offset: pos + (i - within)}, true
		}
		localCount[run.Value] += run.Len
		pos += run.Len
	}
	return Pos{}, false
}
