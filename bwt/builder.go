// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import (
	"github.com/cockroachdb/errors"

	"github.com/jltsiren/gbwt-go/internal/bytecode"
	"github.com/jltsiren/gbwt-go/internal/rle"
	"github.com/jltsiren/gbwt-go/internal/sds"
)

// BuilderOptions configures a Builder. A nil *BuilderOptions uses the
// defaults.
type BuilderOptions struct {
	// BytesHint preallocates the record byte buffer, amortizing growth for
	// callers who know the final size in advance (e.g. reserializing an
	// existing BWT after editing a handful of records).
	BytesHint int
}

func (o *BuilderOptions) bytesHint() int {
	if o == nil || o.BytesHint <= 0 {
		return 0
	}
	return o.BytesHint
}

// Builder appends records one node at a time and finalizes them into an
// immutable BWT. Records must be appended in id order; Finalize assigns
// record i the bytes written by the i-th Append call.
type Builder struct {
	bytes []byte
	index []uint64
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts *BuilderOptions) *Builder {
	b := &Builder{index: []uint64{0}}
	if hint := opts.bytesHint(); hint > 0 {
		b.bytes = make([]byte, 0, hint)
	}
	return b
}

// Len returns the number of records appended so far.
func (b *Builder) Len() int {
	return len(b.index) - 1
}

// IsEmpty reports whether no records have been appended yet.
func (b *Builder) IsEmpty() bool {
	return b.Len() == 0
}

// Append encodes and appends the next record from its decoded edge list and
// run-length-coded BWT sequence. An empty edge list appends an empty
// record, regardless of runs.
//
// Edges must be sorted by strictly increasing node id, and every run's
// value must index a real edge; both are programmer errors and Append
// panics rather than returning an error, matching the encoder's treatment
// of a run value outside the alphabet.
func (b *Builder) Append(edges []Pos, runs []Run) {
	if len(edges) == 0 {
		b.index = append(b.index, uint64(len(b.bytes)))
		return
	}
	for i := 1; i < len(edges); i++ {
		if edges[i].Node <= edges[i-1].Node {
			panic(errors.AssertionFailedf(
				"bwt: builder: edges must be sorted by strictly increasing node id, got %d then %d",
				edges[i-1].Node, edges[i].Node))
		}
	}

	code := bytecode.New()
	code.Write(uint64(len(edges)))
	code.Write(edges[0].Node)
	for i := 1; i < len(edges); i++ {
		code.Write(edges[i].Node - edges[i-1].Node)
	}
	for _, e := range edges {
		code.Write(e.Offset)
	}
	b.bytes = append(b.bytes, code.Bytes()...)

	enc := rle.NewEncoder(uint64(len(edges)))
	for _, run := range runs {
		enc.Write(run)
	}
	b.bytes = append(b.bytes, enc.Bytes()...)

	b.index = append(b.index, uint64(len(b.bytes)))
}

// AppendEmpty appends an empty record, equivalent to Append(nil, nil).
func (b *Builder) AppendEmpty() {
	b.Append(nil, nil)
}

// BuilderStats summarizes a Builder's progress so far, for a caller's own
// logging rather than any logging this package does itself.
type BuilderStats struct {
	RecordCount int
	ByteCount   int
}

// Stats reports the Builder's current record and byte counts.
func (b *Builder) Stats() BuilderStats {
	return BuilderStats{RecordCount: b.Len(), ByteCount: len(b.bytes)}
}

// Finalize packs the accumulated records into an immutable BWT. The
// Builder is left empty and ready for reuse.
func (b *Builder) Finalize() *BWT {
	bwt := &BWT{index: sds.FromSlice(b.index), bytes: b.bytes}
	b.bytes = nil
	b.index = []uint64{0}
	return bwt
}
