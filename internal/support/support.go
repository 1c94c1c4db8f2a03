// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package support holds the small, stateless helpers shared by the rest of
// the GBWT core: orientation encoding, the node/path id <-> (id,
// orientation) packing used by bidirectional indexes, sequence reverse
// complement, and range intersection.
package support

// Orientation is the two-valued tag distinguishing the forward strand of a
// node or path from its reverse (or reverse complement).
type Orientation uint8

const (
	// Forward is the node's or path's original orientation.
	Forward Orientation = 0
	// Reverse is the reverse-complement orientation.
	Reverse Orientation = 1
)

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == Forward {
		return Reverse
	}
	return Forward
}

// String implements fmt.Stringer for debugging.
func (o Orientation) String() string {
	if o == Forward {
		return "forward"
	}
	return "reverse"
}

// EncodeNode returns the GBWT node identifier for original node id in the
// given orientation, used by bidirectional indexes.
func EncodeNode(id uint64, o Orientation) uint64 {
	return 2*id + uint64(o)
}

// NodeID returns the original node identifier encoded in a GBWT node id.
func NodeID(id uint64) uint64 {
	return id / 2
}

// NodeOrientation returns the orientation encoded in a GBWT node id.
func NodeOrientation(id uint64) Orientation {
	if id&1 == 0 {
		return Forward
	}
	return Reverse
}

// DecodeNode splits a GBWT node id into its original node id and
// orientation.
func DecodeNode(id uint64) (uint64, Orientation) {
	return NodeID(id), NodeOrientation(id)
}

// FlipNode returns the GBWT node id for the same original node in the other
// orientation.
func FlipNode(id uint64) uint64 {
	return id ^ 1
}

// EncodePath returns the sequence identifier for path id in the given
// orientation.
func EncodePath(id uint64, o Orientation) uint64 {
	return 2*id + uint64(o)
}

// PathID returns the path identifier encoded in a sequence id.
func PathID(id uint64) uint64 {
	return id / 2
}

// PathOrientation returns the orientation encoded in a sequence id.
func PathOrientation(id uint64) Orientation {
	if id&1 == 0 {
		return Forward
	}
	return Reverse
}

// DecodePath splits a sequence id into its path id and orientation.
func DecodePath(id uint64) (uint64, Orientation) {
	return PathID(id), PathOrientation(id)
}

// FlipPath returns the sequence id for the same path in the other
// orientation.
func FlipPath(id uint64) uint64 {
	return id ^ 1
}

// ReversePath returns the reverse of path: each entry's node is flipped to
// its other orientation, and the sequence is reversed.
func ReversePath(path []uint64) []uint64 {
	result := make([]uint64, len(path))
	for i, node := range path {
		result[len(path)-1-i] = FlipNode(node)
	}
	return result
}

// ReverseComplement returns the reverse complement of sequence: A<->T and
// C<->G case-sensitively, other bytes unchanged, then the result reversed.
func ReverseComplement(sequence []byte) []byte {
	result := make([]byte, len(sequence))
	n := len(sequence)
	for i, c := range sequence {
		result[n-1-i] = complement(c)
	}
	return result
}

func complement(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	default:
		return c
	}
}

// Range is a half-open interval [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of elements in the range.
func (r Range) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the range contains no elements.
func (r Range) IsEmpty() bool {
	return r.Len() == 0
}

// Intersect returns the intersection of a and b.
func Intersect(a, b Range) Range {
	start := a.Start
	if b.Start > start {
		start = b.Start
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}
