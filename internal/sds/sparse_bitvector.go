// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sds

import (
	"io"
	"sort"

	"github.com/cockroachdb/errors"
)

// SparseBitVector is a bit vector over [0, Universe) represented by the
// sorted positions of its set bits, with rank and select answered by binary
// search. It is a reference stand-in for a true rank/select succinct bit
// vector (e.g. Elias-Fano-coded), sized for sets where the number of ones
// is typically far smaller than the universe.
type SparseBitVector struct {
	ones     []uint64
	universe uint64
}

// FromSortedPositions builds a SparseBitVector over [0, universe) from
// already-sorted, strictly increasing one-bit positions.
//
// Panics if positions are not strictly increasing or exceed the universe.
func FromSortedPositions(universe uint64, positions []uint64) *SparseBitVector {
	for i, p := range positions {
		if p >= universe {
			panic("sds: one-bit position exceeds the universe")
		}
		if i > 0 && positions[i-1] >= p {
			panic("sds: one-bit positions must be strictly increasing")
		}
	}
	ones := make([]uint64, len(positions))
	copy(ones, positions)
	return &SparseBitVector{ones: ones, universe: universe}
}

// Universe returns the size of the bit vector.
func (s *SparseBitVector) Universe() uint64 {
	return s.universe
}

// CountOnes returns the number of set bits.
func (s *SparseBitVector) CountOnes() uint64 {
	return uint64(len(s.ones))
}

// Rank returns the number of set bits in [0, position).
func (s *SparseBitVector) Rank(position uint64) uint64 {
	return uint64(sort.Search(len(s.ones), func(i int) bool {
		return s.ones[i] >= position
	}))
}

// Select returns the position of the rank-th set bit (0-indexed), or false
// if rank is out of range.
func (s *SparseBitVector) Select(rank uint64) (uint64, bool) {
	if rank >= uint64(len(s.ones)) {
		return 0, false
	}
	return s.ones[rank], true
}

// OneIterFunc calls fn once per set bit, in increasing order of position,
// with (rank, position).
func (s *SparseBitVector) OneIterFunc(fn func(rank int, position uint64)) {
	for i, p := range s.ones {
		fn(i, p)
	}
}

// WriteTo serializes the vector as: universe, count of ones, then the one
// positions packed into an IntVector.
func (s *SparseBitVector) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeUint64(w, s.universe)
	total += int64(n)
	if err != nil {
		return total, errors.Wrap(err, "sds: writing SparseBitVector universe")
	}
	packed := WithCapacity(len(s.ones), uint(max(BitLength(s.universe), 1)))
	packed.Extend(s.ones)
	m, err := packed.WriteTo(w)
	total += m
	if err != nil {
		return total, errors.Wrap(err, "sds: writing SparseBitVector positions")
	}
	return total, nil
}

// LoadSparseBitVector reverses WriteTo. It enforces no invariant on the
// loaded positions; they are not checked to be strictly increasing or
// below the universe.
func LoadSparseBitVector(r io.Reader) (*SparseBitVector, error) {
	universe, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "sds: reading SparseBitVector universe")
	}
	packed, err := LoadIntVector(r)
	if err != nil {
		return nil, errors.Wrap(err, "sds: reading SparseBitVector positions")
	}
	return &SparseBitVector{ones: packed.ToSlice(), universe: universe}, nil
}
