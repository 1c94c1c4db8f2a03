// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package support

// DisjointSets is a quick-and-dirty union-find structure over the integer
// range [offset, offset+len), using path splitting and union by rank. It has
// no interaction with the BWT itself; it exists to support equivalence-class
// merging over node ids in components built on top of the core (e.g.
// translating an unpruned graph's node ids after collapsing redundant
// segments).
type DisjointSets struct {
	parents []uint64
	ranks   []uint8
	offset  uint64
}

// NewDisjointSets returns a structure covering length values starting at
// offset, each initially in its own singleton set.
func NewDisjointSets(length, offset uint64) *DisjointSets {
	parents := make([]uint64, length)
	for i := range parents {
		parents[i] = uint64(i)
	}
	return &DisjointSets{
		parents: parents,
		ranks:   make([]uint8, length),
		offset:  offset,
	}
}

// Len returns the number of values in the structure.
func (d *DisjointSets) Len() int {
	return len(d.parents)
}

// IsEmpty reports whether the structure covers zero values.
func (d *DisjointSets) IsEmpty() bool {
	return d.Len() == 0
}

// Offset returns the starting offset for the values.
func (d *DisjointSets) Offset() uint64 {
	return d.offset
}

// Find returns the root element (offset into the internal array, not an
// original value) for the set containing value. It applies path splitting:
// each visited element's parent is replaced with its grandparent.
func (d *DisjointSets) Find(value uint64) uint64 {
	v := value - d.offset
	for d.parents[v] != v {
		next := d.parents[v]
		d.parents[v] = d.parents[next]
		v = next
	}
	return v
}

// Union joins the sets containing values a and b, using union by rank.
func (d *DisjointSets) Union(a, b uint64) {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return
	}
	if d.ranks[ra] < d.ranks[rb] {
		ra, rb = rb, ra
	}
	d.parents[rb] = ra
	if d.ranks[ra] == d.ranks[rb] {
		d.ranks[ra]++
	}
}

// Extract returns the sets as sorted slices of original values, sets sorted
// by their minimum value, omitting values for which include returns false.
func (d *DisjointSets) Extract(include func(value uint64) bool) [][]uint64 {
	var result [][]uint64
	rootToSet := make(map[uint64]int)

	for value := d.offset; value < d.offset+uint64(d.Len()); value++ {
		if !include(value) {
			continue
		}
		root := d.Find(value)
		if idx, ok := rootToSet[root]; ok {
			result[idx] = append(result[idx], value)
			continue
		}
		rootToSet[root] = len(result)
		result = append(result, []uint64{value})
	}

	return result
}
