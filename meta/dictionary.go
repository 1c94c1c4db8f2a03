// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package meta

import (
	"io"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/jltsiren/gbwt-go/internal/sds"
)

// Dictionary is a StringArray plus a permutation of its ids sorted by
// string value, supporting binary-search lookup from string to id.
// Construction fails if values contains duplicates.
type Dictionary struct {
	strings   *StringArray
	sortedIDs *sds.IntVector
}

// NewDictionary builds a Dictionary over values, assigning id i to
// values[i].
func NewDictionary(values []string) (*Dictionary, error) {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
	for i := 1; i < len(order); i++ {
		if values[order[i]] == values[order[i-1]] {
			return nil, errors.Newf("meta: dictionary: duplicate string %q", values[order[i]])
		}
	}
	ids := make([]uint64, len(order))
	for i, id := range order {
		ids[i] = uint64(id)
	}
	return &Dictionary{strings: NewStringArray(values), sortedIDs: sds.FromSlice(ids)}, nil
}

// Len returns the number of distinct strings in the dictionary.
func (d *Dictionary) Len() int {
	return d.strings.Len()
}

// String returns the string assigned to id, or false if id is out of
// range.
func (d *Dictionary) String(id int) (string, bool) {
	return d.strings.Get(id)
}

// ID returns the id assigned to value, or false if value is not present.
func (d *Dictionary) ID(value string) (int, bool) {
	n := d.sortedIDs.Len()
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		candidate, _ := d.strings.Get(int(d.sortedIDs.Get(mid)))
		if candidate < value {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < n {
		id := int(d.sortedIDs.Get(lo))
		if candidate, _ := d.strings.Get(id); candidate == value {
			return id, true
		}
	}
	return 0, false
}

// WriteTo serializes the dictionary: its StringArray, then the sorted-id
// permutation.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	total, err := d.strings.WriteTo(w)
	if err != nil {
		return total, err
	}
	n, err := d.sortedIDs.WriteTo(w)
	total += n
	if err != nil {
		return total, errors.Wrap(err, "meta: writing Dictionary sorted ids")
	}
	return total, nil
}

// LoadDictionary reverses WriteTo.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	strings, err := LoadStringArray(r)
	if err != nil {
		return nil, err
	}
	sortedIDs, err := sds.LoadIntVector(r)
	if err != nil {
		return nil, errors.Wrap(err, "meta: loading Dictionary sorted ids")
	}
	if sortedIDs.Len() != strings.Len() {
		return nil, errors.Newf("meta: invalid data: dictionary has %d strings but %d sorted ids",
			strings.Len(), sortedIDs.Len())
	}
	return &Dictionary{strings: strings, sortedIDs: sortedIDs}, nil
}
