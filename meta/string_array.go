// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package meta implements the small sister structures serialized alongside
// a GBWT index: compact string storage (StringArray), a lookup dictionary
// over distinct strings (Dictionary), and a case-insensitive tag map
// (Tags).
package meta

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/jltsiren/gbwt-go/internal/sds"
)

// StringArray stores a sequence of byte strings packed into a single
// buffer, compacted to a minimum-width code per distinct byte value
// present in the data. Offsets into the buffer are recorded the same way
// the BWT container records record boundaries: a non-decreasing array of
// N+1 cumulative positions, which (unlike a sparse bit vector of set
// positions) tolerates adjacent empty strings without a loss of
// information.
type StringArray struct {
	offsets  *sds.IntVector
	alphabet []byte
	lookup   [256]uint8
	codes    *sds.IntVector
}

// StringArrayOptions configures NewStringArray. A nil *StringArrayOptions
// uses the defaults.
type StringArrayOptions struct {
	// DisableCompaction uses the full 256-value byte alphabet, so each byte
	// is stored as its own value, instead of renumbering only the byte
	// values present to a minimum-width code. Get maps codes through the
	// alphabet table in either mode.
	DisableCompaction bool
}

func (o *StringArrayOptions) disableCompaction() bool {
	return o != nil && o.DisableCompaction
}

// NewStringArray packs strings into a new StringArray using the default
// options (alphabet compaction enabled).
func NewStringArray(strings []string) *StringArray {
	return NewStringArrayOptions(strings, nil)
}

// NewStringArrayOptions packs strings into a new StringArray, honoring
// opts.
func NewStringArrayOptions(strings []string, opts *StringArrayOptions) *StringArray {
	var present [256]bool
	totalLen := 0
	for _, s := range strings {
		totalLen += len(s)
		for i := 0; i < len(s); i++ {
			present[s[i]] = true
		}
	}
	var alphabet []byte
	var lookup [256]uint8
	if opts.disableCompaction() {
		for b := 0; b < 256; b++ {
			lookup[b] = uint8(b)
			alphabet = append(alphabet, byte(b))
		}
	} else {
		for b := 0; b < 256; b++ {
			if present[b] {
				lookup[b] = uint8(len(alphabet))
				alphabet = append(alphabet, byte(b))
			}
		}
	}
	var width uint
	if len(alphabet) > 0 {
		width = uint(sds.BitLength(uint64(len(alphabet) - 1)))
	}
	if width == 0 {
		width = 1
	}

	codes := sds.WithCapacity(totalLen, width)
	offsets := make([]uint64, 0, len(strings)+1)
	offsets = append(offsets, 0)
	var pos uint64
	for _, s := range strings {
		for i := 0; i < len(s); i++ {
			codes.Push(uint64(lookup[s[i]]))
		}
		pos += uint64(len(s))
		offsets = append(offsets, pos)
	}

	return &StringArray{
		offsets:  sds.FromSlice(offsets),
		alphabet: alphabet,
		lookup:   lookup,
		codes:    codes,
	}
}

// Len returns the number of strings stored.
func (a *StringArray) Len() int {
	return a.offsets.Len() - 1
}

// IsEmpty reports whether the array holds no strings.
func (a *StringArray) IsEmpty() bool {
	return a.Len() == 0
}

// Get returns the i-th string, or false if i is out of range.
func (a *StringArray) Get(i int) (string, bool) {
	if i < 0 || i >= a.Len() {
		return "", false
	}
	lo := a.offsets.Get(i)
	hi := a.offsets.Get(i + 1)
	buf := make([]byte, hi-lo)
	for j := range buf {
		buf[j] = a.alphabet[a.codes.Get(int(lo)+j)]
	}
	return string(buf), true
}

// ForEach calls fn once per string, in order.
func (a *StringArray) ForEach(fn func(i int, value string)) {
	for i := 0; i < a.Len(); i++ {
		s, _ := a.Get(i)
		fn(i, s)
	}
}

// WriteTo serializes the array: offsets, alphabet, then packed codes.
func (a *StringArray) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := a.offsets.WriteTo(w)
	total += n
	if err != nil {
		return total, errors.Wrap(err, "meta: writing StringArray offsets")
	}
	if err := sds.WriteSection(w, a.alphabet); err != nil {
		return total, errors.Wrap(err, "meta: writing StringArray alphabet")
	}
	m, err := a.codes.WriteTo(w)
	total += m
	if err != nil {
		return total, errors.Wrap(err, "meta: writing StringArray codes")
	}
	return total, nil
}

// LoadStringArray reverses WriteTo, validating that the offset array
// begins at 0.
func LoadStringArray(r io.Reader) (*StringArray, error) {
	offsets, err := sds.LoadIntVector(r)
	if err != nil {
		return nil, errors.Wrap(err, "meta: loading StringArray offsets")
	}
	if offsets.Len() == 0 || offsets.Get(0) != 0 {
		return nil, errors.New("meta: invalid data: StringArray index does not start at 0")
	}
	alphabet, err := sds.ReadSection(r)
	if err != nil {
		return nil, errors.Wrap(err, "meta: loading StringArray alphabet")
	}
	codes, err := sds.LoadIntVector(r)
	if err != nil {
		return nil, errors.Wrap(err, "meta: loading StringArray codes")
	}
	var lookup [256]uint8
	for i, b := range alphabet {
		lookup[b] = uint8(i)
	}
	return &StringArray{offsets: offsets, alphabet: alphabet, lookup: lookup, codes: codes}, nil
}
