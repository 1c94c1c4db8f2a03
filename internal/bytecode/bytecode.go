// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bytecode implements the variable-length integer encoding used
// throughout the GBWT record format: unsigned integers as little-endian
// 7-bit groups with a continuation bit.
package bytecode

const (
	mask  = 0x7f
	flag  = 0x80
	shift = 7
)

// Code is an append-only encoder for unsigned integers. The zero value is
// an empty encoder.
type Code struct {
	bytes []byte
}

// New returns a new, empty encoder.
func New() *Code {
	return &Code{}
}

// Write encodes value and appends it to the encoding.
func (c *Code) Write(value uint64) {
	for value > mask {
		c.bytes = append(c.bytes, byte(value&mask)|flag)
		value >>= shift
	}
	c.bytes = append(c.bytes, byte(value))
}

// WriteByte appends a single raw byte to the encoding, bypassing the VarInt
// format. Used by the run codec to splice packed single-byte runs into the
// same stream as VarInt-encoded values.
func (c *Code) WriteByte(b byte) {
	c.bytes = append(c.bytes, b)
}

// Len returns the total number of bytes in the encoding.
func (c *Code) Len() int {
	return len(c.bytes)
}

// IsEmpty returns true if the encoding is empty.
func (c *Code) IsEmpty() bool {
	return c.Len() == 0
}

// Bytes returns the encoded bytes. The returned slice aliases the encoder's
// internal buffer and must not be modified.
func (c *Code) Bytes() []byte {
	return c.bytes
}

// Iter is a cursor that decodes integers from a byte slice produced by Code.
// The zero value is not usable; construct with NewIter.
type Iter struct {
	bytes  []byte
	offset int
}

// NewIter returns an iterator positioned at the start of bytes. The slice is
// borrowed, not copied.
func NewIter(bytes []byte) *Iter {
	return &Iter{bytes: bytes}
}

// Next decodes and returns the next integer, or reports exhaustion via ok.
// On exhaustion mid-integer (a truncated encoding), Next reports ok == false
// and does not advance past the point where decoding still made sense for
// completed integers.
func (it *Iter) Next() (value uint64, ok bool) {
	var result uint64
	var shiftAmount uint
	start := it.offset
	for it.offset < len(it.bytes) {
		b := it.bytes[it.offset]
		it.offset++
		result |= uint64(b&mask) << shiftAmount
		shiftAmount += shift
		if b&flag == 0 {
			return result, true
		}
	}
	it.offset = start
	return 0, false
}

// Byte returns the next raw byte, or reports exhaustion via ok.
func (it *Iter) Byte() (b byte, ok bool) {
	if it.offset >= len(it.bytes) {
		return 0, false
	}
	b = it.bytes[it.offset]
	it.offset++
	return b, true
}

// Offset returns the index of the next unread byte in the underlying slice.
// Required so callers (the run codec, record views) can compute where a
// sub-stream begins within a larger record.
func (it *Iter) Offset() int {
	return it.offset
}
