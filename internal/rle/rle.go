// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rle implements the run-length encoding used for a GBWT record's
// BWT sequence: a stream of non-empty (value, length) runs, where value is
// a rank into the containing record's edge list.
//
// The encoding is parameterized by the alphabet size sigma (the record's
// outdegree) and is not self-describing: the same byte stream decodes to
// different runs under a different sigma.
package rle

import "github.com/jltsiren/gbwt-go/internal/bytecode"

// threshold is the alphabet-size cutoff (inclusive) above which runs always
// use the two-VarInt encoding.
const threshold = 255

// universe is the number of single-byte codes available for the packed form.
const universe = 256

// Run is a (value, length) pair. value indexes the containing record's edge
// list; length is the number of consecutive BWT positions carrying that
// value.
type Run struct {
	Value uint64
	Len   uint64
}

// sanitize turns a caller-supplied sigma into (effective sigma, short-run
// threshold T). sigma == 0 means "unknown/large alphabet".
func sanitize(sigma uint64) (effective uint64, shortRunLimit uint64) {
	if sigma == 0 {
		sigma = ^uint64(0)
	}
	if sigma < threshold {
		return sigma, universe / sigma
	}
	return sigma, 0
}

// Encoder appends runs to an internal byte buffer.
type Encoder struct {
	bytes         *bytecode.Code
	sigma         uint64
	shortRunLimit uint64
}

// NewEncoder returns an encoder for the given alphabet size. sigma == 0
// means an alphabet of unknown/large size.
func NewEncoder(sigma uint64) *Encoder {
	effective, limit := sanitize(sigma)
	return &Encoder{bytes: bytecode.New(), sigma: effective, shortRunLimit: limit}
}

// Write encodes and appends run. A zero-length run is a silent no-op.
//
// Write panics if run.Value >= the encoder's alphabet size; this is a
// programmer error (the caller is the builder, which knows sigma), not a
// recoverable runtime condition.
func (e *Encoder) Write(run Run) {
	if run.Len == 0 {
		return
	}
	if run.Value >= e.sigma {
		panic("rle: cannot encode a value outside the alphabet")
	}
	if e.sigma >= threshold {
		e.bytes.Write(run.Value)
		e.bytes.Write(run.Len - 1)
		return
	}
	if run.Len < e.shortRunLimit {
		e.writeBasic(run.Value, run.Len)
		return
	}
	e.writeBasic(run.Value, e.shortRunLimit)
	e.bytes.Write(run.Len - e.shortRunLimit)
}

// writeBasic packs (value, len) into a single byte. Requires len <= T.
func (e *Encoder) writeBasic(value, length uint64) {
	e.bytes.WriteByte(byte(value + e.sigma*(length-1)))
}

// WriteByte appends a raw byte to the encoding.
func (e *Encoder) WriteByte(b byte) {
	e.bytes.WriteByte(b)
}

// WriteInt VarInt-encodes value and appends it, bypassing run framing.
func (e *Encoder) WriteInt(value uint64) {
	e.bytes.Write(value)
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.bytes.Len()
}

// IsEmpty reports whether anything has been written.
func (e *Encoder) IsEmpty() bool {
	return e.bytes.IsEmpty()
}

// Sigma returns the encoder's current alphabet size.
func (e *Encoder) Sigma() uint64 {
	return e.sigma
}

// SetSigma changes the alphabet size used by subsequent writes.
func (e *Encoder) SetSigma(sigma uint64) {
	e.sigma, e.shortRunLimit = sanitize(sigma)
}

// Bytes returns the encoded bytes. The slice aliases the encoder's internal
// buffer and must not be modified.
func (e *Encoder) Bytes() []byte {
	return e.bytes.Bytes()
}

// Decoder decodes runs from a borrowed byte slice.
type Decoder struct {
	source        *bytecode.Iter
	sigma         uint64
	shortRunLimit uint64
}

// NewDecoder returns a decoder over bytes at the given alphabet size.
// sigma == 0 means an alphabet of unknown/large size.
func NewDecoder(bytes []byte, sigma uint64) *Decoder {
	effective, limit := sanitize(sigma)
	return &Decoder{source: bytecode.NewIter(bytes), sigma: effective, shortRunLimit: limit}
}

// Next decodes and returns the next run, or reports exhaustion via ok.
func (d *Decoder) Next() (run Run, ok bool) {
	if d.sigma >= threshold {
		value, ok1 := d.source.Next()
		if !ok1 {
			return Run{}, false
		}
		length, ok2 := d.source.Next()
		if !ok2 {
			return Run{}, false
		}
		return Run{Value: value, Len: length + 1}, true
	}

	b, ok1 := d.source.Byte()
	if !ok1 {
		return Run{}, false
	}
	run.Value = uint64(b) % d.sigma
	run.Len = uint64(b)/d.sigma + 1
	if run.Len == d.shortRunLimit {
		extra, ok2 := d.source.Next()
		if !ok2 {
			return Run{}, false
		}
		run.Len += extra
	}
	return run, true
}

// Byte returns the next raw byte, or reports exhaustion via ok.
func (d *Decoder) Byte() (b byte, ok bool) {
	return d.source.Byte()
}

// Int decodes the next VarInt-encoded value, bypassing run framing.
func (d *Decoder) Int() (value uint64, ok bool) {
	return d.source.Next()
}

// Offset returns the index of the next unread byte in the underlying slice.
func (d *Decoder) Offset() int {
	return d.source.Offset()
}

// Sigma returns the decoder's current alphabet size.
func (d *Decoder) Sigma() uint64 {
	return d.sigma
}

// SetSigma changes the alphabet size used by subsequent reads.
func (d *Decoder) SetSigma(sigma uint64) {
	d.sigma, d.shortRunLimit = sanitize(sigma)
}
