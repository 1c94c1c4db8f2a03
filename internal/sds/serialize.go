// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sds

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// WriteTo writes the vector's body: width, element count, and the packed
// words, in that order. There is no header; callers needing a self
// describing format wrap this with WriteSection.
func (v *IntVector) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeUint64(w, uint64(v.width))
	total += int64(n)
	if err != nil {
		return total, errors.Wrap(err, "sds: writing IntVector width")
	}
	n, err = writeUint64(w, uint64(v.len))
	total += int64(n)
	if err != nil {
		return total, errors.Wrap(err, "sds: writing IntVector length")
	}
	buf := make([]byte, 8*len(v.data))
	for i, word := range v.data {
		binary.LittleEndian.PutUint64(buf[i*8:], word)
	}
	m, err := w.Write(buf)
	total += int64(m)
	if err != nil {
		return total, errors.Wrap(err, "sds: writing IntVector data")
	}
	return total, nil
}

// LoadIntVector reverses WriteTo.
func LoadIntVector(r io.Reader) (*IntVector, error) {
	width, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "sds: reading IntVector width")
	}
	length, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "sds: reading IntVector length")
	}
	if width == 0 || width > 64 {
		return nil, errors.Newf("sds: invalid IntVector width %d", width)
	}

	words := (int(length)*int(width) + wordBits - 1) / wordBits
	buf := make([]byte, 8*words)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "sds: reading IntVector data")
	}
	data := make([]uint64, words)
	for i := range data {
		data[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return &IntVector{width: uint(width), len: int(length), data: data}, nil
}

func writeUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.Write(buf[:])
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteSection writes a self-describing, checksummed section: a uint64
// length, the payload, and a uint64 xxhash64 checksum of the payload. This
// is the "framed load/store interface" spec.md assumes is provided by the
// succinct-structures collaborator.
func WriteSection(w io.Writer, payload []byte) error {
	if _, err := writeUint64(w, uint64(len(payload))); err != nil {
		return errors.Wrap(err, "sds: writing section length")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "sds: writing section payload")
	}
	checksum := xxhash.Sum64(payload)
	if _, err := writeUint64(w, checksum); err != nil {
		return errors.Wrap(err, "sds: writing section checksum")
	}
	return nil
}

// ReadSection reverses WriteSection, returning an InvalidData-flavored error
// (built with errors.Newf) if the checksum does not match.
func ReadSection(r io.Reader) ([]byte, error) {
	length, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "sds: reading section length")
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.Wrap(err, "sds: reading section payload")
	}
	wantChecksum, err := readUint64(r)
	if err != nil {
		return nil, errors.Wrap(err, "sds: reading section checksum")
	}
	if got := xxhash.Sum64(payload); got != wantChecksum {
		return nil, errors.Newf("sds: invalid data: section checksum mismatch (got %x, want %x)", got, wantChecksum)
	}
	return payload, nil
}
