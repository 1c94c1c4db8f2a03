// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/jltsiren/gbwt-go/internal/sds"
)

// BWT is an immutable array of per-node records, the core structural index
// of a graph Burrows-Wheeler Transform. Records are stored back to back in a
// single byte buffer; index holds N+1 cumulative offsets into that buffer,
// so record i occupies bytes[index[i]:index[i+1]]. An empty record (index[i]
// == index[i+1]) represents a node with no observed traversals.
type BWT struct {
	index *sds.IntVector
	bytes []byte
}

// Len returns the number of records (including empty ones) in the BWT.
func (b *BWT) Len() int {
	if b.index == nil {
		return 0
	}
	return b.index.Len() - 1
}

// IsEmpty reports whether the BWT has no records at all.
func (b *BWT) IsEmpty() bool {
	return b.Len() == 0
}

// Record returns a decoded view of record i, or false if i is out of range
// or the record is empty.
func (b *BWT) Record(i int) (*Record, bool) {
	raw, ok := b.rawRecord(i)
	if !ok {
		return nil, false
	}
	rec, err := newRecord(uint64(i), raw)
	if err != nil {
		return nil, false
	}
	return rec, true
}

func (b *BWT) rawRecord(i int) ([]byte, bool) {
	if i < 0 || i >= b.Len() {
		return nil, false
	}
	lo := b.index.Get(i)
	hi := b.index.Get(i + 1)
	if lo == hi {
		return nil, false
	}
	return b.bytes[lo:hi], true
}

// CompressedRecord returns record i's raw bytes split into its edge-list
// prefix and its run-coded BWT suffix, without decoding either, or false if
// i is out of range or empty.
func (b *BWT) CompressedRecord(i int) (edgeBytes, bwtBytes []byte, ok bool) {
	raw, ok := b.rawRecord(i)
	if !ok {
		return nil, nil, false
	}
	_, consumed, ok := DecompressEdges(raw)
	if !ok {
		return nil, nil, false
	}
	return raw[:consumed], raw[consumed:], true
}

// Iterator walks the non-empty records of a BWT in id order.
type Iterator struct {
	bwt  *BWT
	next int
}

// Iter returns an Iterator over the BWT's non-empty records, in id order.
func (b *BWT) Iter() *Iterator {
	return &Iterator{bwt: b}
}

// Next returns the next non-empty record, or false once exhausted.
func (it *Iterator) Next() (*Record, bool) {
	for it.next < it.bwt.Len() {
		i := it.next
		it.next++
		if rec, ok := it.bwt.Record(i); ok {
			return rec, true
		}
	}
	return nil, false
}

// IDIterator walks the ids of a BWT's non-empty records in order.
type IDIterator struct {
	bwt  *BWT
	next int
}

// IDIter returns an IDIterator over the BWT's non-empty record ids.
func (b *BWT) IDIter() *IDIterator {
	return &IDIterator{bwt: b}
}

// Next returns the next non-empty record's id, or false once exhausted.
func (it *IDIterator) Next() (uint64, bool) {
	for it.next < it.bwt.Len() {
		i := it.next
		it.next++
		if _, ok := it.bwt.rawRecord(i); ok {
			return uint64(i), true
		}
	}
	return 0, false
}

// SerializeBody writes the BWT's index and byte buffer to w. The byte
// buffer is written as a checksummed section so corruption is detected on
// load independently of the structural checks Load performs on the index.
func (b *BWT) SerializeBody(w io.Writer) error {
	if _, err := b.index.WriteTo(w); err != nil {
		return errors.Wrap(err, "bwt: writing index")
	}
	if err := sds.WriteSection(w, b.bytes); err != nil {
		return errors.Wrap(err, "bwt: writing record bytes")
	}
	return nil
}

// Load reads a BWT previously written by SerializeBody and validates its
// structural invariants.
func Load(r io.Reader) (*BWT, error) {
	index, err := sds.LoadIntVector(r)
	if err != nil {
		return nil, errors.Wrap(err, "bwt: loading index")
	}
	body, err := sds.ReadSection(r)
	if err != nil {
		return nil, errors.Wrap(err, "bwt: loading record bytes")
	}
	b := &BWT{index: index, bytes: body}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BWT) validate() error {
	n := b.index.Len()
	if n == 0 {
		return errors.New("bwt: invalid data: index must contain at least one offset")
	}
	if b.index.Get(0) != 0 {
		return errors.New("bwt: invalid data: index does not start at offset 0")
	}
	for i := 1; i < n; i++ {
		if b.index.Get(i) < b.index.Get(i-1) {
			return errors.Newf("bwt: invalid data: index is not non-decreasing at position %d", i)
		}
	}
	if int(b.index.Get(n-1)) != len(b.bytes) {
		return errors.Newf("bwt: invalid data: index ends at %d, but %d bytes were read",
			b.index.Get(n-1), len(b.bytes))
	}
	return nil
}

// SaveCompressed serializes the BWT and writes it to w zstd-compressed, for
// archival or network transfer where decoding speed matters less than size.
func (b *BWT) SaveCompressed(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "bwt: creating zstd writer")
	}
	if err := b.SerializeBody(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// LoadCompressed reverses SaveCompressed.
func LoadCompressed(r io.Reader) (*BWT, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "bwt: creating zstd reader")
	}
	defer dec.Close()
	return Load(dec)
}

// VerifyParallel checks, concurrently across records, that every edge names
// either the endmarker or a successor whose own record exists, and that
// Decompress, LF, and OffsetTo agree for every position of every record.
// It returns the first error encountered, if any.
func VerifyParallel(ctx context.Context, b *BWT) error {
	g, ctx := errgroup.WithContext(ctx)
	it := b.IDIter()
	for {
		id, ok := it.Next()
		if !ok {
			break
		}
		id := id
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rec, ok := b.Record(int(id))
			if !ok {
				return errors.Newf("bwt: verify: record %d vanished mid-scan", id)
			}
			return verifyRecord(b, rec)
		})
	}
	return g.Wait()
}

func verifyRecord(b *BWT, rec *Record) error {
	for rank := 0; rank < rec.Outdegree(); rank++ {
		successor := rec.Successor(rank)
		if successor == Endmarker {
			continue
		}
		if int(successor) >= b.Len() {
			return errors.Newf("bwt: verify: record %d names out-of-range successor %d", rec.ID(), successor)
		}
	}
	decompressed := rec.Decompress()
	for i, pos := range decompressed {
		lfPos, ok := rec.LF(uint64(i))
		if pos.Node == Endmarker {
			if ok {
				return errors.Newf("bwt: verify: record %d position %d: LF succeeded for endmarker", rec.ID(), i)
			}
			continue
		}
		if !ok || lfPos != pos {
			return errors.Newf("bwt: verify: record %d position %d: LF = %v, Decompress = %v", rec.ID(), i, lfPos, pos)
		}
		back, ok := rec.OffsetTo(pos)
		if !ok || back != uint64(i) {
			return errors.Newf("bwt: verify: record %d position %d: OffsetTo(LF(i)) = (%d, %v), want (%d, true)", rec.ID(), i, back, ok, i)
		}
	}
	return nil
}
