// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkIter mirrors check_iter: the record and id iterators must walk the
// non-empty records in id order and agree with Record/Len.
func checkIter(t *testing.T, bwt *BWT) {
	t.Helper()
	iter := bwt.Iter()
	idIter := bwt.IDIter()
	for i := 0; i < bwt.Len(); i++ {
		truth, ok := bwt.Record(i)
		if !ok {
			continue
		}
		record, ok := iter.Next()
		require.True(t, ok, "iterator did not find record %d", i)
		require.Equal(t, truth.ID(), record.ID())
		id, ok := idIter.Next()
		require.True(t, ok)
		require.Equal(t, truth.ID(), id)
	}
	_, ok := iter.Next()
	require.False(t, ok, "iterator found a record past the end")
	_, ok = idIter.Next()
	require.False(t, ok, "id iterator found a record past the end")
}

// checkLF mirrors check_lf: every lf(i) must reproduce the expected edge
// from the source edges/runs, and decompress/len must agree with it.
func checkLF(t *testing.T, bwt *BWT, edges [][]Pos, runs [][]Run) {
	t.Helper()
	for i := range edges {
		record, ok := bwt.Record(i)
		if !ok {
			continue
		}
		currEdges := append([]Pos(nil), edges[i]...)
		decompressed := record.Decompress()
		require.Equal(t, record.Len(), uint64(len(decompressed)), "invalid decompressed record %d length", i)

		var offset uint64
		for _, run := range runs[i] {
			for k := uint64(0); k < run.Len; k++ {
				edge := currEdges[run.Value]
				got, ok := record.LF(offset)
				if edge.Node == Endmarker {
					require.False(t, ok, "lf(%d) in record %d should be None", offset, i)
				} else {
					require.True(t, ok, "lf(%d) in record %d should be Some", offset, i)
					require.Equal(t, edge, got, "invalid lf(%d) in record %d", offset, i)
				}
				require.Equal(t, edge, decompressed[offset], "invalid decompressed lf(%d) in record %d", offset, i)

				backOffset, backOk := record.OffsetTo(edge)
				if edge.Node == Endmarker {
					require.False(t, backOk, "offset_to(%v) in record %d should be None", edge, i)
				} else {
					require.True(t, backOk, "offset_to(%v) in record %d should be Some", edge, i)
					require.Equal(t, offset, backOffset, "invalid offset_to(%v) in record %d", edge, i)
				}

				offset++
				currEdges[run.Value].Offset++
			}
		}
		require.Equal(t, offset, record.Len(), "invalid record %d length", i)
		_, ok = record.LF(offset)
		require.False(t, ok, "got an lf() result past the end in record %d", i)
	}
}

// checkFollow mirrors check_follow: every follow/bd_follow result over every
// sub-range must agree with a brute-force scan of lf(), and bd_follow's
// range must equal follow's whenever either succeeds.
func checkFollow(t *testing.T, bwt *BWT, invalidNode uint64) {
	t.Helper()
	iter := bwt.Iter()
	for {
		record, ok := iter.Next()
		if !ok {
			break
		}
		length := record.Len()
		for start := uint64(0); start <= length; start++ {
			for limit := start; limit <= length; limit++ {
				rng := Range{Start: start, End: limit}

				_, ok := record.Follow(rng, Endmarker)
				require.False(t, ok, "got a follow(%d..%d, endmarker) result in record %d", start, limit, record.ID())
				_, _, ok = record.BdFollow(rng, Endmarker)
				require.False(t, ok, "got a bd_follow(%d..%d, endmarker) result in record %d", start, limit, record.ID())

				for rank := 0; rank < record.Outdegree(); rank++ {
					successor := record.Successor(rank)
					if successor == Endmarker {
						continue
					}
					result, ok := record.Follow(rng, successor)
					if ok {
						found := Range{Start: result.Start, End: result.Start}
						for j := start; j < limit; j++ {
							pos, lfOk := record.LF(j)
							if lfOk && pos.Node == successor && pos.Offset == found.End {
								found.End++
							}
						}
						require.Equal(t, found, result, "follow(%d..%d, %d) mismatch in record %d", start, limit, successor, record.ID())

						bdResult, _, bdOk := record.BdFollow(rng, successor)
						require.True(t, bdOk, "bd_follow(%d..%d, %d) found no result in record %d", start, limit, successor, record.ID())
						require.Equal(t, result, bdResult)
					} else {
						for j := start; j < limit; j++ {
							pos, lfOk := record.LF(j)
							if lfOk {
								require.NotEqual(t, successor, pos.Node, "follow(%d..%d, %d) missed offset %d in record %d", start, limit, successor, j, record.ID())
							}
						}
						_, _, bdOk := record.BdFollow(rng, successor)
						require.False(t, bdOk, "got a bd_follow(%d..%d, %d) result in record %d", start, limit, successor, record.ID())
					}
				}

				_, ok = record.Follow(rng, invalidNode)
				require.False(t, ok)
				_, _, ok = record.BdFollow(rng, invalidNode)
				require.False(t, ok)
			}
		}
	}
}

// negativeOffsetTo mirrors negative_offset_to: offsets to the endmarker, to
// an invalid node, or outside a successor's allotted interval must all
// report false.
func negativeOffsetTo(t *testing.T, bwt *BWT, invalidNode uint64) {
	t.Helper()
	iter := bwt.Iter()
	for {
		record, ok := iter.Next()
		if !ok {
			break
		}
		_, ok = record.OffsetTo(Pos{Node: Endmarker, Offset: 0})
		require.False(t, ok)
		_, ok = record.OffsetTo(Pos{Node: invalidNode, Offset: 0})
		require.False(t, ok)

		for rank := 0; rank < record.Outdegree(); rank++ {
			successor := record.Successor(rank)
			if successor == Endmarker {
				continue
			}
			offset := record.Offset(rank)
			if offset > 0 {
				_, ok := record.OffsetTo(Pos{Node: successor, Offset: offset - 1})
				require.False(t, ok, "offset to a too-small position in %d", successor)
			}
			full, ok := record.Follow(Range{Start: 0, End: record.Len()}, successor)
			require.True(t, ok)
			count := full.Len()
			_, ok = record.OffsetTo(Pos{Node: successor, Offset: offset + count})
			require.False(t, ok, "offset to a too-large position in %d", successor)
		}
	}
}

func runFullCheck(t *testing.T, edges [][]Pos, runs [][]Run, invalidNode uint64) *BWT {
	t.Helper()
	bwt := buildFrom(t, edges, runs)
	checkRecords(t, bwt, edges)
	checkIter(t, bwt)
	checkLF(t, bwt, edges, runs)
	checkFollow(t, bwt, invalidNode)
	negativeOffsetTo(t, bwt, invalidNode)
	return bwt
}

func TestEmptyBWT(t *testing.T) {
	runFullCheck(t, nil, nil, 0)
}

func TestPaperExample(t *testing.T) {
	edges, runs, invalidNode := paperExample()
	bwt := runFullCheck(t, edges, runs, invalidNode)

	record, ok := bwt.Record(0)
	require.True(t, ok)
	pos, ok := record.LF(0)
	require.True(t, ok)
	require.Equal(t, Pos{Node: 1, Offset: 0}, pos)

	record, ok = bwt.Record(7)
	require.True(t, ok)
	_, ok = record.LF(0)
	require.False(t, ok, "record 7 leads to the endmarker")
}

func TestRecordsWithHoles(t *testing.T) {
	edges, runs, invalidNode := paperExample()
	edges[2], runs[2] = nil, nil
	edges[6], runs[6] = nil, nil
	bwt := runFullCheck(t, edges, runs, invalidNode)

	_, ok := bwt.Record(2)
	require.False(t, ok)
	_, ok = bwt.Record(6)
	require.False(t, ok)
}

func TestBidirectionalExample(t *testing.T) {
	edges, runs, invalidNode := bidirectionalExample()
	bwt := runFullCheck(t, edges, runs, invalidNode)
	checkPredecessorAt(t, bwt)
}
