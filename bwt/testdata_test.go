// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// paperExample returns the eight-record worked example from the GBWT
// paper, together with an invalid node id not present in any record.
func paperExample() (edges [][]Pos, runs [][]Run, invalidNode uint64) {
	edges = [][]Pos{
		{{Node: 1, Offset: 0}},
		{{Node: 2, Offset: 0}, {Node: 3, Offset: 0}},
		{{Node: 4, Offset: 0}, {Node: 5, Offset: 0}},
		{{Node: 4, Offset: 1}},
		{{Node: 5, Offset: 1}, {Node: 6, Offset: 0}},
		{{Node: 7, Offset: 0}},
		{{Node: 7, Offset: 2}},
		{{Node: 0, Offset: 0}},
	}
	runs = [][]Run{
		{{Value: 0, Len: 3}},
		{{Value: 0, Len: 2}, {Value: 1, Len: 1}},
		{{Value: 0, Len: 1}, {Value: 1, Len: 1}},
		{{Value: 0, Len: 1}},
		{{Value: 1, Len: 1}, {Value: 0, Len: 1}},
		{{Value: 0, Len: 2}},
		{{Value: 0, Len: 1}},
		{{Value: 0, Len: 3}},
	}
	return edges, runs, 8
}

// bidirectionalExample returns the bidirectional version of the paper
// example: the endmarker plus, for each of the paper's seven original
// nodes, a forward and a reverse record — fifteen records in all.
func bidirectionalExample() (edges [][]Pos, runs [][]Run, invalidNode uint64) {
	edges = [][]Pos{
		{{Node: 2, Offset: 0}, {Node: 15, Offset: 0}},
		{{Node: 4, Offset: 0}, {Node: 6, Offset: 0}},
		{{Node: 0, Offset: 0}},
		{{Node: 8, Offset: 0}, {Node: 10, Offset: 0}},
		{{Node: 3, Offset: 0}},
		{{Node: 8, Offset: 1}},
		{{Node: 3, Offset: 2}},
		{{Node: 10, Offset: 1}, {Node: 12, Offset: 0}},
		{{Node: 5, Offset: 0}, {Node: 7, Offset: 0}},
		{{Node: 14, Offset: 0}},
		{{Node: 5, Offset: 1}, {Node: 9, Offset: 0}},
		{{Node: 14, Offset: 2}},
		{{Node: 9, Offset: 1}},
		{{Node: 0, Offset: 0}},
		{{Node: 11, Offset: 0}, {Node: 13, Offset: 0}},
	}
	runs = [][]Run{
		{{Value: 0, Len: 3}, {Value: 1, Len: 3}},
		{{Value: 0, Len: 2}, {Value: 1, Len: 1}},
		{{Value: 0, Len: 3}},
		{{Value: 0, Len: 1}, {Value: 1, Len: 1}},
		{{Value: 0, Len: 2}},
		{{Value: 0, Len: 1}},
		{{Value: 0, Len: 1}},
		{{Value: 1, Len: 1}, {Value: 0, Len: 1}},
		{{Value: 1, Len: 1}, {Value: 0, Len: 1}},
		{{Value: 0, Len: 2}},
		{{Value: 0, Len: 1}, {Value: 1, Len: 1}},
		{{Value: 0, Len: 1}},
		{{Value: 0, Len: 1}},
		{{Value: 0, Len: 3}},
		{{Value: 1, Len: 1}, {Value: 0, Len: 2}},
	}
	return edges, runs, 16
}

func buildFrom(t *testing.T, edges [][]Pos, runs [][]Run) *BWT {
	t.Helper()
	b := NewBuilder(nil)
	require.Equal(t, 0, b.Len(), "newly created builder has non-zero length")
	require.True(t, b.IsEmpty(), "newly created builder is not empty")
	for i := range edges {
		b.Append(edges[i], runs[i])
	}
	require.Equal(t, len(edges), b.Len(), "invalid number of records in the builder")
	return b.Finalize()
}

// checkRecords mirrors the reference suite's check_records: it validates
// every record's fields, and the edge list recovered from
// CompressedRecord, against the edges used to build the BWT.
func checkRecords(t *testing.T, bwt *BWT, edges [][]Pos) {
	t.Helper()
	require.Equal(t, len(edges), bwt.Len(), "invalid number of records in the BWT")
	require.Equal(t, len(edges) == 0, bwt.IsEmpty())

	for i := range edges {
		record, ok := bwt.Record(i)
		require.Equal(t, len(edges[i]) == 0, !ok, "invalid record %d existence", i)
		if ok {
			require.Equal(t, uint64(i), record.ID(), "invalid id for record %d", i)
			require.Equal(t, len(edges[i]), record.Outdegree(), "invalid outdegree in record %d", i)
			for j := range edges[i] {
				require.Equal(t, edges[i][j].Node, record.Successor(j), "invalid successor %d in record %d", j, i)
				require.Equal(t, edges[i][j].Offset, record.Offset(j), "invalid offset %d in record %d", j, i)
			}
		}

		edgeBytes, bwtBytes, ok := bwt.CompressedRecord(i)
		require.Equal(t, len(edges[i]) == 0, !ok, "invalid compressed record %d existence", i)
		if ok {
			decoded, consumed, decOk := DecompressEdges(edgeBytes)
			require.True(t, decOk, "could not decompress edges for record %d", i)
			require.Equal(t, len(edgeBytes), consumed, "invalid offset after edge list for record %d", i)
			require.Equal(t, edges[i], decoded,
				"invalid edges in compressed record %d:\n%s", i, pretty.Sprint(decoded))

			record, ok := bwt.Record(i)
			require.True(t, ok)
			require.Equal(t, bwtBytes, record.bwt, "invalid BWT bytes in compressed record %d", i)
		}
	}
}
