// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkPredecessorAt mirrors check_predecessor_at: every position of every
// record, other than a starting position recorded in the endmarker
// record's LF image, must have a predecessor in the reverse record, found
// via the "record to node, flip, node to record" arithmetic described in
// § 6.2.
func checkPredecessorAt(t *testing.T, bwt *BWT) {
	t.Helper()

	startingPositions := make(map[Pos]bool)
	endmarker, ok := bwt.Record(int(Endmarker))
	require.True(t, ok)
	for i := uint64(0); i < endmarker.Len(); i++ {
		pos, ok := endmarker.LF(i)
		require.True(t, ok)
		startingPositions[pos] = true
	}

	iter := bwt.Iter()
	for {
		record, ok := iter.Next()
		if !ok {
			break
		}
		if record.ID() == Endmarker {
			continue
		}
		reverseID := ((record.ID() + 1) ^ 1) - 1
		reverseRecord, ok := bwt.Record(int(reverseID))
		require.True(t, ok)

		for i := uint64(0); i < record.Len(); i++ {
			_, hasPredecessor := reverseRecord.PredecessorAt(i)
			if startingPositions[Pos{Node: record.ID() + 1, Offset: i}] {
				require.False(t, hasPredecessor, "found a predecessor for a starting position (%d, %d)", record.ID()+1, i)
			} else {
				require.True(t, hasPredecessor, "did not find a predecessor for position (%d, %d)", record.ID()+1, i)
			}
		}
		_, hasPredecessor := reverseRecord.PredecessorAt(record.Len())
		require.False(t, hasPredecessor, "found a predecessor for an invalid offset at node %d", record.ID()+1)
	}
}
