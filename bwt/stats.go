// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bwt

import "github.com/jltsiren/gbwt-go/internal/debug"

// Stats walks every record in the container and summarizes its shape, for
// command-line inspection and test failure diagnostics.
func (b *BWT) Stats() debug.Stats {
	stats := debug.Stats{TotalBytes: len(b.bytes), IndexLength: b.index.Len()}
	for i := 0; i < b.Len(); i++ {
		record, ok := b.Record(i)
		if !ok {
			stats.EmptyCount++
			continue
		}
		runCount := 0
		dec := record.decoder()
		for {
			_, ok := dec.Next()
			if !ok {
				break
			}
			runCount++
		}
		stats.Records = append(stats.Records, debug.RecordStats{
			ID:        record.ID(),
			Outdegree: record.Outdegree(),
			Length:    record.Len(),
			RunCount:  runCount,
		})
	}
	return stats
}
