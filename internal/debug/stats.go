// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package debug renders human-readable summaries of a container's shape,
// for use by command-line inspection tools and test failure output.
package debug

import (
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// RecordStats summarizes one record's shape, as produced by walking a
// container's records.
type RecordStats struct {
	ID        uint64
	Outdegree int
	Length    uint64
	RunCount  int
}

// Stats summarizes an entire container: one RecordStats per non-empty
// record, plus totals.
type Stats struct {
	Records     []RecordStats
	EmptyCount  int
	TotalBytes  int
	IndexLength int
}

// String renders a tabular summary of individual records followed by a
// sparkline histogram of outdegree across the container, matching the
// console-report style of a storage engine's debug dump.
func (s Stats) String() string {
	var sb strings.Builder

	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"id", "outdegree", "length", "runs"})
	for _, r := range s.Records {
		table.Append([]string{
			strconv.FormatUint(r.ID, 10),
			strconv.Itoa(r.Outdegree),
			strconv.FormatUint(r.Length, 10),
			strconv.Itoa(r.RunCount),
		})
	}
	table.Render()

	sb.WriteString("\n")
	sb.WriteString("records: ")
	sb.WriteString(strconv.Itoa(len(s.Records)))
	sb.WriteString(", empty: ")
	sb.WriteString(strconv.Itoa(s.EmptyCount))
	sb.WriteString(", bytes: ")
	sb.WriteString(strconv.Itoa(s.TotalBytes))
	sb.WriteString("\n")

	if len(s.Records) > 1 {
		outdegrees := make([]float64, len(s.Records))
		for i, r := range s.Records {
			outdegrees[i] = float64(r.Outdegree)
		}
		sb.WriteString(asciigraph.Plot(outdegrees, asciigraph.Height(8), asciigraph.Caption("outdegree by record")))
		sb.WriteString("\n")
	}

	return sb.String()
}
