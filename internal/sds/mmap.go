// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sds

import (
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/mmap"
)

// OpenMmap memory-maps path and returns it as a read-only MappedFile, so a
// serialized container can be loaded without first reading the whole file
// into memory. Readers from NewReader copy the bytes they read out of the
// mapping, and the Load functions copy what they read into newly allocated
// buffers, so loading through it is not zero-copy.
//
// Close must be called once the caller is done querying the mapped bytes;
// any further access after Close is undefined behavior, matching the
// lifetime rule that record views must not outlive their container.
func OpenMmap(path string) (*MappedFile, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "sds: opening mmap for %s", path)
	}
	return &MappedFile{reader: r}, nil
}

// MappedFile is a memory-mapped, read-only file.
type MappedFile struct {
	reader *mmap.ReaderAt
}

// Len returns the size of the mapped file in bytes.
func (m *MappedFile) Len() int {
	return m.reader.Len()
}

// NewReader returns an io.Reader over the whole mapping, backed directly by
// the mapped memory: reads are served by the kernel's page cache, never
// copied into a separately allocated buffer up front.
func (m *MappedFile) NewReader() *io.SectionReader {
	return io.NewSectionReader(m.reader, 0, int64(m.reader.Len()))
}

// Close unmaps the file.
func (m *MappedFile) Close() error {
	return m.reader.Close()
}
