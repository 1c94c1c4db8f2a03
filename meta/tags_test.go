// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package meta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagsCaseInsensitive(t *testing.T) {
	tags := NewTags()
	tags.Set("Reference", "GRCh38")
	v, ok := tags.Get("reference")
	require.True(t, ok)
	require.Equal(t, "GRCh38", v)

	tags.Set("REFERENCE", "CHM13")
	require.Equal(t, 1, tags.Len())
	v, ok = tags.Get("Reference")
	require.True(t, ok)
	require.Equal(t, "CHM13", v)
}

func TestTagsSerializeRoundTrip(t *testing.T) {
	tags := NewTags()
	tags.Set("source", "vg")
	tags.Set("version", "1.0")

	var buf bytes.Buffer
	_, err := tags.WriteTo(&buf)
	require.NoError(t, err)

	loaded, err := LoadTags(&buf)
	require.NoError(t, err)
	require.Equal(t, tags.Len(), loaded.Len())
	v, ok := loaded.Get("SOURCE")
	require.True(t, ok)
	require.Equal(t, "vg", v)
}

func TestLoadTagsRejectsOddLength(t *testing.T) {
	sa := NewStringArray([]string{"key", "value", "dangling"})
	var buf bytes.Buffer
	_, err := sa.WriteTo(&buf)
	require.NoError(t, err)
	_, err = LoadTags(&buf)
	require.Error(t, err)
}

func TestLoadTagsRejectsDuplicateKeys(t *testing.T) {
	sa := NewStringArray([]string{"key", "v1", "KEY", "v2"})
	var buf bytes.Buffer
	_, err := sa.WriteTo(&buf)
	require.NoError(t, err)
	_, err = LoadTags(&buf)
	require.Error(t, err)
}
