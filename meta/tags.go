// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package meta

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// Tags is a case-insensitive key-value string map, keyed by lowercased
// keys. It serializes by linearizing as [k0, v0, k1, v1, ...] into a
// StringArray.
type Tags struct {
	values *swiss.Map[string, string]
}

// NewTags returns an empty Tags.
func NewTags() *Tags {
	return &Tags{values: swiss.New[string, string](0)}
}

// Set stores value under key, case-insensitively.
func (t *Tags) Set(key, value string) {
	t.values.Put(strings.ToLower(key), value)
}

// Get returns the value stored under key, case-insensitively.
func (t *Tags) Get(key string) (string, bool) {
	return t.values.Get(strings.ToLower(key))
}

// Len returns the number of tags.
func (t *Tags) Len() int {
	return t.values.Len()
}

// ForEach calls fn once per (key, value) pair, in unspecified order.
func (t *Tags) ForEach(fn func(key, value string)) {
	t.values.Iter(func(k, v string) bool {
		fn(k, v)
		return false
	})
}

// WriteTo serializes the tags by linearizing them into a StringArray.
func (t *Tags) WriteTo(w io.Writer) (int64, error) {
	linear := make([]string, 0, 2*t.Len())
	t.ForEach(func(k, v string) {
		linear = append(linear, k, v)
	})
	return NewStringArray(linear).WriteTo(w)
}

// LoadTags reverses WriteTo, rejecting an odd-length stream, invalid
// UTF-8, or duplicate keys.
func LoadTags(r io.Reader) (*Tags, error) {
	linear, err := LoadStringArray(r)
	if err != nil {
		return nil, err
	}
	if linear.Len()%2 != 0 {
		return nil, errors.New("meta: invalid data: tags stream has odd length")
	}
	tags := NewTags()
	for i := 0; i < linear.Len(); i += 2 {
		key, _ := linear.Get(i)
		value, _ := linear.Get(i + 1)
		if !utf8.ValidString(key) || !utf8.ValidString(value) {
			return nil, errors.New("meta: invalid data: tags contain invalid UTF-8")
		}
		lowered := strings.ToLower(key)
		if _, exists := tags.values.Get(lowered); exists {
			return nil, errors.Newf("meta: invalid data: duplicate tag key %q", lowered)
		}
		tags.Set(key, value)
	}
	return tags, nil
}
