// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import "testing"

func TestViewPeekAndToBytes(t *testing.T) {
	m := s1()
	v := m.AcquireView(5, 8)
	defer v.Release()

	if got, want := v.Len(), int64(3); got != want {
		t.Fatalf("Len()=%d, want=%d", got, want)
	}
	if got := v.Peek(6); !got.Present || got.Value != 'b' {
		t.Fatalf("Peek(6)=%v, want present 'b'", got)
	}
	if got := v.Peek(100); got.Present {
		t.Fatalf("Peek(100) outside the view span: got=%v, want absence", got)
	}
	if got, want := string(v.ToBytes(nil)), "abc"; got != want {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

func TestViewItemsRespectsWindow(t *testing.T) {
	m := s1()
	v := m.AcquireView(6, 11)
	defer v.Release()

	var addrs []Address
	it := v.Items()
	for it.Next() {
		addrs = append(addrs, it.Item().Addr)
	}
	want := []Address{6, 7, 10}
	if len(addrs) != len(want) {
		t.Fatalf("got=%v, want=%v", addrs, want)
	}
	for i := range want {
		if addrs[i] != want[i] {
			t.Fatalf("got=%v, want=%v", addrs, want)
		}
	}
}

func TestViewReleaseIsIdempotent(t *testing.T) {
	m := New()
	v := m.AcquireView(0, 1)
	if got, want := m.viewCount, 1; got != want {
		t.Fatalf("viewCount=%d, want=%d", got, want)
	}
	v.Release()
	v.Release()
	if got, want := m.viewCount, 0; got != want {
		t.Fatalf("viewCount=%d after double Release, want=%d", got, want)
	}
}
