// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import (
	"reflect"
	"testing"
)

func TestValueIterForwardWithPattern(t *testing.T) {
	m := s1()
	var vals []OptByte
	endex := Address(12)
	it := m.Values(nil, &endex, []Byte("."))
	for it.Next() {
		vals = append(vals, it.Value())
	}
	want := []OptByte{Some('a'), Some('b'), Some('c'), Some('.'), Some('.'), Some('x'), Some('y')}
	if !reflect.DeepEqual(vals, want) {
		t.Fatalf("got=%v, want=%v", vals, want)
	}
}

func TestValueIterReverse(t *testing.T) {
	m := s1()
	var addrs []Address
	it := m.RValues(nil, nil, nil)
	for it.Next() {
		addrs = append(addrs, it.Addr())
	}
	want := []Address{11, 10, 9, 8, 7, 6, 5}
	if !reflect.DeepEqual(addrs, want) {
		t.Fatalf("got=%v, want=%v", addrs, want)
	}
}

func TestItemIterSkipsGaps(t *testing.T) {
	m := s1()
	var items []Item
	it := m.Items(nil, nil)
	for it.Next() {
		items = append(items, it.Item())
	}
	want := []Item{{5, 'a'}, {6, 'b'}, {7, 'c'}, {10, 'x'}, {11, 'y'}}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("got=%v, want=%v", items, want)
	}
}

func TestItemIterReverse(t *testing.T) {
	m := s1()
	var items []Item
	it := m.RItems(nil, nil)
	for it.Next() {
		items = append(items, it.Item())
	}
	want := []Item{{11, 'y'}, {10, 'x'}, {7, 'c'}, {6, 'b'}, {5, 'a'}}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("got=%v, want=%v", items, want)
	}
}

func TestKeyIter(t *testing.T) {
	m := s1()
	var keys []Address
	it := m.Keys(nil, nil)
	for it.Next() {
		keys = append(keys, it.Addr())
	}
	want := []Address{5, 6, 7, 10, 11}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("got=%v, want=%v", keys, want)
	}
}

func TestIntervalIter(t *testing.T) {
	m := s1()
	var spans [][2]Address
	it := m.Intervals(nil, nil)
	for it.Next() {
		s, e := it.Span()
		spans = append(spans, [2]Address{s, e})
	}
	want := [][2]Address{{5, 8}, {10, 12}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got=%v, want=%v", spans, want)
	}
}

func TestBlockIterCopiesData(t *testing.T) {
	m := s1()
	it := m.Blocks(nil, nil)
	if !it.Next() {
		t.Fatalf("expected at least one block")
	}
	rb := it.Block()
	rb.Data[0] = 'Z'
	if v := m.Peek(rb.Start); v.Value == 'Z' {
		t.Fatalf("BlockIter leaked a reference into the source memory")
	}
}

func TestGapIterOpenBothSides(t *testing.T) {
	m := s1()
	var labels []string
	it := m.Gaps(nil, nil)
	for it.Next() {
		s, e := it.Span()
		labels = append(labels, gapLabel(s, e))
	}
	want := []string{"(None,5)", "(8,10)", "(12,None)"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("got=%v, want=%v", labels, want)
	}
}

func TestGapIterBounded(t *testing.T) {
	m := s1()
	start, endex := Address(0), Address(20)
	var spans [][2]Address
	it := m.Gaps(&start, &endex)
	for it.Next() {
		s, e := it.Span()
		spans = append(spans, [2]Address{*s, *e})
	}
	want := [][2]Address{{0, 5}, {8, 10}, {12, 20}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got=%v, want=%v", spans, want)
	}
}

func TestGapIterEmptyMemory(t *testing.T) {
	m := New()
	it := m.Gaps(nil, nil)
	if !it.Next() {
		t.Fatalf("expected one fully-open gap entry")
	}
	s, e := it.Span()
	if s != nil || e != nil {
		t.Fatalf("got=(%v,%v), want=(nil,nil)", s, e)
	}
	if it.Next() {
		t.Fatalf("expected exactly one gap entry")
	}
}

func TestContentValues(t *testing.T) {
	m := s1()
	var vals []Byte
	it := m.ContentValues()
	for it.Next() {
		vals = append(vals, it.Value())
	}
	want := []Byte("abcxy")
	if !reflect.DeepEqual(vals, want) {
		t.Fatalf("got=%q, want=%q", vals, want)
	}
}

func TestChopIter(t *testing.T) {
	m, err := FromBytes([]Byte("0123456789"), 0, Bounds{}, true, true)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	it, err := m.Chop(4, nil, nil, false)
	if err != nil {
		t.Fatalf("Chop: %v", err)
	}
	var tiles []string
	for it.Next() {
		tiles = append(tiles, string(it.Data()))
	}
	want := []string{"0123", "4567", "89"}
	if !reflect.DeepEqual(tiles, want) {
		t.Fatalf("got=%v, want=%v", tiles, want)
	}
}

func TestChopIterRejectsNonPositiveStep(t *testing.T) {
	m := New()
	if _, err := m.Chop(0, nil, nil, false); err == nil {
		t.Fatalf("Chop(0, ...) err=nil, want a ValueRangeError")
	}
}
