// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

import "testing"

func TestWriteBackupRestore(t *testing.T) {
	m := s1()
	backup := m.WriteBackup(6, 2)
	m.Write(6, []Byte("ZZ"))
	m.WriteRestore(6, backup)
	got := m.ToBlocks(nil, nil)
	want := s1().ToBlocks(nil, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d blocks after restore, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Start != want[i].Start || string(got[i].Data) != string(want[i].Data) {
			t.Fatalf("block %d: got=%+v, want=%+v", i, got[i], want[i])
		}
	}
}

func TestInsertBackupRestore(t *testing.T) {
	m := s1()
	backup := m.InsertBackupOf(6, 2)
	m.Insert(6, []Byte("ZZ"))
	m.InsertRestore(backup)
	got := m.ToBlocks(nil, nil)
	want := s1().ToBlocks(nil, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d blocks after restore, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Start != want[i].Start || string(got[i].Data) != string(want[i].Data) {
			t.Fatalf("block %d: got=%+v, want=%+v", i, got[i], want[i])
		}
	}
}

func TestDeleteBackupRestore(t *testing.T) {
	m := s1()
	backup := m.DeleteBackup(6, 11)
	m.Delete(6, 11)
	m.DeleteRestore(6, backup)
	got := m.ToBlocks(nil, nil)
	want := s1().ToBlocks(nil, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d blocks after restore, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Start != want[i].Start || string(got[i].Data) != string(want[i].Data) {
			t.Fatalf("block %d: got=%+v, want=%+v", i, got[i], want[i])
		}
	}
}

func TestClearBackupRestore(t *testing.T) {
	m := s1()
	backup := m.ClearBackup(6, 11)
	m.Clear(6, 11)
	m.ClearRestore(6, backup)
	got := m.ToBlocks(nil, nil)
	want := s1().ToBlocks(nil, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d blocks after restore, want %d", len(got), len(want))
	}
}

func TestShiftBackupRestore(t *testing.T) {
	m := s1()
	m.SetBounds(NewBoundsStart(8))
	backup := m.ShiftBackup(-2)
	m.Shift(-2)
	m.ShiftRestore(-2, backup)
	if got, want := m.ToBytes(nil, nil, nil), s1().ToBytes(Address2Ptr(8), Address2Ptr(12), nil); string(got) != string(want) {
		t.Fatalf("got=%q, want=%q", got, want)
	}
}

func Address2Ptr(a Address) *Address { return &a }

func TestFloodBackupRestore(t *testing.T) {
	m := s1()
	start, endex := Address(4), Address(13)
	backup := m.FloodBackupOf(start, endex)
	if err := m.Flood(&start, &endex, []Byte(".")); err != nil {
		t.Fatalf("Flood: %v", err)
	}
	m.FloodRestore(backup)
	got := m.ToBlocks(nil, nil)
	want := s1().ToBlocks(nil, nil)
	if len(got) != len(want) {
		t.Fatalf("got %d blocks after restore, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Start != want[i].Start || string(got[i].Data) != string(want[i].Data) {
			t.Fatalf("block %d: got=%+v, want=%+v", i, got[i], want[i])
		}
	}
}

func TestPokeBackupRestore(t *testing.T) {
	m := s1()
	backup := m.PokeBackupOf(6)
	_ = m.Poke(6, Some('Z'))
	m.PokeRestore(backup)
	if v := m.Peek(6); !v.Present || v.Value != 'b' {
		t.Fatalf("peek(6)=%v, want present 'b'", v)
	}
}
