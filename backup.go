// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsemem

// This file implements spec §4.2: a paired op_backup/op_restore for
// every destructive operation. Each backup is the minimal sub-Memory
// (or small value) whose reapplication reconstructs the pre-state over
// the affected range, giving per-op undo without a global journal.

// backupRange extracts [start, endex) bounded to that same range, so the
// backup's Span and Len cover the whole range even where its edges are
// gaps.
func (m *Memory) backupRange(start, endex Address) *Memory {
	if endex < start {
		endex = start
	}
	bound := NewBounds(start, endex)
	out, _ := m.Extract(&start, &endex, nil, 1, &bound)
	return out
}

// WriteBackup captures [start, start+dataLen) before a Write call.
func (m *Memory) WriteBackup(start Address, dataLen int) *Memory {
	return m.backupRange(start, start+Address(dataLen))
}

// WriteRestore undoes a Write at start using a backup from WriteBackup.
func (m *Memory) WriteRestore(start Address, backup *Memory) {
	m.WriteMemory(start, backup)
}

// InsertBackup captures the (address, length) pair needed to undo an
// Insert call: restoring is simply deleting the inserted span.
type InsertBackup struct {
	Addr Address
	Len  int
}

// InsertBackupOf builds the backup for an Insert(addr, data) call.
func (m *Memory) InsertBackupOf(addr Address, dataLen int) InsertBackup {
	return InsertBackup{Addr: addr, Len: dataLen}
}

// InsertRestore undoes an Insert using a backup from InsertBackupOf.
func (m *Memory) InsertRestore(backup InsertBackup) {
	m.Delete(backup.Addr, backup.Addr+Address(backup.Len))
}

// DeleteBackup captures [start, endex) before a Delete call.
func (m *Memory) DeleteBackup(start, endex Address) *Memory {
	return m.backupRange(start, endex)
}

// DeleteRestore undoes a Delete at start using a backup from
// DeleteBackup: re-inserting shifts subsequent content back right.
func (m *Memory) DeleteRestore(start Address, backup *Memory) {
	m.InsertMemory(start, backup)
}

// ClearBackup captures [start, endex) before a Clear call.
func (m *Memory) ClearBackup(start, endex Address) *Memory {
	return m.backupRange(start, endex)
}

// ClearRestore undoes a Clear at start using a backup from ClearBackup.
// No shift occurred, so restoring is a plain write-back.
func (m *Memory) ClearRestore(start Address, backup *Memory) {
	m.WriteMemory(start, backup)
}

// ShiftBackup captures whatever content a Shift(offset) call would
// discard by pushing it past an active bound, in original (pre-shift)
// coordinates.
func (m *Memory) ShiftBackup(offset Address) *Memory {
	out := &Memory{}
	cs, ce := m.ContentSpan()
	if m.bounds.hasStart {
		lim := m.bounds.start - offset
		if lim > cs {
			e := lim
			if e > ce {
				e = ce
			}
			if e > cs {
				sub, _ := m.Extract(&cs, &e, nil, 1, nil)
				out.blocks.blocks = append(out.blocks.blocks, sub.blocks.blocks...)
			}
		}
	}
	if m.bounds.hasEndex {
		lim := m.bounds.endex - offset
		if lim < ce {
			s := lim
			if s < cs {
				s = cs
			}
			if s < ce {
				sub, _ := m.Extract(&s, &ce, nil, 1, nil)
				out.blocks.blocks = append(out.blocks.blocks, sub.blocks.blocks...)
			}
		}
	}
	return out
}

// ShiftRestore undoes a Shift(offset) call using a backup from
// ShiftBackup.
func (m *Memory) ShiftRestore(offset Address, backup *Memory) {
	m.Shift(-offset)
	if backup.ContentParts() > 0 {
		m.WriteMemory(backup.ContentStart(), backup)
	}
}

// FloodBackup captures the gap intervals inside [start, endex) before a
// Flood call; restoring re-clears exactly those intervals.
type FloodBackup struct {
	Gaps [][2]Address
}

// FloodBackupOf builds the backup for a Flood(start, endex, pattern)
// call.
func (m *Memory) FloodBackupOf(start, endex Address) FloodBackup {
	return FloodBackup{Gaps: m.gapsWithin(start, endex)}
}

// FloodRestore undoes a Flood using a backup from FloodBackupOf.
func (m *Memory) FloodRestore(backup FloodBackup) {
	for _, g := range backup.Gaps {
		m.blocks.clear(g[0], g[1])
	}
}

// PokeBackup captures the value at addr before a Poke call.
type PokeBackup struct {
	Addr  Address
	Value OptByte
}

// PokeBackupOf builds the backup for a Poke(addr, v) call.
func (m *Memory) PokeBackupOf(addr Address) PokeBackup {
	return PokeBackup{Addr: addr, Value: m.Peek(addr)}
}

// PokeRestore undoes a Poke using a backup from PokeBackupOf.
func (m *Memory) PokeRestore(backup PokeBackup) {
	_ = m.Poke(backup.Addr, backup.Value)
}
