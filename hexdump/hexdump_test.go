// Copyright 2024 The sparsemem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hexdump

import (
	"strings"
	"testing"

	"github.com/vmem/sparsemem"
)

func TestDumpSingleLineLayout(t *testing.T) {
	m, err := sparsemem.FromBytes([]byte("Hello, world!!!!"), 0, sparsemem.Bounds{}, true, true)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	var sb strings.Builder
	if err := Dump(&sb, m, nil, nil); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	line := sb.String()
	if !strings.HasPrefix(line, "00000000  ") {
		t.Fatalf("line=%q, want address prefix 00000000", line)
	}
	if !strings.Contains(line, "|Hello, world!!!!|") {
		t.Fatalf("line=%q, want ASCII gutter |Hello, world!!!!|", line)
	}
	if !strings.HasSuffix(line, "|\n") {
		t.Fatalf("line=%q, want trailing |\\n", line)
	}
}

func TestDumpGapsAndNonPrintable(t *testing.T) {
	m, err := sparsemem.FromBlocks([]sparsemem.RawBlock{
		{Start: 0, Data: []byte{0x41, 0x00, 0x42}},
	}, 0, sparsemem.Bounds{}, true, true)
	if err != nil {
		t.Fatalf("FromBlocks: %v", err)
	}
	var sb strings.Builder
	end := sparsemem.Address(16)
	if err := Dump(&sb, m, nil, &end); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	line := sb.String()
	if !strings.Contains(line, "..") {
		t.Fatalf("line=%q, want a gap rendered as two dots in the hex gutter", line)
	}
	if !strings.Contains(line, "A.B") {
		t.Fatalf("line=%q, want a non-printable byte rendered as '.' in the ASCII gutter", line)
	}
}

func TestDumpMultipleLines(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	m, err := sparsemem.FromBytes(data, 0, sparsemem.Bounds{}, true, true)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	var sb strings.Builder
	if err := Dump(&sb, m, nil, nil); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "00000010  ") {
		t.Fatalf("second line=%q, want address prefix 00000010", lines[1])
	}
}
