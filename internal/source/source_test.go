package source

import (
	"bytes"
	"testing"
)

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Vec")
	b := in.Intern("Vec")
	if a != b {
		t.Fatalf("same string interned twice: %d vs %d", a, b)
	}
	c := in.InternBytes([]byte("Vec"))
	if c != a {
		t.Fatalf("InternBytes disagrees with Intern: %d vs %d", c, a)
	}
	d := in.Intern("Box")
	if d == a {
		t.Fatalf("distinct strings share an ID")
	}
	if got := in.MustLookup(a); got != "Vec" {
		t.Fatalf("MustLookup(%d) = %q, want Vec", a, got)
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatalf("Lookup accepted an out-of-range ID")
	}
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID slot should hold the empty string")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("Cover = %v, want 1:5-20", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files changed the span: %v", got)
	}

	if !(Span{Start: 3, End: 3}).Empty() {
		t.Fatalf("zero-length span not Empty")
	}
	if (Span{Start: 3, End: 7}).Len() != 4 {
		t.Fatalf("Len wrong")
	}
}

func TestLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.tc", []byte("ab\ncd\nef"))
	file := fs.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the \n belongs to line 1
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 3, 2},
	}
	for _, tc := range cases {
		got := file.LineCol(tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Fatalf("LineCol(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}

	path, lc := fs.LineCol(Span{File: id, Start: 4, End: 5})
	if path != "test.tc" || lc.Line != 2 || lc.Col != 2 {
		t.Fatalf("FileSet.LineCol = %s %d:%d", path, lc.Line, lc.Col)
	}
}

func TestLineColSingleLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("one.tc", []byte("struct S(T);")))
	lc := file.LineCol(7)
	if lc.Line != 1 || lc.Col != 8 {
		t.Fatalf("LineCol(7) = %d:%d, want 1:8", lc.Line, lc.Col)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatalf("CRLF input not flagged as changed")
	}
	if !bytes.Equal(out, []byte("a\nb\rc\n")) {
		t.Fatalf("normalizeCRLF = %q", out)
	}

	clean := []byte("plain\ntext")
	out, changed = normalizeCRLF(clean)
	if changed || !bytes.Equal(out, clean) {
		t.Fatalf("clean input rewritten")
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || !bytes.Equal(out, []byte("x")) {
		t.Fatalf("BOM not stripped: %q", out)
	}
	out, had = removeBOM([]byte("xy"))
	if had || !bytes.Equal(out, []byte("xy")) {
		t.Fatalf("short input mangled")
	}
}

func TestFileSetReplacesPath(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("dup.tc", []byte("old"))
	second := fs.AddVirtual("dup.tc", []byte("new"))
	if first == second {
		t.Fatalf("repeated path reused the FileID")
	}
	id, ok := fs.Lookup("dup.tc")
	if !ok || id != second {
		t.Fatalf("Lookup = %d, want latest %d", id, second)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
	if string(fs.Get(second).Content) != "new" {
		t.Fatalf("latest content lost")
	}
}
