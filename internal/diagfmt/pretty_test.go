package diagfmt

import (
	"strings"
	"testing"

	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/lexer"
	"talc/internal/parser"
	"talc/internal/source"
)

func TestPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tc", []byte("struct S(T)\nstruct B(U);"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: id, Start: 7, End: 8}, "expected ';'"))

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{Color: false, Context: 2})
	out := b.String()

	if !strings.Contains(out, "test.tc:1:8: ERROR TL2004: expected ';'") {
		t.Fatalf("heading missing:\n%s", out)
	}
	if !strings.Contains(out, "struct S(T)") {
		t.Fatalf("source line missing:\n%s", out)
	}
	// Caret under column 8.
	if !strings.Contains(out, "    "+strings.Repeat(" ", 7)+"^") {
		t.Fatalf("caret misplaced:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tc", []byte("struct S();\nalias S() = int;"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.BindDuplicateDecl, source.Span{File: id, Start: 18, End: 19}, "duplicate declaration of S").
		WithNote(source.Span{File: id, Start: 7, End: 8}, "previously declared here"))

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{})
	out := b.String()
	if !strings.Contains(out, "test.tc:2:7: ERROR TL3001") {
		t.Fatalf("primary heading wrong:\n%s", out)
	}
	if !strings.Contains(out, "test.tc:1:8: INFO: previously declared here") {
		t.Fatalf("note heading wrong:\n%s", out)
	}
}

func parseSrc(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tc", []byte(src)))
	bag := diag.NewBag(8)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(lx, parser.Options{MaxErrors: 8, Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	return parsed
}

func TestRenderTypeExpr(t *testing.T) {
	file := parseSrc(t, "fn f(T)(Map!(string, Vec!T)* a, int** b, Vec!int c);")
	fn := file.Items[0].(*ast.FnItem)

	want := []string{"Map!(string, Vec!T)*", "int**", "Vec!int"}
	for i, w := range want {
		if got := RenderTypeExpr(fn.FnParams[i].Type); got != w {
			t.Fatalf("param %d = %q, want %q", i, got, w)
		}
	}
}

func TestFormatASTPretty(t *testing.T) {
	file := parseSrc(t, "alias Ref(T) = Box!(T*);")
	var b strings.Builder
	if err := FormatASTPretty(&b, file); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Alias Ref(T)") || !strings.Contains(out, "= Box!(T*)") {
		t.Fatalf("tree output:\n%s", out)
	}
}
