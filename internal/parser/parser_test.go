package parser

import (
	"testing"

	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/lexer"
	"talc/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tc", []byte(src)))
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return ParseFile(lx, Options{MaxErrors: 16, Reporter: reporter}), bag
}

func TestParseStruct(t *testing.T) {
	file, bag := parseSrc(t, "struct Table(K, V);")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	if len(file.Items) != 1 {
		t.Fatalf("items = %d", len(file.Items))
	}
	st, ok := file.Items[0].(*ast.StructItem)
	if !ok {
		t.Fatalf("item is %T", file.Items[0])
	}
	if st.Name.Text != "Table" || len(st.Params) != 2 {
		t.Fatalf("struct = %q params=%d", st.Name.Text, len(st.Params))
	}
	if st.Params[0].Name.Text != "K" || st.Params[1].Name.Text != "V" {
		t.Fatalf("params = %q %q", st.Params[0].Name.Text, st.Params[1].Name.Text)
	}
	if st.Params[0].Pattern != nil {
		t.Fatalf("plain formal has a pattern")
	}
}

func TestParseZeroParamStruct(t *testing.T) {
	file, bag := parseSrc(t, "struct Unit();")
	if bag.Len() != 0 || len(file.Items) != 1 {
		t.Fatalf("items=%d diags=%d", len(file.Items), bag.Len())
	}
	if len(file.Items[0].(*ast.StructItem).Params) != 0 {
		t.Fatalf("expected empty parameter list")
	}
}

func TestParseAliasWithPattern(t *testing.T) {
	file, bag := parseSrc(t, "alias Deref(A: A*) = Box!A;")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	al := file.Items[0].(*ast.AliasItem)
	if al.Name.Text != "Deref" || len(al.Params) != 1 {
		t.Fatalf("alias = %+v", al)
	}
	pat, ok := al.Params[0].Pattern.(*ast.PointerType)
	if !ok {
		t.Fatalf("pattern is %T, want pointer", al.Params[0].Pattern)
	}
	inner, ok := pat.Elem.(*ast.NameType)
	if !ok || inner.Name.Text != "A" {
		t.Fatalf("pattern elem = %#v", pat.Elem)
	}
	inst, ok := al.Aliased.(*ast.InstanceType)
	if !ok || inst.Name.Text != "Box" || len(inst.Args) != 1 {
		t.Fatalf("aliased = %#v", al.Aliased)
	}
}

func TestParseFn(t *testing.T) {
	file, bag := parseSrc(t, "fn lookup(K, V)(Table!(K, V) t, K key);")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	fn := file.Items[0].(*ast.FnItem)
	if fn.Name.Text != "lookup" || len(fn.Params) != 2 || len(fn.FnParams) != 2 {
		t.Fatalf("fn = %+v", fn)
	}
	if fn.FnParams[0].Name.Text != "t" || fn.FnParams[1].Name.Text != "key" {
		t.Fatalf("fn param names = %q %q", fn.FnParams[0].Name.Text, fn.FnParams[1].Name.Text)
	}
	inst, ok := fn.FnParams[0].Type.(*ast.InstanceType)
	if !ok || len(inst.Args) != 2 {
		t.Fatalf("first param type = %#v", fn.FnParams[0].Type)
	}
}

func TestParseInstanceShorthand(t *testing.T) {
	// Postfix stars after a shorthand argument bind to the whole instance.
	file, bag := parseSrc(t, "alias P() = Vec!int*;")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	al := file.Items[0].(*ast.AliasItem)
	ptr, ok := al.Aliased.(*ast.PointerType)
	if !ok {
		t.Fatalf("aliased = %#v, want pointer to instance", al.Aliased)
	}
	inst, ok := ptr.Elem.(*ast.InstanceType)
	if !ok || inst.Name.Text != "Vec" || len(inst.Args) != 1 {
		t.Fatalf("pointee = %#v", ptr.Elem)
	}
	if _, ok := inst.Args[0].(*ast.PrimType); !ok {
		t.Fatalf("shorthand arg = %#v", inst.Args[0])
	}
}

func TestParseParenthesizedPointerArg(t *testing.T) {
	// With parentheses the star stays inside the argument.
	file, bag := parseSrc(t, "alias P() = Vec!(int*);")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	inst := file.Items[0].(*ast.AliasItem).Aliased.(*ast.InstanceType)
	if _, ok := inst.Args[0].(*ast.PointerType); !ok {
		t.Fatalf("arg = %#v, want pointer", inst.Args[0])
	}
}

func TestParseMultiStar(t *testing.T) {
	file, bag := parseSrc(t, "alias P() = int**;")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	outer := file.Items[0].(*ast.AliasItem).Aliased.(*ast.PointerType)
	if _, ok := outer.Elem.(*ast.PointerType); !ok {
		t.Fatalf("int** parsed as %#v", outer.Elem)
	}
}

func TestParseRecovery(t *testing.T) {
	file, bag := parseSrc(t, "struct ;\nstruct B(T);")
	if !bag.HasErrors() {
		t.Fatalf("expected a syntax error")
	}
	if len(file.Items) != 1 {
		t.Fatalf("items after recovery = %d", len(file.Items))
	}
	if file.Items[0].ItemName().Text != "B" {
		t.Fatalf("survivor = %q", file.Items[0].ItemName().Text)
	}
}

func TestParseErrorCodes(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"alias A() int;", diag.SynExpectEquals},
		{"struct S(T;", diag.SynExpectRParen},
		{"struct S(T)", diag.SynExpectSemicolon},
		{"fn f(T)(int);", diag.SynExpectIdentifier},
		{"alias A() = ;", diag.SynExpectType},
		{"= x;", diag.SynUnexpectedTopLevel},
	}
	for _, tc := range cases {
		_, bag := parseSrc(t, tc.src)
		if bag.Len() == 0 {
			t.Fatalf("%q: no diagnostics", tc.src)
		}
		if got := bag.Items()[0].Code; got != tc.code {
			t.Fatalf("%q: code = %v, want %v", tc.src, got, tc.code)
		}
	}
}

func TestParseErrorLimit(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.tc", []byte("= = = = = =")))
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	ParseFile(lx, Options{MaxErrors: 2, Reporter: reporter})
	if bag.Len() > 2 {
		t.Fatalf("error limit ignored: %d diagnostics", bag.Len())
	}
}

func TestParseKeywordAsName(t *testing.T) {
	_, bag := parseSrc(t, "struct struct(T);")
	if !bag.HasErrors() {
		t.Fatalf("keyword accepted as a declaration name")
	}
}
