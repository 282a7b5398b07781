package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"talc/internal/diag"
)

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCheckSourceClean(t *testing.T) {
	res := CheckSource("test.tc", []byte(`
struct Table(K, V);
alias Map(K, V) = Table!(K, V);
fn lookup(K, V)(Map!(K, V) t, K key);
`), CheckOptions{MaxDiagnostics: 16})

	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	sigs := res.RenderedSignatures()
	if len(sigs) != 1 {
		t.Fatalf("signatures = %v", sigs)
	}
	want := "fn lookup(K, V)(Table!(K, V) t, K key);"
	if sigs[0] != want {
		t.Fatalf("signature = %q, want %q", sigs[0], want)
	}
}

func TestCheckSourceSyntaxErrorSkipsResolve(t *testing.T) {
	res := CheckSource("test.tc", []byte("struct ;"), CheckOptions{MaxDiagnostics: 16})
	if !res.Bag.HasErrors() {
		t.Fatalf("expected syntax errors")
	}
	if len(res.Signatures) != 0 {
		t.Fatalf("signatures produced from broken input")
	}
}

func TestCheckSourceUnusedDrop(t *testing.T) {
	src := []byte(`
struct S2(T);
alias A(S, V) = S2!S;
fn f(T, Q)(A!(T, Q) x);
`)
	res := CheckSource("test.tc", src, CheckOptions{MaxDiagnostics: 16, Unused: UnusedDrop})
	if res.Bag.HasErrors() {
		t.Fatalf("drop policy raised errors: %+v", res.Bag.Items())
	}
	if !res.Bag.HasWarnings() || !hasCode(res.Bag, diag.ResUnusedParam) {
		t.Fatalf("missing unused-parameter warning: %+v", res.Bag.Items())
	}
	sigs := res.RenderedSignatures()
	want := "fn f(T)(S2!T x);"
	if len(sigs) != 1 || sigs[0] != want {
		t.Fatalf("signatures = %v, want %q", sigs, want)
	}
}

func TestCheckSourceUnusedError(t *testing.T) {
	src := []byte(`
struct S2(T);
alias A(S, V) = S2!S;
fn f(T, Q)(A!(T, Q) x);
`)
	res := CheckSource("test.tc", src, CheckOptions{MaxDiagnostics: 16, Unused: UnusedError})
	if !res.Bag.HasErrors() || !hasCode(res.Bag, diag.ResUnusedParam) {
		t.Fatalf("error policy did not reject: %+v", res.Bag.Items())
	}
	if len(res.Signatures) != 0 {
		t.Fatalf("rejected candidate still produced a signature")
	}
}

func TestCheckSourceResolveCodes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			"pattern mismatch",
			"struct S(T);\nalias Deref(A: A*) = S!A;\nfn f()(Deref!int x);",
			diag.ResPatternMismatch,
		},
		{
			"alias cycle",
			"alias A(T) = A!T;\nfn f(T)(A!T p);",
			diag.ResAliasCycle,
		},
		{
			"mutual cycle",
			"alias A(T) = B!T;\nalias B(T) = A!T;\nfn f(T)(A!T p);",
			diag.ResAliasCycle,
		},
	}
	for _, tc := range cases {
		res := CheckSource("test.tc", []byte(tc.src), CheckOptions{MaxDiagnostics: 16})
		if !res.Bag.HasErrors() || !hasCode(res.Bag, tc.code) {
			t.Fatalf("%s: diagnostics = %+v, want %v", tc.name, res.Bag.Items(), tc.code)
		}
		if len(res.Signatures) != 0 {
			t.Fatalf("%s: failing candidate produced a signature", tc.name)
		}
	}
}

func TestCheckSourceFailureIsPerFn(t *testing.T) {
	// One broken function template does not take down its siblings.
	res := CheckSource("test.tc", []byte(`
struct S(T);
alias Bad(T) = Bad!T;
fn broken(T)(Bad!T p);
fn fine(T)(S!T p);
`), CheckOptions{MaxDiagnostics: 16})
	if !hasCode(res.Bag, diag.ResAliasCycle) {
		t.Fatalf("cycle not reported: %+v", res.Bag.Items())
	}
	sigs := res.RenderedSignatures()
	if len(sigs) != 1 || sigs[0] != "fn fine(T)(S!T p);" {
		t.Fatalf("signatures = %v", sigs)
	}
}

func TestParseUnusedPolicy(t *testing.T) {
	if p, err := ParseUnusedPolicy("drop"); err != nil || p != UnusedDrop {
		t.Fatalf("drop: %v %v", p, err)
	}
	if p, err := ParseUnusedPolicy("error"); err != nil || p != UnusedError {
		t.Fatalf("error: %v %v", p, err)
	}
	if _, err := ParseUnusedPolicy("bogus"); err == nil {
		t.Fatalf("bogus policy accepted")
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, err := Check(filepath.Join(t.TempDir(), "absent.tc"), CheckOptions{}); err == nil {
		t.Fatalf("missing file did not error")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.tc", "struct S(T);\nfn g(T)(S!T x);\n")
	writeFile(t, dir, "a.tc", "struct Box(T);\nalias Ref(T) = Box!(T*);\nfn share(T)(Ref!T slot);\n")
	writeFile(t, dir, "ignored.txt", "not a source file")

	events := make(chan CheckEvent, 64)
	results, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 16}, 2, nil, events)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	// Sorted order: a.tc before b.tc.
	if filepath.Base(results[0].Path) != "a.tc" || filepath.Base(results[1].Path) != "b.tc" {
		t.Fatalf("order = %s, %s", results[0].Path, results[1].Path)
	}
	if got := results[0].Signatures; len(got) != 1 || got[0] != "fn share(T)(Box!(T*) slot);" {
		t.Fatalf("a.tc signatures = %v", got)
	}

	// Channel must be closed; each file sees checking then done.
	var count int
	for ev := range events {
		if ev.Stage == StageFailed {
			t.Fatalf("unexpected failure event for %s", ev.Path)
		}
		count++
	}
	if count != 4 {
		t.Fatalf("events = %d, want 4", count)
	}
}

func TestCheckDirFailureStage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.tc", "alias A(T) = A!T;\nfn f(T)(A!T p);\n")

	events := make(chan CheckEvent, 16)
	results, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 16}, 1, nil, events)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 1 || results[0].Result == nil || !results[0].Result.Bag.HasErrors() {
		t.Fatalf("bad file not flagged")
	}
	sawFailed := false
	for ev := range events {
		if ev.Stage == StageFailed {
			sawFailed = true
		}
	}
	if !sawFailed {
		t.Fatalf("no failed event emitted")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	results, err := CheckDir(context.Background(), t.TempDir(), CheckOptions{}, 0, nil, nil)
	if err != nil || results != nil {
		t.Fatalf("empty dir: %v, %v", results, err)
	}
}

func TestCheckDirCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("talc-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	writeFile(t, dir, "a.tc", "struct S(T);\nfn f(T)(S!T x);\n")

	first, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 16}, 1, cache, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Cached {
		t.Fatalf("first run claimed a cache hit")
	}

	second, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 16}, 1, cache, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].Cached {
		t.Fatalf("second run missed the cache")
	}
	if len(second[0].Signatures) != 1 || second[0].Signatures[0] != first[0].Signatures[0] {
		t.Fatalf("cached signatures = %v, fresh = %v", second[0].Signatures, first[0].Signatures)
	}

	// Editing the file changes the key.
	writeFile(t, dir, "a.tc", "struct S(T);\nfn f(T)(S!T y);\n")
	third, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 16}, 1, cache, nil)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third[0].Cached {
		t.Fatalf("stale cache hit after edit")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
}

func TestDirtyResultsNotCached(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("talc-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	// Unused Q produces a warning under the drop policy.
	writeFile(t, dir, "warn.tc", "struct S2(T);\nalias A(S, V) = S2!S;\nfn f(T, Q)(A!(T, Q) x);\n")

	for run := 0; run < 2; run++ {
		results, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 16}, 1, cache, nil)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if results[0].Cached {
			t.Fatalf("run %d: result with warnings was cached", run)
		}
	}
}

func TestDiskCacheRoundtrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("talc-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	key := Digest{1, 2, 3}
	var miss CheckPayload
	if ok, err := cache.Get(key, &miss); err != nil || ok {
		t.Fatalf("empty cache hit: %v %v", ok, err)
	}

	in := CheckPayload{
		Schema:     checkCacheSchemaVersion,
		Path:       "x.tc",
		Signatures: []string{"fn f()(int x);"},
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out CheckPayload
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get: %v %v", ok, err)
	}
	if out.Path != in.Path || len(out.Signatures) != 1 || out.Signatures[0] != in.Signatures[0] {
		t.Fatalf("payload = %+v", out)
	}

	// A schema bump invalidates old payloads.
	stale := CheckPayload{Schema: checkCacheSchemaVersion + 1, Path: "y.tc"}
	if err := cache.Put(key, &stale); err != nil {
		t.Fatalf("Put stale: %v", err)
	}
	if ok, err := cache.Get(key, &out); err != nil || ok {
		t.Fatalf("stale schema accepted: %v %v", ok, err)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tc", "struct S(T);")

	tok, err := Tokenize(path, 16)
	if err != nil || tok.Bag.Len() != 0 {
		t.Fatalf("Tokenize: %v, diags %d", err, tok.Bag.Len())
	}
	// struct S ( T ) ; EOF
	if len(tok.Tokens) != 7 {
		t.Fatalf("tokens = %d", len(tok.Tokens))
	}

	parsed, err := Parse(path, 16)
	if err != nil || parsed.Bag.Len() != 0 {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.File.Items) != 1 {
		t.Fatalf("items = %d", len(parsed.File.Items))
	}
}
