package diag

import (
	"testing"

	"talc/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(LexUnknownChar, source.Span{}, "a")) {
		t.Fatalf("first Add rejected")
	}
	if !bag.Add(NewError(LexUnknownChar, source.Span{}, "b")) {
		t.Fatalf("second Add rejected")
	}
	if bag.Add(NewError(LexUnknownChar, source.Span{}, "c")) {
		t.Fatalf("Add over limit accepted")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d", bag.Len())
	}
}

func TestBagSeverities(t *testing.T) {
	bag := NewBag(8)
	bag.Add(New(SevWarning, ResUnusedParam, source.Span{}, "w"))
	if bag.HasErrors() {
		t.Fatalf("warning counted as error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("warning not seen")
	}
	bag.Add(NewError(ResAliasCycle, source.Span{}, "e"))
	if !bag.HasErrors() {
		t.Fatalf("error not seen")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(8)
	late := source.Span{Start: 10, End: 12}
	early := source.Span{Start: 2, End: 4}
	bag.Add(NewError(SynExpectSemicolon, late, "late"))
	bag.Add(NewError(SynExpectIdentifier, early, "early"))
	bag.Add(NewError(SynExpectIdentifier, early, "early again"))

	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("dedup kept %d items", len(items))
	}
	if items[0].Primary != early || items[1].Primary != late {
		t.Fatalf("sort order wrong: %+v", items)
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnknownChar, source.Span{}, "a"))
	b := NewBag(1)
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merge dropped items: %d", a.Len())
	}
}

func TestReportBuilder(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, BindDuplicateDecl, source.Span{Start: 1, End: 2}, "dup").
		WithNote(source.Span{Start: 5, End: 6}, "previous")
	b.Emit()
	b.Emit() // second Emit is a no-op

	if bag.Len() != 1 {
		t.Fatalf("Len = %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != BindDuplicateDecl || d.Severity != SevError || len(d.Notes) != 1 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Notes[0].Msg != "previous" {
		t.Fatalf("note = %+v", d.Notes[0])
	}
}

func TestCodeString(t *testing.T) {
	if got := ResAliasCycle.String(); got != "TL4004" {
		t.Fatalf("Code.String = %q", got)
	}
}
