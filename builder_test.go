package textrun

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestReplaceInheritsProperties(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	s := New("helloworld", WSProps(1))
	b := s.Builder()
	if err := b.Replace(5, 5, " ", nil); err != nil {
		t.Fatal(err)
	}
	txt := b.Text()
	if txt.String() != "hello world" {
		t.Errorf("expected 'hello world', have %q", txt.String())
	}
	if txt.RunCount() != 1 {
		t.Errorf("expected inherited properties to coalesce into 1 run, have %s", txt.Dump())
	}
	if s.String() != "helloworld" {
		t.Errorf("source text has been modified: %q", s.String())
	}
}

func TestReplaceSplitsRun(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := New("helloworld", WSProps(1)).Builder()
	if err := b.Replace(5, 5, " ", WSProps(2)); err != nil {
		t.Fatal(err)
	}
	txt := b.Text()
	if txt.RunCount() != 3 {
		t.Fatalf("expected 3 runs, have %s", txt.Dump())
	}
	expected := []Run{{0, 5, WSProps(1)}, {5, 6, WSProps(2)}, {6, 11, WSProps(1)}}
	for i, r := range txt.Runs() {
		if r.Start != expected[i].Start || r.End != expected[i].End || !r.Props.Equal(expected[i].Props) {
			t.Errorf("run %d: expected %v, have %v", i, expected[i], r)
		}
	}
	checkPartition(t, txt)
}

func TestReplaceCoalescesNeighbours(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := New("helloworld", WSProps(1)).Builder()
	b.Replace(5, 5, " ", WSProps(2))
	if err := b.Replace(5, 6, "-", WSProps(1)); err != nil {
		t.Fatal(err)
	}
	if txt := b.Text(); txt.RunCount() != 1 || txt.String() != "hello-world" {
		t.Errorf("expected a single run 'hello-world', have %s", txt.Dump())
	}
	b.Replace(5, 6, " ", WSProps(2))
	if err := b.Remove(5, 1); err != nil {
		t.Fatal(err)
	}
	if txt := b.Text(); txt.RunCount() != 1 || txt.String() != "helloworld" {
		t.Errorf("expected deletion to coalesce runs, have %s", txt.Dump())
	}
}

func TestReplaceNilPropsTakesRunAtMin(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := NewBuilder(nil)
	b.Append("abc", WSProps(1))
	b.Append("def", WSProps(2))
	if err := b.Replace(3, 3, "X", nil); err != nil {
		t.Fatal(err)
	}
	txt := b.Text()
	if txt.String() != "abcXdef" || txt.RunCount() != 2 {
		t.Fatalf("unexpected result %s", txt.Dump())
	}
	if p, _ := txt.PropsAt(3); p.WS() != 2 {
		t.Errorf("inserted character should carry properties of run starting at 3, has %s", p)
	}
	b.Append("!", nil)
	if p, _ := b.Text().PropsAt(7); p.WS() != 2 {
		t.Errorf("appended character should carry properties of last run, has %s", p)
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := NewBuilder(WSProps(1))
	b.Append("abc", nil)
	t1 := b.Text()
	b.Replace(0, 1, "X", nil)
	t2 := b.Text()
	b.Replace(1, 2, "Y", nil)
	b.Append("Z", WSProps(2))
	if t1.String() != "abc" || t2.String() != "Xbc" {
		t.Errorf("snapshots changed by builder: %q, %q", t1.String(), t2.String())
	}
	if s := b.String(); s != "XYcZ" {
		t.Errorf("expected builder to hold 'XYcZ', holds %q", s)
	}
	if t2.RunCount() != 1 {
		t.Errorf("snapshot runs changed by builder: %s", t2.Dump())
	}
}

func TestZeroWidthReplace(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := NewBuilder(nil)
	if err := b.Replace(0, 0, "", WSProps(7)); err != nil {
		t.Fatal(err)
	}
	if p, _ := b.Text().RunProps(0); p.WS() != 7 {
		t.Errorf("expected empty text to be tagged with ws=7, has %s", p)
	}
	b.Append("x", nil)
	if p, _ := b.Text().PropsAt(0); p.WS() != 7 {
		t.Errorf("expected appended text to carry ws=7, has %s", p)
	}
	s := New("ab", WSProps(1))
	b = s.Builder()
	b.Replace(1, 1, "", WSProps(2))
	if !b.Text().Equal(s) {
		t.Errorf("zero-width replace in non-empty text should be a no-op, have %s", b.Text().Dump())
	}
}

func TestReplaceOutOfRange(t *testing.T) {
	b := New("abc", nil).Builder()
	for _, r := range [][2]int{{2, 1}, {-1, 1}, {0, 4}} {
		if err := b.Replace(r[0], r[1], "x", nil); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("expected range error for [%d:%d], have %v", r[0], r[1], err)
		}
	}
	if err := b.Remove(1, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected range error for negative count, have %v", err)
	}
}

func TestInsertText(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := New("hello world", WSProps(1)).Builder()
	if err := b.Insert(6, New("big ", WSProps(2))); err != nil {
		t.Fatal(err)
	}
	txt := b.Text()
	if txt.String() != "hello big world" || txt.RunCount() != 3 {
		t.Fatalf("unexpected result %s", txt.Dump())
	}
	if err := b.Insert(0, helloWorld()); err != nil {
		t.Fatal(err)
	}
	txt = b.Text()
	if txt.String() != "Hello World!hello big world" || txt.RunCount() != 5 {
		t.Errorf("unexpected result %s", txt.Dump())
	}
	checkPartition(t, txt)
}

func TestRemoveAll(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := New("hello", WSProps(4)).Builder()
	if err := b.Remove(0, 5); err != nil {
		t.Fatal(err)
	}
	txt := b.Text()
	if txt.Len() != 0 || txt.RunCount() != 1 {
		t.Fatalf("expected empty text with a single run, have %s", txt.Dump())
	}
	if p, _ := txt.RunProps(0); p.WS() != 4 {
		t.Errorf("empty text should keep properties, has %s", p)
	}
}

func TestSetProperties(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := New("hello world", WSProps(1)).Builder()
	if err := b.SetIntProp(0, 5, PropBold, 0, 1); err != nil {
		t.Fatal(err)
	}
	txt := b.Text()
	if txt.RunCount() != 2 {
		t.Fatalf("expected 2 runs, have %s", txt.Dump())
	}
	p0, _ := txt.PropsAt(0)
	p6, _ := txt.PropsAt(6)
	if bold, _, ok := p0.Int(PropBold); !ok || bold != 1 || p0.WS() != 1 {
		t.Errorf("expected bold ws=1 at 0, have %s", p0)
	}
	if _, _, ok := p6.Int(PropBold); ok || p6.WS() != 1 {
		t.Errorf("expected non-bold ws=1 at 6, have %s", p6)
	}
	b.SetStrProp(0, 11, PropNamedStyle, "Emphasis")
	if txt := b.Text(); txt.RunCount() != 2 {
		t.Errorf("expected style to keep 2 runs, have %s", txt.Dump())
	}
	b.SetProps(0, 11, WSProps(3))
	txt = b.Text()
	if txt.RunCount() != 1 || txt.String() != "hello world" {
		t.Errorf("expected a single run, have %s", txt.Dump())
	}
}

func ExampleBuilder() {
	b := New("helloworld", WSProps(1)).Builder()
	b.Replace(5, 5, " ", nil)
	b.Replace(6, 11, "Welt", WSProps(2))
	fmt.Println(b.Text().Dump())
	// Output: [0:6]{1=1}"hello "[6:10]{1=2}"Welt"
}
