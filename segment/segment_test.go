package segment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textrun"
)

// styled builds a text from pairs of (style, text).
func styled(parts ...string) *textrun.Text {
	ib := textrun.NewIncBuilder()
	for i := 0; i+1 < len(parts); i += 2 {
		ib.ClearProps()
		ib.SetIntProp(textrun.PropWS, 0, 1)
		ib.SetStrProp(textrun.PropNamedStyle, parts[i])
		ib.Append(parts[i+1])
	}
	return ib.Text()
}

func TestSegmentBounds(t *testing.T) {
	txt := textrun.New("Hello World", nil)
	if _, err := New(txt, 3, 12); !errors.Is(err, textrun.ErrIndexOutOfRange) {
		t.Errorf("expected range error, have %v", err)
	}
	if _, err := New(txt, 4, 3); !errors.Is(err, textrun.ErrIndexOutOfRange) {
		t.Errorf("expected range error, have %v", err)
	}
	seg, err := New(txt, 6, 11)
	if err != nil {
		t.Fatal(err)
	}
	if seg.String() != "World" || seg.Len() != 5 || seg.Start() != 6 || seg.End() != 11 {
		t.Errorf("unexpected segment %q [%d:%d]", seg.String(), seg.Start(), seg.End())
	}
	sub, err := seg.Sub(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.String() != "or" || sub.Start() != 7 || sub.Base() != txt {
		t.Errorf("unexpected sub-segment %q at %d", sub.String(), sub.Start())
	}
	if s := sub.Text().String(); s != "or" {
		t.Errorf("expected structured text 'or', have %q", s)
	}
}

func TestWords(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	txt := styled("", "  Hello ", "Strong", "big", "", " World! ")
	words := Whole(txt).Words(nil)
	var have []string
	for words.Next() {
		have = append(have, words.Word().String())
	}
	expected := []string{"Hello", "big", "World!"}
	if fmt.Sprint(have) != fmt.Sprint(expected) {
		t.Errorf("expected words %v, have %v", expected, have)
	}
	if words.Next() || words.Word() != nil {
		t.Error("exhausted scanner should stay exhausted")
	}
	words = Whole(txt).Words(DefaultClassifier())
	words.Next()
	words.Next()
	if style := words.Word().Props().NamedStyle(); style != "Strong" {
		t.Errorf("expected second word to be styled 'Strong', is %q", style)
	}
}

func TestWordsAreClippedToSegment(t *testing.T) {
	txt := textrun.New("Hello big World", nil)
	seg, _ := New(txt, 2, 12)
	words := seg.Words(nil)
	var have []string
	for words.Next() {
		w := words.Word()
		have = append(have, fmt.Sprintf("%s@%d", w.String(), w.Start()))
	}
	if fmt.Sprint(have) != "[llo@2 big@6 Wo@10]" {
		t.Errorf("unexpected words %v", have)
	}
	empty, _ := New(txt, 5, 6)
	if empty.Words(nil).Next() {
		t.Error("expected no words in a segment of white space")
	}
}

func TestLastWord(t *testing.T) {
	w, ok := Whole(textrun.New("abc def  ", nil)).LastWord(nil)
	if !ok || w.String() != "def" || w.Start() != 4 {
		t.Errorf("expected last word 'def' at 4, have %v", w)
	}
	if _, ok := Whole(textrun.New(" \t ", nil)).LastWord(nil); ok {
		t.Error("expected no last word in white space")
	}
	if _, ok := Whole(textrun.Empty(nil)).LastWord(nil); ok {
		t.Error("expected no last word in empty text")
	}
}

func TestRunParts(t *testing.T) {
	txt := styled("a", "Hello ", "b", "World", "a", "!")
	seg, _ := New(txt, 3, 8)
	var have []string
	for p := range seg.RunParts() {
		have = append(have, fmt.Sprintf("%s:%q", p.Props().NamedStyle(), p.String()))
	}
	if fmt.Sprint(have) != `[a:"lo " b:"Wo"]` {
		t.Errorf("unexpected run parts %v", have)
	}
	empty, _ := New(txt, 6, 6)
	for p := range empty.RunParts() {
		t.Errorf("expected no run parts for empty segment, have %q", p.String())
	}
}

func TestFindWordBoundary(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	plain := textrun.New("hello world", nil)
	punct := textrun.New("end. Next", nil)
	notes := styled("", "see", "Footnote", "12", "", " more")
	glued := styled("", "word", "Footnote", "12")
	special := []string{"Footnote"}
	for i, c := range []struct {
		txt              *textrun.Text
		offset, boundary int
	}{
		{plain, 0, 0},
		{plain, 11, 11},
		{plain, 2, 0},
		{plain, 5, 6},
		{plain, 8, 6},
		{punct, 3, 5},
		{punct, 2, 0},
		{notes, 3, 3}, // start of special run
		{notes, 5, 5}, // end of special run
		{notes, 4, 5}, // inside special run
		{notes, 2, 0},
		{notes, 7, 6},
		{glued, 2, 0},
	} {
		b, err := FindWordBoundary(c.txt, c.offset, special, nil)
		if err != nil {
			t.Fatal(err)
		}
		if b != c.boundary {
			t.Errorf("test %d: expected boundary %d for offset %d in %q, have %d",
				i, c.boundary, c.offset, c.txt.String(), b)
		}
	}
	if _, err := FindWordBoundary(plain, 12, special, nil); !errors.Is(err, textrun.ErrIndexOutOfRange) {
		t.Errorf("expected range error, have %v", err)
	}
	if _, err := FindWordBoundary(plain, -1, nil, nil); !errors.Is(err, textrun.ErrIndexOutOfRange) {
		t.Errorf("expected range error, have %v", err)
	}
}

func ExampleSegment_Words() {
	txt := textrun.New("The quick  brown fox", nil)
	words := Whole(txt).Words(nil)
	for words.Next() {
		w := words.Word()
		fmt.Printf("[%d:%d]%s ", w.Start(), w.End(), w)
	}
	// Output: [0:3]The [4:9]quick [11:16]brown [17:20]fox
}
