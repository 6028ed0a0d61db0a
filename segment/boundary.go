package segment

import (
	"fmt"
	"slices"

	"github.com/npillmayer/textrun"
)

// FindWordBoundary snaps offset to a word boundary of t.
//
// Runs with a named style contained in special are treated as words of
// their own; the borders of such runs are always word boundaries. Offsets
// at the start or end of t are returned unchanged. Otherwise the offset is
// moved forward past separators and past punctuation trailing a word, or
// to the end of the special run it is located in. Unless this reaches the
// end of t, the offset is then moved backward to the start of the word it
// is located in.
//
// If cls is nil, the DefaultClassifier is used.
func FindWordBoundary(t *textrun.Text, offset int, special []string, cls Classifier) (int, error) {
	if offset < 0 || offset > t.Len() {
		return offset, fmt.Errorf("word boundary at %d in text of length %d: %w",
			offset, t.Len(), textrun.ErrIndexOutOfRange)
	}
	if offset == 0 || offset == t.Len() {
		return offset, nil
	}
	if cls == nil {
		cls = DefaultClassifier()
	}
	b := boundaryFinder{t: t, special: special}
	i, _ := t.RunAt(offset)
	start, _ := t.RunStart(i)
	if start == offset && (b.isSpecial(i) || b.isSpecial(i-1)) {
		return offset, nil
	}
	if b.isSpecial(i) { // inside a special run: skip to its end
		style := b.style(i)
		for i < t.RunCount() && b.style(i) == style {
			i++
		}
		end, _ := t.RunEnd(i - 1)
		tracer().Debugf("segment: boundary %d -> %d, end of special run", offset, end)
		return end, nil
	}
	rs := t.Runes()
	pos := offset
	for pos < len(rs) && !b.isSpecialAt(pos) {
		if cls.IsSeparator(rs[pos]) {
			pos++
		} else if cls.IsPunctuation(rs[pos]) && !cls.IsSeparator(rs[pos-1]) {
			pos++
		} else {
			break
		}
	}
	if pos < len(rs) {
		for pos > 0 && !cls.IsSeparator(rs[pos-1]) && !b.isSpecialAt(pos-1) {
			pos--
		}
	}
	tracer().Debugf("segment: boundary %d -> %d", offset, pos)
	return pos, nil
}

type boundaryFinder struct {
	t       *textrun.Text
	special []string
}

func (b boundaryFinder) style(run int) string {
	p, err := b.t.RunProps(run)
	if err != nil {
		return ""
	}
	return p.NamedStyle()
}

func (b boundaryFinder) isSpecial(run int) bool {
	if run < 0 || run >= b.t.RunCount() {
		return false
	}
	style := b.style(run)
	return style != "" && slices.Contains(b.special, style)
}

// isSpecialAt checks the run containing the character at offset.
func (b boundaryFinder) isSpecialAt(offset int) bool {
	i, err := b.t.RunAt(offset)
	return err == nil && b.isSpecial(i)
}
