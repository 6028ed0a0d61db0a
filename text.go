package textrun

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// run is the internal representation of a run: runs store their limit, i.e.
// the offset one past their last character. The start of a run is the limit
// of its predecessor.
type run struct {
	lim   int
	props *Props
}

// Run describes a run of a Text: the half-open range [Start, End) of
// characters sharing the property set Props.
type Run struct {
	Start, End int
	Props      *Props
}

// Len is the number of characters in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// Text is an immutable sequence of Unicode code-points, partitioned into
// runs of characters sharing a common property set.
//
// Offsets into a Text count code-points (runes), not bytes.
// The run lengths of a Text always sum up to the length of the text.
// Every Text has at least one run; the empty text consists of a single run
// of length 0, which carries the properties for text to be inserted.
//
// Equality of texts is structural: two texts are equal if their characters
// are equal and their runs are pairwise equal. Texts differing only in the
// way equal property sets are split into runs are not equal.
type Text struct {
	text []rune // never modified after creation; may be shared with other texts
	runs []run  // non-empty
}

// New creates a text consisting of a single run.
// If props is nil, the run will carry an empty property set.
func New(text string, props *Props) *Text {
	rs := []rune(text)
	return &Text{
		text: rs,
		runs: []run{{lim: len(rs), props: props.orEmpty()}},
	}
}

// Empty creates a text of length 0, carrying properties props.
func Empty(props *Props) *Text {
	return New("", props)
}

// Len returns the number of code-points of t.
func (t *Text) Len() int {
	return len(t.text)
}

// String returns the characters of t, without any structure.
func (t *Text) String() string {
	return string(t.text)
}

// RuneAt returns the code-point at offset i.
func (t *Text) RuneAt(i int) (rune, error) {
	if i < 0 || i >= len(t.text) {
		return 0, fmt.Errorf("rune at %d in text of length %d: %w", i, len(t.text), ErrIndexOutOfRange)
	}
	return t.text[i], nil
}

// Runes returns a copy of the code-points of t.
func (t *Text) Runes() []rune {
	return slices.Clone(t.text)
}

// Slice returns the characters of t in range [min, lim).
func (t *Text) Slice(min, lim int) (string, error) {
	if err := t.checkRange(min, lim); err != nil {
		return "", err
	}
	return string(t.text[min:lim]), nil
}

// RuneSlice returns a copy of the code-points of t in range [min, lim).
func (t *Text) RuneSlice(min, lim int) ([]rune, error) {
	if err := t.checkRange(min, lim); err != nil {
		return nil, err
	}
	return slices.Clone(t.text[min:lim]), nil
}

func (t *Text) checkRange(min, lim int) error {
	if min < 0 || min > lim || lim > len(t.text) {
		return fmt.Errorf("range [%d:%d] in text of length %d: %w", min, lim, len(t.text), ErrIndexOutOfRange)
	}
	return nil
}

// --- Runs -------------------------------------------------------------

// RunCount returns the number of runs of t. It is always at least 1.
func (t *Text) RunCount() int {
	return len(t.runs)
}

func (t *Text) checkRun(i int) error {
	if i < 0 || i >= len(t.runs) {
		return fmt.Errorf("run %d of %d: %w", i, len(t.runs), ErrIndexOutOfRange)
	}
	return nil
}

func (t *Text) runStart(i int) int {
	if i == 0 {
		return 0
	}
	return t.runs[i-1].lim
}

// RunStart returns the offset of the first character of run i.
func (t *Text) RunStart(i int) (int, error) {
	if err := t.checkRun(i); err != nil {
		return 0, err
	}
	return t.runStart(i), nil
}

// RunEnd returns the offset one past the last character of run i.
func (t *Text) RunEnd(i int) (int, error) {
	if err := t.checkRun(i); err != nil {
		return 0, err
	}
	return t.runs[i].lim, nil
}

// RunProps returns the property set of run i.
func (t *Text) RunProps(i int) (*Props, error) {
	if err := t.checkRun(i); err != nil {
		return nil, err
	}
	return t.runs[i].props, nil
}

// Run returns the bounds and properties of run i.
func (t *Text) Run(i int) (Run, error) {
	if err := t.checkRun(i); err != nil {
		return Run{}, err
	}
	return t.run(i), nil
}

func (t *Text) run(i int) Run {
	return Run{Start: t.runStart(i), End: t.runs[i].lim, Props: t.runs[i].props}
}

// RunText returns the characters of run i.
func (t *Text) RunText(i int) (string, error) {
	if err := t.checkRun(i); err != nil {
		return "", err
	}
	return string(t.text[t.runStart(i):t.runs[i].lim]), nil
}

// RunAt returns the index of the run containing the character at offset.
// For offset == t.Len() the last run is returned.
func (t *Text) RunAt(offset int) (int, error) {
	if offset < 0 || offset > len(t.text) {
		return 0, fmt.Errorf("run at %d in text of length %d: %w", offset, len(t.text), ErrIndexOutOfRange)
	}
	return t.runAt(offset), nil
}

// runAt finds the first run with a limit beyond offset.
func (t *Text) runAt(offset int) int {
	i := sort.Search(len(t.runs), func(i int) bool {
		return t.runs[i].lim > offset
	})
	if i == len(t.runs) {
		i--
	}
	return i
}

// PropsAt returns the properties of the character at offset.
// For offset == t.Len() the properties of the last run are returned.
func (t *Text) PropsAt(offset int) (*Props, error) {
	i, err := t.RunAt(offset)
	if err != nil {
		return nil, err
	}
	return t.runs[i].props, nil
}

// Runs iterates over the runs of t.
func (t *Text) Runs() iter.Seq2[int, Run] {
	return func(yield func(int, Run) bool) {
		for i := range t.runs {
			if !yield(i, t.run(i)) {
				return
			}
		}
	}
}

// --- Derived texts ----------------------------------------------------

// Substring returns a new text covering range [min, lim) of t.
//
// Runs at the borders of the range are clipped, runs inside the range are
// carried over verbatim, sharing their property sets. Run boundaries are
// never merged. The characters are shared with t, not copied.
func (t *Text) Substring(min, lim int) (*Text, error) {
	if err := t.checkRange(min, lim); err != nil {
		return nil, err
	}
	if min == 0 && lim == len(t.text) {
		return t, nil
	}
	i := t.runAt(min)
	if min == lim {
		return &Text{runs: []run{{lim: 0, props: t.runs[i].props}}}, nil
	}
	sub := &Text{text: t.text[min:lim:lim]}
	for ; i < len(t.runs) && t.runStart(i) < lim; i++ {
		end := t.runs[i].lim
		if end > lim {
			end = lim
		}
		sub.runs = append(sub.runs, run{lim: end - min, props: t.runs[i].props})
	}
	return sub, nil
}

// Builder returns a builder initialized with the content of t.
// The characters of t are not copied until the builder is modified.
func (t *Text) Builder() *Builder {
	return &Builder{
		text:   t.text,
		runs:   slices.Clone(t.runs),
		shared: true,
	}
}

// IncBuilder returns an incremental builder initialized with the content of t.
// Properties for appending are pre-set to the properties of the last run.
func (t *Text) IncBuilder() *IncBuilder {
	ib := &IncBuilder{
		props: t.runs[len(t.runs)-1].props.Builder(),
	}
	if len(t.text) > 0 {
		ib.text, ib.runs, ib.shared = t.text, slices.Clone(t.runs), true
	}
	return ib
}

// Equal reports whether t and other have equal characters and pairwise
// equal runs.
func (t *Text) Equal(other *Text) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if len(t.runs) != len(other.runs) || !slices.Equal(t.text, other.text) {
		return false
	}
	for i, r := range t.runs {
		if r.lim != other.runs[i].lim || !r.props.Equal(other.runs[i].props) {
			return false
		}
	}
	return true
}

// IsNormalizedNFC reports whether the characters of t are in Unicode
// normalization form C.
func (t *Text) IsNormalizedNFC() bool {
	return norm.NFC.IsNormalString(string(t.text))
}

// LockText hands out a copy of the characters of t. Clients may use it to
// hand the characters to code expecting a mutable buffer and must return it
// with UnlockText.
func (t *Text) LockText() []rune {
	return slices.Clone(t.text)
}

// UnlockText returns a buffer obtained with LockText. As texts are
// immutable, the buffer must not have been changed in the meantime;
// otherwise ErrInvalidArgument is returned.
func (t *Text) UnlockText(buf []rune) error {
	if !slices.Equal(buf, t.text) {
		return fmt.Errorf("unlocking text with modified characters: %w", ErrInvalidArgument)
	}
	return nil
}

// Dump returns a debugging representation of t, listing runs and their
// properties.
func (t *Text) Dump() string {
	var sb strings.Builder
	for i := range t.runs {
		r := t.run(i)
		fmt.Fprintf(&sb, "[%d:%d]%s%q", r.Start, r.End, r.Props, string(t.text[r.Start:r.End]))
	}
	return sb.String()
}
