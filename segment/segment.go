package segment

import (
	"fmt"
	"iter"

	"github.com/npillmayer/textrun"
)

// Segment is a range [start, end) of a base text.
//
// The characters of a segment are cached on first access. A Segment is not
// safe for concurrent use, as the cache is filled lazily.
type Segment struct {
	base       *textrun.Text
	start, end int
	runes      []rune // cached characters, nil until first use
}

// New creates a segment for range [start, end) of base.
func New(base *textrun.Text, start, end int) (*Segment, error) {
	if base == nil {
		return nil, fmt.Errorf("segment of nil text: %w", textrun.ErrInvalidArgument)
	}
	if start < 0 || start > end || end > base.Len() {
		return nil, fmt.Errorf("segment [%d:%d] of text with length %d: %w",
			start, end, base.Len(), textrun.ErrIndexOutOfRange)
	}
	return &Segment{base: base, start: start, end: end}, nil
}

// Whole creates a segment spanning all of base.
func Whole(base *textrun.Text) *Segment {
	return &Segment{base: base, start: 0, end: base.Len()}
}

// Base returns the text seg is a range of.
func (seg *Segment) Base() *textrun.Text { return seg.base }

// Start returns the offset of the first character of seg in its base text.
func (seg *Segment) Start() int { return seg.start }

// End returns the offset one past the last character of seg.
func (seg *Segment) End() int { return seg.end }

// Len returns the number of code-points in seg.
func (seg *Segment) Len() int { return seg.end - seg.start }

// Runes returns the characters of seg. Clients must not modify the returned
// slice.
func (seg *Segment) Runes() []rune {
	if seg.runes == nil {
		seg.runes, _ = seg.base.RuneSlice(seg.start, seg.end)
		if seg.runes == nil {
			seg.runes = []rune{}
		}
	}
	return seg.runes
}

func (seg *Segment) String() string {
	return string(seg.Runes())
}

// Text returns the structured text of seg, i.e. a substring of the base
// text including run properties.
func (seg *Segment) Text() *textrun.Text {
	t, err := seg.base.Substring(seg.start, seg.end)
	if err != nil { // cannot happen, bounds are checked on creation
		panic(err)
	}
	return t
}

// Sub returns a segment for range [start, end) relative to seg.
func (seg *Segment) Sub(start, end int) (*Segment, error) {
	if start < 0 || start > end || end > seg.Len() {
		return nil, fmt.Errorf("sub-segment [%d:%d] of segment with length %d: %w",
			start, end, seg.Len(), textrun.ErrIndexOutOfRange)
	}
	return &Segment{base: seg.base, start: seg.start + start, end: seg.start + end}, nil
}

// RunParts iterates over the parts of seg clipped at run boundaries of the
// base text. An empty segment has no parts.
func (seg *Segment) RunParts() iter.Seq[*RunPart] {
	return func(yield func(*RunPart) bool) {
		if seg.start == seg.end {
			return
		}
		i, _ := seg.base.RunAt(seg.start)
		for ; i < seg.base.RunCount(); i++ {
			r, _ := seg.base.Run(i)
			if r.Start >= seg.end {
				return
			}
			part := &RunPart{
				Segment: Segment{base: seg.base, start: max(r.Start, seg.start), end: min(r.End, seg.end)},
				props:   r.Props,
			}
			if part.Len() == 0 {
				continue
			}
			if !yield(part) {
				return
			}
		}
	}
}

// --- Run parts --------------------------------------------------------

// RunPart is a segment together with the properties of the run it starts in.
type RunPart struct {
	Segment
	props *textrun.Props
}

func newRunPart(base *textrun.Text, start, end int) *RunPart {
	props, _ := base.PropsAt(start)
	return &RunPart{
		Segment: Segment{base: base, start: start, end: end},
		props:   props,
	}
}

// Props returns the properties of the run the part starts in.
func (p *RunPart) Props() *textrun.Props {
	return p.props
}
