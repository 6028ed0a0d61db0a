package textrun

import (
	"fmt"
	"slices"
)

// Builder is a mutable staging area for constructing and modifying texts.
// All modifications are expressed in terms of Replace.
//
// Calling Text() hands out an immutable snapshot and does not invalidate the
// builder; clients may continue to modify it. Subsequent modifications never
// affect texts handed out earlier.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	text   []rune
	runs   []run
	shared bool // text is shared with an immutable Text and must be copied before writing
}

// NewBuilder creates a builder for an empty text.
// props are the properties of the empty text; nil means no properties.
func NewBuilder(props *Props) *Builder {
	return &Builder{
		runs: []run{{lim: 0, props: props.orEmpty()}},
	}
}

// Len returns the current number of code-points.
func (b *Builder) Len() int {
	return len(b.text)
}

// RunCount returns the current number of runs.
func (b *Builder) RunCount() int {
	return len(b.runs)
}

// String returns the current characters, without structure.
func (b *Builder) String() string {
	return string(b.text)
}

// Text returns an immutable snapshot of the text built so far.
func (b *Builder) Text() *Text {
	b.shared = true
	return &Text{
		text: b.text[:len(b.text):len(b.text)],
		runs: slices.Clone(b.runs),
	}
}

// Clear resets the builder to an empty text, keeping the properties of
// the first run.
func (b *Builder) Clear() {
	props := b.runs[0].props
	b.text, b.shared = nil, false
	b.runs = []run{{lim: 0, props: props}}
}

// Replace replaces the characters in range [min, lim) by text, carrying
// properties props.
//
// If props is nil, the inserted characters inherit the properties of the
// run containing offset min prior to the edit (or, if min is at the end of
// the text, of the last run). Runs fully covered by [min, lim) are dropped,
// runs partially covered are clipped. Inserted text is merged with a
// surviving neighbour run if their properties are equal.
//
// Replacing an empty range with an empty string does nothing, except for an
// empty text: then the properties of its single run are set to props.
func (b *Builder) Replace(min, lim int, text string, props *Props) error {
	if err := b.checkRange(min, lim); err != nil {
		return err
	}
	if props == nil {
		props = b.runs[b.runAt(min)].props
	}
	ins := []rune(text)
	b.replace(min, lim, ins, []run{{lim: len(ins), props: props}})
	return nil
}

// ReplaceText replaces the characters in range [min, lim) by t, carrying
// over the runs of t. If t is nil, the range is deleted.
func (b *Builder) ReplaceText(min, lim int, t *Text) error {
	if err := b.checkRange(min, lim); err != nil {
		return err
	}
	if t == nil {
		b.replace(min, lim, nil, []run{{lim: 0, props: b.runs[b.runAt(min)].props}})
		return nil
	}
	b.replace(min, lim, t.text, t.runs)
	return nil
}

// Insert inserts t at offset pos.
func (b *Builder) Insert(pos int, t *Text) error {
	return b.ReplaceText(pos, pos, t)
}

// Append appends text with properties props at the end.
// If props is nil, the properties of the last run are used.
func (b *Builder) Append(text string, props *Props) error {
	return b.Replace(len(b.text), len(b.text), text, props)
}

// AppendText appends t at the end.
func (b *Builder) AppendText(t *Text) error {
	return b.ReplaceText(len(b.text), len(b.text), t)
}

// Remove deletes n code-points, starting at offset min.
func (b *Builder) Remove(min, n int) error {
	if n < 0 {
		return fmt.Errorf("removing %d characters: %w", n, ErrIndexOutOfRange)
	}
	return b.ReplaceText(min, min+n, nil)
}

// SetProps sets the properties of all characters in range [min, lim) to
// props, leaving the characters unchanged.
func (b *Builder) SetProps(min, lim int, props *Props) error {
	if err := b.checkRange(min, lim); err != nil {
		return err
	}
	if min == lim {
		if len(b.text) == 0 {
			b.runs[0].props = props.orEmpty()
		}
		return nil
	}
	b.replace(min, lim, b.text[min:lim], []run{{lim: lim - min, props: props.orEmpty()}})
	return nil
}

// SetIntProp sets an integer property for all characters in range
// [min, lim), leaving other properties untouched.
func (b *Builder) SetIntProp(min, lim int, id PropID, variant, val int) error {
	return b.updateProps(min, lim, func(pb *PropsBuilder) {
		pb.SetInt(id, variant, val)
	})
}

// SetStrProp sets a string property for all characters in range
// [min, lim), leaving other properties untouched. An empty value removes
// the property.
func (b *Builder) SetStrProp(min, lim int, id PropID, val string) error {
	return b.updateProps(min, lim, func(pb *PropsBuilder) {
		pb.SetStr(id, val)
	})
}

func (b *Builder) updateProps(min, lim int, update func(*PropsBuilder)) error {
	if err := b.checkRange(min, lim); err != nil {
		return err
	}
	if min == lim {
		if len(b.text) == 0 {
			pb := b.runs[0].props.Builder()
			update(pb)
			b.runs[0].props = pb.Props()
		}
		return nil
	}
	var updated []run
	for i := b.runAt(min); i < len(b.runs) && b.runStart(i) < lim; i++ {
		end := b.runs[i].lim
		if end > lim {
			end = lim
		}
		pb := b.runs[i].props.Builder()
		update(pb)
		updated = joinRun(updated, end-min, pb.Props())
	}
	b.replace(min, lim, b.text[min:lim], updated)
	return nil
}

// --- Internals --------------------------------------------------------

func (b *Builder) checkRange(min, lim int) error {
	if min < 0 || min > lim || lim > len(b.text) {
		return fmt.Errorf("range [%d:%d] in builder of length %d: %w", min, lim, len(b.text), ErrIndexOutOfRange)
	}
	return nil
}

func (b *Builder) runStart(i int) int {
	if i == 0 {
		return 0
	}
	return b.runs[i-1].lim
}

// runAt finds the run containing offset; a run starting at offset is
// preferred over a run ending there.
func (b *Builder) runAt(offset int) int {
	i, _ := slices.BinarySearchFunc(b.runs, offset, func(r run, offset int) int {
		if r.lim > offset {
			return 1
		}
		return -1
	})
	if i == len(b.runs) {
		i--
	}
	return i
}

// replace is the work horse for all modifications. insRuns are the runs of
// ins, with limits relative to ins. Neighbouring runs are coalesced only at
// the borders of the replaced range.
func (b *Builder) replace(min, lim int, ins []rune, insRuns []run) {
	if min == lim && len(ins) == 0 {
		if len(b.text) == 0 {
			b.runs[0].props = insRuns[0].props
		}
		return
	}
	CT().Debugf("builder: replace [%d:%d] with %d runes in %d runs", min, lim, len(ins), len(insRuns))
	delta := len(ins) - (lim - min)
	out := make([]run, 0, len(b.runs)+len(insRuns)+1)
	k := 0
	for ; k < len(b.runs) && b.runs[k].lim < min; k++ {
		out = append(out, b.runs[k]) // verbatim
	}
	if k < len(b.runs) && b.runStart(k) < min {
		out = append(out, run{lim: min, props: b.runs[k].props}) // clipped at min
	}
	for i, r := range insRuns {
		if i == 0 {
			out = joinRun(out, min+r.lim, r.props)
		} else if r.lim > insRuns[i-1].lim {
			out = append(out, run{lim: min + r.lim, props: r.props})
		}
	}
	for ; k < len(b.runs) && b.runs[k].lim <= lim; k++ {
		// skip runs fully covered by [min, lim)
	}
	for j := k; j < len(b.runs); j++ {
		r := run{lim: b.runs[j].lim + delta, props: b.runs[j].props}
		if j == k {
			out = joinRun(out, r.lim, r.props)
		} else {
			out = append(out, r)
		}
	}
	if len(out) == 0 { // text became empty
		out = append(out, run{lim: 0, props: insRuns[0].props})
	}
	b.text = b.spliceText(min, lim, ins)
	b.runs = out
}

// joinRun appends a run with limit lim to runs, extending the last run if
// its properties are equal. Empty runs are dropped.
func joinRun(runs []run, lim int, props *Props) []run {
	last := 0
	if len(runs) > 0 {
		last = runs[len(runs)-1].lim
	}
	if lim <= last {
		return runs
	}
	if len(runs) > 0 && runs[len(runs)-1].props.Equal(props) {
		runs[len(runs)-1].lim = lim
		return runs
	}
	return append(runs, run{lim: lim, props: props})
}

func (b *Builder) spliceText(min, lim int, ins []rune) []rune {
	if b.shared {
		text := make([]rune, 0, len(b.text)-(lim-min)+len(ins))
		text = append(text, b.text[:min]...)
		text = append(text, ins...)
		text = append(text, b.text[lim:]...)
		b.shared = false
		return text
	}
	return slices.Replace(b.text, min, lim, ins...)
}
