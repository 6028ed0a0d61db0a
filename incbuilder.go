package textrun

import "slices"

// IncBuilder builds texts by appending only. Properties for appended text
// are set beforehand:
//
//	ib.ClearProps()
//	ib.SetIntProp(textrun.PropWS, 0, ws)
//	ib.SetStrProp(textrun.PropNamedStyle, "Emphasis")
//	ib.Append("some text")
//
// The current properties stay in effect for subsequent appends until they
// are cleared or changed. Consecutive appends with equal properties end up
// in a single run.
//
// An IncBuilder is not safe for concurrent use.
type IncBuilder struct {
	text   []rune
	runs   []run // may be empty as long as nothing has been appended
	shared bool  // text is shared with an immutable Text
	props  *PropsBuilder
}

// NewIncBuilder creates an empty incremental builder without current
// properties.
func NewIncBuilder() *IncBuilder {
	return &IncBuilder{props: NewPropsBuilder()}
}

// Len returns the number of code-points appended so far.
func (ib *IncBuilder) Len() int {
	return len(ib.text)
}

// ClearProps clears the current properties.
func (ib *IncBuilder) ClearProps() {
	ib.props.Clear()
}

// SetIntProp sets an integer property of the current properties.
func (ib *IncBuilder) SetIntProp(id PropID, variant, val int) {
	ib.props.SetInt(id, variant, val)
}

// SetStrProp sets a string property of the current properties.
// An empty value removes the property.
func (ib *IncBuilder) SetStrProp(id PropID, val string) {
	ib.props.SetStr(id, val)
}

// Props returns the current properties.
func (ib *IncBuilder) Props() *Props {
	return ib.props.Props()
}

// Append appends text, carrying the current properties.
func (ib *IncBuilder) Append(text string) {
	if text == "" {
		return
	}
	ib.appendRunes([]rune(text), ib.props.Props())
}

// AppendRune appends a single code-point, carrying the current properties.
func (ib *IncBuilder) AppendRune(r rune) {
	ib.appendRunes([]rune{r}, ib.props.Props())
}

// AppendText appends t with its own runs. The current properties remain
// unchanged.
func (ib *IncBuilder) AppendText(t *Text) {
	if t == nil || t.Len() == 0 {
		return
	}
	base := len(ib.text)
	ib.grow(t.text)
	for i, r := range t.runs {
		if i == 0 {
			ib.runs = joinRun(ib.runs, base+r.lim, r.props)
		} else {
			ib.runs = append(ib.runs, run{lim: base + r.lim, props: r.props})
		}
	}
}

func (ib *IncBuilder) appendRunes(rs []rune, props *Props) {
	ib.grow(rs)
	ib.runs = joinRun(ib.runs, len(ib.text), props)
}

func (ib *IncBuilder) grow(rs []rune) {
	if ib.shared {
		ib.text = slices.Clone(ib.text)
		ib.shared = false
	}
	ib.text = append(ib.text, rs...)
}

// Text returns an immutable snapshot of the text appended so far.
// If nothing has been appended, the result is an empty text carrying the
// current properties.
func (ib *IncBuilder) Text() *Text {
	if len(ib.text) == 0 {
		return Empty(ib.props.Props())
	}
	ib.shared = true
	return &Text{
		text: ib.text[:len(ib.text):len(ib.text)],
		runs: slices.Clone(ib.runs),
	}
}

// Clear drops all text appended so far and clears the current properties.
func (ib *IncBuilder) Clear() {
	ib.text, ib.runs, ib.shared = nil, nil, false
	ib.props.Clear()
}
