package segment

// WordScanner steps through the words of a segment.
//
// Successive calls to Next step through the words, which are then available
// through Word. A word is a maximal range of non-separator characters
// within the bounds of the segment. Scanning is lazy and cannot be
// restarted; create a new scanner with Segment.Words instead.
type WordScanner struct {
	seg  *Segment
	cls  Classifier
	pos  int // relative to seg
	word *RunPart
}

// Words creates a scanner for the words of seg. If cls is nil, the
// DefaultClassifier is used.
func (seg *Segment) Words(cls Classifier) *WordScanner {
	if cls == nil {
		cls = DefaultClassifier()
	}
	return &WordScanner{seg: seg, cls: cls}
}

// Next advances the scanner to the next word. It returns false when no
// more words are left.
func (ws *WordScanner) Next() bool {
	rs := ws.seg.Runes()
	for ws.pos < len(rs) && ws.cls.IsSeparator(rs[ws.pos]) {
		ws.pos++
	}
	if ws.pos == len(rs) {
		ws.word = nil
		return false
	}
	start := ws.pos
	for ws.pos < len(rs) && !ws.cls.IsSeparator(rs[ws.pos]) {
		ws.pos++
	}
	ws.word = newRunPart(ws.seg.base, ws.seg.start+start, ws.seg.start+ws.pos)
	tracer().Debugf("segment: word [%d:%d]", ws.word.start, ws.word.end)
	return true
}

// Word returns the word found by the most recent call to Next.
func (ws *WordScanner) Word() *RunPart {
	return ws.word
}

// LastWord scans seg backwards and returns its last word. If seg consists
// of separators only, LastWord returns false. If cls is nil, the
// DefaultClassifier is used.
func (seg *Segment) LastWord(cls Classifier) (*RunPart, bool) {
	if cls == nil {
		cls = DefaultClassifier()
	}
	rs := seg.Runes()
	end := len(rs)
	for end > 0 && cls.IsSeparator(rs[end-1]) {
		end--
	}
	if end == 0 {
		return nil, false
	}
	start := end
	for start > 0 && !cls.IsSeparator(rs[start-1]) {
		start--
	}
	return newRunPart(seg.base, seg.start+start, seg.start+end), true
}
