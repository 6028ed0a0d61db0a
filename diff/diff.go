/*
Package diff finds the difference between two versions of a structured text.

The difference is described as a single edit: a range of characters
deleted from the old text at some offset, and a range of characters
inserted at the same offset. Characters and run properties both count:
re-styling a range of characters is a difference, too.

Compute is tuned for the edits of interactive text editing, where a
text usually changes in one place at a time.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package diff

import (
	"fmt"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textrun"
	"github.com/npillmayer/textrun/segment"
)

// tracer traces to the core tracer, with field pkg=diff.
func tracer() tracing.Trace {
	return gtrace.CoreTracer.P("pkg", "diff")
}

// Edit describes how to get from an old text to a new one: at Offset,
// Deleted characters of the old text are replaced by Inserted characters
// of the new text.
type Edit struct {
	Offset   int
	Inserted int
	Deleted  int
}

func (e Edit) String() string {
	return fmt.Sprintf("@%d(+%d,-%d)", e.Offset, e.Inserted, e.Deleted)
}

// Compute returns the edit transforming old into revised. It returns false
// if old and revised do not differ, neither in characters nor in properties.
// Texts with equal characters and properties, split into runs differently,
// do not differ. Two empty texts with different properties do, with an
// edit of zero width at offset 0.
//
// The edit is found by matching runs and characters from the start and
// from the end of both texts. If these matches overlap, the edit may be
// placed at more than one offset. Compute then prefers the offset next to
// the first difference, unless an earlier offset lands on the start of a
// word where the later one does not. Word starts are found with the
// default classifier of package segment.
func Compute(old, revised *textrun.Text) (Edit, bool) {
	return ComputeWith(old, revised, nil)
}

// ComputeWith is like Compute, with word starts determined by the
// separators of cls. If cls is nil, segment.DefaultClassifier is used.
func ComputeWith(old, revised *textrun.Text, cls segment.Classifier) (Edit, bool) {
	if cls == nil {
		cls = segment.DefaultClassifier()
	}
	first, ok := matchPrefix(old, revised)
	if ok {
		if old.RunCount() == revised.RunCount() {
			return Edit{}, false
		}
		e := Edit{Offset: first, Inserted: revised.Len() - first, Deleted: old.Len() - first}
		tracer().Debugf("diff: trailing runs differ, %v", e)
		return e, true
	}
	suffix := matchSuffix(old, revised)
	e := Edit{
		Offset:   first,
		Inserted: revised.Len() - first - suffix,
		Deleted:  old.Len() - first - suffix,
	}
	if e.Inserted < 0 || e.Deleted < 0 { // prefix and suffix overlap
		overlap := -min(e.Inserted, e.Deleted)
		e.Inserted += overlap
		e.Deleted += overlap
		rs := revised.Runes()
		if atWordStart(rs, first-overlap, cls) && !atWordStart(rs, first, cls) {
			e.Offset = first - overlap
		}
		tracer().Debugf("diff: prefix %d and suffix %d overlap by %d", first, suffix, overlap)
	}
	if e.Inserted == 0 && e.Deleted == 0 {
		if old.Len() == 0 && revised.Len() == 0 { // properties of empty texts differ
			tracer().Debugf("diff: empty texts with different properties")
			return Edit{}, true
		}
		return Edit{}, false // runs are split differently
	}
	tracer().Debugf("diff: %v", e)
	return e, true
}

// matchPrefix walks the runs of both texts in lock-step, as long as
// properties and characters are equal. It returns the offset of the first
// difference, or true if all the runs common to both texts match.
func matchPrefix(old, revised *textrun.Text) (int, bool) {
	n := min(old.RunCount(), revised.RunCount())
	end := 0
	for i := 0; i < n; i++ {
		ro, _ := old.Run(i)
		rn, _ := revised.Run(i)
		if !ro.Props.Equal(rn.Props) {
			return ro.Start, false
		}
		a, _ := old.RuneSlice(ro.Start, ro.End)
		b, _ := revised.RuneSlice(rn.Start, rn.End)
		k := commonPrefix(a, b)
		if k < len(a) || k < len(b) {
			return ro.Start + k, false
		}
		end = ro.End
	}
	return end, true
}

// matchSuffix walks the runs of both texts backwards, as long as properties
// and characters are equal. It returns the length of the common suffix.
func matchSuffix(old, revised *textrun.Text) int {
	suffix := 0
	for i, j := old.RunCount()-1, revised.RunCount()-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		ro, _ := old.Run(i)
		rn, _ := revised.Run(j)
		if !ro.Props.Equal(rn.Props) {
			break
		}
		a, _ := old.RuneSlice(ro.Start, ro.End)
		b, _ := revised.RuneSlice(rn.Start, rn.End)
		k := commonSuffix(a, b)
		suffix += k
		if k < len(a) || k < len(b) {
			break
		}
	}
	return suffix
}

func commonPrefix(a, b []rune) int {
	k := 0
	for k < len(a) && k < len(b) && a[k] == b[k] {
		k++
	}
	return k
}

func commonSuffix(a, b []rune) int {
	k := 0
	for k < len(a) && k < len(b) && a[len(a)-1-k] == b[len(b)-1-k] {
		k++
	}
	return k
}

func atWordStart(rs []rune, offset int, cls segment.Classifier) bool {
	return offset == 0 || cls.IsSeparator(rs[offset-1])
}
