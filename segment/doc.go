/*
Package segment provides views onto ranges of structured texts.

A Segment is a range [start, end) of a textrun.Text. Segments do not copy
the characters of their base text; the characters of a segment are
materialized lazily on first use and cached in the segment. A RunPart is a
segment which knows the properties of the run it starts in.

Typical Usage

Iterating over the words of a segment works similar to bufio.Scanner:

  seg := segment.Whole(txt)
  words := seg.Words(segment.DefaultClassifier())
  for words.Next() {
      w := words.Word()
      // do something with w.String() or w.Props()
  }

A word is a maximal range of non-separator characters. Deciding which
characters are separators is delegated to a Classifier.

FindWordBoundary helps editors snap an offset to a word boundary, treating
runs of "special" named styles (think footnote markers) as words of their
own.

____________________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package segment

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core tracer, with field pkg=segment.
func tracer() tracing.Trace {
	return gtrace.CoreTracer.P("pkg", "segment")
}
