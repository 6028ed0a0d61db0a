/*
Package sortkey computes binary sort keys for text, following the collation
rules of a writing system.

Sort keys are byte strings. Comparing the sort keys of two strings byte by
byte yields the same order as comparing the strings with the collation rules
of their writing system. Keys produced by this package are terminated by a
zero byte and never contain zero bytes otherwise, so they may be compared
like C strings (see Compare).

For searching, a key may be turned into bounds of a half-open range
[lower, upper). Bounds consider the primary collation strength only, i.e.
base letters, ignoring case and accents:

  key, _ := coll.SortKey(ws, "cat")
  lower := coll.Bound(key, sortkey.LowerBound)
  upper := coll.Bound(key, sortkey.UpperBound)     // "cat", "Cat", "CAT"
  prefix := coll.Bound(key, sortkey.UpperBoundLong) // "cat", "catalogue", …

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sortkey

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core tracer, with field pkg=sortkey.
func tracer() tracing.Trace {
	return gtrace.CoreTracer.P("pkg", "sortkey")
}
