/*
Package textrun is about structured text, i.e. text divided into runs of
characters sharing a common set of properties.

Description

Applications working with multilingual text rarely get away with plain strings.
A paragraph may mix writing systems, some words may carry a named character
style, and a footnote marker may stand in for an embedded object. Package
textrun represents such text as an immutable value of type Text: a sequence of
Unicode code-points, partitioned into contiguous, non-overlapping runs. Every
run carries a property set (type Props), holding integer-valued and
string-valued properties such as the writing system, a style name or a
reference to an embedded object.

Texts are never modified in place. Clients construct and modify them with
builders:

  b := text.Builder()
  b.Replace(5, 5, " ", nil)   // inherit properties of the surrounding run
  t2 := b.Text()

Type Builder supports replacing arbitrary ranges, whereas type IncBuilder
supports appending only, which matches streaming construction where
properties are set once per element and text is appended afterwards:

  ib := textrun.NewIncBuilder()
  ib.SetIntProp(textrun.PropWS, 0, en)
  ib.Append("Hello ")
  ib.ClearProps()
  ib.SetIntProp(textrun.PropWS, 0, de)
  ib.Append("Welt")
  t := ib.Text()

Sub-packages build on top of type Text: package segment provides read-only
views onto parts of a text and word-level operations, package diff finds the
minimal edit between two texts, and package index maps collation sort keys
derived from (possibly multilingual) texts to application items.

Concurrency

Texts and property sets are immutable and may be shared freely between
goroutines. Builders are not safe for concurrent use; every construction
session is owned by a single goroutine.

BSD License

Copyright (c) 2017–22, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package textrun

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrIndexOutOfRange is returned for offsets or run indices outside their
// documented bounds.
// ErrInvalidArgument flags a caller bug, e.g. an attempt to overwrite the
// characters of an immutable text.
var (
	ErrIndexOutOfRange = errors.New("textrun: index out of range")
	ErrInvalidArgument = errors.New("textrun: invalid argument")
)
