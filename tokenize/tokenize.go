/*
Package tokenize splits text into word tokens for full-text indexing.

Tokenizers are parameterized by a writing system id, as the notion of a word
depends on the language: most scripts separate words by spaces, while
Chinese, Japanese or Thai do not.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tokenize

import (
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textrun/wsys"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// tracer traces to the core tracer, with field pkg=tokenize.
func tracer() tracing.Trace {
	return gtrace.CoreTracer.P("pkg", "tokenize")
}

// Tokenizer splits text of writing system ws into word tokens.
type Tokenizer interface {
	Split(ws int, text string) []string
}

// Words is a tokenizer following the word boundaries of UAX #29. Text is
// normalized to NFC before splitting, and segments without letters, marks or
// digits (white space, punctuation) are dropped.
//
// If a registry is given, words of East Asian writing systems are further
// split into single grapheme clusters, except for words consisting of
// Latin letters and digits only.
type Words struct {
	Registry *wsys.Registry
}

// Split implements Tokenizer.
func (w Words) Split(ws int, text string) []string {
	eastAsian := false
	if w.Registry != nil {
		if sys, ok := w.Registry.Lookup(ws); ok {
			eastAsian = sys.IsEastAsian()
		}
	}
	var tokens []string
	rest, state := norm.NFC.String(text), -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if !isWord(word) {
			continue
		}
		if eastAsian && !isLatin(word) {
			tokens = appendClusters(tokens, word)
			continue
		}
		tokens = append(tokens, word)
	}
	tracer().Debugf("tokenize: %q -> %q", text, tokens)
	return tokens
}

func appendClusters(tokens []string, word string) []string {
	state := -1
	for len(word) > 0 {
		var cluster string
		cluster, word, _, state = uniseg.FirstGraphemeClusterInString(word, state)
		if isWord(cluster) {
			tokens = append(tokens, cluster)
		}
	}
	return tokens
}

func isWord(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.In(r, unicode.L, unicode.M, unicode.N)
	}) >= 0
}

func isLatin(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.In(r, unicode.Latin, unicode.Nd, unicode.M)
	}) < 0
}

// Whitespace is a tokenizer splitting text at white space, ignoring the
// writing system.
type Whitespace struct{}

// Split implements Tokenizer.
func (Whitespace) Split(_ int, text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}
