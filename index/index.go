/*
Package index implements a search index over structured texts.

An Index maps text to items of a client-defined type. Texts are turned into
sort keys of their writing system (see package sortkey), so searching
respects the collation rules of the language: case and accents are ignored,
letters are compared the way a dictionary of the language would.

An index holds one ordered key map for every combination of an index id and
a writing system id. Maps are created on first use; searching a map which
has never been added to yields no results.

Modes

Exact: a text matches if it is equal to the query text.

Prefix: a text matches if it starts with the query text.

FullText: texts are split into words. A query matches if all of its words
match a word of the text, where the last word of the query may match as a
prefix. The order of the words does not matter.

Concurrency

An Index is not safe for concurrent use. Clients have to synchronize
access, e.g. with one lock per index.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package index

import (
	"fmt"
	"iter"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textrun"
	"github.com/npillmayer/textrun/sortkey"
	"github.com/npillmayer/textrun/tokenize"
)

// tracer traces to the core tracer, with field pkg=index.
func tracer() tracing.Trace {
	return gtrace.CoreTracer.P("pkg", "index")
}

// Mode is the matching mode of an index.
type Mode int8

// Matching modes
const (
	Exact Mode = iota
	Prefix
	FullText
)

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	case FullText:
		return "fulltext"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{Exact, Prefix, FullText} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return Exact, fmt.Errorf("index mode %q: %w", s, textrun.ErrInvalidArgument)
}

type indexKey struct {
	id, ws int
}

// Index maps texts to items of type T.
type Index[T comparable] struct {
	mode    Mode
	coll    sortkey.Collator
	tok     tokenize.Tokenizer
	indices map[indexKey]*keyIndex[T]
	metrics *Metrics
}

// Option configures an Index.
type Option func(*options)

type options struct {
	metrics *Metrics
}

// WithMetrics makes an index report to m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New creates an index for mode. Sort keys are computed by coll. For
// FullText indices texts are split into words by tok; if tok is nil,
// tokenize.Words is used.
func New[T comparable](mode Mode, coll sortkey.Collator, tok tokenize.Tokenizer, opts ...Option) *Index[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if tok == nil {
		tok = tokenize.Words{}
	}
	return &Index[T]{
		mode:    mode,
		coll:    coll,
		tok:     tok,
		indices: make(map[indexKey]*keyIndex[T]),
		metrics: o.metrics,
	}
}

// Mode returns the matching mode of idx.
func (idx *Index[T]) Mode() Mode {
	return idx.mode
}

// Len returns the number of entries for index id and writing system ws.
// For FullText indices, every word of a text is an entry.
func (idx *Index[T]) Len(id, ws int) int {
	if resolved, err := idx.coll.WritingSystem(ws); err == nil {
		ws = resolved
	}
	if ki, ok := idx.indices[indexKey{id, ws}]; ok {
		return ki.count
	}
	return 0
}

// Clear drops all entries of all indices.
func (idx *Index[T]) Clear() {
	idx.indices = make(map[indexKey]*keyIndex[T])
}

// AddString adds item for text of writing system ws to index id.
// Texts consisting of white space only are not added. Writing system 0
// stands for the default writing system of the collator.
func (idx *Index[T]) AddString(item T, id, ws int, text string) error {
	p, err := idx.prepare(id, ws, text)
	if err != nil {
		return err
	}
	idx.insert(item, p)
	return nil
}

// Add adds item for a structured text to index id. Text is split into
// spans of a common writing system and each span is added separately.
// If the sort key for any of the spans cannot be computed, nothing is
// added.
func (idx *Index[T]) Add(item T, id int, text *textrun.Text) error {
	var prepared []pending
	for _, sp := range spans(text) {
		p, err := idx.prepare(id, sp.ws, sp.text)
		if err != nil {
			return err
		}
		prepared = append(prepared, p)
	}
	for _, p := range prepared {
		idx.insert(item, p)
	}
	return nil
}

// pending holds the sort keys of a text, ready for insertion.
type pending struct {
	ik   indexKey
	keys [][]byte
}

// prepare computes the sort keys for text without touching the index.
func (idx *Index[T]) prepare(id, ws int, text string) (pending, error) {
	if strings.TrimSpace(text) == "" {
		return pending{}, nil
	}
	resolved, err := idx.coll.WritingSystem(ws)
	if err != nil {
		tracer().Errorf("index: cannot add %q: %v", text, err)
		return pending{}, fmt.Errorf("adding to index %d: %w", id, err)
	}
	terms := []string{text}
	if idx.mode == FullText {
		terms = idx.tok.Split(resolved, text)
	}
	p := pending{ik: indexKey{id, resolved}, keys: make([][]byte, 0, len(terms))}
	for _, term := range terms {
		key, err := idx.coll.SortKey(resolved, term)
		if err != nil {
			tracer().Errorf("index: cannot add %q: %v", term, err)
			return pending{}, fmt.Errorf("adding to index %d: %w", id, err)
		}
		p.keys = append(p.keys, key)
	}
	return p, nil
}

func (idx *Index[T]) insert(item T, p pending) {
	if len(p.keys) == 0 {
		return
	}
	ki, ok := idx.indices[p.ik]
	if !ok {
		ki = newKeyIndex[T]()
		idx.indices[p.ik] = ki
	}
	for _, key := range p.keys {
		if ki.add(key, item) {
			idx.metrics.added(idx.mode)
		}
	}
	tracer().Debugf("index: added %v for %d terms to index %d/ws%d", item, len(p.keys), p.ik.id, p.ik.ws)
}

// SearchString finds the items of index id matching text of writing system
// ws. Empty queries, queries consisting of white space only, and queries
// for indices which have never been added to, yield no items.
func (idx *Index[T]) SearchString(id, ws int, text string) (iter.Seq[T], error) {
	result, err := idx.search(id, ws, text)
	idx.metrics.searched(idx.mode, sizeOf(result), err)
	if err != nil {
		return empty[T](), err
	}
	return items[T](result), nil
}

// Search finds the items of index id matching a structured text. The
// query is split into spans of a common writing system; an item matches
// if it matches all the spans.
func (idx *Index[T]) Search(id int, text *textrun.Text) (iter.Seq[T], error) {
	var result *linkedhashset.Set
	for _, sp := range spans(text) {
		if strings.TrimSpace(sp.text) == "" {
			continue
		}
		r, err := idx.search(id, sp.ws, sp.text)
		if err != nil {
			idx.metrics.searched(idx.mode, 0, err)
			return empty[T](), err
		}
		result = intersect(result, r)
		if result.Empty() {
			break
		}
	}
	idx.metrics.searched(idx.mode, sizeOf(result), nil)
	return items[T](result), nil
}

func (idx *Index[T]) search(id, ws int, text string) (*linkedhashset.Set, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	ws, err := idx.coll.WritingSystem(ws)
	if err != nil {
		tracer().Debugf("index: %v", err)
		return nil, nil
	}
	ki, ok := idx.indices[indexKey{id, ws}]
	if !ok {
		tracer().Debugf("index: no index %d/ws%d", id, ws)
		return nil, nil
	}
	if idx.mode != FullText {
		upper := sortkey.UpperBound
		if idx.mode == Prefix {
			upper = sortkey.UpperBoundLong
		}
		return idx.lookup(ki, ws, text, upper)
	}
	terms := idx.tok.Split(ws, text)
	var result *linkedhashset.Set
	for i, term := range terms {
		upper := sortkey.UpperBound
		if i == len(terms)-1 {
			upper = sortkey.UpperBoundLong
		}
		r, err := idx.lookup(ki, ws, term, upper)
		if err != nil {
			return nil, err
		}
		if result = intersect(result, r); result.Empty() {
			break
		}
	}
	return result, nil
}

// lookup collects the items for keys in the range of term.
func (idx *Index[T]) lookup(ki *keyIndex[T], ws int, term string, upper sortkey.BoundMode) (*linkedhashset.Set, error) {
	key, err := idx.coll.SortKey(ws, term)
	if err != nil {
		tracer().Errorf("index: cannot search for %q: %v", term, err)
		return nil, err
	}
	result := linkedhashset.New()
	lower := idx.coll.Bound(key, sortkey.LowerBound)
	if len(lower) == 0 { // ignorable characters only
		return result, nil
	}
	ki.scan(lower, idx.coll.Bound(key, upper), result)
	tracer().Debugf("index: %q (%s) matches %d items", term, upper, result.Size())
	return result, nil
}

// intersect intersects result with r. A nil result stands for "no
// restriction yet".
func intersect(result, r *linkedhashset.Set) *linkedhashset.Set {
	if r == nil {
		r = linkedhashset.New()
	}
	if result == nil {
		return r
	}
	both := linkedhashset.New()
	result.Each(func(_ int, v interface{}) {
		if r.Contains(v) {
			both.Add(v)
		}
	})
	return both
}

func sizeOf(s *linkedhashset.Set) int {
	if s == nil {
		return 0
	}
	return s.Size()
}

func items[T comparable](s *linkedhashset.Set) iter.Seq[T] {
	if s == nil {
		return empty[T]()
	}
	values := s.Values()
	return func(yield func(T) bool) {
		for _, v := range values {
			if !yield(v.(T)) {
				return
			}
		}
	}
}

func empty[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

// --- Spans ------------------------------------------------------------

type span struct {
	ws   int
	text string
}

// spans splits text into maximal ranges of a common writing system. A span
// may cross run boundaries.
func spans(text *textrun.Text) []span {
	if text == nil || text.Len() == 0 {
		return nil
	}
	var result []span
	start, ws := 0, -1
	for _, r := range text.Runs() {
		w := r.Props.WS()
		if w != ws && r.Start > start {
			s, _ := text.Slice(start, r.Start)
			result = append(result, span{ws: ws, text: s})
			start = r.Start
		}
		ws = w
	}
	s, _ := text.Slice(start, text.Len())
	return append(result, span{ws: ws, text: s})
}
