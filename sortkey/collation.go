package sortkey

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/textrun/wsys"
	"golang.org/x/text/collate"
)

// ErrUnknownWritingSystem is returned for writing system ids not known to
// the registry of a Collation.
var ErrUnknownWritingSystem = errors.New("unknown writing system")

// Collation is a Collator using the Unicode Collation Algorithm, tailored
// to the language of each writing system. Collators for writing systems
// are created on first use.
//
// A Collation is safe for concurrent use.
type Collation struct {
	registry *wsys.Registry
	options  []collate.Option
	mu       sync.Mutex
	entries  map[int]*entry
	buffers  *bufferPool
}

type entry struct {
	sync.Mutex // collate.Collator is not safe for concurrent use
	coll       *collate.Collator
}

// Option configures a Collation.
type Option func(*Collation)

// WithCollateOptions sets options for all collators, e.g. collate.Numeric.
func WithCollateOptions(opts ...collate.Option) Option {
	return func(c *Collation) {
		c.options = append(c.options, opts...)
	}
}

// NewCollation creates a collation for the writing systems of reg.
func NewCollation(reg *wsys.Registry, opts ...Option) *Collation {
	c := &Collation{
		registry: reg,
		entries:  make(map[int]*entry),
		buffers:  newBufferPool(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SortKey returns the zero terminated sort key for text in writing
// system ws.
func (c *Collation) SortKey(ws int, text string) ([]byte, error) {
	e, err := c.entry(ws)
	if err != nil {
		return nil, err
	}
	buf := c.buffers.borrow()
	defer c.buffers.release(buf)
	e.Lock()
	key := encode(e.coll.KeyFromString(buf, text))
	e.Unlock()
	return key, nil
}

// WritingSystem resolves ws with the registry of c. Id 0 resolves to the
// registry's default writing system.
func (c *Collation) WritingSystem(ws int) (int, error) {
	w, ok := c.registry.Lookup(ws)
	if !ok {
		return 0, fmt.Errorf("collation for writing system %d: %w", ws, ErrUnknownWritingSystem)
	}
	return w.ID, nil
}

// Bound derives a bound of mode from key, see package function Bound.
func (c *Collation) Bound(key []byte, mode BoundMode) []byte {
	return Bound(key, mode)
}

func (c *Collation) entry(ws int) (*entry, error) {
	w, ok := c.registry.Lookup(ws)
	if !ok {
		return nil, fmt.Errorf("collation for writing system %d: %w", ws, ErrUnknownWritingSystem)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[w.ID]; ok {
		return e, nil
	}
	tracer().Debugf("sortkey: creating collator for %s", w)
	e := &entry{coll: collate.New(w.Tag, c.options...)}
	c.entries[w.ID] = e
	return e, nil
}
