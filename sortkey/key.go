package sortkey

import (
	"fmt"
	"slices"
)

// BoundMode selects the kind of bound computed from a sort key.
type BoundMode int8

const (
	// LowerBound is the smallest key of all strings equal to the key's string,
	// ignoring case and accents.
	LowerBound BoundMode = iota
	// UpperBound is just above the largest key of all strings equal to the
	// key's string, ignoring case and accents.
	UpperBound
	// UpperBoundLong is just above the largest key of all strings starting
	// with the key's string, ignoring case and accents.
	UpperBoundLong
)

func (m BoundMode) String() string {
	switch m {
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	case UpperBoundLong:
		return "upper-long"
	}
	return fmt.Sprintf("BoundMode(%d)", int8(m))
}

// Collator produces sort keys for text of a writing system.
//
// WritingSystem resolves a writing system id to the id keys are produced
// for; 0 stands for a default writing system. It fails with
// ErrUnknownWritingSystem for ids the collator cannot handle.
//
// Keys must be zero terminated and must not contain zero bytes otherwise.
// Bound derives range bounds from a key; an UpperBoundLong of nil stands
// for "above all keys".
type Collator interface {
	WritingSystem(ws int) (int, error)
	SortKey(ws int, text string) ([]byte, error)
	Bound(key []byte, mode BoundMode) []byte
}

// Compare compares two zero terminated keys. The end of a slice counts as
// a terminating zero. The result will be 0 if a == b, -1 if a < b, and +1
// if a > b.
func Compare(a, b []byte) int {
	for i := 0; ; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		case ca == 0:
			return 0
		}
	}
}

// Bound derives a bound of mode from a key produced by a Collation.
//
// Bounds are computed from the primary part of a key. An empty primary part
// (as for text consisting of ignorable characters only) results in an
// empty lower bound.
func Bound(key []byte, mode BoundMode) []byte {
	p := primary(decode(key))
	switch mode {
	case LowerBound:
		return escape(nil, p)
	case UpperBound:
		return escape(escape(nil, p), []byte{0, 1})
	case UpperBoundLong:
		return successor(escape(nil, p))
	}
	panic(fmt.Sprintf("sortkey: unknown bound mode %d", mode))
}

// escape appends raw to dst, replacing 0 by 1,1 and 1 by 1,2.
// Byte order of the escaped strings equals byte order of the raw strings.
func escape(dst, raw []byte) []byte {
	for _, b := range raw {
		switch b {
		case 0:
			dst = append(dst, 1, 1)
		case 1:
			dst = append(dst, 1, 2)
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

// encode turns a raw collation key into a zero terminated key.
func encode(raw []byte) []byte {
	return append(escape(make([]byte, 0, len(raw)+len(raw)/4+1), raw), 0)
}

// decode reverts encode.
func decode(key []byte) []byte {
	raw := make([]byte, 0, len(key))
	for i := 0; i < len(key) && key[i] != 0; i++ {
		if key[i] == 1 && i+1 < len(key) {
			i++
			raw = append(raw, key[i]-1)
			continue
		}
		raw = append(raw, key[i])
	}
	return raw
}

// primary extracts the primary weights of a raw collation key. Primary
// weights take up 2 bytes, or 3 bytes if the first byte has its high bit
// set. Weights of different levels are separated by 0,0.
func primary(raw []byte) []byte {
	i := 0
	for i+1 < len(raw) {
		n := 2
		if raw[i]&0x80 != 0 {
			n = 3
		} else if raw[i] == 0 && raw[i+1] == 0 {
			break
		}
		if i+n > len(raw) { // incomplete weight
			break
		}
		i += n
	}
	return raw[:i]
}

// successor returns the shortest string greater than all strings having
// b as a prefix, or nil if there is none.
func successor(b []byte) []byte {
	s := slices.Clone(b)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] < 0xff {
			s[i]++
			return s[:i+1]
		}
	}
	return nil
}
