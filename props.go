package textrun

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unique"
)

// PropID identifies a property. Integer-valued and string-valued properties
// live in separate name spaces, i.e. a property set may carry an integer
// property and a string property with the same ID.
type PropID int

// Well-known properties. Clients are free to define additional IDs starting
// at PropUser.
const (
	PropWS         PropID = iota + 1 // writing system (int)
	PropNamedStyle                   // character style name (string)
	PropObjData                      // embedded object reference, used with ORC runs (string)
	PropBold                         // (int)
	PropItalic                       // (int)
	PropFontSize                     // (int, variant is the unit)
	PropForeColor                    // (int)
	PropUser       PropID = 1000
)

// ORC is the object replacement character. A run consisting of a single ORC
// stands for an embedded object, the payload of which is referenced by the
// run's PropObjData property.
const ORC = '\uFFFC'

// IntProp is an integer-valued property, optionally tagged with a variant
// (e.g., the unit of a font size).
type IntProp struct {
	ID  PropID
	Var int
	Val int
}

// StrProp is a string-valued property.
type StrProp struct {
	ID  PropID
	Val string
}

// Props is an immutable set of properties, attached to runs of a Text.
// Identical property sets are shared between runs and texts.
//
// Two property sets are equal if their integer properties and their string
// properties are equal, respectively. Equality is checked in O(1), as every
// property set carries an interned canonical form of its content.
type Props struct {
	ints []IntProp // sorted by ID
	strs []StrProp // sorted by ID
	key  unique.Handle[string]
}

var emptyProps = newProps(nil, nil)

// EmptyProps returns the property set without any properties.
func EmptyProps() *Props {
	return emptyProps
}

// WSProps is a shortcut for a property set holding nothing but a writing
// system.
func WSProps(ws int) *Props {
	return NewPropsBuilder().SetInt(PropWS, 0, ws).Props()
}

func newProps(ints []IntProp, strs []StrProp) *Props {
	p := &Props{ints: ints, strs: strs}
	var sb strings.Builder
	for _, ip := range ints {
		sb.WriteByte('i')
		sb.WriteString(strconv.Itoa(int(ip.ID)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(ip.Var))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(ip.Val))
		sb.WriteByte(';')
	}
	for _, sp := range strs {
		sb.WriteByte('s')
		sb.WriteString(strconv.Itoa(int(sp.ID)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Quote(sp.Val))
		sb.WriteByte(';')
	}
	p.key = unique.Make(sb.String())
	return p
}

// nil property sets are treated as empty ones.
func (p *Props) orEmpty() *Props {
	if p == nil {
		return emptyProps
	}
	return p
}

// Equal reports whether p and other carry the same properties.
func (p *Props) Equal(other *Props) bool {
	if p == other {
		return true
	}
	return p.orEmpty().key == other.orEmpty().key
}

// Int returns the value and variant of an integer property.
func (p *Props) Int(id PropID) (val int, variant int, ok bool) {
	p = p.orEmpty()
	i, found := slices.BinarySearchFunc(p.ints, id, func(ip IntProp, id PropID) int {
		return int(ip.ID) - int(id)
	})
	if !found {
		return 0, 0, false
	}
	return p.ints[i].Val, p.ints[i].Var, true
}

// Str returns the value of a string property.
func (p *Props) Str(id PropID) (string, bool) {
	p = p.orEmpty()
	i, found := slices.BinarySearchFunc(p.strs, id, func(sp StrProp, id PropID) int {
		return int(sp.ID) - int(id)
	})
	if !found {
		return "", false
	}
	return p.strs[i].Val, true
}

// WS returns the writing system of p, or 0 if p does not carry one.
func (p *Props) WS() int {
	ws, _, _ := p.Int(PropWS)
	return ws
}

// NamedStyle returns the character style name of p, or "" if not set.
func (p *Props) NamedStyle() string {
	s, _ := p.Str(PropNamedStyle)
	return s
}

// IntCount is the number of integer properties.
func (p *Props) IntCount() int {
	return len(p.orEmpty().ints)
}

// StrCount is the number of string properties.
func (p *Props) StrCount() int {
	return len(p.orEmpty().strs)
}

// IntAt returns the i-th integer property, ordered by ID.
// It panics if i is out of range.
func (p *Props) IntAt(i int) IntProp {
	return p.orEmpty().ints[i]
}

// StrAt returns the i-th string property, ordered by ID.
// It panics if i is out of range.
func (p *Props) StrAt(i int) StrProp {
	return p.orEmpty().strs[i]
}

// Builder returns a PropsBuilder pre-filled with the properties of p.
func (p *Props) Builder() *PropsBuilder {
	p = p.orEmpty()
	return &PropsBuilder{
		ints:   slices.Clone(p.ints),
		strs:   slices.Clone(p.strs),
		frozen: p,
	}
}

func (p *Props) String() string {
	p = p.orEmpty()
	var sb strings.Builder
	sb.WriteByte('{')
	for i, ip := range p.ints {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if ip.Var != 0 {
			fmt.Fprintf(&sb, "%d=%d/%d", ip.ID, ip.Val, ip.Var)
		} else {
			fmt.Fprintf(&sb, "%d=%d", ip.ID, ip.Val)
		}
	}
	for i, sp := range p.strs {
		if i > 0 || len(p.ints) > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d=%q", sp.ID, sp.Val)
	}
	sb.WriteByte('}')
	return sb.String()
}

// --- Property set builder ---------------------------------------------

// PropsBuilder collects properties and freezes them into immutable
// property sets. The zero value is an empty builder, ready to use.
type PropsBuilder struct {
	ints   []IntProp
	strs   []StrProp
	frozen *Props // cached result of Props(), reset on every change
}

// NewPropsBuilder creates an empty property set builder.
func NewPropsBuilder() *PropsBuilder {
	return &PropsBuilder{}
}

// SetInt sets an integer property, replacing a previous value for the same ID.
func (pb *PropsBuilder) SetInt(id PropID, variant, val int) *PropsBuilder {
	pb.frozen = nil
	i, found := slices.BinarySearchFunc(pb.ints, id, func(ip IntProp, id PropID) int {
		return int(ip.ID) - int(id)
	})
	ip := IntProp{ID: id, Var: variant, Val: val}
	if found {
		pb.ints[i] = ip
	} else {
		pb.ints = slices.Insert(pb.ints, i, ip)
	}
	return pb
}

// SetStr sets a string property, replacing a previous value for the same ID.
// Setting a property to the empty string removes it.
func (pb *PropsBuilder) SetStr(id PropID, val string) *PropsBuilder {
	if val == "" {
		return pb.DelStr(id)
	}
	pb.frozen = nil
	i, found := slices.BinarySearchFunc(pb.strs, id, func(sp StrProp, id PropID) int {
		return int(sp.ID) - int(id)
	})
	sp := StrProp{ID: id, Val: val}
	if found {
		pb.strs[i] = sp
	} else {
		pb.strs = slices.Insert(pb.strs, i, sp)
	}
	return pb
}

// DelInt removes an integer property.
func (pb *PropsBuilder) DelInt(id PropID) *PropsBuilder {
	i, found := slices.BinarySearchFunc(pb.ints, id, func(ip IntProp, id PropID) int {
		return int(ip.ID) - int(id)
	})
	if found {
		pb.frozen = nil
		pb.ints = slices.Delete(pb.ints, i, i+1)
	}
	return pb
}

// DelStr removes a string property.
func (pb *PropsBuilder) DelStr(id PropID) *PropsBuilder {
	i, found := slices.BinarySearchFunc(pb.strs, id, func(sp StrProp, id PropID) int {
		return int(sp.ID) - int(id)
	})
	if found {
		pb.frozen = nil
		pb.strs = slices.Delete(pb.strs, i, i+1)
	}
	return pb
}

// Clear removes all properties.
func (pb *PropsBuilder) Clear() *PropsBuilder {
	pb.ints = pb.ints[:0]
	pb.strs = pb.strs[:0]
	pb.frozen = nil
	return pb
}

// Props returns an immutable property set with the properties collected so
// far. Consecutive calls without intermediate changes return the same
// property set.
func (pb *PropsBuilder) Props() *Props {
	if pb.frozen == nil {
		if len(pb.ints) == 0 && len(pb.strs) == 0 {
			pb.frozen = emptyProps
		} else {
			pb.frozen = newProps(slices.Clone(pb.ints), slices.Clone(pb.strs))
		}
	}
	return pb.frozen
}
