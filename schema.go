package treewire

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ScalarKind enumerates the scalar content forms of the wire format.
type ScalarKind int

const (
	ScalarBool ScalarKind = iota
	ScalarInt
	ScalarFloat
	ScalarString
	ScalarBytes
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarBool:
		return "bool"
	case ScalarInt:
		return "int"
	case ScalarFloat:
		return "float"
	case ScalarString:
		return "string"
	case ScalarBytes:
		return "bytes"
	}
	return "scalar(" + strconv.Itoa(int(k)) + ")"
}

// Type describes a property's content. It is a closed sum; decode and encode
// each dispatch over all variants in a single switch.
type Type interface{ isType() }

// ScalarType is boolean, integer, float, string or byte-sequence content.
type ScalarType struct{ Kind ScalarKind }

// EnumType is an enumeration literal, carried on the wire as its wire string.
type EnumType struct{ Enum *Enum }

// RecordType is a single concrete class serialized inline as a property
// sequence, without a wrapper element for the class's own wire name.
type RecordType struct{ Class *Class }

// PolymorphicType is one of an interface's implementers, dispatched by the
// child element's name.
type PolymorphicType struct{ Interface *Interface }

// ListType is a homogeneous ordered sequence. Item is always a RecordType or
// PolymorphicType; the schema disallows lists of scalars and enums.
type ListType struct{ Item Type }

func (ScalarType) isType()      {}
func (EnumType) isType()        {}
func (RecordType) isType()      {}
func (PolymorphicType) isType() {}
func (ListType) isType()        {}

// TypeString renders a type descriptor in the compact form used by manifests
// and diagnostics: bool, int, float, string, bytes, enum:NAME, record:NAME,
// poly:NAME, list:ITEM.
func TypeString(t Type) string {
	switch tt := t.(type) {
	case ScalarType:
		return tt.Kind.String()
	case EnumType:
		return "enum:" + tt.Enum.name
	case RecordType:
		return "record:" + tt.Class.name
	case PolymorphicType:
		return "poly:" + tt.Interface.name
	case ListType:
		return "list:" + TypeString(tt.Item)
	}
	panic(fmt.Sprintf("treewire: unknown type descriptor %T", t))
}

// Property describes one property of a class: its wire element name, content
// type and optionality.
type Property struct {
	name     string
	typ      Type
	optional bool
}

func (p Property) Name() string   { return p.name }
func (p Property) Type() Type     { return p.typ }
func (p Property) Optional() bool { return p.optional }

// Class describes a modeled class: its wire element name and its properties
// in declaration order. Abstract classes carry no own element decoding and
// are reached only through an Interface.
type Class struct {
	name     string
	abstract bool
	props    []Property
	byName   map[string]int
}

func (c *Class) Name() string   { return c.name }
func (c *Class) Abstract() bool { return c.abstract }

// Properties returns the properties in declaration order.
func (c *Class) Properties() []Property {
	out := make([]Property, len(c.props))
	copy(out, c.props)
	return out
}

// Property looks a property up by its wire name.
func (c *Class) Property(name string) (Property, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return Property{}, false
	}
	return c.props[idx], true
}

// Interface describes an abstract contract and its concrete implementers.
// The wire-name dispatch table is built once at schema construction.
type Interface struct {
	name   string
	impls  []*Class
	byWire map[string]*Class
}

func (i *Interface) Name() string { return i.name }

// Implementers returns the concrete implementers in declaration order.
func (i *Interface) Implementers() []*Class {
	out := make([]*Class, len(i.impls))
	copy(out, i.impls)
	return out
}

// ByWireName resolves an element name to the implementer it selects.
func (i *Interface) ByWireName(name string) (*Class, bool) {
	c, ok := i.byWire[name]
	return c, ok
}

// EnumLiteral pairs an in-memory literal name with its wire string.
type EnumLiteral struct {
	Literal string
	Wire    string
}

// Enum describes an enumeration: an ordered literal/wire-string bijection.
type Enum struct {
	name     string
	literals []EnumLiteral
	wireOf   map[string]string
	litOf    map[string]string
}

func (e *Enum) Name() string { return e.name }

// Literals returns the literal/wire pairs in declaration order.
func (e *Enum) Literals() []EnumLiteral {
	out := make([]EnumLiteral, len(e.literals))
	copy(out, e.literals)
	return out
}

// WireOf resolves a literal name to its wire string.
func (e *Enum) WireOf(literal string) (string, bool) {
	w, ok := e.wireOf[literal]
	return w, ok
}

// LiteralOf resolves a wire string to its literal name.
func (e *Enum) LiteralOf(wire string) (string, bool) {
	l, ok := e.litOf[wire]
	return l, ok
}

// Schema is the resolved, immutable object model: every descriptor the codec
// dispatches over, constructed once by NewSchema and safe for concurrent use.
type Schema struct {
	classes []*Class
	ifaces  []*Interface
	enums   []*Enum

	classByName map[string]*Class
	ifaceByName map[string]*Interface
	enumByName  map[string]*Enum
}

// Classes returns all classes in declaration order.
func (s *Schema) Classes() []*Class {
	out := make([]*Class, len(s.classes))
	copy(out, s.classes)
	return out
}

// Interfaces returns all interfaces in declaration order.
func (s *Schema) Interfaces() []*Interface {
	out := make([]*Interface, len(s.ifaces))
	copy(out, s.ifaces)
	return out
}

// Enums returns all enumerations in declaration order.
func (s *Schema) Enums() []*Enum {
	out := make([]*Enum, len(s.enums))
	copy(out, s.enums)
	return out
}

// Class looks a class up by wire name.
func (s *Schema) Class(name string) (*Class, bool) {
	c, ok := s.classByName[name]
	return c, ok
}

// Interface looks an interface up by name.
func (s *Schema) Interface(name string) (*Interface, bool) {
	i, ok := s.ifaceByName[name]
	return i, ok
}

// Enum looks an enumeration up by name.
func (s *Schema) Enum(name string) (*Enum, bool) {
	e, ok := s.enumByName[name]
	return e, ok
}

// Fingerprint returns a stable identity for the schema: an xxhash digest over
// a canonical rendering of every descriptor. The order in which top-level
// entities were declared does not affect it; property and literal order does.
func (s *Schema) Fingerprint() uint64 {
	d := xxhash.New()

	names := make([]string, 0, len(s.classes))
	for _, c := range s.classes {
		names = append(names, c.name)
	}
	sort.Strings(names)
	for _, n := range names {
		c := s.classByName[n]
		io.WriteString(d, "class ")
		io.WriteString(d, c.name)
		if c.abstract {
			io.WriteString(d, " abstract")
		}
		io.WriteString(d, "\n")
		for _, p := range c.props {
			io.WriteString(d, "  ")
			io.WriteString(d, p.name)
			io.WriteString(d, " ")
			io.WriteString(d, TypeString(p.typ))
			if p.optional {
				io.WriteString(d, " optional")
			}
			io.WriteString(d, "\n")
		}
	}

	names = names[:0]
	for _, i := range s.ifaces {
		names = append(names, i.name)
	}
	sort.Strings(names)
	for _, n := range names {
		i := s.ifaceByName[n]
		io.WriteString(d, "interface ")
		io.WriteString(d, i.name)
		io.WriteString(d, "\n")
		for _, c := range i.impls {
			io.WriteString(d, "  ")
			io.WriteString(d, c.name)
			io.WriteString(d, "\n")
		}
	}

	names = names[:0]
	for _, e := range s.enums {
		names = append(names, e.name)
	}
	sort.Strings(names)
	for _, n := range names {
		e := s.enumByName[n]
		io.WriteString(d, "enum ")
		io.WriteString(d, e.name)
		io.WriteString(d, "\n")
		for _, l := range e.literals {
			io.WriteString(d, "  ")
			io.WriteString(d, l.Literal)
			io.WriteString(d, " ")
			io.WriteString(d, l.Wire)
			io.WriteString(d, "\n")
		}
	}

	return d.Sum64()
}
