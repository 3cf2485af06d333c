package treewire

import "fmt"

// SchemaDecl describes a resolved object model by name: the interchange form
// an external resolver hands over. NewSchema turns it into the immutable
// pointer graph the codec runs on. Name references allow recursive models
// (for example a class reachable through an interface it implements).
type SchemaDecl struct {
	Classes    []ClassDecl
	Interfaces []InterfaceDecl
	Enums      []EnumDecl
}

// ClassDecl declares one class. Name is the wire element name.
type ClassDecl struct {
	Name       string
	Abstract   bool
	Properties []PropertyDecl
}

// PropertyDecl declares one property. Name is the wire element name.
type PropertyDecl struct {
	Name     string
	Type     TypeRef
	Optional bool
}

// InterfaceDecl declares one interface and its concrete implementers by
// class name.
type InterfaceDecl struct {
	Name         string
	Implementers []string
}

// EnumDecl declares one enumeration and its ordered literal/wire pairs.
type EnumDecl struct {
	Name     string
	Literals []EnumLiteral
}

// TypeRef is the declaration-level counterpart of Type: a closed sum whose
// record, polymorphic and enum variants reference peers by name.
type TypeRef interface{ isTypeRef() }

// ScalarRef declares scalar content.
type ScalarRef struct{ Kind ScalarKind }

// EnumRef declares enum content by enumeration name.
type EnumRef struct{ Name string }

// RecordRef declares inline record content by concrete class name.
type RecordRef struct{ Name string }

// PolymorphicRef declares polymorphic content by interface name.
type PolymorphicRef struct{ Name string }

// ListRef declares list content; Item must declare record or polymorphic
// content.
type ListRef struct{ Item TypeRef }

func (ScalarRef) isTypeRef()      {}
func (EnumRef) isTypeRef()        {}
func (RecordRef) isTypeRef()      {}
func (PolymorphicRef) isTypeRef() {}
func (ListRef) isTypeRef()        {}

// NewSchema resolves a declaration into the immutable descriptor graph.
// Resolution runs in three passes (entity shells, interface dispatch tables,
// property types) so that cycles through interfaces and records resolve
// without forward-declaration ceremony. All structural invariants are
// validated here, once; the codec never re-checks them.
func NewSchema(decl SchemaDecl) (*Schema, error) {
	s := &Schema{
		classByName: make(map[string]*Class, len(decl.Classes)),
		ifaceByName: make(map[string]*Interface, len(decl.Interfaces)),
		enumByName:  make(map[string]*Enum, len(decl.Enums)),
	}

	for _, ed := range decl.Enums {
		if ed.Name == "" {
			return nil, fmt.Errorf("treewire: enum with empty name")
		}
		if _, dup := s.enumByName[ed.Name]; dup {
			return nil, fmt.Errorf("treewire: duplicate enum %q", ed.Name)
		}
		if len(ed.Literals) == 0 {
			return nil, fmt.Errorf("treewire: enum %q has no literals", ed.Name)
		}
		e := &Enum{
			name:     ed.Name,
			literals: make([]EnumLiteral, len(ed.Literals)),
			wireOf:   make(map[string]string, len(ed.Literals)),
			litOf:    make(map[string]string, len(ed.Literals)),
		}
		copy(e.literals, ed.Literals)
		for _, l := range e.literals {
			if l.Literal == "" || l.Wire == "" {
				return nil, fmt.Errorf("treewire: enum %q: empty literal or wire string", ed.Name)
			}
			if _, dup := e.wireOf[l.Literal]; dup {
				return nil, fmt.Errorf("treewire: enum %q: duplicate literal %q", ed.Name, l.Literal)
			}
			if _, dup := e.litOf[l.Wire]; dup {
				return nil, fmt.Errorf("treewire: enum %q: duplicate wire string %q", ed.Name, l.Wire)
			}
			e.wireOf[l.Literal] = l.Wire
			e.litOf[l.Wire] = l.Literal
		}
		s.enums = append(s.enums, e)
		s.enumByName[ed.Name] = e
	}

	for _, cd := range decl.Classes {
		if cd.Name == "" {
			return nil, fmt.Errorf("treewire: class with empty name")
		}
		if _, dup := s.classByName[cd.Name]; dup {
			return nil, fmt.Errorf("treewire: duplicate class %q", cd.Name)
		}
		c := &Class{name: cd.Name, abstract: cd.Abstract}
		s.classes = append(s.classes, c)
		s.classByName[cd.Name] = c
	}

	for _, id := range decl.Interfaces {
		if id.Name == "" {
			return nil, fmt.Errorf("treewire: interface with empty name")
		}
		if _, dup := s.ifaceByName[id.Name]; dup {
			return nil, fmt.Errorf("treewire: duplicate interface %q", id.Name)
		}
		if len(id.Implementers) == 0 {
			return nil, fmt.Errorf("treewire: interface %q has no implementers", id.Name)
		}
		i := &Interface{
			name:   id.Name,
			byWire: make(map[string]*Class, len(id.Implementers)),
		}
		for _, cn := range id.Implementers {
			c, ok := s.classByName[cn]
			if !ok {
				return nil, fmt.Errorf("treewire: interface %q: unknown implementer %q", id.Name, cn)
			}
			if c.abstract {
				return nil, fmt.Errorf("treewire: interface %q: implementer %q is abstract", id.Name, cn)
			}
			if _, dup := i.byWire[c.name]; dup {
				return nil, fmt.Errorf("treewire: interface %q: duplicate implementer %q", id.Name, cn)
			}
			i.impls = append(i.impls, c)
			i.byWire[c.name] = c
		}
		s.ifaces = append(s.ifaces, i)
		s.ifaceByName[id.Name] = i
	}

	for ci, cd := range decl.Classes {
		c := s.classes[ci]
		c.byName = make(map[string]int, len(cd.Properties))
		for _, pd := range cd.Properties {
			if pd.Name == "" {
				return nil, fmt.Errorf("treewire: class %q: property with empty name", cd.Name)
			}
			if _, dup := c.byName[pd.Name]; dup {
				return nil, fmt.Errorf("treewire: class %q: duplicate property %q", cd.Name, pd.Name)
			}
			t, err := s.resolveTypeRef(pd.Type)
			if err != nil {
				return nil, fmt.Errorf("treewire: class %q: property %q: %w", cd.Name, pd.Name, err)
			}
			c.byName[pd.Name] = len(c.props)
			c.props = append(c.props, Property{name: pd.Name, typ: t, optional: pd.Optional})
		}
	}

	return s, nil
}

// MustNewSchema is like NewSchema but panics on error.
func MustNewSchema(decl SchemaDecl) *Schema {
	s, err := NewSchema(decl)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) resolveTypeRef(ref TypeRef) (Type, error) {
	switch r := ref.(type) {
	case ScalarRef:
		if r.Kind < ScalarBool || r.Kind > ScalarBytes {
			return nil, fmt.Errorf("unknown scalar kind %d", int(r.Kind))
		}
		return ScalarType{Kind: r.Kind}, nil
	case EnumRef:
		e, ok := s.enumByName[r.Name]
		if !ok {
			return nil, fmt.Errorf("unknown enum %q", r.Name)
		}
		return EnumType{Enum: e}, nil
	case RecordRef:
		c, ok := s.classByName[r.Name]
		if !ok {
			return nil, fmt.Errorf("unknown class %q", r.Name)
		}
		if c.abstract {
			return nil, fmt.Errorf("record type references abstract class %q", r.Name)
		}
		return RecordType{Class: c}, nil
	case PolymorphicRef:
		i, ok := s.ifaceByName[r.Name]
		if !ok {
			return nil, fmt.Errorf("unknown interface %q", r.Name)
		}
		return PolymorphicType{Interface: i}, nil
	case ListRef:
		item, err := s.resolveTypeRef(r.Item)
		if err != nil {
			return nil, err
		}
		switch item.(type) {
		case RecordType, PolymorphicType:
			return ListType{Item: item}, nil
		default:
			return nil, fmt.Errorf("list items must be record or polymorphic, got %s", TypeString(item))
		}
	case nil:
		return nil, fmt.Errorf("missing type")
	}
	return nil, fmt.Errorf("unknown type reference %T", ref)
}
