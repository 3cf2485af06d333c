package treewire

import (
	"bytes"
	"fmt"
)

// Value is a decoded property value: a closed sum over the wire format's
// content forms. The concrete types are Bool, Int, Float, String, Bytes,
// Literal, List and *Instance.
type Value interface{ isValue() }

// Bool is boolean scalar content.
type Bool bool

// Int is integer scalar content.
type Int int64

// Float is floating-point scalar content.
type Float float64

// String is string scalar content.
type String string

// Bytes is byte-sequence content, carried on the wire as base64 text.
type Bytes []byte

// Literal is an enumeration literal name (not its wire string).
type Literal string

// List is an ordered sequence of record or polymorphic values.
type List []Value

func (Bool) isValue()    {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (String) isValue()  {}
func (Bytes) isValue()   {}
func (Literal) isValue() {}
func (List) isValue()    {}

// Instance is a decoded class value: one slot per property in declaration
// order, where a nil slot is an optional property that was absent. Instances
// are immutable once constructed; NewInstance never returns a partially
// filled one.
type Instance struct {
	class *Class
	slots []Value
}

func (*Instance) isValue() {}

// Class returns the descriptor this instance was built against.
func (it *Instance) Class() *Class { return it.class }

// Get returns the value of the named property and whether it is set.
func (it *Instance) Get(name string) (Value, bool) {
	idx, ok := it.class.byName[name]
	if !ok || it.slots[idx] == nil {
		return nil, false
	}
	return it.slots[idx], true
}

// Fields names property values for NewInstance.
type Fields map[string]Value

// NewInstance constructs an instance of cls from named field values. It
// rejects abstract classes, unknown names, missing required properties and
// values whose form does not match the property's type descriptor. Enum
// literal membership is not checked here; an unmapped literal surfaces as an
// encode fault instead.
func NewInstance(cls *Class, fields Fields) (*Instance, error) {
	if cls == nil {
		return nil, fmt.Errorf("treewire: nil class")
	}
	if cls.abstract {
		return nil, fmt.Errorf("treewire: class %q is abstract", cls.name)
	}
	for name := range fields {
		if _, ok := cls.byName[name]; !ok {
			return nil, fmt.Errorf("treewire: class %q has no property %q", cls.name, name)
		}
	}
	slots := make([]Value, len(cls.props))
	for i, p := range cls.props {
		v, ok := fields[p.name]
		if !ok || v == nil {
			if !p.optional {
				return nil, fmt.Errorf("treewire: class %q: required property %q not set", cls.name, p.name)
			}
			continue
		}
		if err := checkValue(p.typ, v); err != nil {
			return nil, fmt.Errorf("treewire: class %q: property %q: %w", cls.name, p.name, err)
		}
		slots[i] = v
	}
	return &Instance{class: cls, slots: slots}, nil
}

// MustNewInstance is like NewInstance but panics on error.
func MustNewInstance(cls *Class, fields Fields) *Instance {
	it, err := NewInstance(cls, fields)
	if err != nil {
		panic(err)
	}
	return it
}

// checkValue verifies that v's form matches t. Nested instances were
// validated at their own construction, so record and polymorphic checks stop
// at class identity.
func checkValue(t Type, v Value) error {
	switch tt := t.(type) {
	case ScalarType:
		ok := false
		switch tt.Kind {
		case ScalarBool:
			_, ok = v.(Bool)
		case ScalarInt:
			_, ok = v.(Int)
		case ScalarFloat:
			_, ok = v.(Float)
		case ScalarString:
			_, ok = v.(String)
		case ScalarBytes:
			_, ok = v.(Bytes)
		}
		if !ok {
			return fmt.Errorf("expected %s value, got %T", tt.Kind, v)
		}
		return nil
	case EnumType:
		if _, ok := v.(Literal); !ok {
			return fmt.Errorf("expected a literal of enum %q, got %T", tt.Enum.name, v)
		}
		return nil
	case RecordType:
		it, ok := v.(*Instance)
		if !ok {
			return fmt.Errorf("expected an instance of class %q, got %T", tt.Class.name, v)
		}
		if it.class != tt.Class {
			return fmt.Errorf("expected an instance of class %q, got %q", tt.Class.name, it.class.name)
		}
		return nil
	case PolymorphicType:
		it, ok := v.(*Instance)
		if !ok {
			return fmt.Errorf("expected an implementer of %q, got %T", tt.Interface.name, v)
		}
		if impl, found := tt.Interface.byWire[it.class.name]; !found || impl != it.class {
			return fmt.Errorf("class %q does not implement %q", it.class.name, tt.Interface.name)
		}
		return nil
	case ListType:
		lst, ok := v.(List)
		if !ok {
			return fmt.Errorf("expected a list, got %T", v)
		}
		for i, item := range lst {
			if item == nil {
				return fmt.Errorf("item %d: nil value", i)
			}
			if err := checkValue(tt.Item, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
	panic(fmt.Sprintf("treewire: unknown type descriptor %T", t))
}

// Equal reports deep structural equality of two instance graphs. go-cmp
// picks it up when diffing decoded results.
func (it *Instance) Equal(other *Instance) bool {
	if it == nil || other == nil {
		return it == other
	}
	if it.class != other.class {
		return false
	}
	for i := range it.slots {
		if !valueEqual(it.slots[i], other.slots[i]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Literal:
		bv, ok := b.(Literal)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av.Equal(bv)
	}
	return false
}

// Map renders a plain map view of the instance for diagnostics: nested
// instances become maps, lists become []any, bytes stay []byte (and so
// base64 in JSON output). The class name is recorded under "$class".
func (it *Instance) Map() map[string]any {
	m := make(map[string]any, len(it.slots)+1)
	m["$class"] = it.class.name
	for i, p := range it.class.props {
		if it.slots[i] == nil {
			continue
		}
		m[p.name] = plainValue(it.slots[i])
	}
	return m
}

func plainValue(v Value) any {
	switch vv := v.(type) {
	case Bool:
		return bool(vv)
	case Int:
		return int64(vv)
	case Float:
		return float64(vv)
	case String:
		return string(vv)
	case Bytes:
		return []byte(vv)
	case Literal:
		return string(vv)
	case List:
		arr := make([]any, len(vv))
		for i, item := range vv {
			arr[i] = plainValue(item)
		}
		return arr
	case *Instance:
		return vv.Map()
	}
	return nil
}
