package treewire

import "errors"

// decoder walks a Cursor by recursive descent. It is created per top-level
// call and owns the cursor for the duration; ns is the expected namespace,
// "" when elements are matched by raw name alone.
//
// Two failure channels leave the decoder: a *Error means the document does
// not match the schema, anything else is a capability fault from the Cursor
// and propagates unmodified.
type decoder struct {
	cur Cursor
	ns  string
}

// skip advances past insignificant nodes. It runs before every structural
// decision, not only once per element.
func (d *decoder) skip() error {
	for d.cur.Kind() == KindInsignificant {
		if err := d.cur.Next(); err != nil {
			return err
		}
	}
	return nil
}

// resolveName applies the namespace rule to the current element: when a
// namespace is expected it must match exactly and the local name is used;
// otherwise the name is taken as-is.
func (d *decoder) resolveName() (string, error) {
	if d.ns != "" && d.cur.Namespace() != d.ns {
		return "", newError(CodeNamespaceMismatch, map[string]string{
			"want": d.ns,
			"got":  d.cur.Namespace(),
		})
	}
	return d.cur.Name(), nil
}

// decodeClass consumes one element carrying cls and everything inside it,
// leaving the cursor just past the matching end tag (or past the start tag
// when self-closing).
func (d *decoder) decodeClass(cls *Class) (*Instance, error) {
	if err := d.skip(); err != nil {
		return nil, err
	}
	if d.cur.EOF() {
		return nil, newError(CodeUnexpectedEnd, map[string]string{"want": "element"})
	}
	if d.cur.Kind() != KindElementStart {
		return nil, newError(CodeUnexpectedNode, map[string]string{
			"want": "element",
			"got":  d.cur.Kind().String(),
		})
	}
	name, err := d.resolveName()
	if err != nil {
		return nil, err
	}
	if name != cls.name {
		return nil, newError(CodeUnexpectedElement, map[string]string{
			"want": cls.name,
			"got":  name,
		})
	}
	selfClosing := d.cur.SelfClosing()
	if err := d.cur.Next(); err != nil {
		return nil, err
	}
	inst, err := d.decodePropertySequence(cls, selfClosing)
	if err != nil {
		return nil, err
	}
	if !selfClosing {
		if err := d.consumeEndElement(cls.name); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// consumeEndElement requires the next structural node to be the end tag
// matching name and advances past it.
func (d *decoder) consumeEndElement(name string) error {
	if err := d.skip(); err != nil {
		return err
	}
	if d.cur.EOF() {
		return newError(CodeUnexpectedEnd, map[string]string{"want": "end of element " + name})
	}
	if d.cur.Kind() != KindElementEnd {
		return newError(CodeUnexpectedNode, map[string]string{
			"want": "end of element " + name,
			"got":  d.cur.Kind().String(),
		})
	}
	got, err := d.resolveName()
	if err != nil {
		return err
	}
	if got != name {
		return newError(CodeMismatchedEnd, map[string]string{
			"want": name,
			"got":  got,
		})
	}
	return d.cur.Next()
}

// decodePropertySequence assembles one instance of cls from the property
// elements at the current position. isEmpty means the owning element was
// self-closing and the sequence holds no properties at all.
//
// Reaching end of document mid-sequence, after at least one property, stops
// the loop without a fault of its own; the required-property check below and
// the caller's end-tag consumption report what is actually missing. Standing
// at end of document before any property was read fails immediately.
func (d *decoder) decodePropertySequence(cls *Class, isEmpty bool) (*Instance, error) {
	slots := make([]Value, len(cls.props))
	if !isEmpty {
		first := true
		for {
			if err := d.skip(); err != nil {
				return nil, err
			}
			if d.cur.EOF() {
				if first {
					return nil, newError(CodeUnexpectedEnd, map[string]string{"want": "property element"})
				}
				break
			}
			if d.cur.Kind() != KindElementStart {
				break
			}
			first = false
			reported, err := d.resolveName()
			if err != nil {
				return nil, err
			}
			isEmptyProp := d.cur.SelfClosing()
			if err := d.cur.Next(); err != nil {
				return nil, err
			}
			idx, known := cls.byName[reported]
			if !known {
				e := newError(CodeUnknownProperty, map[string]string{"name": reported})
				e.Prepend(Name(reported))
				return nil, e
			}
			v, err := d.decodeContent(cls.props[idx].typ, isEmptyProp)
			if err != nil {
				if e, ok := AsError(err); ok {
					e.Prepend(Name(reported))
				}
				return nil, err
			}
			slots[idx] = v
			if !isEmptyProp {
				if err := d.consumeEndElement(reported); err != nil {
					return nil, err
				}
			}
		}
	}
	for i, p := range cls.props {
		if !p.optional && slots[i] == nil {
			return nil, newError(CodeMissingProperty, map[string]string{"name": p.name})
		}
	}
	return &Instance{class: cls, slots: slots}, nil
}

// decodeContent reads one property's content per its type descriptor. The
// cursor stands just inside the property element; isEmpty means that element
// was self-closing.
func (d *decoder) decodeContent(t Type, isEmpty bool) (Value, error) {
	switch tt := t.(type) {
	case ScalarType:
		return d.decodeScalar(tt.Kind, isEmpty)
	case EnumType:
		if isEmpty {
			return nil, newError(CodeEmptyEnum, map[string]string{"enum": tt.Enum.name})
		}
		text, err := d.cur.ReadString()
		if err != nil {
			return nil, contentFault("string", err)
		}
		lit, ok := tt.Enum.LiteralOf(text)
		if !ok {
			return nil, newError(CodeUnknownLiteral, map[string]string{
				"enum": tt.Enum.name,
				"text": text,
			})
		}
		return Literal(lit), nil
	case RecordType:
		return d.decodePropertySequence(tt.Class, isEmpty)
	case PolymorphicType:
		if isEmpty {
			return nil, newError(CodeEmptyPolymorphic, map[string]string{"interface": tt.Interface.name})
		}
		return d.decodePolymorphic(tt.Interface)
	case ListType:
		if isEmpty {
			return List{}, nil
		}
		items := List{}
		for i := 0; ; i++ {
			if err := d.skip(); err != nil {
				return nil, err
			}
			if d.cur.EOF() || d.cur.Kind() != KindElementStart {
				break
			}
			item, err := d.decodeListItem(tt.Item)
			if err != nil {
				if e, ok := AsError(err); ok {
					e.Prepend(Index(i))
				}
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}
	panic("treewire: unknown type descriptor")
}

func (d *decoder) decodeScalar(kind ScalarKind, isEmpty bool) (Value, error) {
	if isEmpty {
		switch kind {
		case ScalarString:
			return String(""), nil
		case ScalarBytes:
			return Bytes{}, nil
		default:
			return nil, newError(CodeEmptyScalar, map[string]string{"kind": kind.String()})
		}
	}
	switch kind {
	case ScalarBool:
		v, err := d.cur.ReadBool()
		if err != nil {
			return nil, contentFault("bool", err)
		}
		return Bool(v), nil
	case ScalarInt:
		v, err := d.cur.ReadInt()
		if err != nil {
			return nil, contentFault("int", err)
		}
		return Int(v), nil
	case ScalarFloat:
		v, err := d.cur.ReadFloat()
		if err != nil {
			return nil, contentFault("float", err)
		}
		return Float(v), nil
	case ScalarString:
		v, err := d.cur.ReadString()
		if err != nil {
			return nil, contentFault("string", err)
		}
		return String(v), nil
	case ScalarBytes:
		v, err := d.cur.ReadBase64()
		if err != nil {
			return nil, contentFault("base64", err)
		}
		return Bytes(v), nil
	}
	panic("treewire: unknown scalar kind")
}

// decodePolymorphic dispatches the next element's name against the
// interface's implementer table and decodes the selected class.
func (d *decoder) decodePolymorphic(iface *Interface) (*Instance, error) {
	if err := d.skip(); err != nil {
		return nil, err
	}
	if d.cur.EOF() {
		return nil, newError(CodeUnexpectedEnd, map[string]string{"want": "element"})
	}
	if d.cur.Kind() != KindElementStart {
		return nil, newError(CodeUnexpectedNode, map[string]string{
			"want": "element",
			"got":  d.cur.Kind().String(),
		})
	}
	name, err := d.resolveName()
	if err != nil {
		return nil, err
	}
	impl, ok := iface.ByWireName(name)
	if !ok {
		return nil, newError(CodeUnknownVariant, map[string]string{
			"interface": iface.name,
			"name":      name,
		})
	}
	return d.decodeClass(impl)
}

// decodeListItem consumes one list item element. Items are full class
// elements, unlike record properties which inline their sequence.
func (d *decoder) decodeListItem(item Type) (Value, error) {
	switch tt := item.(type) {
	case RecordType:
		return d.decodeClass(tt.Class)
	case PolymorphicType:
		return d.decodePolymorphic(tt.Interface)
	}
	// NewSchema rejects every other item type.
	panic("treewire: list item is neither record nor polymorphic")
}

// contentFault turns a *ContentError from the cursor into a value_format
// fault; any other error is a capability failure and passes through.
func contentFault(want string, err error) error {
	var ce *ContentError
	if errors.As(err, &ce) {
		e := newError(CodeValueFormat, map[string]string{
			"want":   want,
			"detail": ce.Error(),
		})
		e.Cause = ce
		return e
	}
	return err
}
