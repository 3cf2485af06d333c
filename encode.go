package treewire

// encoder writes an instance graph to a Sink in schema declaration order.
// A well-typed instance cannot fail structurally; the only schema-level
// fault is an enum literal with no registered wire string, and anything
// else coming back is a capability failure from the sink.
type encoder struct {
	sink Sink
}

func (e *encoder) encodeInstance(inst *Instance) error {
	if err := e.sink.StartElement(inst.class.name); err != nil {
		return err
	}
	if err := e.writePropertySequence(inst); err != nil {
		return err
	}
	return e.sink.EndElement()
}

func (e *encoder) writePropertySequence(inst *Instance) error {
	for i, p := range inst.class.props {
		v := inst.slots[i]
		if v == nil {
			// Optional and absent: no element at all.
			continue
		}
		if err := e.sink.StartElement(p.name); err != nil {
			return err
		}
		if err := e.writeContent(p.typ, v); err != nil {
			if fault, ok := AsError(err); ok {
				fault.Prepend(Name(p.name))
			}
			return err
		}
		if err := e.sink.EndElement(); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeContent(t Type, v Value) error {
	switch tt := t.(type) {
	case ScalarType:
		switch tt.Kind {
		case ScalarBool:
			return e.sink.WriteBool(bool(v.(Bool)))
		case ScalarInt:
			return e.sink.WriteInt(int64(v.(Int)))
		case ScalarFloat:
			return e.sink.WriteFloat(float64(v.(Float)))
		case ScalarString:
			return e.sink.WriteString(string(v.(String)))
		case ScalarBytes:
			return e.sink.WriteBase64([]byte(v.(Bytes)))
		}
		panic("treewire: unknown scalar kind")
	case EnumType:
		lit := string(v.(Literal))
		wire, ok := tt.Enum.WireOf(lit)
		if !ok {
			return newError(CodeUnmappedLiteral, map[string]string{
				"enum":    tt.Enum.name,
				"literal": lit,
			})
		}
		return e.sink.WriteString(wire)
	case RecordType:
		// Inline: the nested class's properties sit directly inside the
		// owning property element, no wrapper with the class's wire name.
		return e.writePropertySequence(v.(*Instance))
	case PolymorphicType:
		// Dispatch on the instance's runtime class.
		return e.encodeInstance(v.(*Instance))
	case ListType:
		for i, item := range v.(List) {
			if err := e.encodeInstance(item.(*Instance)); err != nil {
				if fault, ok := AsError(err); ok {
					fault.Prepend(Index(i))
				}
				return err
			}
		}
		return nil
	}
	panic("treewire: unknown type descriptor")
}
