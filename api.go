package treewire

import (
	"bytes"
	"io"
)

// Decode reads one element carrying cls from the cursor and returns the
// decoded instance. A *Error return means the document does not match the
// schema; any other error is a capability failure from the cursor.
//
// The cursor must stand at the element (insignificant nodes before it are
// skipped) and is advanced exactly past it.
func Decode(cur Cursor, cls *Class, opt ...DecodeOpt) (*Instance, error) {
	d := &decoder{cur: cur, ns: pickDecodeOpt(opt).Namespace}
	return d.decodeClass(cls)
}

// DecodeInterface reads one element from the cursor, dispatching its name
// against the interface's implementer table, and returns the decoded
// instance of the selected class.
func DecodeInterface(cur Cursor, iface *Interface, opt ...DecodeOpt) (*Instance, error) {
	d := &decoder{cur: cur, ns: pickDecodeOpt(opt).Namespace}
	return d.decodePolymorphic(iface)
}

// DecodeFrom wraps r as a Cursor through the current driver and decodes one
// instance of cls from it.
func DecodeFrom(r io.Reader, cls *Class, opt ...DecodeOpt) (*Instance, error) {
	cur, err := NewCursor(r)
	if err != nil {
		return nil, err
	}
	return Decode(cur, cls, opt...)
}

// DecodeInterfaceFrom wraps r as a Cursor through the current driver and
// decodes one implementer of iface from it.
func DecodeInterfaceFrom(r io.Reader, iface *Interface, opt ...DecodeOpt) (*Instance, error) {
	cur, err := NewCursor(r)
	if err != nil {
		return nil, err
	}
	return DecodeInterface(cur, iface, opt...)
}

// DecodeBytes decodes one instance of cls from b.
func DecodeBytes(b []byte, cls *Class, opt ...DecodeOpt) (*Instance, error) {
	return DecodeFrom(bytes.NewReader(b), cls, opt...)
}

// Encode writes inst to the sink in schema declaration order. The only
// schema-level failure is an enum literal missing from the wire table
// (returned as a *Error); anything else is a capability failure from the
// sink, propagated unmodified. The sink is flushed on success.
func Encode(inst *Instance, sink Sink) error {
	e := &encoder{sink: sink}
	if err := e.encodeInstance(inst); err != nil {
		return err
	}
	return sink.Flush()
}

// EncodeTo wraps w as a Sink through the current driver and writes inst to
// it, under the namespace and prefix from opt when given.
func EncodeTo(inst *Instance, w io.Writer, opt ...EncodeOpt) error {
	o := pickEncodeOpt(opt)
	sink := NewSink(w, SinkOptions{Prefix: o.Prefix, Namespace: o.Namespace})
	return Encode(inst, sink)
}

// EncodeBytes renders inst as a byte slice through the current driver.
func EncodeBytes(inst *Instance, opt ...EncodeOpt) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(inst, &buf, opt...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pickDecodeOpt(opt []DecodeOpt) DecodeOpt {
	if len(opt) > 0 {
		return opt[0]
	}
	return DecodeOpt{}
}

func pickEncodeOpt(opt []EncodeOpt) EncodeOpt {
	if len(opt) > 0 {
		return opt[0]
	}
	return EncodeOpt{}
}
