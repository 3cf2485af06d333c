package treewire

import "fmt"

// NodeKind enumerates the node kinds a Cursor can stand on.
type NodeKind int

const (
	// KindElementStart is the start of an element.
	KindElementStart NodeKind = iota
	// KindElementEnd is the end of an element.
	KindElementEnd
	// KindText is character content that is not whitespace-only.
	KindText
	// KindInsignificant is whitespace-only text, a comment, a processing
	// instruction or a directive. The decoder skips these before every
	// structural decision.
	KindInsignificant
	// KindEndOfDocument means the cursor has run off the document.
	KindEndOfDocument
)

func (k NodeKind) String() string {
	switch k {
	case KindElementStart:
		return "element-start"
	case KindElementEnd:
		return "element-end"
	case KindText:
		return "text"
	case KindInsignificant:
		return "insignificant"
	case KindEndOfDocument:
		return "end-of-document"
	}
	return fmt.Sprintf("node-kind(%d)", int(k))
}

// Cursor is a forward-only reader over a tree document. It is exclusively
// owned by one decode call chain and advanced monotonically, never rewound.
//
// Read methods consume the current element's character content, leave the
// cursor on the next structural node, and report an unparsable or unreadable
// content as a *ContentError; any other error from a Cursor is a capability
// failure that the decoder propagates unmodified.
type Cursor interface {
	// Kind classifies the current node.
	Kind() NodeKind
	// Name is the local element name; valid at element-start and element-end.
	Name() string
	// Namespace is the element's resolved namespace, "" when unqualified;
	// valid at element-start and element-end.
	Namespace() string
	// SelfClosing reports whether the current element start has no content
	// and no children at all (short form in text renderings).
	SelfClosing() bool
	// EOF reports whether the cursor is at the end of the document.
	EOF() bool

	ReadBool() (bool, error)
	ReadInt() (int64, error)
	ReadFloat() (float64, error)
	ReadString() (string, error)
	// ReadBase64 reads byte-sequence content encoded as base64 text.
	ReadBase64() ([]byte, error)

	// Next advances to the next node. On a self-closing element start it
	// moves past the whole element.
	Next() error
}

// Sink accepts a document being written. The namespace and prefix are
// configured once per sink and applied to every element. A Sink is
// exclusively owned by one encode call; errors it returns are capability
// failures and propagate unmodified.
type Sink interface {
	StartElement(name string) error
	EndElement() error

	WriteBool(v bool) error
	WriteInt(v int64) error
	WriteFloat(v float64) error
	WriteString(v string) error
	// WriteBase64 writes byte-sequence content as base64 text.
	WriteBase64(v []byte) error

	Flush() error
}

// SinkOptions configure a Sink built by a Driver. When Namespace is set it
// is declared on the root element and every element is written within it;
// a non-empty Prefix qualifies every element name.
type SinkOptions struct {
	Prefix    string
	Namespace string
}

// ContentError reports that element content could not be read or parsed as
// the requested scalar form. Cursor implementations return it from Read
// methods; the decoder captures it as a value_format fault. Everything else
// coming out of a Cursor is treated as a capability failure.
type ContentError struct {
	Want string // requested form: "bool", "int", "float", "string", "base64"
	Text string // offending lexical content, best-effort
	Err  error  // underlying parse or read error
}

func (e *ContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content is not a valid %s: %v", e.Want, e.Err)
	}
	return fmt.Sprintf("content is not a valid %s: %q", e.Want, e.Text)
}

func (e *ContentError) Unwrap() error { return e.Err }
