package treewire

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/treewire/treewire/i18n"
)

// Fault codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnexpectedEnd     = "unexpected_end"
	CodeUnexpectedNode    = "unexpected_node"
	CodeNamespaceMismatch = "namespace_mismatch"
	CodeUnexpectedElement = "unexpected_element"
	CodeMismatchedEnd     = "mismatched_end"
	CodeUnknownProperty   = "unknown_property"
	CodeMissingProperty   = "missing_property"
	CodeEmptyScalar       = "empty_scalar"
	CodeEmptyEnum         = "empty_enum"
	CodeEmptyPolymorphic  = "empty_polymorphic"
	CodeValueFormat       = "value_format"
	CodeUnknownLiteral    = "unknown_literal"
	CodeUnknownVariant    = "unknown_variant"
	// Encode side. The only schema-level encode failure: an instance built
	// outside this engine can hold an enum literal absent from the wire table.
	CodeUnmappedLiteral = "unmapped_literal"
)

// Segment is one step in the path locating a fault within a document.
// It is either a Name (a property or element name) or an Index (a
// zero-based list position).
type Segment interface{ isSegment() }

// Name is a path segment addressing a named property.
type Name string

// Index is a path segment addressing a list item by zero-based position.
type Index int

func (Name) isSegment()  {}
func (Index) isSegment() {}

// Error reports that a document does not match the schema. It is created at
// the innermost failure site and each enclosing decode frame prepends its own
// segment, so Segments reads root-to-leaf by the time the caller sees it.
// Schema construction problems are ordinary errors, never *Error.
type Error struct {
	Code     string // One of the codes listed above.
	Message  string
	Cause    error     // Optional: underlying content-read fault (value_format).
	Segments []Segment // Root-to-leaf path; empty at the document root.
}

// Error renders the message with the slash-form path appended.
func (e *Error) Error() string {
	if len(e.Segments) == 0 {
		return e.Message
	}
	return e.Message + " at: " + XPathString(e.Segments)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Prepend pushes seg onto the front of the path. Decode frames call it while
// a fault unwinds; callers outside the engine normally have no reason to.
func (e *Error) Prepend(seg Segment) {
	e.Segments = append([]Segment{seg}, e.Segments...)
}

// Path renders the dotted-bracket form of the path, e.g. items[2].value.
func (e *Error) Path() string { return PathString(e.Segments) }

// XPath renders the slash form of the path, e.g. items/*[2]/value.
func (e *Error) XPath() string { return XPathString(e.Segments) }

// AsError extracts a *Error from an error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newError(code string, data map[string]string) *Error {
	return &Error{Code: code, Message: i18n.T(code, data)}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PathString renders segments in dotted-bracket form: names joined with dots
// (no leading dot), names that are not plain identifiers quoted as ["..."],
// indices as [i].
func PathString(segs []Segment) string {
	var b strings.Builder
	for i, seg := range segs {
		switch s := seg.(type) {
		case Name:
			n := string(s)
			if identRe.MatchString(n) {
				if i > 0 {
					b.WriteByte('.')
				}
				b.WriteString(n)
			} else {
				b.WriteString(`["`)
				b.WriteString(escapeDotted(n))
				b.WriteString(`"]`)
			}
		case Index:
			fmt.Fprintf(&b, "[%d]", int(s))
		}
	}
	return b.String()
}

// XPathString renders segments in slash form: XML-escaped names, indices as
// *[i], joined with / and no leading slash.
func XPathString(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		switch s := seg.(type) {
		case Name:
			parts = append(parts, escapeXPath(string(s)))
		case Index:
			parts = append(parts, fmt.Sprintf("*[%d]", int(s)))
		}
	}
	return strings.Join(parts, "/")
}

func escapeDotted(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeXPath(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '/':
			b.WriteString("&#47;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
