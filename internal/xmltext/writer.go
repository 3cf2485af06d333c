package xmltext

import (
	"bufio"
	"encoding/xml"
	"io"
)

// Writer emits XML 1.0 text tag by tag. Start tags are closed lazily, so an
// element that receives no text and no children comes out self-closing. When
// a namespace is configured it is declared once on the root element, and a
// non-empty prefix qualifies every tag name.
type Writer struct {
	w         *bufio.Writer
	prefix    string
	namespace string

	stack []string
	open  bool // current start tag not yet closed with '>'
	root  bool
	err   error
}

func NewWriter(w io.Writer, prefix, namespace string) *Writer {
	return &Writer{w: bufio.NewWriter(w), prefix: prefix, namespace: namespace}
}

func (w *Writer) qualify(name string) string {
	if w.prefix == "" {
		return name
	}
	return w.prefix + ":" + name
}

func (w *Writer) ws(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}

func (w *Writer) closeStartTag() {
	if w.open {
		w.ws(">")
		w.open = false
	}
}

// Start opens an element. On the root element the configured namespace, if
// any, is declared as xmlns:prefix (or plain xmlns with no prefix).
func (w *Writer) Start(name string) error {
	w.closeStartTag()
	q := w.qualify(name)
	w.ws("<")
	w.ws(q)
	if !w.root {
		w.root = true
		if w.namespace != "" {
			if w.prefix != "" {
				w.ws(` xmlns:` + w.prefix + `="`)
			} else {
				w.ws(` xmlns="`)
			}
			w.escape(w.namespace)
			w.ws(`"`)
		}
	}
	w.open = true
	w.stack = append(w.stack, q)
	return w.err
}

// End closes the innermost open element, in short form when it is empty.
func (w *Writer) End() error {
	if len(w.stack) == 0 {
		panic("xmltext: End without matching Start")
	}
	q := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if w.open {
		w.ws("/>")
		w.open = false
	} else {
		w.ws("</")
		w.ws(q)
		w.ws(">")
	}
	return w.err
}

// Text writes escaped character data into the current element.
func (w *Writer) Text(s string) error {
	w.closeStartTag()
	w.escape(s)
	return w.err
}

func (w *Writer) escape(s string) {
	if w.err != nil {
		return
	}
	w.err = xml.EscapeText(w.w, []byte(s))
}

// Flush pushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}
