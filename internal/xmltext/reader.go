// Package xmltext turns XML 1.0 text into the flat node stream the codec
// walks, and writes it back. It knows nothing about schemas; the root
// package adapts it behind the Cursor and Sink capabilities.
package xmltext

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Kind classifies one node of the stream.
type Kind int

const (
	KindStart Kind = iota
	KindEnd
	KindText
	KindInsignificant
	KindEOF
)

type node struct {
	kind        Kind
	name        xml.Name
	selfClosing bool
	text        string // character data only
	charData    bool   // insignificant nodes: whitespace text vs comment/PI
}

// Reader positions itself on one node at a time over a token stream from
// encoding/xml. It is forward-only; tokenizer failures are sticky.
type Reader struct {
	dec *xml.Decoder

	cur node

	pendingTok xml.Token
	hasPending bool
	pendingErr error

	err error
}

// NewReader builds a reader positioned on the document's first node. A
// tokenizer failure on that first node is returned immediately.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{dec: xml.NewDecoder(r)}
	if err := rd.Next(); err != nil {
		return nil, err
	}
	return rd, nil
}

// Kind classifies the current node.
func (r *Reader) Kind() Kind { return r.cur.kind }

// Name is the current element's name; zero unless Kind is start or end.
func (r *Reader) Name() xml.Name { return r.cur.name }

// SelfClosing reports whether the current start tag used the short form.
func (r *Reader) SelfClosing() bool { return r.cur.kind == KindStart && r.cur.selfClosing }

// EOF reports whether the reader ran off the document.
func (r *Reader) EOF() bool { return r.cur.kind == KindEOF }

// Next advances to the following node. Advancing past a self-closing start
// tag skips the element entirely; its synthesized end token is swallowed.
func (r *Reader) Next() error {
	if r.err != nil {
		return r.err
	}
	tok, err := r.rawToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.cur = node{kind: KindEOF}
			return nil
		}
		r.err = err
		return err
	}
	switch t := tok.(type) {
	case xml.StartElement:
		// encoding/xml reports <a/> as a start token plus a synthesized end
		// token that consumes no input; an unchanged offset across the two
		// is what distinguishes the short form from <a></a>.
		off := r.dec.InputOffset()
		nxt, nerr := r.dec.Token()
		self := false
		if nerr != nil {
			r.pendingErr = nerr
		} else if end, ok := nxt.(xml.EndElement); ok && end.Name == t.Name && r.dec.InputOffset() == off {
			self = true
		} else {
			r.pendingTok = xml.CopyToken(nxt)
			r.hasPending = true
		}
		r.cur = node{kind: KindStart, name: t.Name, selfClosing: self}
	case xml.EndElement:
		r.cur = node{kind: KindEnd, name: t.Name}
	case xml.CharData:
		text := string(t)
		k := KindText
		if strings.TrimSpace(text) == "" {
			k = KindInsignificant
		}
		r.cur = node{kind: k, text: text, charData: true}
	default: // comments, processing instructions, directives
		r.cur = node{kind: KindInsignificant}
	}
	return nil
}

func (r *Reader) rawToken() (xml.Token, error) {
	if r.hasPending {
		t := r.pendingTok
		r.hasPending = false
		r.pendingTok = nil
		return t, nil
	}
	if r.pendingErr != nil {
		err := r.pendingErr
		r.pendingErr = nil
		return nil, err
	}
	return r.dec.Token()
}

// ReadText consumes the character data at the current position up to the
// next start tag, end tag or end of document, and returns it concatenated.
// Comments and processing instructions interleaved with the text are
// dropped; the text itself is returned verbatim, entities already resolved.
func (r *Reader) ReadText() (string, error) {
	var b strings.Builder
	for r.cur.kind == KindText || r.cur.kind == KindInsignificant {
		if r.cur.charData {
			b.WriteString(r.cur.text)
		}
		if err := r.Next(); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
