package treewire

import (
	"encoding/base64"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/treewire/treewire/internal/xmltext"
)

// xmlDriver is the default Driver over XML 1.0 text.
type xmlDriver struct{}

func (xmlDriver) NewCursor(r io.Reader) (Cursor, error) {
	rd, err := xmltext.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &xmlCursor{rd: rd}, nil
}

func (xmlDriver) NewSink(w io.Writer, opts SinkOptions) Sink {
	return &xmlSink{wr: xmltext.NewWriter(w, opts.Prefix, opts.Namespace)}
}

func (xmlDriver) Name() string { return "encoding/xml" }

// xmlCursor adapts the xmltext node stream to the Cursor capability and
// parses scalar content per the XML Schema lexical forms: booleans accept
// true/false/1/0, floats accept INF and NaN spellings, base64 may carry
// interleaved whitespace, and everything except string content is trimmed
// before parsing.
type xmlCursor struct {
	rd *xmltext.Reader
}

func (c *xmlCursor) Kind() NodeKind {
	switch c.rd.Kind() {
	case xmltext.KindStart:
		return KindElementStart
	case xmltext.KindEnd:
		return KindElementEnd
	case xmltext.KindText:
		return KindText
	case xmltext.KindInsignificant:
		return KindInsignificant
	}
	return KindEndOfDocument
}

func (c *xmlCursor) Name() string      { return c.rd.Name().Local }
func (c *xmlCursor) Namespace() string { return c.rd.Name().Space }
func (c *xmlCursor) SelfClosing() bool { return c.rd.SelfClosing() }
func (c *xmlCursor) EOF() bool         { return c.rd.EOF() }
func (c *xmlCursor) Next() error       { return c.rd.Next() }

func (c *xmlCursor) ReadBool() (bool, error) {
	text, err := c.rd.ReadText()
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(text) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &ContentError{Want: "bool", Text: text}
}

func (c *xmlCursor) ReadInt() (int64, error) {
	text, err := c.rd.ReadText()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if perr != nil {
		return 0, &ContentError{Want: "int", Text: text, Err: perr}
	}
	return v, nil
}

func (c *xmlCursor) ReadFloat() (float64, error) {
	text, err := c.rd.ReadText()
	if err != nil {
		return 0, err
	}
	// strconv accepts the INF/NaN spellings case-insensitively, which
	// covers the XML Schema forms INF, +INF, -INF and NaN.
	v, perr := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if perr != nil {
		return 0, &ContentError{Want: "float", Text: text, Err: perr}
	}
	return v, nil
}

func (c *xmlCursor) ReadString() (string, error) {
	return c.rd.ReadText()
}

func (c *xmlCursor) ReadBase64() ([]byte, error) {
	text, err := c.rd.ReadText()
	if err != nil {
		return nil, err
	}
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, text)
	v, perr := base64.StdEncoding.DecodeString(compact)
	if perr != nil {
		return nil, &ContentError{Want: "base64", Text: text, Err: perr}
	}
	return v, nil
}

// xmlSink adapts the xmltext writer to the Sink capability. Floats come out
// in the shortest round-trippable form, with the XML Schema INF/NaN
// spellings for the non-finite values.
type xmlSink struct {
	wr *xmltext.Writer
}

func (s *xmlSink) StartElement(name string) error { return s.wr.Start(name) }
func (s *xmlSink) EndElement() error              { return s.wr.End() }

func (s *xmlSink) WriteBool(v bool) error {
	return s.wr.Text(strconv.FormatBool(v))
}

func (s *xmlSink) WriteInt(v int64) error {
	return s.wr.Text(strconv.FormatInt(v, 10))
}

func (s *xmlSink) WriteFloat(v float64) error {
	switch {
	case math.IsInf(v, 1):
		return s.wr.Text("INF")
	case math.IsInf(v, -1):
		return s.wr.Text("-INF")
	case math.IsNaN(v):
		return s.wr.Text("NaN")
	}
	return s.wr.Text(strconv.FormatFloat(v, 'g', -1, 64))
}

func (s *xmlSink) WriteString(v string) error {
	if v == "" {
		// Nothing to write; the element stays in short form.
		return nil
	}
	return s.wr.Text(v)
}

func (s *xmlSink) WriteBase64(v []byte) error {
	if len(v) == 0 {
		return nil
	}
	return s.wr.Text(base64.StdEncoding.EncodeToString(v))
}

func (s *xmlSink) Flush() error { return s.wr.Flush() }
