package treewire_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	treewire "github.com/treewire/treewire"
	g "github.com/treewire/treewire/dsl"
)

func shapesSchema(tb testing.TB) *treewire.Schema {
	tb.Helper()
	return g.NewSchema().
		Enum("colour", g.Lit("Red", "red"), g.Lit("Blue", "blue")).
		Class("Circle", g.Prop("radius", g.Int())).
		Class("Square", g.Prop("side", g.Int())).
		Interface("Shape", "Circle", "Square").
		Class("Point", g.Prop("x", g.Int()), g.Prop("y", g.Int())).
		Class("Canvas",
			g.Prop("name", g.String()),
			g.Opt("active", g.Bool()),
			g.Opt("scale", g.Float()),
			g.Opt("data", g.Bytes()),
			g.Opt("background", g.EnumOf("colour")),
			g.Opt("origin", g.RecordOf("Point")),
			g.Opt("shape", g.PolyOf("Shape")),
			g.Opt("shapes", g.ListOf(g.PolyOf("Shape"))),
			g.Opt("points", g.ListOf(g.RecordOf("Point"))),
		).
		MustBuild()
}

func canvasClass(tb testing.TB, s *treewire.Schema) *treewire.Class {
	tb.Helper()
	cls, ok := s.Class("Canvas")
	if !ok {
		tb.Fatalf("Canvas not in schema")
	}
	return cls
}

func decodeCanvas(tb testing.TB, doc string, opt ...treewire.DecodeOpt) (*treewire.Instance, error) {
	tb.Helper()
	s := shapesSchema(tb)
	return treewire.DecodeBytes([]byte(doc), canvasClass(tb, s), opt...)
}

func wantFault(tb testing.TB, err error, code, path string) *treewire.Error {
	tb.Helper()
	fault, ok := treewire.AsError(err)
	if !ok {
		tb.Fatalf("want a fault with code %s, got %v", code, err)
	}
	if fault.Code != code {
		tb.Fatalf("want code %s, got %s (%s)", code, fault.Code, fault.Error())
	}
	if got := fault.Path(); got != path {
		tb.Fatalf("want path %q, got %q", path, got)
	}
	return fault
}

func TestDecode_FullDocument(t *testing.T) {
	inst, err := decodeCanvas(t, `<Canvas>
		<name>main</name>
		<active>true</active>
		<scale>2.5</scale>
		<data>AAEC</data>
		<background>red</background>
		<origin><x>1</x><y>2</y></origin>
		<shape><Circle><radius>3</radius></Circle></shape>
		<shapes>
			<Circle><radius>3</radius></Circle>
			<Square><side>4</side></Square>
		</shapes>
		<points><Point><x>5</x><y>6</y></Point></points>
	</Canvas>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if v, _ := inst.Get("name"); v.(treewire.String) != "main" {
		t.Errorf("name = %v", v)
	}
	if v, _ := inst.Get("active"); v.(treewire.Bool) != true {
		t.Errorf("active = %v", v)
	}
	if v, _ := inst.Get("scale"); v.(treewire.Float) != 2.5 {
		t.Errorf("scale = %v", v)
	}
	if v, _ := inst.Get("data"); string(v.(treewire.Bytes)) != "\x00\x01\x02" {
		t.Errorf("data = %v", v)
	}
	if v, _ := inst.Get("background"); v.(treewire.Literal) != "Red" {
		t.Errorf("background = %v", v)
	}
	origin, ok := inst.Get("origin")
	if !ok {
		t.Fatalf("origin unset")
	}
	if x, _ := origin.(*treewire.Instance).Get("x"); x.(treewire.Int) != 1 {
		t.Errorf("origin.x = %v", x)
	}
	shape, _ := inst.Get("shape")
	if shape.(*treewire.Instance).Class().Name() != "Circle" {
		t.Errorf("shape dispatched to %s", shape.(*treewire.Instance).Class().Name())
	}
	shapes, _ := inst.Get("shapes")
	lst := shapes.(treewire.List)
	if len(lst) != 2 ||
		lst[0].(*treewire.Instance).Class().Name() != "Circle" ||
		lst[1].(*treewire.Instance).Class().Name() != "Square" {
		t.Errorf("shapes = %v", lst)
	}
	points, _ := inst.Get("points")
	if len(points.(treewire.List)) != 1 {
		t.Errorf("points = %v", points)
	}
}

func TestDecode_MissingRequiredProperty(t *testing.T) {
	_, err := decodeCanvas(t, `<Canvas><active>true</active></Canvas>`)
	fault := wantFault(t, err, treewire.CodeMissingProperty, "")
	if !strings.Contains(fault.Message, `"name"`) {
		t.Fatalf("message should name the property: %q", fault.Message)
	}
}

func TestDecode_UnknownProperty(t *testing.T) {
	_, err := decodeCanvas(t, `<Canvas><bogus/></Canvas>`)
	wantFault(t, err, treewire.CodeUnknownProperty, "bogus")
}

func TestDecode_SelfClosingString(t *testing.T) {
	for _, doc := range []string{
		`<Canvas><name/></Canvas>`,
		`<Canvas><name></name></Canvas>`,
	} {
		inst, err := decodeCanvas(t, doc)
		if err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		if v, ok := inst.Get("name"); !ok || v.(treewire.String) != "" {
			t.Fatalf("%s: name = %v, %v", doc, v, ok)
		}
	}
}

func TestDecode_SelfClosingInt(t *testing.T) {
	s := shapesSchema(t)
	point, _ := s.Class("Point")
	_, err := treewire.DecodeBytes([]byte(`<Point><x/><y>1</y></Point>`), point)
	wantFault(t, err, treewire.CodeEmptyScalar, "x")
}

func TestDecode_EmptyIntElementIsFormatFault(t *testing.T) {
	// <x></x> is not self-closing; the read happens and fails on the empty
	// string.
	s := shapesSchema(t)
	point, _ := s.Class("Point")
	_, err := treewire.DecodeBytes([]byte(`<Point><x></x><y>1</y></Point>`), point)
	fault := wantFault(t, err, treewire.CodeValueFormat, "x")
	var ce *treewire.ContentError
	if !errors.As(fault, &ce) || ce.Want != "int" {
		t.Fatalf("cause not a ContentError: %v", fault.Cause)
	}
}

func TestDecode_PolymorphicDispatch(t *testing.T) {
	s := shapesSchema(t)
	iface, _ := s.Interface("Shape")
	inst, err := treewire.DecodeInterfaceFrom(
		strings.NewReader(`<Circle><radius>3</radius></Circle>`), iface)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inst.Class().Name() != "Circle" {
		t.Fatalf("dispatched to %s", inst.Class().Name())
	}
	if v, _ := inst.Get("radius"); v.(treewire.Int) != 3 {
		t.Fatalf("radius = %v", v)
	}
}

func TestDecode_UnknownVariant(t *testing.T) {
	_, err := decodeCanvas(t, `<Canvas><name>n</name><shape><Triangle/></shape></Canvas>`)
	fault := wantFault(t, err, treewire.CodeUnknownVariant, "shape")
	if !strings.Contains(fault.Message, "Triangle") {
		t.Fatalf("message should name the variant: %q", fault.Message)
	}
}

func TestDecode_EmptyPropertyByType(t *testing.T) {
	cases := []struct {
		doc  string
		code string
		path string
	}{
		{`<Canvas><name>n</name><background/></Canvas>`, treewire.CodeEmptyEnum, "background"},
		{`<Canvas><name>n</name><shape/></Canvas>`, treewire.CodeEmptyPolymorphic, "shape"},
	}
	for _, c := range cases {
		_, err := decodeCanvas(t, c.doc)
		wantFault(t, err, c.code, c.path)
	}
}

func TestDecode_EmptyListAndBytes(t *testing.T) {
	inst, err := decodeCanvas(t, `<Canvas><name>n</name><shapes/><data/></Canvas>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	shapes, ok := inst.Get("shapes")
	if !ok || len(shapes.(treewire.List)) != 0 {
		t.Fatalf("shapes = %v, %v", shapes, ok)
	}
	data, ok := inst.Get("data")
	if !ok || len(data.(treewire.Bytes)) != 0 {
		t.Fatalf("data = %v, %v", data, ok)
	}
}

func TestDecode_EmptyRecordMissesRequired(t *testing.T) {
	_, err := decodeCanvas(t, `<Canvas><name>n</name><origin/></Canvas>`)
	fault := wantFault(t, err, treewire.CodeMissingProperty, "origin")
	if !strings.Contains(fault.Message, `"x"`) {
		t.Fatalf("message should name the nested property: %q", fault.Message)
	}
}

func TestDecode_ListItemFaultPath(t *testing.T) {
	_, err := decodeCanvas(t, `<Canvas><name>n</name><shapes>
		<Circle><radius>3</radius></Circle>
		<Circle><radius>oops</radius></Circle>
	</shapes></Canvas>`)
	fault := wantFault(t, err, treewire.CodeValueFormat, "shapes[1].radius")
	if got := fault.XPath(); got != "shapes/*[1]/radius" {
		t.Fatalf("xpath = %q", got)
	}
}

func TestDecode_UnexpectedElementName(t *testing.T) {
	_, err := decodeCanvas(t, `<Wrong/>`)
	wantFault(t, err, treewire.CodeUnexpectedElement, "")
}

func TestDecode_EmptyDocument(t *testing.T) {
	_, err := decodeCanvas(t, ``)
	wantFault(t, err, treewire.CodeUnexpectedEnd, "")
}

func TestDecode_TextWhereElementExpected(t *testing.T) {
	_, err := decodeCanvas(t, `hello<Canvas/>`)
	wantFault(t, err, treewire.CodeUnexpectedNode, "")
}

func TestDecode_InsignificantNodesEverywhere(t *testing.T) {
	inst, err := decodeCanvas(t, `<?xml version="1.0"?>
	<!-- preamble -->
	<Canvas>
		<!-- before -->
		<name>n</name>
		<!-- between -->
		<origin> <x> 1 </x> <!-- inner --> <y>2</y> </origin>
		<!-- after -->
	</Canvas>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	origin, _ := inst.Get("origin")
	if x, _ := origin.(*treewire.Instance).Get("x"); x.(treewire.Int) != 1 {
		t.Fatalf("x = %v", x)
	}
}

func TestDecode_ScalarLexicalForms(t *testing.T) {
	inst, err := decodeCanvas(t, `<Canvas>
		<name>n</name>
		<active>1</active>
		<scale> -INF </scale>
		<data>AA
 EC</data>
	</Canvas>`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := inst.Get("active"); v.(treewire.Bool) != true {
		t.Errorf("active = %v", v)
	}
	if v, _ := inst.Get("scale"); !math.IsInf(float64(v.(treewire.Float)), -1) {
		t.Errorf("scale = %v", v)
	}
	if v, _ := inst.Get("data"); string(v.(treewire.Bytes)) != "\x00\x01\x02" {
		t.Errorf("data = %v", v)
	}

	nan, err := decodeCanvas(t, `<Canvas><name>n</name><scale>NaN</scale></Canvas>`)
	if err != nil {
		t.Fatalf("decode NaN: %v", err)
	}
	if v, _ := nan.Get("scale"); !math.IsNaN(float64(v.(treewire.Float))) {
		t.Errorf("scale = %v", v)
	}
}

func TestDecode_UnknownEnumLiteral(t *testing.T) {
	_, err := decodeCanvas(t, `<Canvas><name>n</name><background>green</background></Canvas>`)
	fault := wantFault(t, err, treewire.CodeUnknownLiteral, "background")
	if !strings.Contains(fault.Message, "green") {
		t.Fatalf("message should carry the text: %q", fault.Message)
	}
}

func TestDecode_Namespace(t *testing.T) {
	const ns = "urn:example:canvas"
	doc := `<env:Canvas xmlns:env="` + ns + `"><env:name>n</env:name></env:Canvas>`

	if _, err := decodeCanvas(t, doc, treewire.DecodeOpt{Namespace: ns}); err != nil {
		t.Fatalf("prefixed: %v", err)
	}

	defaulted := `<Canvas xmlns="` + ns + `"><name>n</name></Canvas>`
	if _, err := decodeCanvas(t, defaulted, treewire.DecodeOpt{Namespace: ns}); err != nil {
		t.Fatalf("default xmlns: %v", err)
	}

	_, err := decodeCanvas(t, doc, treewire.DecodeOpt{Namespace: "urn:other"})
	wantFault(t, err, treewire.CodeNamespaceMismatch, "")

	// Unqualified document against an expected namespace.
	_, err = decodeCanvas(t, `<Canvas><name>n</name></Canvas>`, treewire.DecodeOpt{Namespace: ns})
	wantFault(t, err, treewire.CodeNamespaceMismatch, "")

	// No expectation: the local name alone decides.
	if _, err := decodeCanvas(t, doc); err != nil {
		t.Fatalf("raw-name matching: %v", err)
	}
}
