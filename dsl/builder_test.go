package dsl_test

import (
	"testing"

	treewire "github.com/treewire/treewire"
	g "github.com/treewire/treewire/dsl"
)

func TestBuilder_FullModel(t *testing.T) {
	s, err := g.NewSchema().
		Enum("colour", g.Lit("Red", "red"), g.Lit("Blue", "blue")).
		Class("Circle", g.Prop("radius", g.Float())).
		Class("Square", g.Prop("side", g.Float())).
		Interface("Shape", "Circle", "Square").
		Class("Point", g.Prop("x", g.Int()), g.Prop("y", g.Int())).
		Class("Canvas",
			g.Prop("name", g.String()),
			g.Opt("origin", g.RecordOf("Point")),
			g.Opt("background", g.EnumOf("colour")),
			g.Opt("shapes", g.ListOf(g.PolyOf("Shape"))),
		).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cls, ok := s.Class("Canvas")
	if !ok {
		t.Fatalf("Canvas not found")
	}
	props := cls.Properties()
	if len(props) != 4 || props[0].Name() != "name" || props[3].Name() != "shapes" {
		t.Fatalf("unexpected property order: %+v", props)
	}
	if p, _ := cls.Property("origin"); !p.Optional() {
		t.Fatalf("origin should be optional")
	}

	iface, ok := s.Interface("Shape")
	if !ok {
		t.Fatalf("Shape not found")
	}
	if impl, ok := iface.ByWireName("Square"); !ok || impl.Name() != "Square" {
		t.Fatalf("dispatch table miss for Square")
	}

	e, ok := s.Enum("colour")
	if !ok {
		t.Fatalf("colour not found")
	}
	if lit, ok := e.LiteralOf("blue"); !ok || lit != "Blue" {
		t.Fatalf("wire lookup miss: %q %v", lit, ok)
	}
}

func TestBuilder_ErrorsSurfaceAtBuild(t *testing.T) {
	_, err := g.NewSchema().
		Class("A", g.Prop("x", g.RecordOf("Missing"))).
		Build()
	if err == nil {
		t.Fatalf("expected an unknown-class error")
	}
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	g.NewSchema().Class("A", g.Prop("x", g.ListOf(g.Int()))).MustBuild()
}

func TestBuilder_DeclIsPlainData(t *testing.T) {
	decl := g.NewSchema().Class("A", g.Prop("x", g.Int())).Decl()
	if len(decl.Classes) != 1 || decl.Classes[0].Name != "A" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	if _, err := treewire.NewSchema(decl); err != nil {
		t.Fatalf("NewSchema over Decl: %v", err)
	}
}
