package treewire_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	treewire "github.com/treewire/treewire"
	g "github.com/treewire/treewire/dsl"
)

// ---- Helpers ----

func gallerySchema(tb testing.TB) *treewire.Schema {
	tb.Helper()
	return g.NewSchema().
		Class("Circle", g.Prop("radius", g.Int())).
		Class("Square", g.Prop("side", g.Int())).
		Interface("Shape", "Circle", "Square").
		Class("Gallery",
			g.Prop("name", g.String()),
			g.Opt("shapes", g.ListOf(g.PolyOf("Shape"))),
		).
		MustBuild()
}

// generateGalleryXML renders a Gallery with numShapes alternating Circle and
// Square items.
func generateGalleryXML(numShapes int) []byte {
	var buf bytes.Buffer
	buf.Grow(numShapes * 48)
	buf.WriteString("<Gallery><name>bench</name><shapes>")
	for i := 0; i < numShapes; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&buf, "<Circle><radius>%d</radius></Circle>", i)
		} else {
			fmt.Fprintf(&buf, "<Square><side>%d</side></Square>", i)
		}
	}
	buf.WriteString("</shapes></Gallery>")
	return buf.Bytes()
}

func galleryInstance(tb testing.TB, s *treewire.Schema, numShapes int) *treewire.Instance {
	tb.Helper()
	circle, _ := s.Class("Circle")
	square, _ := s.Class("Square")
	gallery, _ := s.Class("Gallery")
	shapes := make(treewire.List, 0, numShapes)
	for i := 0; i < numShapes; i++ {
		if i%2 == 0 {
			shapes = append(shapes, treewire.MustNewInstance(circle, treewire.Fields{
				"radius": treewire.Int(i),
			}))
		} else {
			shapes = append(shapes, treewire.MustNewInstance(square, treewire.Fields{
				"side": treewire.Int(i),
			}))
		}
	}
	return treewire.MustNewInstance(gallery, treewire.Fields{
		"name":   treewire.String("bench"),
		"shapes": shapes,
	})
}

// ---- Micro benchmarks (small inputs) ----

func Benchmark_Decode_Gallery_Small(b *testing.B) {
	s := gallerySchema(b)
	gallery, _ := s.Class("Gallery")
	data := generateGalleryXML(4)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := treewire.DecodeBytes(data, gallery); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}

func Benchmark_Encode_Gallery_Small(b *testing.B) {
	s := gallerySchema(b)
	inst := galleryInstance(b, s, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := treewire.EncodeTo(inst, io.Discard); err != nil {
			b.Fatalf("encode failed: %v", err)
		}
	}
}

// ---- Macro benchmarks (large item lists) ----

func Benchmark_Decode_Gallery_1kShapes(b *testing.B) {
	s := gallerySchema(b)
	gallery, _ := s.Class("Gallery")
	data := generateGalleryXML(1000)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := treewire.DecodeBytes(data, gallery); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}

func Benchmark_Encode_Gallery_1kShapes(b *testing.B) {
	s := gallerySchema(b)
	inst := galleryInstance(b, s, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := treewire.EncodeTo(inst, io.Discard); err != nil {
			b.Fatalf("encode failed: %v", err)
		}
	}
}

func Benchmark_RoundTrip_Gallery(b *testing.B) {
	s := gallerySchema(b)
	gallery, _ := s.Class("Gallery")
	data := generateGalleryXML(100)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inst, err := treewire.DecodeBytes(data, gallery)
		if err != nil {
			b.Fatalf("decode failed: %v", err)
		}
		if err := treewire.EncodeTo(inst, io.Discard); err != nil {
			b.Fatalf("encode failed: %v", err)
		}
	}
}
