// Package dsl builds treewire schemas fluently. It assembles a
// treewire.SchemaDecl under the hood and hands it to treewire.NewSchema,
// which does all validation; the builder itself never fails early.
//
//	schema := dsl.NewSchema().
//		Enum("colour", dsl.Lit("Red", "red"), dsl.Lit("Blue", "blue")).
//		Class("Circle", dsl.Prop("radius", dsl.Float())).
//		Class("Square", dsl.Prop("side", dsl.Float())).
//		Interface("Shape", "Circle", "Square").
//		Class("Canvas",
//			dsl.Prop("name", dsl.String()),
//			dsl.Opt("shapes", dsl.ListOf(dsl.PolyOf("Shape"))),
//		).
//		MustBuild()
package dsl

import (
	treewire "github.com/treewire/treewire"
)

// SchemaBuilder accumulates declarations. Zero value is not usable; start
// with NewSchema.
type SchemaBuilder struct {
	decl treewire.SchemaDecl
}

// NewSchema creates an empty builder.
func NewSchema() *SchemaBuilder {
	return &SchemaBuilder{}
}

// Class declares a concrete class with its properties in declaration order.
// The name is the wire element name.
func (b *SchemaBuilder) Class(name string, props ...treewire.PropertyDecl) *SchemaBuilder {
	b.decl.Classes = append(b.decl.Classes, treewire.ClassDecl{Name: name, Properties: props})
	return b
}

// AbstractClass declares an abstract class. It carries no own element
// decoding and is reachable only through an Interface.
func (b *SchemaBuilder) AbstractClass(name string, props ...treewire.PropertyDecl) *SchemaBuilder {
	b.decl.Classes = append(b.decl.Classes, treewire.ClassDecl{Name: name, Abstract: true, Properties: props})
	return b
}

// Interface declares an interface with its concrete implementers by class
// name, in dispatch-table order.
func (b *SchemaBuilder) Interface(name string, implementers ...string) *SchemaBuilder {
	b.decl.Interfaces = append(b.decl.Interfaces, treewire.InterfaceDecl{Name: name, Implementers: implementers})
	return b
}

// Enum declares an enumeration with its ordered literal/wire pairs.
func (b *SchemaBuilder) Enum(name string, literals ...treewire.EnumLiteral) *SchemaBuilder {
	b.decl.Enums = append(b.decl.Enums, treewire.EnumDecl{Name: name, Literals: literals})
	return b
}

// Decl returns the accumulated declaration as-is.
func (b *SchemaBuilder) Decl() treewire.SchemaDecl { return b.decl }

// Build resolves the accumulated declaration into a schema.
func (b *SchemaBuilder) Build() (*treewire.Schema, error) {
	return treewire.NewSchema(b.decl)
}

// MustBuild is like Build but panics on error. Intended for schemas declared
// in source, where a failure is a programming bug.
func (b *SchemaBuilder) MustBuild() *treewire.Schema {
	return treewire.MustNewSchema(b.decl)
}

// Lit pairs an in-memory literal name with its wire string.
func Lit(literal, wire string) treewire.EnumLiteral {
	return treewire.EnumLiteral{Literal: literal, Wire: wire}
}

// Prop declares a required property.
func Prop(name string, typ treewire.TypeRef) treewire.PropertyDecl {
	return treewire.PropertyDecl{Name: name, Type: typ}
}

// Opt declares an optional property.
func Opt(name string, typ treewire.TypeRef) treewire.PropertyDecl {
	return treewire.PropertyDecl{Name: name, Type: typ, Optional: true}
}

// Bool declares boolean scalar content.
func Bool() treewire.TypeRef { return treewire.ScalarRef{Kind: treewire.ScalarBool} }

// Int declares integer scalar content.
func Int() treewire.TypeRef { return treewire.ScalarRef{Kind: treewire.ScalarInt} }

// Float declares floating-point scalar content.
func Float() treewire.TypeRef { return treewire.ScalarRef{Kind: treewire.ScalarFloat} }

// String declares string scalar content.
func String() treewire.TypeRef { return treewire.ScalarRef{Kind: treewire.ScalarString} }

// Bytes declares byte-sequence content, base64 text on the wire.
func Bytes() treewire.TypeRef { return treewire.ScalarRef{Kind: treewire.ScalarBytes} }

// EnumOf declares enum content by enumeration name.
func EnumOf(name string) treewire.TypeRef { return treewire.EnumRef{Name: name} }

// RecordOf declares inline record content by concrete class name.
func RecordOf(name string) treewire.TypeRef { return treewire.RecordRef{Name: name} }

// PolyOf declares polymorphic content by interface name.
func PolyOf(name string) treewire.TypeRef { return treewire.PolymorphicRef{Name: name} }

// ListOf declares list content; item must be a record or polymorphic type.
func ListOf(item treewire.TypeRef) treewire.TypeRef { return treewire.ListRef{Item: item} }
