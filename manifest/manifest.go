// Package manifest reads and writes resolved-model snapshots: the
// interchange documents an external schema resolver produces. A manifest
// lists classes, interfaces and enums with their wire names; Load hands the
// declaration to treewire.NewSchema, which owns all structural validation.
//
// Property types use a compact syntax: bool, int, float, string, bytes,
// enum:NAME, record:NAME, poly:NAME and list:ITEM.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	treewire "github.com/treewire/treewire"
)

// Document is the manifest shape. Unknown fields are load errors.
type Document struct {
	Classes    []ClassEntry     `yaml:"classes,omitempty" json:"classes,omitempty"`
	Interfaces []InterfaceEntry `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Enums      []EnumEntry      `yaml:"enums,omitempty" json:"enums,omitempty"`
}

// ClassEntry declares one class; Name is the wire element name.
type ClassEntry struct {
	Name       string          `yaml:"name" json:"name"`
	Abstract   bool            `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Properties []PropertyEntry `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// PropertyEntry declares one property with its compact type string.
type PropertyEntry struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// InterfaceEntry declares one interface and its implementer class names.
type InterfaceEntry struct {
	Name         string   `yaml:"name" json:"name"`
	Implementers []string `yaml:"implementers" json:"implementers"`
}

// EnumEntry declares one enumeration with its ordered literal/wire pairs.
type EnumEntry struct {
	Name     string         `yaml:"name" json:"name"`
	Literals []LiteralEntry `yaml:"literals" json:"literals"`
}

// LiteralEntry pairs a literal name with its wire string.
type LiteralEntry struct {
	Literal string `yaml:"literal" json:"literal"`
	Wire    string `yaml:"wire" json:"wire"`
}

// Load reads a YAML manifest from r and resolves it into a schema.
func Load(r io.Reader) (*treewire.Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("manifest: decoding YAML: %w", err)
	}
	return resolve(doc)
}

// LoadBytes reads a YAML manifest from b.
func LoadBytes(b []byte) (*treewire.Schema, error) {
	return Load(bytes.NewReader(b))
}

// LoadJSON reads a JSON manifest from b.
func LoadJSON(b []byte) (*treewire.Schema, error) {
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("manifest: decoding JSON: %w", err)
	}
	return resolve(doc)
}

func resolve(doc Document) (*treewire.Schema, error) {
	var decl treewire.SchemaDecl
	for _, ce := range doc.Classes {
		cd := treewire.ClassDecl{Name: ce.Name, Abstract: ce.Abstract}
		for _, pe := range ce.Properties {
			ref, err := ParseType(pe.Type)
			if err != nil {
				return nil, fmt.Errorf("manifest: class %q: property %q: %w", ce.Name, pe.Name, err)
			}
			cd.Properties = append(cd.Properties, treewire.PropertyDecl{
				Name:     pe.Name,
				Type:     ref,
				Optional: pe.Optional,
			})
		}
		decl.Classes = append(decl.Classes, cd)
	}
	for _, ie := range doc.Interfaces {
		decl.Interfaces = append(decl.Interfaces, treewire.InterfaceDecl{
			Name:         ie.Name,
			Implementers: ie.Implementers,
		})
	}
	for _, ee := range doc.Enums {
		ed := treewire.EnumDecl{Name: ee.Name}
		for _, le := range ee.Literals {
			ed.Literals = append(ed.Literals, treewire.EnumLiteral{Literal: le.Literal, Wire: le.Wire})
		}
		decl.Enums = append(decl.Enums, ed)
	}
	s, err := treewire.NewSchema(decl)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return s, nil
}

// ParseType parses the compact type syntax into a declaration-level type.
func ParseType(s string) (treewire.TypeRef, error) {
	switch s {
	case "bool":
		return treewire.ScalarRef{Kind: treewire.ScalarBool}, nil
	case "int":
		return treewire.ScalarRef{Kind: treewire.ScalarInt}, nil
	case "float":
		return treewire.ScalarRef{Kind: treewire.ScalarFloat}, nil
	case "string":
		return treewire.ScalarRef{Kind: treewire.ScalarString}, nil
	case "bytes":
		return treewire.ScalarRef{Kind: treewire.ScalarBytes}, nil
	}
	switch {
	case strings.HasPrefix(s, "enum:"):
		return nameRef(s, "enum:", func(n string) treewire.TypeRef { return treewire.EnumRef{Name: n} })
	case strings.HasPrefix(s, "record:"):
		return nameRef(s, "record:", func(n string) treewire.TypeRef { return treewire.RecordRef{Name: n} })
	case strings.HasPrefix(s, "poly:"):
		return nameRef(s, "poly:", func(n string) treewire.TypeRef { return treewire.PolymorphicRef{Name: n} })
	case strings.HasPrefix(s, "list:"):
		item, err := ParseType(strings.TrimPrefix(s, "list:"))
		if err != nil {
			return nil, err
		}
		return treewire.ListRef{Item: item}, nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}

func nameRef(s, prefix string, mk func(string) treewire.TypeRef) (treewire.TypeRef, error) {
	n := strings.TrimPrefix(s, prefix)
	if n == "" {
		return nil, fmt.Errorf("missing name in type %q", s)
	}
	return mk(n), nil
}

// Dump renders a schema back into its YAML manifest form, so resolver
// output can be round-tripped and diffed.
func Dump(s *treewire.Schema) ([]byte, error) {
	var doc Document
	for _, c := range s.Classes() {
		ce := ClassEntry{Name: c.Name(), Abstract: c.Abstract()}
		for _, p := range c.Properties() {
			ce.Properties = append(ce.Properties, PropertyEntry{
				Name:     p.Name(),
				Type:     treewire.TypeString(p.Type()),
				Optional: p.Optional(),
			})
		}
		doc.Classes = append(doc.Classes, ce)
	}
	for _, i := range s.Interfaces() {
		ie := InterfaceEntry{Name: i.Name()}
		for _, c := range i.Implementers() {
			ie.Implementers = append(ie.Implementers, c.Name())
		}
		doc.Interfaces = append(doc.Interfaces, ie)
	}
	for _, e := range s.Enums() {
		ee := EnumEntry{Name: e.Name()}
		for _, l := range e.Literals() {
			ee.Literals = append(ee.Literals, LiteralEntry{Literal: l.Literal, Wire: l.Wire})
		}
		doc.Enums = append(doc.Enums, ee)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest: encoding YAML: %w", err)
	}
	return out, nil
}
