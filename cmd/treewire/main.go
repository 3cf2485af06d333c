package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	"github.com/sergi/go-diff/diffmatchpatch"

	treewire "github.com/treewire/treewire"
	"github.com/treewire/treewire/manifest"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "schema":
		schemaCmd(os.Args[2:])
	case "decode":
		decodeCmd(os.Args[2:])
	case "roundtrip":
		roundtripCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `treewire CLI

Usage:
  treewire schema    -manifest model.yaml
  treewire decode    -manifest model.yaml -class NAME [-ns URI] [-json] doc.xml
  treewire roundtrip -manifest model.yaml -class NAME [-ns URI] [-prefix P] doc.xml`)
}

func loadSchema(path string) *treewire.Schema {
	f, err := os.Open(path)
	if err != nil {
		fatalf("opening manifest: %v", err)
	}
	defer f.Close()
	s, err := manifest.Load(f)
	if err != nil {
		fatalf("%v", err)
	}
	return s
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var manifestPath string
	fs.StringVar(&manifestPath, "manifest", "", "resolved-model manifest (YAML)")
	_ = fs.Parse(args)
	if manifestPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	s := loadSchema(manifestPath)

	head := color.New(color.Bold)
	for _, c := range s.Classes() {
		kind := "class"
		if c.Abstract() {
			kind = "abstract class"
		}
		head.Printf("%s %s\n", kind, c.Name())
		for _, p := range c.Properties() {
			opt := ""
			if p.Optional() {
				opt = " (optional)"
			}
			fmt.Printf("  %s: %s%s\n", p.Name(), treewire.TypeString(p.Type()), opt)
		}
	}
	for _, i := range s.Interfaces() {
		head.Printf("interface %s\n", i.Name())
		for _, c := range i.Implementers() {
			fmt.Printf("  %s\n", c.Name())
		}
	}
	for _, e := range s.Enums() {
		head.Printf("enum %s\n", e.Name())
		for _, l := range e.Literals() {
			fmt.Printf("  %s = %q\n", l.Literal, l.Wire)
		}
	}
	fmt.Printf("fingerprint: %016x\n", s.Fingerprint())
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var manifestPath, className, ns string
	var asJSON bool
	fs.StringVar(&manifestPath, "manifest", "", "resolved-model manifest (YAML)")
	fs.StringVar(&className, "class", "", "wire name of the class to decode")
	fs.StringVar(&ns, "ns", "", "expected namespace URI")
	fs.BoolVar(&asJSON, "json", false, "dump the decoded instance as JSON")
	_ = fs.Parse(args)
	if manifestPath == "" || className == "" || fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	s := loadSchema(manifestPath)
	cls, ok := s.Class(className)
	if !ok {
		fatalf("schema has no class %q", className)
	}

	doc, err := os.Open(fs.Arg(0))
	if err != nil {
		fatalf("opening document: %v", err)
	}
	defer doc.Close()

	inst, err := treewire.DecodeFrom(doc, cls, treewire.DecodeOpt{Namespace: ns})
	if err != nil {
		reportDecodeError(err)
		os.Exit(1)
	}
	color.Green("ok: %s", cls.Name())
	if asJSON {
		out, jerr := gojson.MarshalIndent(inst.Map(), "", "  ")
		if jerr != nil {
			fatalf("rendering JSON: %v", jerr)
		}
		fmt.Println(string(out))
	}
}

func roundtripCmd(args []string) {
	fs := flag.NewFlagSet("roundtrip", flag.ExitOnError)
	var manifestPath, className, ns, prefix string
	fs.StringVar(&manifestPath, "manifest", "", "resolved-model manifest (YAML)")
	fs.StringVar(&className, "class", "", "wire name of the class to decode")
	fs.StringVar(&ns, "ns", "", "expected namespace URI")
	fs.StringVar(&prefix, "prefix", "", "element prefix for the re-encoded output")
	_ = fs.Parse(args)
	if manifestPath == "" || className == "" || fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	s := loadSchema(manifestPath)
	cls, ok := s.Class(className)
	if !ok {
		fatalf("schema has no class %q", className)
	}

	input, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatalf("reading document: %v", err)
	}
	inst, err := treewire.DecodeBytes(input, cls, treewire.DecodeOpt{Namespace: ns})
	if err != nil {
		reportDecodeError(err)
		os.Exit(1)
	}
	output, err := treewire.EncodeBytes(inst, treewire.EncodeOpt{Prefix: prefix, Namespace: ns})
	if err != nil {
		fatalf("re-encoding: %v", err)
	}

	if string(input) == string(output) {
		color.Green("identical")
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(input), string(output), false)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			color.New(color.FgGreen).Print(d.Text)
		case diffmatchpatch.DiffDelete:
			color.New(color.FgRed).Print(d.Text)
		default:
			fmt.Print(d.Text)
		}
	}
	fmt.Println()
}

func reportDecodeError(err error) {
	if fault, ok := treewire.AsError(err); ok {
		color.Red("%s", fault.Code)
		fmt.Fprintf(os.Stderr, "%s\n", fault.Error())
		fmt.Fprintf(os.Stderr, "  path:  %s\n", fault.Path())
		fmt.Fprintf(os.Stderr, "  xpath: %s\n", fault.XPath())
		return
	}
	fmt.Fprintf(os.Stderr, "reading document: %v\n", err)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
