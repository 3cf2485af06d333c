package treewire

// Package treewire encodes and decodes schema-typed tree documents.
//
// - A resolved object model (classes, properties, interfaces, enums) is
//   built once via NewSchema or the dsl package and shared read-only.
// - Decode walks a Cursor by recursive descent and returns either a fully
//   constructed instance graph or a *Error carrying a root-to-leaf path.
// - Encode writes an instance graph to a Sink in declaration order.
// - The Cursor/Sink capabilities come from a pluggable Driver; the default
//   driver reads and writes XML 1.0 text.
//
// Design policy:
// - Keep only public APIs in the root package; put the tokenizer under
//   internal/.
// - Place the builder under dsl/, model manifests under manifest/, and the
//   CLI under cmd/treewire.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema := buildSchema()
//	cls, _ := schema.Class("Environment")
//	inst, err := treewire.DecodeFrom(r, cls)
//	err = treewire.EncodeTo(inst, w, treewire.EncodeOpt{Prefix: "env", Namespace: ns})
