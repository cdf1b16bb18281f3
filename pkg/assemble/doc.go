// Package assemble builds a pkg/model.Image from the JSON documents the
// rest of the toolchain produces for each program version. It mirrors the
// teacher's pkg/callgraph.Generator two-phase shape (load everything that
// doesn't need cross-referencing, then resolve the edges that do) except
// here the input is already-structured JSON instead of Go source: phase
// one creates every class/method/field as a node, phase two resolves
// parent/interface/return/parameter/field-type references and call/field
// access edges, creating non-real placeholder classes for anything an
// edge points at that phase one never declared.
package assemble
