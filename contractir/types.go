// Package contractir is a minimal, in-memory concrete implementation of the
// ast package's AST-provider interfaces, used by tests and the CLI's example
// mode. A real deployment would get these nodes from an upstream parser and
// type-checker instead (spec.md §1 treats both as out of scope here).
package contractir

import (
	"strconv"

	"github.com/hornchc/checker/ast"
)

// Type is the concrete ast.Type implementation.
type Type struct {
	kind     ast.TypeKind
	bitWidth int
	signed   bool
	key      ast.Type
	value    ast.Type
	name     string
}

func (t *Type) Kind() ast.TypeKind { return t.kind }
func (t *Type) BitWidth() int      { return t.bitWidth }
func (t *Type) Signed() bool       { return t.signed }
func (t *Type) Key() ast.Type      { return t.key }
func (t *Type) Value() ast.Type    { return t.value }
func (t *Type) String() string     { return t.name }

// Bool is the boolean type.
var Bool ast.Type = &Type{kind: ast.TypeBool, name: "bool"}

// Address is the 160-bit account address type.
var Address ast.Type = &Type{kind: ast.TypeAddress, name: "address"}

// UintN returns the unsigned integer type of the given bit width
// (8, 16, ..., 256).
func UintN(width int) ast.Type {
	return &Type{kind: ast.TypeInt, bitWidth: width, signed: false, name: "uint" + strconv.Itoa(width)}
}

// IntN returns the signed integer type of the given bit width.
func IntN(width int) ast.Type {
	return &Type{kind: ast.TypeInt, bitWidth: width, signed: true, name: "int" + strconv.Itoa(width)}
}

// Mapping returns the mapping(key => value) type.
func Mapping(key, value ast.Type) ast.Type {
	return &Type{kind: ast.TypeMapping, key: key, value: value, name: "mapping(" + key.String() + "=>" + value.String() + ")"}
}

// FunctionType is the degenerate function-typed state variable case
// (spec.md §4.1 degrades these to Int in the sort catalogue).
var FunctionType ast.Type = &Type{kind: ast.TypeFunction, name: "function"}
