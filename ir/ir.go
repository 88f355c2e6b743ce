// Package ir defines the minimal three-address-code intermediate
// representation consumed by every analysis in this module.
//
// Per spec §1 the IR itself — statements, expressions, types, method
// bodies, class hierarchy — is assumed to be supplied by an external
// provider; building a real bytecode-to-IR lowering pipeline is explicitly
// out of scope. This package instead defines the provider's *contract*
// (the interfaces every solver is written against) together with a small,
// concrete, in-memory implementation of that contract, so the solvers are
// both usable standalone and testable without a real frontend — the same
// relationship the teacher's core package has to bfs/dfs/dijkstra: core
// owns the data model, the algorithm packages only consume it through
// small, documented surfaces.
package ir

import "fmt"

// Type identifies a declared type by name. Integer-like primitive types are
// distinguished because the constant-propagation lattice only tracks them
// (spec §4.3 canHoldInt).
type Type struct {
	Name      string
	Primitive bool // true for byte/short/int/char/boolean-equivalents
}

// IsIntLike reports whether values of this type are tracked by the integer
// lattice (spec §4.3: byte, short, int, char, boolean).
func (t Type) IsIntLike() bool {
	switch t.Name {
	case "byte", "short", "int", "char", "boolean":
		return true
	default:
		return false
	}
}

func (t Type) String() string { return t.Name }

// IntType, BoolType and RefType are convenience constructors for the
// primitive types this module's examples and tests construct most often.
func IntType() Type  { return Type{Name: "int", Primitive: true} }
func BoolType() Type { return Type{Name: "boolean", Primitive: true} }
func RefType(name string) Type { return Type{Name: name} }

// Var is a local variable or formal parameter of a method. Equality is by
// value over (Method, Name, Type); Var values are safe map keys.
type Var struct {
	Method *Method
	Name   string
	Type   Type
}

func (v Var) String() string { return v.Method.Name + "." + v.Name }

// CanHoldInt reports whether this variable's static type is tracked by the
// integer constant-propagation lattice.
func (v Var) CanHoldInt() bool { return v.Type.IsIntLike() }

// Obj identifies an allocation site ("new" statement); it is the object
// identity consumed by package pointer before any context is attached.
type Obj struct {
	Site Stmt // the New statement that allocates this object
	Type Type
}

func (o Obj) String() string {
	if o.Site == nil {
		return "obj<nil>"
	}
	return fmt.Sprintf("obj@%d:%s", o.Site.Index(), o.Type)
}
