// Package constprop implements the integer constant-propagation lattice and
// analysis (spec §4.3, component C3): Value = {UNDEF, CONST(n), NAC}, the
// expression evaluator, and a dataflow.Analysis wiring it to the generic
// solver in package dataflow.
package constprop

import (
	"fmt"

	"github.com/taclab/tacflow/ir"
)

type valueKind int

const (
	undefKind valueKind = iota
	constKind
	nacKind
)

// Value is the tagged lattice element of spec §3: UNDEF ⊏ CONST(n) ⊏ NAC.
// Constructed only via Undef/Const/NAC; comparable with ==.
type Value struct {
	kind valueKind
	n    int32
}

// Undef is the lattice bottom: "not yet known to hold any value".
func Undef() Value { return Value{kind: undefKind} }

// Const wraps a known integer value.
func Const(n int32) Value { return Value{kind: constKind, n: n} }

// NAC is the lattice top: "not a (single) constant".
func NAC() Value { return Value{kind: nacKind} }

// IsUndef, IsConst, IsNAC report which lattice element this is.
func (v Value) IsUndef() bool { return v.kind == undefKind }
func (v Value) IsConst() bool { return v.kind == constKind }
func (v Value) IsNAC() bool   { return v.kind == nacKind }

// Int returns the constant value and true, or (0, false) if v is not CONST.
func (v Value) Int() (int32, bool) {
	if v.kind != constKind {
		return 0, false
	}
	return v.n, true
}

func (v Value) String() string {
	switch v.kind {
	case undefKind:
		return "UNDEF"
	case nacKind:
		return "NAC"
	default:
		return fmt.Sprintf("CONST(%d)", v.n)
	}
}

// Meet implements spec §3's ⊓: NAC absorbs, UNDEF is identity, two equal
// constants meet to themselves, two unequal constants meet to NAC.
func Meet(a, b Value) Value {
	if a.kind == nacKind || b.kind == nacKind {
		return NAC()
	}
	if a.kind == undefKind {
		return b
	}
	if b.kind == undefKind {
		return a
	}
	if a.n == b.n {
		return a
	}
	return NAC()
}

// CPFact maps a variable to its Value; an absent key denotes UNDEF (spec
// §3's CPFact convention).
type CPFact map[ir.Var]Value

// NewCPFact returns an empty fact (every variable implicitly UNDEF).
func NewCPFact() CPFact { return make(CPFact) }

// Get returns f[v], or Undef() if v is absent — the §3 convention made explicit.
func (f CPFact) Get(v ir.Var) Value {
	if val, ok := f[v]; ok {
		return val
	}
	return Undef()
}

// Copy returns an independent shallow copy of f.
func (f CPFact) Copy() CPFact {
	out := make(CPFact, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Equal reports whether f and other assign the same Value to every key
// either mentions (absent keys compare equal to an explicit Undef()).
func (f CPFact) Equal(other CPFact) bool {
	if len(f) != len(other) {
		for k := range f {
			if f.Get(k) != other.Get(k) {
				return false
			}
		}
		for k := range other {
			if f.Get(k) != other.Get(k) {
				return false
			}
		}
		return true
	}
	for k, v := range f {
		if other.Get(k) != v {
			return false
		}
	}
	return true
}

// MeetInto merges src into dst pointwise via Meet and returns dst.
func MeetInto(dst, src CPFact) CPFact {
	for k, v := range src {
		dst[k] = Meet(dst.Get(k), v)
	}
	return dst
}
