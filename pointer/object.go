package pointer

import (
	"fmt"

	"github.com/taclab/tacflow/ir"
)

// CSObj is a heap (or taint) object keyed by its context, per spec §4.7's
// CSObj(ctx, Obj(a)). Taint is set only for objects minted by package taint
// (spec §4.9); Source records the originating call so taint flows can later
// report it, and never participates in non-taint equality concerns (two
// non-taint CSObjs are equal iff Ctx and Base match).
type CSObj struct {
	Ctx   Context
	Base  ir.Obj
	Taint bool
	Source ir.CallSite
}

func (o CSObj) String() string {
	if o.Taint {
		return fmt.Sprintf("taint<%s>@%s[%s]", o.Base.Type, o.Ctx.key(), siteKey(o.Source))
	}
	return fmt.Sprintf("%s@%s", o.Base, o.Ctx.key())
}

// ptrKind tags which of the four Pointer shapes spec §4.7 names a given
// interned entity is.
type ptrKind int

const (
	kindVar ptrKind = iota
	kindInstanceField
	kindArrayIndex
	kindStaticField
)

// Pointer is the uninterned identity of one of spec §4.7's four pointer
// entities: CSVar(ctx, v), InstanceField(o, f), ArrayIndex(o), StaticField(f).
// It is comparable, so it can key the interner's map directly.
type Pointer struct {
	kind  ptrKind
	ctx   Context
	v     ir.Var
	obj   CSObj
	field ir.Field
}

func (p Pointer) String() string {
	switch p.kind {
	case kindVar:
		return fmt.Sprintf("%s@%s", p.v, p.ctx.key())
	case kindInstanceField:
		return fmt.Sprintf("%s.%s", p.obj, p.field.Name)
	case kindArrayIndex:
		return fmt.Sprintf("%s[*]", p.obj)
	default:
		return fmt.Sprintf("%s.%s", p.field.DeclaringClass, p.field.Name)
	}
}

// PointerID is the dense, interned identity of a Pointer — what the PFG,
// the worklist, and PointsToSet tables actually index by (spec §9:
// "Pointer is interned into a dense id").
type PointerID int

// interner assigns a stable, insertion-ordered PointerID to every distinct
// Pointer requested, mirroring the teacher's core.Graph vertex-index table.
type interner struct {
	ids  map[Pointer]PointerID
	ptrs []Pointer
}

func newInterner() *interner {
	return &interner{ids: make(map[Pointer]PointerID)}
}

// lookup returns the id already assigned to p, without interning it.
func (in *interner) lookup(p Pointer) (PointerID, bool) {
	id, ok := in.ids[p]
	return id, ok
}

func (in *interner) intern(p Pointer) PointerID {
	if id, ok := in.ids[p]; ok {
		return id
	}
	id := PointerID(len(in.ptrs))
	in.ids[p] = id
	in.ptrs = append(in.ptrs, p)
	return id
}

// Describe recovers the human-readable Pointer behind id, for reporting.
func (in *interner) Describe(id PointerID) Pointer { return in.ptrs[id] }

func (in *interner) varPtr(ctx Context, v ir.Var) PointerID {
	return in.intern(Pointer{kind: kindVar, ctx: ctx, v: v})
}

func (in *interner) instanceField(o CSObj, f ir.Field) PointerID {
	return in.intern(Pointer{kind: kindInstanceField, obj: o, field: f})
}

func (in *interner) arrayIndex(o CSObj) PointerID {
	return in.intern(Pointer{kind: kindArrayIndex, obj: o})
}

func (in *interner) staticField(f ir.Field) PointerID {
	return in.intern(Pointer{kind: kindStaticField, field: f})
}

// PointsToSet is an insertion-ordered, monotone (add-only) set of CSObj,
// giving the reproducible iteration order spec §4.7/§5/§8-law-4 require.
type PointsToSet struct {
	objs []CSObj
	set  map[CSObj]struct{}
}

// NewPointsToSet returns an empty set.
func NewPointsToSet() *PointsToSet {
	return &PointsToSet{set: make(map[CSObj]struct{})}
}

// Add inserts o if absent, returning true iff it was newly added.
func (s *PointsToSet) Add(o CSObj) bool {
	if _, ok := s.set[o]; ok {
		return false
	}
	s.set[o] = struct{}{}
	s.objs = append(s.objs, o)
	return true
}

// Contains reports whether o is a member.
func (s *PointsToSet) Contains(o CSObj) bool {
	_, ok := s.set[o]
	return ok
}

// Objects returns every member, in insertion order.
func (s *PointsToSet) Objects() []CSObj { return s.objs }

// Len reports the set's size.
func (s *PointsToSet) Len() int { return len(s.objs) }

// Intersects reports whether s and other share at least one object — the
// alias predicate of spec §3/§4.8.1: pts(x) ∩ pts(y) ≠ ∅.
func (s *PointsToSet) Intersects(other *PointsToSet) bool {
	if s == nil || other == nil {
		return false
	}
	small, big := s, other
	if big.Len() < small.Len() {
		small, big = big, small
	}
	for _, o := range small.objs {
		if big.Contains(o) {
			return true
		}
	}
	return false
}
