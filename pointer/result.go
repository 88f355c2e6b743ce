package pointer

import "github.com/taclab/tacflow/ir"

// Result is the read-only-after-solve points-to table and on-the-fly call
// graph Solve publishes (spec §6: "points-to set per variable, per field,
// per array").
type Result struct {
	interner *interner
	pts      map[PointerID]*PointsToSet
	cg       *CSCallGraph
}

// PointsTo returns the points-to set recorded for id (never nil).
func (r *Result) PointsTo(id PointerID) *PointsToSet {
	if s := r.pts[id]; s != nil {
		return s
	}
	return NewPointsToSet()
}

// Describe recovers the human-readable Pointer behind id.
func (r *Result) Describe(id PointerID) Pointer { return r.interner.Describe(id) }

// CallGraph returns the context-sensitive call graph built alongside the
// points-to fixed point.
func (r *Result) CallGraph() *CSCallGraph { return r.cg }

// VarPointsTo returns the points-to set recorded for CSVar(ctx, v), or an
// empty set if that variable was never interned during the run.
func (r *Result) VarPointsTo(ctx Context, v ir.Var) *PointsToSet {
	id, ok := r.interner.lookup(Pointer{kind: kindVar, ctx: ctx, v: v})
	if !ok {
		return NewPointsToSet()
	}
	return r.PointsTo(id)
}

// Aliases reports whether x and y's points-to sets intersect (spec §3/§4.8.1).
func (r *Result) Aliases(x, y PointerID) bool {
	return r.PointsTo(x).Intersects(r.PointsTo(y))
}

// AllVars returns every distinct variable the pointer analysis interned a
// CSVar pointer for, in first-seen order. Package interproc's heap-access
// transfer (spec §4.8.1) uses this as the universe of candidate aliases
// for a given base variable, since the ICFG itself is context-insensitive
// and has no other catalog of "every variable in the program" to scan.
func (r *Result) AllVars() []ir.Var {
	seen := make(map[ir.Var]struct{})
	var out []ir.Var
	for _, p := range r.interner.ptrs {
		if p.kind != kindVar {
			continue
		}
		if _, ok := seen[p.v]; ok {
			continue
		}
		seen[p.v] = struct{}{}
		out = append(out, p.v)
	}
	return out
}

// MergedVarPointsTo unions v's points-to set across every context the
// pointer analysis recorded for it. Under a context-insensitive run this is
// just v's single set; under a context-sensitive run it is the sound
// over-approximation interproc's alias oracle needs, since the ICFG it
// walks carries no context of its own (spec §4.8.1: "the alias oracle is
// sound-over-approximate").
func (r *Result) MergedVarPointsTo(v ir.Var) *PointsToSet {
	merged := NewPointsToSet()
	for id, p := range r.interner.ptrs {
		if p.kind != kindVar || p.v != v {
			continue
		}
		for _, o := range r.PointsTo(PointerID(id)).Objects() {
			merged.Add(o)
		}
	}
	return merged
}
