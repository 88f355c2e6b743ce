package interproc

import (
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/ir"
)

// aliasedVars returns base plus every variable package pointer's points-to
// results show may alias it (their merged points-to sets intersect),
// across every reachable method — the candidate set spec §4.8.1's
// heap-access transfer joins over. base is always included even if the
// pointer analysis recorded no points-to information for it.
func (r *runner) aliasedVars(base ir.Var) []ir.Var {
	basePts := r.pts.MergedVarPointsTo(base)

	out := []ir.Var{base}
	seen := map[ir.Var]struct{}{base: {}}
	for _, v := range r.pts.AllVars() {
		if _, ok := seen[v]; ok {
			continue
		}
		if !basePts.Intersects(r.pts.MergedVarPointsTo(v)) {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// loadFieldValue implements spec §4.8.1's instance/static field read: the
// meet of every aliased (or, for a static field, every) store's current
// RHS value.
func (r *runner) loadFieldValue(ld *ir.LoadField) constprop.Value {
	result := constprop.Undef()

	if ld.Base == nil {
		for _, n := range r.icfg.Nodes() {
			st, ok := n.(*ir.StoreField)
			if !ok || st.Base != nil || st.Field != ld.Field {
				continue
			}
			result = constprop.Meet(result, r.in[st].Get(st.RHS))
		}
		return result
	}

	for _, v := range r.aliasedVars(*ld.Base) {
		for _, st := range v.Method.StoreFields(v) {
			if st.Field != ld.Field {
				continue
			}
			result = constprop.Meet(result, r.in[st].Get(st.RHS))
		}
	}
	return result
}

// loadArrayValue implements spec §4.8.1's array read: the meet of every
// aliased store whose index is "compatible" (neither UNDEF, and either
// side NAC or both equal constants) with ld's own current index value.
func (r *runner) loadArrayValue(ld *ir.LoadArray, in constprop.CPFact) constprop.Value {
	result := constprop.Undef()
	ldIndex := in.Get(ld.Index)

	for _, v := range r.aliasedVars(ld.Base) {
		for _, st := range v.Method.StoreArrays(v) {
			stIndex := r.in[st].Get(st.Index)
			if !indexCompatible(ldIndex, stIndex) {
				continue
			}
			result = constprop.Meet(result, r.in[st].Get(st.RHS))
		}
	}
	return result
}

// aliasedFieldReaders returns every LoadField statement that reads a field
// a store to st's base (or, for a static store, a direct static load of
// the same field) could alias — the set spec §9's fix re-enqueues on every
// processing of st, regardless of whether st's own OUT changed.
func (r *runner) aliasedFieldReaders(st *ir.StoreField) []ir.Stmt {
	var out []ir.Stmt

	if st.Base == nil {
		for _, n := range r.icfg.Nodes() {
			ld, ok := n.(*ir.LoadField)
			if ok && ld.Base == nil && ld.Field == st.Field {
				out = append(out, ld)
			}
		}
		return out
	}

	for _, v := range r.aliasedVars(*st.Base) {
		for _, ld := range v.Method.LoadFields(v) {
			if ld.Field == st.Field {
				out = append(out, ld)
			}
		}
	}
	return out
}

// aliasedArrayReaders returns every LoadArray statement whose base may
// alias st's base, regardless of index (index compatibility is re-checked
// by loadArrayValue using whatever facts are current when the reader is
// next processed).
func (r *runner) aliasedArrayReaders(st *ir.StoreArray) []ir.Stmt {
	var out []ir.Stmt
	for _, v := range r.aliasedVars(st.Base) {
		out = append(out, varLoadArraysAsStmts(v)...)
	}
	return out
}

func varLoadArraysAsStmts(v ir.Var) []ir.Stmt {
	lds := v.Method.LoadArrays(v)
	out := make([]ir.Stmt, 0, len(lds))
	for _, ld := range lds {
		out = append(out, ld)
	}
	return out
}

// indexCompatible implements spec §4.8.1's index-compatibility predicate:
// false if either side is UNDEF (unreachable/not-yet-analyzed); true if
// either side is NAC (no constant information to rule the access out);
// otherwise true only if both sides are the same constant.
func indexCompatible(i, j constprop.Value) bool {
	if i.IsUndef() || j.IsUndef() {
		return false
	}
	if i.IsNAC() || j.IsNAC() {
		return true
	}
	a, _ := i.Int()
	b, _ := j.Int()
	return a == b
}
