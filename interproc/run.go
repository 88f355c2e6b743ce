package interproc

import (
	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/internal/worklist"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/pointer"
)

// Result is the IN/OUT constant-propagation fact table over every ICFG
// node, published once Run's fixed point converges.
type Result struct {
	in, out map[ir.Stmt]constprop.CPFact
}

// In and Out return the fact recorded for n (an empty CPFact, not nil, if n
// was never visited).
func (r *Result) In(n ir.Stmt) constprop.CPFact {
	if f, ok := r.in[n]; ok {
		return f
	}
	return constprop.NewCPFact()
}

func (r *Result) Out(n ir.Stmt) constprop.CPFact {
	if f, ok := r.out[n]; ok {
		return f
	}
	return constprop.NewCPFact()
}

// runner holds the shared, mutable fact table the heap-access transfer of
// spec §4.8.1 needs to read: unlike the single-method solver in package
// dataflow, a LoadField/LoadArray transfer here must consult the current IN
// fact of other statements (every aliased store, possibly in a different
// method) while the fixed point is still converging. dataflow.Analysis's
// per-node TransferNode callback has no way to reach such global state, so
// this package runs its own worklist loop instead of dataflow.Solve,
// mirroring that solver's shape (see dataflow/dataflow.go) while keeping
// in/out as runner fields every transfer can close over.
type runner struct {
	icfg *ICFG
	pts  *pointer.Result
	in   map[ir.Stmt]constprop.CPFact
	out  map[ir.Stmt]constprop.CPFact
}

// Run computes the alias-aware interprocedural constant-propagation fixed
// point over icfg (spec §4.8/§4.8.1), using pts as the points-to oracle for
// heap-access aliasing.
func Run(icfg *ICFG, pts *pointer.Result, opts ...Option) (*Result, error) {
	if _, err := applyOptions(opts); err != nil {
		return nil, err
	}

	r := &runner{
		icfg: icfg,
		pts:  pts,
		in:   make(map[ir.Stmt]constprop.CPFact),
		out:  make(map[ir.Stmt]constprop.CPFact),
	}

	nodes := icfg.Nodes()
	for _, n := range nodes {
		r.in[n] = constprop.NewCPFact()
		r.out[n] = constprop.NewCPFact()
	}

	entry := icfg.Entry()
	r.out[entry] = constprop.BoundaryFact(entry.Method().Params)

	q := worklist.New[ir.Stmt]()
	for _, n := range nodes {
		if n != entry {
			q.Push(n)
		}
	}

	for q.Len() > 0 {
		n := q.Pop()

		merged := constprop.NewCPFact()
		for _, e := range icfg.InEdges(n) {
			merged = constprop.MeetInto(merged, r.transferEdge(e))
		}
		r.in[n] = merged

		newOut, changed := r.transferNode(n, merged)
		r.out[n] = newOut
		if changed {
			q.PushAll(icfg.Succs(n))
		}

		// Spec §9's flagged fix: re-enqueue every aliased reader each time a
		// relevant store is processed, regardless of the store's own
		// `changed` flag — a store binds no variable (its OUT is just its
		// IN), and its readers are generally not its ICFG successors.
		switch st := n.(type) {
		case *ir.StoreField:
			q.PushAll(r.aliasedFieldReaders(st))
		case *ir.StoreArray:
			q.PushAll(r.aliasedArrayReaders(st))
		}
	}

	return &Result{in: r.in, out: r.out}, nil
}

// transferEdge implements spec §4.8's four edge transfers. Normal is
// identity; CallToReturn erases the call's own LHS binding (the callee's
// effect on it arrives separately via the Return edge into the same
// successor); Call seeds the callee's formals from the caller's actuals in
// a fresh fact; Return binds the call's LHS (if any) to the meet of the
// callee's return variables, in a fact that is otherwise empty so meeting
// it with CallToReturn's contribution leaves every other variable
// untouched (MeetInto's absent-key-is-UNDEF convention makes UNDEF the
// meet identity).
func (r *runner) transferEdge(e ICFGEdge) constprop.CPFact {
	switch e.Kind {
	case cfg.CallToReturn:
		f := r.out[e.From].Copy()
		if e.Site.LHS != nil {
			delete(f, *e.Site.LHS)
		}
		return f

	case cfg.Call:
		callee := e.To.Method()
		f := constprop.NewCPFact()
		for i, p := range callee.Params {
			if i < len(e.Site.Args) {
				f[p] = r.out[e.From].Get(e.Site.Args[i])
			}
		}
		return f

	case cfg.Return:
		f := constprop.NewCPFact()
		if e.Site.LHS != nil {
			callee := e.From.Method()
			rv := constprop.Undef()
			for _, v := range callee.ReturnVars {
				rv = constprop.Meet(rv, r.out[e.From].Get(v))
			}
			f[*e.Site.LHS] = rv
		}
		return f

	default: // cfg.Normal
		return r.out[e.From]
	}
}

// transferNode implements the per-node half of spec §4.8: a call node's OUT
// is an identity copy of its IN (transferCallNode — all of the real work
// for a call already happened on its outgoing edges), every other node
// applies either the plain assignment transfer (spec §4.3) or, for a heap
// access, the alias-aware transfer of spec §4.8.1.
func (r *runner) transferNode(n ir.Stmt, in constprop.CPFact) (constprop.CPFact, bool) {
	prevOut := r.out[n]

	if _, ok := n.(*ir.Invoke); ok {
		return in, !in.Equal(prevOut)
	}

	switch v := n.(type) {
	case *ir.Assign:
		out := in.Copy()
		if v.LHS.CanHoldInt() {
			out[v.LHS] = constprop.Evaluate(v.RHS, in)
		}
		return out, !out.Equal(prevOut)

	case *ir.LoadField:
		out := in.Copy()
		if v.LHS.CanHoldInt() {
			out[v.LHS] = r.loadFieldValue(v)
		}
		return out, !out.Equal(prevOut)

	case *ir.LoadArray:
		out := in.Copy()
		if v.LHS.CanHoldInt() {
			out[v.LHS] = r.loadArrayValue(v, in)
		}
		return out, !out.Equal(prevOut)

	case *ir.New:
		out := in.Copy()
		return out, !out.Equal(prevOut)

	default: // StoreField, StoreArray, If, Switch, Goto, Return, Nop: no binding
		return in, !in.Equal(prevOut)
	}
}
