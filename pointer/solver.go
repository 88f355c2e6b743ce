// Package pointer implements the Andersen-style points-to analysis of spec
// §4.7 (components C6/C7): one worklist algorithm, parameterized over a
// ContextSelector so context-insensitive (C6) and context-sensitive (C7)
// analysis are the same code path, just a different selector (spec §4.7:
// "C6 is the same pseudo-code with contexts elided").
//
// The solver's shape — build a flow graph once, propagate deltas through a
// FIFO worklist, expose a read-only result — mirrors the teacher's
// core.Graph-plus-bfs/dfs-traversal idiom, generalized here to a points-to
// fixed point instead of plain reachability.
package pointer

import (
	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/internal/diag"
	"github.com/taclab/tacflow/internal/worklist"
	"github.com/taclab/tacflow/ir"
)

// TaintHook lets package taint ride inside the pointer solver (spec §4.9):
// OnInvoke fires for every resolved invocation (static or instance), giving
// the hook a chance to mint/propagate taint objects; OnSolveComplete fires
// once after the worklist drains, for sink collection.
type TaintHook interface {
	OnInvoke(s *Solver, ctx Context, site ir.CallSite, callee *ir.Method)
	OnSolveComplete(s *Solver, cg *CSCallGraph)
}

// Solver owns one points-to analysis run: its interner, PFG, points-to
// tables, and on-the-fly call graph are exclusively its own until Solve
// returns (spec §5: "exclusively owned by the run that builds them").
type Solver struct {
	prog *ir.Program
	ch   callgraph.ClassHierarchy
	sel  ContextSelector
	hook TaintHook

	in  *interner
	flow *pfg
	pts map[PointerID]*PointsToSet
	propagated map[PointerID]*PointsToSet
	q   *worklist.Queue[PointerID]
	cg  *CSCallGraph

	taintEdges    map[PointerID][]taintEdge
	taintEdgeSeen map[[2]PointerID]struct{}
}

// taintEdge is a retagging PFG-like edge package taint's transfer
// propagation registers (spec §4.9): unlike an ordinary PFG edge, it does
// not copy every object verbatim — transform decides, per object, whether
// and how it crosses, so only taint objects (retagged) ever reach `to`.
type taintEdge struct {
	to        PointerID
	transform func(CSObj) (CSObj, bool)
}

// NewSolver constructs a solver over prog/ch with the given context
// selector and optional taint hook (nil disables the taint overlay).
func NewSolver(prog *ir.Program, ch callgraph.ClassHierarchy, sel ContextSelector, hook TaintHook) *Solver {
	return &Solver{
		prog:          prog,
		ch:            ch,
		sel:           sel,
		hook:          hook,
		in:            newInterner(),
		flow:          newPFG(),
		pts:           make(map[PointerID]*PointsToSet),
		propagated:    make(map[PointerID]*PointsToSet),
		q:             worklist.New[PointerID](),
		cg:            newCSCallGraph(),
		taintEdges:    make(map[PointerID][]taintEdge),
		taintEdgeSeen: make(map[[2]PointerID]struct{}),
	}
}

// Interner exposes the solver's Pointer interner so callers (taint, report)
// can resolve PointerIDs back to human-readable Pointers.
func (s *Solver) Interner() interface{ Describe(PointerID) Pointer } { return s.in }

// VarPointer interns (and returns the id of) CSVar(ctx, v) — the entry
// point taint's source/sink slot lookups use.
func (s *Solver) VarPointer(ctx Context, v ir.Var) PointerID { return s.in.varPtr(ctx, v) }

// EmptyContext returns this run's empty context, the context taint objects
// are always minted in regardless of the selector otherwise in effect
// (spec §4.9: "injects it (in the empty context)").
func (s *Solver) EmptyContext() Context { return s.sel.EmptyContext() }

// PointsTo returns the current points-to set for ptr (never nil).
func (s *Solver) PointsTo(ptr PointerID) *PointsToSet {
	if pts := s.pts[ptr]; pts != nil {
		return pts
	}
	return NewPointsToSet()
}

// AddPointsTo injects o into ptr's points-to set and enqueues ptr for
// worklist processing if it grew — the mechanism package taint's source
// injection and transfer propagation both ride on (spec §4.9).
func (s *Solver) AddPointsTo(ptr PointerID, o CSObj) {
	set := s.pts[ptr]
	if set == nil {
		set = NewPointsToSet()
		s.pts[ptr] = set
	}
	if set.Add(o) {
		s.q.Push(ptr)
	}
}

// AddTaintTransfer registers a retagging edge from -> to (spec §4.9's
// transfer propagation): whenever a taint object reaches from's points-to
// set — now, or later as from grows through ordinary PFG propagation
// (copies, parameter/return wiring, further transfers) — transform's
// result, if any, is added to to's points-to set. Registering the same
// (from, to) pair twice is a no-op after the first call: an instance call
// site re-fires TaintHook.OnInvoke once per newly-discovered receiver
// object, and each firing would otherwise re-derive the identical edge.
func (s *Solver) AddTaintTransfer(from, to PointerID, transform func(CSObj) (CSObj, bool)) {
	key := [2]PointerID{from, to}
	if _, ok := s.taintEdgeSeen[key]; ok {
		return
	}
	s.taintEdgeSeen[key] = struct{}{}
	s.taintEdges[from] = append(s.taintEdges[from], taintEdge{to: to, transform: transform})

	if set := s.pts[from]; set != nil {
		for _, o := range set.Objects() {
			if retagged, ok := transform(o); ok {
				s.AddPointsTo(to, retagged)
			}
		}
	}
}

// Solve runs the fixed point of spec §4.7 from entry (in the empty
// context) to completion.
func (s *Solver) Solve(entry *ir.Method) *Result {
	ctx0 := s.sel.EmptyContext()
	s.markReachable(ctx0, entry)

	for s.q.Len() > 0 {
		ptr := s.q.Pop()
		pts := s.PointsTo(ptr)
		done := s.propagated[ptr]
		if done == nil {
			done = NewPointsToSet()
			s.propagated[ptr] = done
		}

		var delta []CSObj
		for _, o := range pts.Objects() {
			if !done.Contains(o) {
				delta = append(delta, o)
				done.Add(o)
			}
		}
		if len(delta) == 0 {
			continue
		}

		for _, succ := range s.flow.successors(ptr) {
			for _, o := range delta {
				s.AddPointsTo(succ, o)
			}
		}

		for _, te := range s.taintEdges[ptr] {
			for _, o := range delta {
				if retagged, ok := te.transform(o); ok {
					s.AddPointsTo(te.to, retagged)
				}
			}
		}

		p := s.in.Describe(ptr)
		if p.kind != kindVar {
			continue
		}
		for _, o := range delta {
			s.processNewObject(p.ctx, p.v, o)
		}
	}

	if s.hook != nil {
		s.hook.OnSolveComplete(s, s.cg)
	}

	return &Result{interner: s.in, pts: s.pts, cg: s.cg}
}

// addPFGEdge adds s->t and, per spec §4.7, propagates s's current points-to
// set to t immediately if the edge is new and s already has contents.
func (s *Solver) addPFGEdge(from, to PointerID) {
	if !s.flow.addEdge(from, to) {
		return
	}
	if set := s.pts[from]; set != nil && set.Len() > 0 {
		for _, o := range set.Objects() {
			s.AddPointsTo(to, o)
		}
	}
}

// markReachable marks (ctx, m) reachable and, the first time, processes its
// statements (spec §4.7's "Initialization"/"discovery time" step).
func (s *Solver) markReachable(ctx Context, m *ir.Method) bool {
	if !s.cg.markReachable(ctx, m) {
		return false
	}
	s.processMethodStatements(ctx, m)
	return true
}

// processMethodStatements implements spec §4.7's "statement processing at
// (method, context) discovery time": allocation, var-to-var copies, static
// field load/store, and statically-resolved invocations. Instance field,
// array, and virtual/interface-call processing is deferred to
// processNewObject, triggered once the receiver variable actually holds an
// object.
func (s *Solver) processMethodStatements(ctx Context, m *ir.Method) {
	for _, stmt := range m.Stmts {
		switch v := stmt.(type) {
		case *ir.New:
			heapCtx := s.sel.SelectHeapContext(ctx, m, v)
			o := CSObj{Ctx: heapCtx, Base: ir.Obj{Site: v, Type: v.Typ}}
			s.AddPointsTo(s.in.varPtr(ctx, v.LHS), o)
		case *ir.Assign:
			if ve, ok := v.RHS.(ir.VarExpr); ok {
				s.addPFGEdge(s.in.varPtr(ctx, ve.V), s.in.varPtr(ctx, v.LHS))
			}
		case *ir.LoadField:
			if v.Base == nil {
				s.addPFGEdge(s.in.staticField(v.Field), s.in.varPtr(ctx, v.LHS))
			}
		case *ir.StoreField:
			if v.Base == nil {
				s.addPFGEdge(s.in.varPtr(ctx, v.RHS), s.in.staticField(v.Field))
			}
		case *ir.Invoke:
			if v.Kind == ir.KindStatic || v.Kind == ir.KindSpecial {
				s.processStaticInvoke(ctx, m, v)
			}
		}
	}
}

func (s *Solver) processStaticInvoke(ctx Context, caller *ir.Method, site *ir.Invoke) {
	callee, ok := s.ch.Dispatch(site.Callee.DeclaringClass, site.Callee.Subsignature)
	if !ok {
		diag.ResolutionFailure(site.Callee, site.Callee.Subsignature)
		return
	}
	calleeCtx := s.sel.SelectContext(ctx, site, callee)
	s.cg.addEdge(CSEdge{CallerCtx: ctx, Caller: caller, Site: site, CalleeCtx: calleeCtx, Callee: callee, Kind: site.Kind})
	s.markReachable(calleeCtx, callee)
	s.wireParamsAndReturn(ctx, site, calleeCtx, callee)
	if s.hook != nil {
		s.hook.OnInvoke(s, ctx, site, callee)
	}
}

// processNewObject implements spec §4.7's worklist-loop bullet list for a
// newly-discovered object o reaching CSVar(ctx, v).
func (s *Solver) processNewObject(ctx Context, v ir.Var, o CSObj) {
	m := v.Method
	for _, st := range m.StoreFields(v) {
		s.addPFGEdge(s.in.varPtr(ctx, st.RHS), s.in.instanceField(o, st.Field))
	}
	for _, ld := range m.LoadFields(v) {
		s.addPFGEdge(s.in.instanceField(o, ld.Field), s.in.varPtr(ctx, ld.LHS))
	}
	for _, st := range m.StoreArrays(v) {
		s.addPFGEdge(s.in.varPtr(ctx, st.RHS), s.in.arrayIndex(o))
	}
	for _, ld := range m.LoadArrays(v) {
		s.addPFGEdge(s.in.arrayIndex(o), s.in.varPtr(ctx, ld.LHS))
	}
	for _, inv := range m.Invokes(v) {
		if inv.Receiver != nil && *inv.Receiver == v {
			s.processInstanceCall(ctx, m, inv, o)
		}
	}
}

// processInstanceCall implements spec §4.7's "Instance call processing":
// dispatch on o's declared type, bind `this`, wire parameter/return edges,
// and record the call-graph edge.
func (s *Solver) processInstanceCall(ctx Context, caller *ir.Method, site *ir.Invoke, o CSObj) {
	callee, ok := s.ch.Dispatch(o.Base.Type.Name, site.Callee.Subsignature)
	if !ok {
		diag.ResolutionFailure(site.Callee, site.Callee.Subsignature)
		return
	}
	calleeCtx := s.sel.SelectContextForInstance(ctx, site, o, callee)
	s.cg.addEdge(CSEdge{CallerCtx: ctx, Caller: caller, Site: site, CalleeCtx: calleeCtx, Callee: callee, Kind: site.Kind})
	s.markReachable(calleeCtx, callee)

	if callee.This != nil {
		s.AddPointsTo(s.in.varPtr(calleeCtx, *callee.This), o)
	}
	s.wireParamsAndReturn(ctx, site, calleeCtx, callee)
	if s.hook != nil {
		s.hook.OnInvoke(s, ctx, site, callee)
	}
}

func (s *Solver) wireParamsAndReturn(callerCtx Context, site *ir.Invoke, calleeCtx Context, callee *ir.Method) {
	for i, param := range callee.Params {
		if i >= len(site.Args) {
			break
		}
		s.addPFGEdge(s.in.varPtr(callerCtx, site.Args[i]), s.in.varPtr(calleeCtx, param))
	}
	if site.LHS != nil {
		for _, rv := range callee.ReturnVars {
			s.addPFGEdge(s.in.varPtr(calleeCtx, rv), s.in.varPtr(callerCtx, *site.LHS))
		}
	}
}
