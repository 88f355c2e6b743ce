package pointer

import "github.com/taclab/tacflow/ir"

// CSEdge is one on-the-fly, context-sensitive call-graph edge discovered
// during Solve (spec §4.7's "add the call-graph edge").
type CSEdge struct {
	CallerCtx Context
	Caller    *ir.Method
	Site      ir.CallSite
	CalleeCtx Context
	Callee    *ir.Method
	Kind      ir.CallKind
}

type edgeKey struct {
	callerCtx Context
	caller    *ir.Method
	site      ir.CallSite
	calleeCtx Context
	callee    *ir.Method
}

// CSCallGraph is the context-sensitive call graph built alongside points-to
// propagation: methods and call sites keyed by context, deduplicated edges,
// insertion-ordered for determinism (spec §4.7).
type CSCallGraph struct {
	edges      []CSEdge
	seen       map[edgeKey]struct{}
	reachable  map[reachKey]struct{}
	reachOrder []reachKey
}

type reachKey struct {
	ctx Context
	m   *ir.Method
}

func newCSCallGraph() *CSCallGraph {
	return &CSCallGraph{
		seen:      make(map[edgeKey]struct{}),
		reachable: make(map[reachKey]struct{}),
	}
}

// addEdge records a call-graph edge, deduplicating repeated discoveries of
// the same (callerCtx, caller, site, calleeCtx, callee) tuple (spec §9: an
// instance call site resolving the same target object twice must not
// duplicate the edge).
func (cg *CSCallGraph) addEdge(e CSEdge) bool {
	k := edgeKey{e.CallerCtx, e.Caller, e.Site, e.CalleeCtx, e.Callee}
	if _, ok := cg.seen[k]; ok {
		return false
	}
	cg.seen[k] = struct{}{}
	cg.edges = append(cg.edges, e)
	return true
}

// markReachable records (ctx, m) as reachable, returning true the first
// time.
func (cg *CSCallGraph) markReachable(ctx Context, m *ir.Method) bool {
	k := reachKey{ctx, m}
	if _, ok := cg.reachable[k]; ok {
		return false
	}
	cg.reachable[k] = struct{}{}
	cg.reachOrder = append(cg.reachOrder, k)
	return true
}

// Edges returns every discovered call-graph edge, in discovery order.
func (cg *CSCallGraph) Edges() []CSEdge { return cg.edges }

// ReachableMethods returns every (context, method) pair reached, in
// discovery order. A method reachable under several contexts appears once
// per context.
func (cg *CSCallGraph) ReachableMethods() []struct {
	Ctx    Context
	Method *ir.Method
} {
	out := make([]struct {
		Ctx    Context
		Method *ir.Method
	}, len(cg.reachOrder))
	for i, k := range cg.reachOrder {
		out[i].Ctx = k.ctx
		out[i].Method = k.m
	}
	return out
}
