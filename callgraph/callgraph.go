// Package callgraph implements the class-hierarchy-analysis (CHA) call-graph
// builder of spec §4.6 (component C5): a context-insensitive BFS over
// reachable methods, dispatching each call site against the class hierarchy
// rather than any points-to information (that refinement is pointer's job).
//
// The BFS shape and its insertion-ordered adjacency mirror the teacher's
// core.Graph/dfs traversal idiom: build reachability once, query many times,
// never resort results for "determinism" after the fact — the traversal
// order already is the deterministic order (spec §5).
package callgraph

import (
	"github.com/taclab/tacflow/internal/diag"
	"github.com/taclab/tacflow/internal/worklist"
	"github.com/taclab/tacflow/ir"
)

// ClassHierarchy is the subset of *ir.ClassHierarchy (plus the dispatch walk
// ir.Dispatch performs on top of it) that call-graph resolution needs. Kept
// as an interface so pointer (which layers context-sensitivity on top of the
// same resolution rules) can substitute its own view without callgraph
// importing anything beyond ir's type-level vocabulary.
type ClassHierarchy interface {
	IsInterface(name string) bool
	IsAbstract(name string) bool
	Superclass(name string) (string, bool)
	DirectSubclasses(name string) []string
	DirectSubinterfaces(name string) []string
	DirectImplementors(name string) []string
	Dispatch(class, subsig string) (*ir.Method, bool)
}

// adapter binds an *ir.ClassHierarchy to the *ir.Program its Dispatch walk
// needs, satisfying ClassHierarchy.
type adapter struct {
	*ir.ClassHierarchy
	prog *ir.Program
}

func (a adapter) Dispatch(class, subsig string) (*ir.Method, bool) {
	return ir.Dispatch(a.prog, a.ClassHierarchy, class, subsig)
}

// Adapt wraps a program's class hierarchy as a ClassHierarchy.
func Adapt(prog *ir.Program, ch *ir.ClassHierarchy) ClassHierarchy {
	return adapter{ClassHierarchy: ch, prog: prog}
}

// Edge is one resolved call-graph edge, tagged with the call site's own
// CallKind (reported by package report). Package pointer's on-the-fly call
// graph records its own CSEdge values, not Edge.
type Edge struct {
	From, To *ir.Method
	Site     ir.CallSite
	Kind     ir.CallKind
}

// CallGraph is the read-only-after-build result of BuildCHA: the set of
// reachable methods in BFS discovery order, plus their outgoing edges.
type CallGraph struct {
	reachable map[*ir.Method]struct{}
	order     []*ir.Method
	edges     map[*ir.Method][]Edge
}

// NewCallGraph returns an empty call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{
		reachable: make(map[*ir.Method]struct{}),
		edges:     make(map[*ir.Method][]Edge),
	}
}

// ReachableMethods returns every reachable method, in BFS discovery order.
func (cg *CallGraph) ReachableMethods() []*ir.Method { return cg.order }

// IsReachable reports whether m was discovered during the build.
func (cg *CallGraph) IsReachable(m *ir.Method) bool {
	_, ok := cg.reachable[m]
	return ok
}

// Edges returns from's outgoing edges, in the order they were added.
func (cg *CallGraph) Edges(from *ir.Method) []Edge { return cg.edges[from] }

// addReachable records m as reachable and returns true the first time.
func (cg *CallGraph) addReachable(m *ir.Method) bool {
	if _, ok := cg.reachable[m]; ok {
		return false
	}
	cg.reachable[m] = struct{}{}
	cg.order = append(cg.order, m)
	return true
}

// AddEdge records a resolved call-graph edge. Duplicate (from, site, to)
// triples are not filtered: a call site genuinely fans out to several
// targets under CHA, and each is a distinct edge.
func (cg *CallGraph) AddEdge(from, to *ir.Method, site ir.CallSite, kind ir.CallKind) {
	cg.edges[from] = append(cg.edges[from], Edge{From: from, To: to, Site: site, Kind: kind})
}

// BuildCHA runs the BFS of spec §4.6 from entry: for every reachable
// method's call sites, Resolve is consulted and each resolved target is
// added as an edge and enqueued if newly reachable. A call site that
// resolves to zero targets is logged as a ResolutionFailure (spec §7) and
// otherwise ignored; the BFS continues.
func BuildCHA(entry *ir.Method, ch ClassHierarchy) *CallGraph {
	cg := NewCallGraph()
	q := worklist.New[*ir.Method]()
	if cg.addReachable(entry) {
		q.Push(entry)
	}

	for q.Len() > 0 {
		m := q.Pop()
		for _, s := range m.Stmts {
			inv, ok := s.(*ir.Invoke)
			if !ok {
				continue
			}

			targets := Resolve(inv, ch)
			if len(targets) == 0 {
				diag.ResolutionFailure(inv.Callee, inv.Callee.Subsignature)
				continue
			}

			for _, t := range targets {
				cg.AddEdge(m, t, inv, inv.Kind)
				if cg.addReachable(t) {
					q.Push(t)
				}
			}
		}
	}

	return cg
}

// Resolve implements spec §4.6's per-call-site dispatch rule: STATIC/SPECIAL
// resolve to exactly one target via the superclass-chain walk ch.Dispatch;
// VIRTUAL/INTERFACE resolve to every concrete override reachable by BFS over
// subclasses (always) and, for interface-declared call sites, also
// sub-interfaces and direct implementors; DYNAMIC is never produced by CHA
// and resolves to no targets.
func Resolve(site ir.CallSite, ch ClassHierarchy) []*ir.Method {
	switch site.Kind {
	case ir.KindStatic, ir.KindSpecial:
		if m, ok := ch.Dispatch(site.Callee.DeclaringClass, site.Callee.Subsignature); ok {
			return []*ir.Method{m}
		}
		return nil
	case ir.KindVirtual, ir.KindInterface:
		return resolveHierarchy(site.Callee.DeclaringClass, site.Callee.Subsignature, ch)
	default: // KindDynamic
		return nil
	}
}

// resolveHierarchy BFS-walks the hierarchy rooted at class, collecting every
// concrete (non-interface, non-abstract) class reachable via subclass,
// sub-interface, or direct-implementor edges, and dispatches subsig against
// each, deduplicating by resolved method.
func resolveHierarchy(class, subsig string, ch ClassHierarchy) []*ir.Method {
	visited := map[string]struct{}{}
	q := worklist.New[string]()
	q.Push(class)

	var out []*ir.Method
	seen := map[*ir.Method]struct{}{}

	for q.Len() > 0 {
		cur := q.Pop()
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}

		q.PushAll(ch.DirectSubclasses(cur))
		q.PushAll(ch.DirectSubinterfaces(cur))
		q.PushAll(ch.DirectImplementors(cur))

		if ch.IsInterface(cur) || ch.IsAbstract(cur) {
			continue
		}
		m, ok := ch.Dispatch(cur, subsig)
		if !ok {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	return out
}
