// Package interproc builds the interprocedural control-flow graph (ICFG) of
// spec §4.8 (component C8) over a CHA call graph, and runs an alias-aware
// interprocedural constant-propagation dataflow atop it using package
// pointer's points-to results as the alias oracle (spec §4.8.1).
//
// Package cfg already anticipates this split (see its doc comment): cfg
// owns the intraprocedural graph and the edge-kind vocabulary (Normal,
// Call, CallToReturn, Return), this package only adds the interprocedural
// wiring and the heap-aware transfer functions.
package interproc

import (
	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/ir"
)

// ICFGNode is a program point: a statement, recoverable to its owning
// method via ir.Stmt.Method() (spec §4.8: "ICFGNode is a statement plus an
// owning method").
type ICFGNode = ir.Stmt

// ICFGEdge is one labeled edge of the four-kind vocabulary spec §4.8
// names. Site is the originating call statement for Call/CallToReturn/
// Return edges (nil for Normal), since for a Return edge From/To are the
// callee's exit and the caller's return-site, neither of which is the call
// statement itself.
type ICFGEdge struct {
	From, To ir.Stmt
	Kind     cfg.EdgeKind
	Site     *ir.Invoke
}

// ICFG is the whole program's interprocedural control-flow graph: every
// reachable method's intraprocedural CFG, linked at call sites by Call/
// CallToReturn/Return edges per spec §4.8.
type ICFG struct {
	entry, exit ir.Stmt
	nodes       []ir.Stmt
	succs       map[ir.Stmt][]ICFGEdge
	preds       map[ir.Stmt][]ICFGEdge
}

// Entry and Exit return the whole program's entry/exit sentinels: the
// entry method's own CFG entry/exit nodes.
func (g *ICFG) Entry() ir.Stmt { return g.entry }
func (g *ICFG) Exit() ir.Stmt  { return g.exit }

// Nodes returns every node across every reachable method, in the order
// their methods were discovered and, within a method, intraprocedural
// order.
func (g *ICFG) Nodes() []ir.Stmt { return g.nodes }

// OutEdges and InEdges return n's labeled edges in insertion order.
func (g *ICFG) OutEdges(n ir.Stmt) []ICFGEdge { return g.succs[n] }
func (g *ICFG) InEdges(n ir.Stmt) []ICFGEdge  { return g.preds[n] }

// Succs adapts OutEdges to a plain node list, for callers that only need
// reachability (e.g. the re-enqueue step of Run's worklist loop).
func (g *ICFG) Succs(n ir.Stmt) []ir.Stmt {
	edges := g.succs[n]
	out := make([]ir.Stmt, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.To)
	}
	return out
}

func (g *ICFG) addEdge(from, to ir.Stmt, kind cfg.EdgeKind, site *ir.Invoke) {
	e := ICFGEdge{From: from, To: to, Kind: kind, Site: site}
	g.succs[from] = append(g.succs[from], e)
	g.preds[to] = append(g.preds[to], e)
}

// Builder builds an ICFG from a CHA call graph (spec §4.8). The zero value
// is ready to use.
type Builder struct{}

// Build wires every reachable method's intraprocedural CFG together at its
// call sites: a call site's own fall-through edge is replaced by a
// CallToReturn edge to the same lexical successor, a Call edge is added to
// each resolved callee's entry, and a Return edge is added from each
// resolved callee's exit back to the call's lexical successor. Call sites
// CHA could not resolve (logged by BuildCHA as a ResolutionFailure) keep
// their plain intraprocedural Normal edge, so the graph stays connected.
func (Builder) Build(cg *callgraph.CallGraph, program *ir.Program) *ICFG {
	g := &ICFG{succs: make(map[ir.Stmt][]ICFGEdge), preds: make(map[ir.Stmt][]ICFGEdge)}

	methods := cg.ReachableMethods()
	if len(methods) == 0 {
		return g
	}

	methodCFG := make(map[*ir.Method]*cfg.CFG, len(methods))
	for _, m := range methods {
		methodCFG[m] = cfg.Build(m)
	}

	edgesBySite := make(map[*ir.Invoke][]callgraph.Edge)
	for _, m := range methods {
		for _, e := range cg.Edges(m) {
			edgesBySite[e.Site] = append(edgesBySite[e.Site], e)
		}
	}

	entryMethod := methods[0]
	g.entry = methodCFG[entryMethod].Entry()
	g.exit = methodCFG[entryMethod].Exit()

	for _, m := range methods {
		mcfg := methodCFG[m]
		for _, n := range mcfg.Nodes() {
			inv, isCall := n.(*ir.Invoke)
			targets := edgesBySite[inv]

			for _, e := range mcfg.OutEdges(n) {
				if isCall && len(targets) > 0 {
					g.addEdge(n, e.To, cfg.CallToReturn, inv)
					continue
				}
				g.addEdge(e.From, e.To, cfg.Normal, nil)
			}

			if isCall {
				for _, ce := range targets {
					calleeCFG := methodCFG[ce.To]
					if calleeCFG == nil {
						continue // callee unreachable in cg's own BFS: cannot happen, defensive only
					}
					g.addEdge(n, calleeCFG.Entry(), cfg.Call, inv)
					for _, succEdge := range mcfg.OutEdges(n) {
						g.addEdge(calleeCFG.Exit(), succEdge.To, cfg.Return, inv)
					}
				}
			}
		}
	}

	for _, m := range methods {
		g.nodes = append(g.nodes, methodCFG[m].Nodes()...)
	}

	return g
}
