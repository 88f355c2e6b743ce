// Package cfg builds intraprocedural control-flow graphs over ir.Method
// bodies and defines the edge-kind vocabulary that package interproc's
// interprocedural graph (ICFG) reuses; the ICFG itself is built there.
//
// Per spec §1/§6 a CFG/ICFG builder is assumed to be supplied by an external
// collaborator; this package is the in-module implementation of that
// contract, playing the same role the teacher's core package plays for
// bfs/dfs/dijkstra: own the graph data structure, expose a small read-only
// query surface, and let every analysis consume it through
// dataflow.Graph[N] rather than reaching into internals.
package cfg

import "github.com/taclab/tacflow/ir"

// EdgeKind labels a CFG/ICFG edge per spec §6.
type EdgeKind int

const (
	Normal EdgeKind = iota
	IfTrue
	IfFalse
	SwitchCase
	SwitchDefault
	Call
	CallToReturn
	Return
)

func (k EdgeKind) String() string {
	switch k {
	case Normal:
		return "NORMAL"
	case IfTrue:
		return "IF_TRUE"
	case IfFalse:
		return "IF_FALSE"
	case SwitchCase:
		return "SWITCH_CASE"
	case SwitchDefault:
		return "SWITCH_DEFAULT"
	case Call:
		return "CALL"
	case CallToReturn:
		return "CALL_TO_RETURN"
	case Return:
		return "RETURN"
	default:
		return "UNKNOWN"
	}
}

// Edge is a labeled directed edge between two statements. CaseValue is only
// meaningful when Kind == SwitchCase.
type Edge struct {
	From, To  ir.Stmt
	Kind      EdgeKind
	CaseValue int32
}

// CFG is a single method's control-flow graph: an entry/exit sentinel pair
// (ir.Nop placeholders, per spec §4.2's "entry node" / "exit node") plus
// adjacency in both directions, built once and then read-only — the same
// build-once/query-many shape as core.Graph's adjacencyList.
type CFG struct {
	method      *ir.Method
	entry, exit ir.Stmt
	nodes       []ir.Stmt          // insertion order == determinism (spec §5)
	succs       map[ir.Stmt][]Edge
	preds       map[ir.Stmt][]Edge
}

// Method returns the method this CFG was built from.
func (g *CFG) Method() *ir.Method { return g.method }

// Entry returns the CFG's synthetic entry node.
func (g *CFG) Entry() ir.Stmt { return g.entry }

// Exit returns the CFG's synthetic exit node.
func (g *CFG) Exit() ir.Stmt { return g.exit }

// Nodes returns every node (statements plus entry/exit) in insertion order.
func (g *CFG) Nodes() []ir.Stmt { return g.nodes }

// OutEdges returns g's outgoing edges from n in insertion order.
func (g *CFG) OutEdges(n ir.Stmt) []Edge { return g.succs[n] }

// InEdges returns g's incoming edges into n in insertion order.
func (g *CFG) InEdges(n ir.Stmt) []Edge { return g.preds[n] }

// Succs and Preds adapt OutEdges/InEdges to dataflow.Graph[ir.Stmt]'s plain
// node-adjacency shape (the intraprocedural edge transfer is identity, per
// spec §4.2, so the generic solver only needs node adjacency, not labels).
func (g *CFG) Succs(n ir.Stmt) []ir.Stmt { return edgeTargets(g.succs[n], false) }
func (g *CFG) Preds(n ir.Stmt) []ir.Stmt { return edgeTargets(g.preds[n], true) }

func edgeTargets(edges []Edge, fromSide bool) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(edges))
	for _, e := range edges {
		if fromSide {
			out = append(out, e.From)
		} else {
			out = append(out, e.To)
		}
	}
	return out
}

func (g *CFG) addEdge(from, to ir.Stmt, kind EdgeKind, caseVal int32) {
	e := Edge{From: from, To: to, Kind: kind, CaseValue: caseVal}
	g.succs[from] = append(g.succs[from], e)
	g.preds[to] = append(g.preds[to], e)
}

// Build constructs the CFG for m: a linear chain of fall-through edges
// between consecutive statements, overridden by If/Switch/Goto/Return
// control transfers, per spec §4.5/§6's edge-kind vocabulary.
func Build(m *ir.Method) *CFG {
	entry := &ir.Nop{StmtBase: ir.StmtBase{Idx: -1, Owner: m}}
	exit := &ir.Nop{StmtBase: ir.StmtBase{Idx: len(m.Stmts), Owner: m}}
	g := &CFG{
		method: m,
		entry:  entry,
		exit:   exit,
		nodes:  make([]ir.Stmt, 0, len(m.Stmts)+2),
		succs:  make(map[ir.Stmt][]Edge),
		preds:  make(map[ir.Stmt][]Edge),
	}
	g.nodes = append(g.nodes, entry)
	for _, s := range m.Stmts {
		g.nodes = append(g.nodes, s)
	}
	g.nodes = append(g.nodes, exit)

	if len(m.Stmts) == 0 {
		g.addEdge(entry, exit, Normal, 0)
		return g
	}
	g.addEdge(entry, m.Stmts[0], Normal, 0)

	at := func(i int) ir.Stmt {
		if i < 0 || i >= len(m.Stmts) {
			return exit
		}
		return m.Stmts[i]
	}

	for i, s := range m.Stmts {
		switch v := s.(type) {
		case *ir.If:
			g.addEdge(s, at(v.TrueTarget), IfTrue, 0)
			g.addEdge(s, at(v.FalseTarget), IfFalse, 0)
		case *ir.Switch:
			for j, cv := range v.CaseVal {
				g.addEdge(s, at(v.CaseTarget[j]), SwitchCase, cv)
			}
			g.addEdge(s, at(v.DefaultTarget), SwitchDefault, 0)
		case *ir.Goto:
			g.addEdge(s, at(v.Target), Normal, 0)
		case *ir.Return:
			g.addEdge(s, exit, Normal, 0)
		default:
			g.addEdge(s, at(i+1), Normal, 0)
		}
	}

	return g
}
