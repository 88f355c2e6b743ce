package deadcode

import (
	"sort"

	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/ir"
)

// Run implements spec §4.5's two-pass dead-code detector: control-flow
// reachability pruned by constant branch/switch conditions, plus useless
// (side-effect-free, dead-at-exit) assignments. The result is one
// deterministically ordered set of statements, ordered by ir.Stmt.Index().
func Run(g *cfg.CFG, cp cpResult) []ir.Stmt {
	reachable := reachableStmts(g, cp)
	live := liveVariables(g)

	deadSet := make(map[ir.Stmt]struct{})
	allStmts := g.Nodes()
	for _, s := range allStmts {
		if s == g.Entry() || s == g.Exit() {
			continue
		}
		if _, ok := reachable[s]; !ok {
			deadSet[s] = struct{}{}
		}
	}

	for s := range reachable {
		assign, ok := s.(*ir.Assign)
		if !ok {
			continue
		}
		if !ir.HasNoSideEffect(assign) {
			continue
		}
		if live.Out(s).Contains(assign.LHS) {
			continue
		}
		deadSet[s] = struct{}{}
	}

	out := make([]ir.Stmt, 0, len(deadSet))
	for s := range deadSet {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })

	return out
}

// cpResult is the slice of *dataflow.Result[ir.Stmt, constprop.CPFact] this
// package actually needs, so it doesn't have to spell out the generic
// instantiation at every call site.
type cpResult interface {
	In(ir.Stmt) constprop.CPFact
}

func reachableStmts(g *cfg.CFG, cp cpResult) map[ir.Stmt]struct{} {
	visited := map[ir.Stmt]struct{}{g.Entry(): {}}
	queue := []ir.Stmt{g.Entry()}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, e := range g.OutEdges(n) {
			if skipEdge(n, e, cp) {
				continue
			}
			if _, ok := visited[e.To]; !ok {
				visited[e.To] = struct{}{}
				queue = append(queue, e.To)
			}
		}
	}

	delete(visited, g.Entry())
	delete(visited, g.Exit())

	return visited
}

// skipEdge implements the branch-pruning rules of spec §4.5.
func skipEdge(src ir.Stmt, e cfg.Edge, cp cpResult) bool {
	switch s := src.(type) {
	case *ir.If:
		cond := constprop.Evaluate(s.Cond, cp.In(s))
		if v, ok := cond.Int(); ok {
			if e.Kind == cfg.IfFalse && v == 1 {
				return true
			}
			if e.Kind == cfg.IfTrue && v == 0 {
				return true
			}
		}
	case *ir.Switch:
		key := constprop.Evaluate(s.Key, cp.In(s))
		if k, ok := key.Int(); ok {
			if e.Kind == cfg.SwitchCase && e.CaseValue != k {
				return true
			}
			if e.Kind == cfg.SwitchDefault && caseMatches(s.CaseVal, k) {
				return true
			}
		}
	}

	return false
}

func caseMatches(cases []int32, k int32) bool {
	for _, c := range cases {
		if c == k {
			return true
		}
	}
	return false
}
