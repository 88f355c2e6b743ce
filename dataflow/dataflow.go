// Package dataflow implements the generic monotone worklist fixed-point
// solver shared by every client analysis (spec §4.1/§4.2, component C2).
//
// The solver is deliberately graph- and fact-agnostic: it is parameterized
// over a node type N and a fact type F, and is driven entirely through the
// Graph[N] and Analysis[N,F] interfaces. Concrete analyses (constprop,
// deadcode's internal liveness pass, interproc) each supply a small
// Analysis implementation; the fixed-point loop itself — the part spec
// §4.2 specifies precisely — lives here exactly once.
package dataflow

import (
	"github.com/taclab/tacflow/internal/worklist"
	"github.com/taclab/tacflow/lattice"
)

// Direction is which way facts flow through a Graph.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Graph is the minimal CFG/ICFG surface the solver needs: an entry/exit
// pair and node adjacency. cfg.CFG satisfies this directly.
type Graph[N comparable] interface {
	Entry() N
	Exit() N
	Nodes() []N
	Preds(n N) []N
	Succs(n N) []N
}

// Analysis is the per-client contract of spec §4.1: direction, boundary and
// initial facts, a monotone meet, and a per-node transfer function that
// reports whether it changed OUT.
type Analysis[N comparable, F any] interface {
	Direction() Direction
	NewBoundaryFact(n N) F
	NewInitialFact() F
	MeetInto(src, dst F) F
	// TransferNode computes OUT from IN and the previous OUT, returning the
	// new OUT and whether it differs from the previous OUT (spec §4.1: "returns
	// true iff OUT was modified"). For a Backward analysis Solve swaps the
	// roles: it passes the merged OUT and the previous IN, and stores the
	// returned fact as the new IN.
	TransferNode(n N, in F, prevOut F) (out F, changed bool)
}

// EdgeTransfer adapts a fact flowing along one edge before it is met into
// the successor's IN. The intraprocedural solver always uses the identity
// transfer (spec §4.2: "for the intraprocedural solver the edge transfer is
// identity"). Package interproc does not use Solve: it runs its own worklist
// loop with the four-kind edge transfer of spec §4.8 (see interproc/run.go).
type EdgeTransfer[N comparable, F any] func(from, to N, out F) F

// Result is the read-only-after-solve IN/OUT table for one solver run —
// package lattice's DataflowResult (spec §3), not a parallel type: every
// client analysis publishes through this one data model.
type Result[N comparable, F any] = lattice.DataflowResult[N, F]

// Solve runs the generic fixed point of spec §4.2 to completion and returns
// the resulting IN/OUT table. edgeTransfer may be nil, meaning identity.
func Solve[N comparable, F any](g Graph[N], a Analysis[N, F], edgeTransfer EdgeTransfer[N, F]) *Result[N, F] {
	if edgeTransfer == nil {
		edgeTransfer = func(_, _ N, out F) F { return out }
	}

	nodes := g.Nodes()
	in := make(map[N]F, len(nodes))
	out := make(map[N]F, len(nodes))
	for _, n := range nodes {
		in[n] = a.NewInitialFact()
		out[n] = a.NewInitialFact()
	}

	var boundary N
	if a.Direction() == Forward {
		boundary = g.Entry()
		out[boundary] = a.NewBoundaryFact(boundary)
	} else {
		boundary = g.Exit()
		in[boundary] = a.NewBoundaryFact(boundary)
	}

	q := worklist.New[N]()
	for _, n := range nodes {
		if n != boundary {
			q.Push(n)
		}
	}

	for q.Len() > 0 {
		n := q.Pop()
		if a.Direction() == Forward {
			merged := a.NewInitialFact()
			for _, p := range g.Preds(n) {
				merged = a.MeetInto(edgeTransfer(p, n, out[p]), merged)
			}
			in[n] = merged
			newOut, changed := a.TransferNode(n, in[n], out[n])
			out[n] = newOut
			if changed {
				q.PushAll(g.Succs(n))
			}
		} else {
			merged := a.NewInitialFact()
			for _, s := range g.Succs(n) {
				merged = a.MeetInto(edgeTransfer(s, n, in[s]), merged)
			}
			out[n] = merged
			newIn, changed := a.TransferNode(n, out[n], in[n])
			in[n] = newIn
			if changed {
				q.PushAll(g.Preds(n))
			}
		}
	}

	result := lattice.NewDataflowResult[N, F](len(nodes))
	for _, n := range nodes {
		result.Set(n, in[n], out[n])
	}
	return result
}
