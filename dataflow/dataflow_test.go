package dataflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/dataflow"
)

// simpleGraph is a tiny, hand-rolled dataflow.Graph[string] used to test
// the solver in isolation from any real CFG, the way the teacher tests
// bfs/dfs against small hand-built core.Graph fixtures.
type simpleGraph struct {
	entry, exit string
	succs       map[string][]string
	preds       map[string][]string
	nodes       []string
}

func (g *simpleGraph) Entry() string         { return g.entry }
func (g *simpleGraph) Exit() string          { return g.exit }
func (g *simpleGraph) Nodes() []string        { return g.nodes }
func (g *simpleGraph) Succs(n string) []string { return g.succs[n] }
func (g *simpleGraph) Preds(n string) []string { return g.preds[n] }

// diamond builds entry -> a -> c -> exit, entry -> b -> c -> exit.
func diamond() *simpleGraph {
	g := &simpleGraph{
		entry: "entry", exit: "exit",
		nodes: []string{"entry", "a", "b", "c", "exit"},
		succs: map[string][]string{
			"entry": {"a", "b"},
			"a":     {"c"},
			"b":     {"c"},
			"c":     {"exit"},
		},
		preds: map[string][]string{
			"a":    {"entry"},
			"b":    {"entry"},
			"c":    {"a", "b"},
			"exit": {"c"},
		},
	}
	return g
}

// reachability is a forward boolean "reachable" analysis: OUT(n) = true iff
// any predecessor's OUT is true (or n is the boundary).
type reachability struct{}

func (reachability) Direction() dataflow.Direction     { return dataflow.Forward }
func (reachability) NewBoundaryFact(n string) bool     { return true }
func (reachability) NewInitialFact() bool              { return false }
func (reachability) MeetInto(src, dst bool) bool       { return src || dst }
func (reachability) TransferNode(n string, in bool, prevOut bool) (bool, bool) {
	return in, in != prevOut
}

func TestSolve_ForwardReachability(t *testing.T) {
	g := diamond()
	res := dataflow.Solve[string, bool](g, reachability{}, nil)

	assert.True(t, res.Out("entry"))
	assert.True(t, res.Out("a"))
	assert.True(t, res.Out("b"))
	assert.True(t, res.Out("c"))
	assert.True(t, res.Out("exit"))
}

func TestSolve_UnreachableNodeStaysFalse(t *testing.T) {
	g := diamond()
	g.nodes = append(g.nodes, "island")
	res := dataflow.Solve[string, bool](g, reachability{}, nil)
	assert.False(t, res.Out("island"))
}
