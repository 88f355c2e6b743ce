package pointer

// pfg is the pointer-flow graph: idempotent, insertion-ordered adjacency
// from one PointerID to its successors, mirroring the teacher's
// core.Graph.adjacencyList nested-map shape (spec §4.7: "AddPFGEdge is
// idempotent").
type pfg struct {
	succOrder map[PointerID][]PointerID
	succSet   map[PointerID]map[PointerID]struct{}
}

func newPFG() *pfg {
	return &pfg{
		succOrder: make(map[PointerID][]PointerID),
		succSet:   make(map[PointerID]map[PointerID]struct{}),
	}
}

// addEdge records s -> t, returning true iff it was newly added.
func (g *pfg) addEdge(s, t PointerID) bool {
	if g.succSet[s] == nil {
		g.succSet[s] = make(map[PointerID]struct{})
	}
	if _, ok := g.succSet[s][t]; ok {
		return false
	}
	g.succSet[s][t] = struct{}{}
	g.succOrder[s] = append(g.succOrder[s], t)
	return true
}

// successors returns s's PFG successors in insertion order.
func (g *pfg) successors(s PointerID) []PointerID { return g.succOrder[s] }
