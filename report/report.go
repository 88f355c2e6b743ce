// Package report serializes analysis result sets to a stable text/JSON
// representation. Per spec §1, "output reporting is a trivial consumer of
// result sets"; this package holds no algorithmic content of its own,
// mirroring the teacher's converters package — a thin format-conversion
// layer that takes one result type and emits another representation.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/interproc"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/pointer"
	"github.com/taclab/tacflow/taint"
)

// Document is the full report: every result set an Engine run produced,
// each optional so a caller can report a subset (spec §6: result sets are
// independent and each stands alone).
type Document struct {
	DeadCode      []DeadStmt        `json:"dead_code,omitempty"`
	CallGraph     []CallGraphEdge   `json:"call_graph,omitempty"`
	PointsTo      []PointsToEntry   `json:"points_to,omitempty"`
	Taint         []taint.TaintFlow `json:"taint,omitempty"`
	InterprocFact []StmtFact        `json:"interproc_facts,omitempty"`
}

// DeadStmt names one dead statement by its owning method and index, since
// ir.Stmt itself carries no stable textual form.
type DeadStmt struct {
	Method string `json:"method"`
	Index  int    `json:"index"`
}

// CallGraphEdge is one CHA-resolved edge, named by method rather than
// pointer identity so the report is stable across runs.
type CallGraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

// PointsToEntry is one pointer's resolved object set, described textually.
type PointsToEntry struct {
	Pointer string   `json:"pointer"`
	Objects []string `json:"objects"`
}

// StmtFact is one ICFG node's published IN/OUT constant-propagation facts
// (spec §6: "per-statement IN/OUT facts for each dataflow analysis"),
// variables described textually (method.name) and values via Value.String().
type StmtFact struct {
	Method string            `json:"method"`
	Index  int               `json:"index"`
	In     map[string]string `json:"in,omitempty"`
	Out    map[string]string `json:"out,omitempty"`
}

// FromInterproc flattens package interproc's per-node IN/OUT fact table
// (component C8) into one StmtFact per ICFG node, sorted by (method, index)
// for reproducible output (spec §5). Nodes whose IN and OUT are both empty
// (no integer-like variable ever reached them) are omitted.
func FromInterproc(icfg *interproc.ICFG, result *interproc.Result) []StmtFact {
	var out []StmtFact
	for _, n := range icfg.Nodes() {
		in, o := result.In(n), result.Out(n)
		if len(in) == 0 && len(o) == 0 {
			continue
		}
		out = append(out, StmtFact{
			Method: n.Method().Name,
			Index:  n.Index(),
			In:     factStrings(in),
			Out:    factStrings(o),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Index < out[j].Index
	})
	return out
}

func factStrings(f constprop.CPFact) map[string]string {
	out := make(map[string]string, len(f))
	for v, val := range f {
		out[fmt.Sprintf("%s.%s", v.Method.Name, v.Name)] = val.String()
	}
	return out
}

// FromDeadCode converts package deadcode's []ir.Stmt into report form,
// sorted by (method, index) for reproducible output (spec §5).
func FromDeadCode(stmts []ir.Stmt) []DeadStmt {
	out := make([]DeadStmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, DeadStmt{Method: s.Method().Name, Index: s.Index()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// FromCallGraph flattens a CHA call graph's reachable-method edge lists.
func FromCallGraph(cg *callgraph.CallGraph) []CallGraphEdge {
	var out []CallGraphEdge
	for _, m := range cg.ReachableMethods() {
		for _, e := range cg.Edges(m) {
			out = append(out, CallGraphEdge{From: m.Name, To: e.To.Name, Kind: e.Kind.String()})
		}
	}
	return out
}

// FromPointsTo describes every variable's merged points-to set, one entry
// per variable in pts.AllVars() order (spec §5's insertion-order guarantee);
// variables whose merged set is empty get no entry.
func FromPointsTo(pts *pointer.Result) []PointsToEntry {
	var out []PointsToEntry
	for _, v := range pts.AllVars() {
		set := pts.MergedVarPointsTo(v)
		if set.Len() == 0 {
			continue
		}
		entry := PointsToEntry{Pointer: fmt.Sprintf("%s.%s", v.Method.Name, v.Name)}
		for _, o := range set.Objects() {
			entry.Objects = append(entry.Objects, o.String())
		}
		out = append(out, entry)
	}
	return out
}

// WriteJSON writes doc to w as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
