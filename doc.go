// Package tacflow wires the analysis pipeline of spec §1 end to end: a
// monotone dataflow solver (package dataflow), a constant-propagation
// lattice and intraprocedural analysis (package constprop), dead-code
// detection (package deadcode), CHA call-graph construction (package
// callgraph), context-insensitive/sensitive pointer analysis (package
// pointer), an alias-aware interprocedural constant-propagation overlay
// (package interproc), and a taint-propagation overlay (package taint).
//
// Engine is the single entry point a caller (cmd/tacflow, or any other
// driver) needs: hand it a *ir.Program and an entry method, and it runs
// every component (dead-code detection and the interprocedural pass over
// one CHA call graph, pointer analysis over its own on-the-fly call graph),
// returning one Document (package report) a caller can serialize however
// it likes.
package tacflow

import (
	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/deadcode"
	"github.com/taclab/tacflow/interproc"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/pointer"
	"github.com/taclab/tacflow/report"
	"github.com/taclab/tacflow/taint"
)

// Engine runs the full pipeline over one program from one entry method.
type Engine struct {
	Program *ir.Program
	Classes callgraph.ClassHierarchy
	Entry   *ir.Method

	// TaintConfig is optional; when nil the taint overlay does not run.
	TaintConfig *taint.Config
	// ContextSelector is optional; when nil pointer analysis runs
	// context-insensitively (pointer.CI()).
	ContextSelector pointer.ContextSelector
}

// Run executes every component reachable from e.Entry and assembles a
// report.Document. Dead-code detection runs per reachable method that has
// at least one statement; methods with an empty body are skipped.
func (e *Engine) Run() (*report.Document, error) {
	cg := callgraph.BuildCHA(e.Entry, e.Classes)

	doc := &report.Document{CallGraph: report.FromCallGraph(cg)}

	var dead []ir.Stmt
	for _, m := range cg.ReachableMethods() {
		if len(m.Stmts) == 0 {
			continue
		}
		g := cfg.Build(m)
		cp, err := constprop.Run(g, m)
		if err != nil {
			return nil, err
		}
		dead = append(dead, deadcode.Run(g, cp)...)
	}
	doc.DeadCode = report.FromDeadCode(dead)

	sel := e.ContextSelector
	if sel == nil {
		sel = pointer.CI()
	}

	var flows []taint.TaintFlow
	var pts *pointer.Result
	var err error
	if e.TaintConfig != nil {
		mgr := taint.NewManager(e.TaintConfig)
		pts, err = pointer.Run(e.Program, e.Classes, e.Entry, pointer.WithContextSelector(sel), pointer.WithTaintHook(mgr))
		flows = mgr.Flows()
	} else {
		pts, err = pointer.Run(e.Program, e.Classes, e.Entry, pointer.WithContextSelector(sel))
	}
	if err != nil {
		return nil, err
	}
	doc.PointsTo = report.FromPointsTo(pts)
	doc.Taint = flows

	icfg := interproc.Builder{}.Build(cg, e.Program)
	facts, err := interproc.Run(icfg, pts)
	if err != nil {
		return nil, err
	}
	doc.InterprocFact = report.FromInterproc(icfg, facts)

	return doc, nil
}
