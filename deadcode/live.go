// Package deadcode implements the dead-code detector of spec §4.5
// (component C4), built on top of constprop (for branch folding) and a
// private live-variable analysis (spec §4.4) used only as an oracle, the
// same way the teacher's dfs package keeps TopologicalSort as an
// unexported-helper-backed algorithm inside the package that needs it
// rather than its own top-level package.
package deadcode

import (
	"github.com/taclab/tacflow/dataflow"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/lattice"
)

type liveFact = lattice.SetFact[ir.Var]

// liveness is the backward, set-lattice analysis of spec §4.4:
// OUT(s) = ⋃ IN(succ); IN(s) = use(s) ∪ (OUT(s) \ def(s)).
type liveness struct{}

func (liveness) Direction() dataflow.Direction { return dataflow.Backward }
func (liveness) NewBoundaryFact(ir.Stmt) liveFact { return lattice.NewSetFact[ir.Var]() }
func (liveness) NewInitialFact() liveFact         { return lattice.NewSetFact[ir.Var]() }

func (liveness) MeetInto(src, dst liveFact) liveFact {
	return lattice.UnionInto(dst, src)
}

// TransferNode is called by dataflow.Solve with (n, mergedSuccessorOut,
// prevIn) per the solver's backward calling convention (see
// dataflow.Analysis's doc comment); it returns the new IN(s) and whether it
// changed.
func (liveness) TransferNode(n ir.Stmt, mergedOut liveFact, prevIn liveFact) (liveFact, bool) {
	newIn := mergedOut.Clone()
	if d, ok := def(n); ok {
		newIn.Remove(d)
	}
	for _, u := range use(n) {
		newIn.Add(u)
	}

	return newIn, !newIn.Equal(prevIn)
}

// liveVariables runs the liveness oracle over g.
func liveVariables(g dataflow.Graph[ir.Stmt]) *dataflow.Result[ir.Stmt, liveFact] {
	return dataflow.Solve[ir.Stmt, liveFact](g, liveness{}, nil)
}

// def returns the variable a statement defines, if any.
func def(s ir.Stmt) (ir.Var, bool) {
	switch v := s.(type) {
	case *ir.Assign:
		return v.LHS, true
	case *ir.New:
		return v.LHS, true
	case *ir.LoadField:
		return v.LHS, true
	case *ir.LoadArray:
		return v.LHS, true
	case *ir.Invoke:
		if v.LHS != nil {
			return *v.LHS, true
		}
	}
	return ir.Var{}, false
}

// use returns the variables a statement reads.
func use(s ir.Stmt) []ir.Var {
	switch v := s.(type) {
	case *ir.Assign:
		return exprVars(v.RHS)
	case *ir.LoadField:
		if v.Base != nil {
			return []ir.Var{*v.Base}
		}
	case *ir.StoreField:
		vars := []ir.Var{v.RHS}
		if v.Base != nil {
			vars = append(vars, *v.Base)
		}
		return vars
	case *ir.LoadArray:
		return []ir.Var{v.Base, v.Index}
	case *ir.StoreArray:
		return []ir.Var{v.Base, v.Index, v.RHS}
	case *ir.Invoke:
		var vars []ir.Var
		if v.Receiver != nil {
			vars = append(vars, *v.Receiver)
		}
		vars = append(vars, v.Args...)
		return vars
	case *ir.If:
		return exprVars(v.Cond)
	case *ir.Switch:
		return exprVars(v.Key)
	case *ir.Return:
		if !v.Void {
			return []ir.Var{v.ReturnVar}
		}
	}
	return nil
}

func exprVars(e ir.Expr) []ir.Var {
	switch v := e.(type) {
	case ir.VarExpr:
		return []ir.Var{v.V}
	case ir.Binary:
		return append(exprVars(v.L), exprVars(v.R)...)
	case ir.Cast:
		return exprVars(v.V)
	default:
		return nil
	}
}
