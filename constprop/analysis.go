package constprop

import (
	"github.com/taclab/tacflow/dataflow"
	"github.com/taclab/tacflow/ir"
)

// analysis wires the integer lattice to the generic solver (spec §4.3): a
// forward dataflow.Analysis[ir.Stmt, CPFact].
type analysis struct {
	method *ir.Method
}

func (analysis) Direction() dataflow.Direction { return dataflow.Forward }

// NewBoundaryFact binds every integer-like formal parameter to NAC (unknown
// from the caller) per spec §4.3; other variables are implicitly UNDEF via
// CPFact's absent-key convention.
func (a analysis) NewBoundaryFact(ir.Stmt) CPFact { return BoundaryFact(a.method.Params) }

// BoundaryFact is the entry-method boundary fact of spec §4.3 as a
// standalone helper: every integer-like parameter starts at NAC. Shared
// with package interproc, whose ICFG entry node needs the same binding
// without going through a *ir.Method-bound analysis value.
func BoundaryFact(params []ir.Var) CPFact {
	f := NewCPFact()
	for _, p := range params {
		if p.CanHoldInt() {
			f[p] = NAC()
		}
	}
	return f
}

func (analysis) NewInitialFact() CPFact { return NewCPFact() }

func (analysis) MeetInto(src, dst CPFact) CPFact { return MeetInto(dst, src) }

// TransferNode implements spec §4.3's `x := e` transfer, and passes every
// other statement's IN through unchanged.
func (analysis) TransferNode(n ir.Stmt, in CPFact, prevOut CPFact) (CPFact, bool) {
	assign, ok := n.(*ir.Assign)
	if !ok {
		return in, !in.Equal(prevOut)
	}

	newOut := in.Copy()
	if assign.LHS.CanHoldInt() {
		newOut[assign.LHS] = Evaluate(assign.RHS, in)
	}

	return newOut, !newOut.Equal(prevOut)
}

// Graph is the CFG surface this package's solver needs, satisfied directly
// by *cfg.CFG.
type Graph = dataflow.Graph[ir.Stmt]

// Run computes constant-propagation facts for every statement in g, per
// spec §4.3. method supplies the boundary fact's parameter list.
func Run(g Graph, method *ir.Method, opts ...Option) (*dataflow.Result[ir.Stmt, CPFact], error) {
	if _, err := applyOptions(opts); err != nil {
		return nil, err
	}

	return dataflow.Solve[ir.Stmt, CPFact](g, analysis{method: method}, nil), nil
}
