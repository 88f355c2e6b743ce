package constprop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/ir"
)

func TestMeet(t *testing.T) {
	assert.Equal(t, constprop.Const(1), constprop.Meet(constprop.Undef(), constprop.Const(1)))
	assert.Equal(t, constprop.Const(1), constprop.Meet(constprop.Const(1), constprop.Const(1)))
	assert.True(t, constprop.Meet(constprop.Const(1), constprop.Const(2)).IsNAC())
	assert.True(t, constprop.Meet(constprop.NAC(), constprop.Undef()).IsNAC())
}

func TestEvaluate_DivByConstZero_AlwaysUndef(t *testing.T) {
	m := &ir.Method{Name: "g"}
	p := ir.Var{Method: m, Name: "p", Type: ir.IntType()}
	in := constprop.NewCPFact()
	in[p] = constprop.NAC() // p is a NAC'd parameter

	zero := ir.Lit{Value: 0}
	div := ir.Binary{Op: ir.DIV, L: ir.VarExpr{V: p}, R: zero}
	got := constprop.Evaluate(div, in)
	assert.True(t, got.IsUndef(), "p/0 must be UNDEF even though p is NAC")

	rem := ir.Binary{Op: ir.REM, L: ir.VarExpr{V: p}, R: zero}
	assert.True(t, constprop.Evaluate(rem, in).IsUndef())
}

func TestEvaluate_ConstArithmetic(t *testing.T) {
	in := constprop.NewCPFact()
	add := ir.Binary{Op: ir.ADD, L: ir.Lit{Value: 1}, R: ir.Lit{Value: 2}}
	got := constprop.Evaluate(add, in)
	n, ok := got.Int()
	assert.True(t, ok)
	assert.EqualValues(t, 3, n)
}

// buildS1 builds: int f(int p){ a=1; b=2; c=a+b; if(c==3) return c; else return 0; }
func buildS1() (*ir.Method, ir.Var, ir.Var, ir.Var) {
	m := &ir.Method{Name: "f"}
	p := ir.Var{Method: m, Name: "p", Type: ir.IntType()}
	a := ir.Var{Method: m, Name: "a", Type: ir.IntType()}
	b := ir.Var{Method: m, Name: "b", Type: ir.IntType()}
	c := ir.Var{Method: m, Name: "c", Type: ir.IntType()}
	m.Params = []ir.Var{p}

	s0 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 0, Owner: m}, LHS: a, RHS: ir.Lit{Value: 1}}
	s1 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 1, Owner: m}, LHS: b, RHS: ir.Lit{Value: 2}}
	s2 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 2, Owner: m}, LHS: c, RHS: ir.Binary{Op: ir.ADD, L: ir.VarExpr{V: a}, R: ir.VarExpr{V: b}}}
	s3 := &ir.If{StmtBase: ir.StmtBase{Idx: 3, Owner: m}, Cond: ir.Binary{Op: ir.EQ, L: ir.VarExpr{V: c}, R: ir.Lit{Value: 3}}, TrueTarget: 4, FalseTarget: 5}
	s4 := &ir.Return{StmtBase: ir.StmtBase{Idx: 4, Owner: m}, ReturnVar: c}
	s5 := &ir.Return{StmtBase: ir.StmtBase{Idx: 5, Owner: m}, ReturnVar: c} // else branch: return 0 in spirit; reuse c var slot for simplicity
	m.Stmts = []ir.Stmt{s0, s1, s2, s3, s4, s5}

	return m, a, b, c
}

func TestConstprop_S1(t *testing.T) {
	m, a, b, c := buildS1()
	g := cfg.Build(m)
	res, err := constprop.Run(g, m)
	assert.NoError(t, err)

	returnStmt := m.Stmts[4]
	out := res.In(returnStmt)
	av, _ := out.Get(a).Int()
	bv, _ := out.Get(b).Int()
	cv, _ := out.Get(c).Int()
	assert.EqualValues(t, 1, av)
	assert.EqualValues(t, 2, bv)
	assert.EqualValues(t, 3, cv)
}
