package deadcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/constprop"
	"github.com/taclab/tacflow/deadcode"
	"github.com/taclab/tacflow/ir"
)

// buildS1 builds: int f(int p){ a=1; b=2; c=a+b; if(c==3) return c; else { d=0; return d; } }
// The else branch is unreachable once c is folded to the constant 3.
func buildS1() (*ir.Method, []ir.Stmt) {
	m := &ir.Method{Name: "f"}
	a := ir.Var{Method: m, Name: "a", Type: ir.IntType()}
	b := ir.Var{Method: m, Name: "b", Type: ir.IntType()}
	c := ir.Var{Method: m, Name: "c", Type: ir.IntType()}
	d := ir.Var{Method: m, Name: "d", Type: ir.IntType()}

	s0 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 0, Owner: m}, LHS: a, RHS: ir.Lit{Value: 1}}
	s1 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 1, Owner: m}, LHS: b, RHS: ir.Lit{Value: 2}}
	s2 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 2, Owner: m}, LHS: c, RHS: ir.Binary{Op: ir.ADD, L: ir.VarExpr{V: a}, R: ir.VarExpr{V: b}}}
	s3 := &ir.If{StmtBase: ir.StmtBase{Idx: 3, Owner: m}, Cond: ir.Binary{Op: ir.EQ, L: ir.VarExpr{V: c}, R: ir.Lit{Value: 3}}, TrueTarget: 4, FalseTarget: 5}
	s4 := &ir.Return{StmtBase: ir.StmtBase{Idx: 4, Owner: m}, ReturnVar: c}
	s5 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 5, Owner: m}, LHS: d, RHS: ir.Lit{Value: 0}}
	s6 := &ir.Return{StmtBase: ir.StmtBase{Idx: 6, Owner: m}, ReturnVar: d}
	m.Stmts = []ir.Stmt{s0, s1, s2, s3, s4, s5, s6}

	return m, m.Stmts
}

func TestRun_S1_ElseBranchDead(t *testing.T) {
	m, stmts := buildS1()
	g := cfg.Build(m)
	cp, err := constprop.Run(g, m)
	assert.NoError(t, err)

	dead := deadcode.Run(g, cp)

	assert.Equal(t, []ir.Stmt{stmts[5], stmts[6]}, dead)
}

// buildS3 builds: void g(){ k=1; switch(k){ case 0: x=10; goto end; case 1: x=11;
// goto end; default: x=99; } end: return x; }
// Once k is folded to the constant 1, only the case-1 body is reachable.
func buildS3() (*ir.Method, []ir.Stmt) {
	m := &ir.Method{Name: "g"}
	k := ir.Var{Method: m, Name: "k", Type: ir.IntType()}
	x := ir.Var{Method: m, Name: "x", Type: ir.IntType()}

	s0 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 0, Owner: m}, LHS: k, RHS: ir.Lit{Value: 1}}
	s1 := &ir.Switch{
		StmtBase:      ir.StmtBase{Idx: 1, Owner: m},
		Key:           ir.VarExpr{V: k},
		CaseVal:       []int32{0, 1},
		CaseTarget:    []int{2, 4},
		DefaultTarget: 6,
	}
	s2 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 2, Owner: m}, LHS: x, RHS: ir.Lit{Value: 10}}
	s3 := &ir.Goto{StmtBase: ir.StmtBase{Idx: 3, Owner: m}, Target: 7}
	s4 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 4, Owner: m}, LHS: x, RHS: ir.Lit{Value: 11}}
	s5 := &ir.Goto{StmtBase: ir.StmtBase{Idx: 5, Owner: m}, Target: 7}
	s6 := &ir.Assign{StmtBase: ir.StmtBase{Idx: 6, Owner: m}, LHS: x, RHS: ir.Lit{Value: 99}}
	s7 := &ir.Return{StmtBase: ir.StmtBase{Idx: 7, Owner: m}, ReturnVar: x}
	m.Stmts = []ir.Stmt{s0, s1, s2, s3, s4, s5, s6, s7}

	return m, m.Stmts
}

func TestRun_S3_SwitchCaseAndDefaultDead(t *testing.T) {
	m, stmts := buildS3()
	g := cfg.Build(m)
	cp, err := constprop.Run(g, m)
	assert.NoError(t, err)

	dead := deadcode.Run(g, cp)

	assert.Equal(t, []ir.Stmt{stmts[2], stmts[3], stmts[6]}, dead)
}
