package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/cfg"
	"github.com/taclab/tacflow/ir"
)

// buildIfMethod builds: 0: if (x==1) goto 2 else 1; 1: y=0; 2: y=1; (no Return statements)
func buildIfMethod() *ir.Method {
	m := &ir.Method{Name: "f"}
	x := ir.Var{Method: m, Name: "x", Type: ir.IntType()}
	y := ir.Var{Method: m, Name: "y", Type: ir.IntType()}
	stmts := []ir.Stmt{
		&ir.If{StmtBase: ir.StmtBase{Idx: 0, Owner: m}, Cond: ir.Binary{Op: ir.EQ, L: ir.VarExpr{V: x}, R: ir.Lit{Value: 1}}, TrueTarget: 2, FalseTarget: 1},
		&ir.Assign{StmtBase: ir.StmtBase{Idx: 1, Owner: m}, LHS: y, RHS: ir.Lit{Value: 0}},
		&ir.Assign{StmtBase: ir.StmtBase{Idx: 2, Owner: m}, LHS: y, RHS: ir.Lit{Value: 1}},
	}
	m.Stmts = stmts
	return m
}

func TestBuild_IfBranches(t *testing.T) {
	m := buildIfMethod()
	g := cfg.Build(m)

	assert.Len(t, g.Nodes(), 5) // entry + 3 stmts + exit

	ifStmt := m.Stmts[0]
	succs := g.Succs(ifStmt)
	assert.ElementsMatch(t, []ir.Stmt{m.Stmts[1], m.Stmts[2]}, succs)

	entrySuccs := g.Succs(g.Entry())
	assert.Equal(t, []ir.Stmt{ifStmt}, entrySuccs)

	// with no Return statements, stmt 1 falls through to stmt 2 (and stmt 2 to exit)
	assert.Contains(t, g.Succs(m.Stmts[1]), m.Stmts[2])
}

func TestBuild_EmptyMethod(t *testing.T) {
	m := &ir.Method{Name: "empty"}
	g := cfg.Build(m)
	assert.Equal(t, []ir.Stmt{g.Entry()}, g.Preds(g.Exit()))
}

func TestBuild_ReturnGoesToExit(t *testing.T) {
	m := &ir.Method{Name: "r"}
	ret := &ir.Return{StmtBase: ir.StmtBase{Idx: 0, Owner: m}, Void: true}
	m.Stmts = []ir.Stmt{ret}
	g := cfg.Build(m)
	assert.Equal(t, []ir.Stmt{g.Exit()}, g.Succs(ret))
}
