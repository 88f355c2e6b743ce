package main

import (
	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/ir"
)

// fixtureProgram builds a minimal demo program:
//
//	class Box { int f; }
//	int main() {
//	    b = new Box();
//	    b.f = 5;
//	    x = b.f;
//	    return x;
//	}
//
// standing in for a real frontend's IR output (spec §1 scopes IR
// construction itself out).
func fixtureProgram() (*ir.Program, *ir.Method, callgraph.ClassHierarchy) {
	classes := ir.NewClassHierarchy([]*ir.Class{{Name: "Box"}})

	main := &ir.Method{Name: "main", DeclaringClass: "Driver", Subsignature: "main()"}
	b := ir.Var{Method: main, Name: "b", Type: ir.RefType("Box")}
	five := ir.Var{Method: main, Name: "five", Type: ir.IntType()}
	x := ir.Var{Method: main, Name: "x", Type: ir.IntType()}
	field := ir.Field{DeclaringClass: "Box", Name: "f", Type: ir.IntType()}

	stmts := []ir.Stmt{
		&ir.New{StmtBase: ir.StmtBase{Idx: 0, Owner: main}, LHS: b, Typ: ir.RefType("Box")},
		&ir.Assign{StmtBase: ir.StmtBase{Idx: 1, Owner: main}, LHS: five, RHS: ir.Lit{Value: 5}},
		&ir.StoreField{StmtBase: ir.StmtBase{Idx: 2, Owner: main}, Base: &b, Field: field, RHS: five},
		&ir.LoadField{StmtBase: ir.StmtBase{Idx: 3, Owner: main}, LHS: x, Base: &b, Field: field},
		&ir.Return{StmtBase: ir.StmtBase{Idx: 4, Owner: main}, ReturnVar: x},
	}
	main.Stmts = stmts
	main.ReturnVars = []ir.Var{x}

	prog := &ir.Program{Methods: []*ir.Method{main}, Classes: classes}
	return prog, main, callgraph.Adapt(prog, classes)
}
