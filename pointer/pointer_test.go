package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/ir"
	"github.com/taclab/tacflow/pointer"
)

// buildS5 builds spec §8's S5: Object a = id(new O1()); Object b = id(new
// O2()); where id(x){ return x; }.
func buildS5() (*ir.Program, *ir.Method, ir.Var, ir.Var) {
	classes := []*ir.Class{{Name: "Util"}, {Name: "O1"}, {Name: "O2"}}
	ch := ir.NewClassHierarchy(classes)

	id := &ir.Method{Name: "id", DeclaringClass: "Util", Subsignature: "id(Object)"}
	p := ir.Var{Method: id, Name: "p", Type: ir.RefType("Object")}
	id.Params = []ir.Var{p}
	id.ReturnVars = []ir.Var{p}

	main := &ir.Method{Name: "main", DeclaringClass: "Util", Subsignature: "main()"}
	o1 := ir.Var{Method: main, Name: "o1", Type: ir.RefType("O1")}
	o2 := ir.Var{Method: main, Name: "o2", Type: ir.RefType("O2")}
	a := ir.Var{Method: main, Name: "a", Type: ir.RefType("Object")}
	b := ir.Var{Method: main, Name: "b", Type: ir.RefType("Object")}

	s0 := &ir.New{StmtBase: ir.StmtBase{Idx: 0, Owner: main}, LHS: o1, Typ: ir.RefType("O1")}
	s1 := &ir.Invoke{StmtBase: ir.StmtBase{Idx: 1, Owner: main}, LHS: &a, Kind: ir.KindStatic,
		Callee: ir.MethodRef{DeclaringClass: "Util", Subsignature: "id(Object)"}, Args: []ir.Var{o1}}
	s2 := &ir.New{StmtBase: ir.StmtBase{Idx: 2, Owner: main}, LHS: o2, Typ: ir.RefType("O2")}
	s3 := &ir.Invoke{StmtBase: ir.StmtBase{Idx: 3, Owner: main}, LHS: &b, Kind: ir.KindStatic,
		Callee: ir.MethodRef{DeclaringClass: "Util", Subsignature: "id(Object)"}, Args: []ir.Var{o2}}
	main.Stmts = []ir.Stmt{s0, s1, s2, s3}

	program := &ir.Program{Methods: []*ir.Method{main, id}, Classes: ch}
	return program, main, a, b
}

func TestSolve_S5_CallSiteSensitivityAvoidsCrossContamination(t *testing.T) {
	program, main, a, b := buildS5()
	adapted := callgraph.Adapt(program, program.Classes)

	result, err := pointer.Run(program, adapted, main, pointer.WithContextSelector(pointer.KCallSelector(1)))
	assert.NoError(t, err)

	ctx0 := pointer.KCallSelector(1).EmptyContext()
	ptsA := result.VarPointsTo(ctx0, a)
	ptsB := result.VarPointsTo(ctx0, b)

	assert.Equal(t, 1, ptsA.Len())
	assert.Equal(t, 1, ptsB.Len())
	assert.False(t, ptsA.Intersects(ptsB), "1-call-site context sensitivity must not cross-contaminate a and b")
}

func TestSolve_ContextInsensitive_CrossContaminates(t *testing.T) {
	program, main, a, b := buildS5()
	adapted := callgraph.Adapt(program, program.Classes)

	result, err := pointer.Run(program, adapted, main) // default: pointer.CI()
	assert.NoError(t, err)

	ctx0 := pointer.CI().EmptyContext()
	ptsA := result.VarPointsTo(ctx0, a)
	ptsB := result.VarPointsTo(ctx0, b)

	assert.Equal(t, 2, ptsA.Len(), "context-insensitively a sees both allocations")
	assert.True(t, ptsA.Intersects(ptsB))
}
