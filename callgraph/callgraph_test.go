package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/callgraph"
	"github.com/taclab/tacflow/ir"
)

// TestResolve_S4_InterfaceDispatchesToAllImplementors builds spec §8's S4:
// interface I{void m();}, class A implements I{m(){...}}, class B implements
// I{m(){...}}; call i.m() must resolve to {A.m, B.m}.
func TestResolve_S4_InterfaceDispatchesToAllImplementors(t *testing.T) {
	classes := []*ir.Class{
		{Name: "I", Interface: true},
		{Name: "A", Implements: []string{"I"}},
		{Name: "B", Implements: []string{"I"}},
		{Name: "Caller"},
	}
	ch := ir.NewClassHierarchy(classes)

	mA := &ir.Method{Name: "m", DeclaringClass: "A", Subsignature: "m()"}
	mB := &ir.Method{Name: "m", DeclaringClass: "B", Subsignature: "m()"}
	entry := &ir.Method{Name: "caller", DeclaringClass: "Caller", Subsignature: "caller()"}

	i := ir.Var{Method: entry, Name: "i", Type: ir.RefType("I")}
	call := &ir.Invoke{
		StmtBase: ir.StmtBase{Idx: 0, Owner: entry},
		Kind:     ir.KindInterface,
		Callee:   ir.MethodRef{DeclaringClass: "I", Subsignature: "m()"},
		Receiver: &i,
	}
	entry.Stmts = []ir.Stmt{call}

	program := &ir.Program{Methods: []*ir.Method{entry, mA, mB}, Classes: ch}
	adapted := callgraph.Adapt(program, ch)

	targets := callgraph.Resolve(call, adapted)
	assert.ElementsMatch(t, []*ir.Method{mA, mB}, targets)

	cg := callgraph.BuildCHA(entry, adapted)
	assert.ElementsMatch(t, []*ir.Method{entry, mA, mB}, cg.ReachableMethods())
	assert.ElementsMatch(t, []*ir.Method{mA, mB}, edgeTargets(cg.Edges(entry)))
}

// TestResolve_StaticDispatchIsSingleTarget covers the STATIC/SPECIAL
// dispatch rule: a direct superclass-chain walk, never a hierarchy fan-out.
func TestResolve_StaticDispatchIsSingleTarget(t *testing.T) {
	classes := []*ir.Class{
		{Name: "Base"},
		{Name: "Derived", Super: "Base"},
	}
	ch := ir.NewClassHierarchy(classes)

	base := &ir.Method{Name: "helper", DeclaringClass: "Base", Subsignature: "helper()"}
	entry := &ir.Method{Name: "caller", DeclaringClass: "Derived", Subsignature: "caller()"}
	call := &ir.Invoke{
		StmtBase: ir.StmtBase{Idx: 0, Owner: entry},
		Kind:     ir.KindStatic,
		Callee:   ir.MethodRef{DeclaringClass: "Derived", Subsignature: "helper()"},
	}
	entry.Stmts = []ir.Stmt{call}

	program := &ir.Program{Methods: []*ir.Method{entry, base}, Classes: ch}
	adapted := callgraph.Adapt(program, ch)

	targets := callgraph.Resolve(call, adapted)
	assert.Equal(t, []*ir.Method{base}, targets)
}

func edgeTargets(edges []callgraph.Edge) []*ir.Method {
	out := make([]*ir.Method, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.To)
	}
	return out
}
