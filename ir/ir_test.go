package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/ir"
)

func TestDispatch_WalksSuperclassChain(t *testing.T) {
	m := &ir.Method{DeclaringClass: "A", Subsignature: "m()"}
	prog := &ir.Program{Methods: []*ir.Method{m}}
	ch := ir.NewClassHierarchy([]*ir.Class{
		{Name: "A"},
		{Name: "B", Super: "A"},
		{Name: "C", Super: "B"},
	})

	got, ok := ir.Dispatch(prog, ch, "C", "m()")
	assert.True(t, ok)
	assert.Same(t, m, got)

	_, ok = ir.Dispatch(prog, ch, "C", "missing()")
	assert.False(t, ok)
}

func TestClassHierarchy_Adjacency(t *testing.T) {
	ch := ir.NewClassHierarchy([]*ir.Class{
		{Name: "I", Interface: true},
		{Name: "J", Interface: true, SuperIfaces: []string{"I"}},
		{Name: "A", Implements: []string{"I"}},
		{Name: "B", Super: "A"},
	})

	assert.True(t, ch.IsInterface("I"))
	assert.ElementsMatch(t, []string{"A"}, ch.DirectImplementors("I"))
	assert.ElementsMatch(t, []string{"J"}, ch.DirectSubinterfaces("I"))
	assert.ElementsMatch(t, []string{"B"}, ch.DirectSubclasses("A"))
	super, ok := ch.Superclass("B")
	assert.True(t, ok)
	assert.Equal(t, "A", super)
}

func TestMethod_CrossIndices(t *testing.T) {
	m := &ir.Method{Name: "f"}
	v := ir.Var{Method: m, Name: "x"}
	sf := &ir.StoreField{Base: &v, Field: ir.Field{Name: "g"}}
	lf := &ir.LoadField{Base: &v, Field: ir.Field{Name: "g"}}
	m.Stmts = []ir.Stmt{sf, lf}

	assert.Equal(t, []*ir.StoreField{sf}, m.StoreFields(v))
	assert.Equal(t, []*ir.LoadField{lf}, m.LoadFields(v))
}

func TestHasNoSideEffect(t *testing.T) {
	m := &ir.Method{Name: "f"}
	x := ir.Var{Method: m, Name: "x"}

	assert.False(t, ir.HasNoSideEffect(&ir.New{Typ: ir.RefType("T")}))
	assert.False(t, ir.HasNoSideEffect(&ir.LoadField{LHS: x, Field: ir.Field{Name: "g"}}))
	assert.True(t, ir.HasNoSideEffect(&ir.Assign{LHS: x, RHS: ir.Lit{Value: 1}}))
	assert.False(t, ir.HasNoSideEffect(&ir.Assign{LHS: x, RHS: ir.Binary{Op: ir.DIV, L: ir.Lit{Value: 1}, R: ir.Lit{Value: 2}}}))
}
