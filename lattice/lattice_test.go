package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/lattice"
)

func TestSetFact_UnionDiffEqual(t *testing.T) {
	a := lattice.NewSetFact[string]()
	a.Add("x")
	a.Add("y")
	b := lattice.NewSetFact[string]()
	b.Add("y")
	b.Add("z")

	union := lattice.UnionInto(a.Clone(), b)
	assert.True(t, union.Contains("x"))
	assert.True(t, union.Contains("y"))
	assert.True(t, union.Contains("z"))

	diff := lattice.Diff(union, b)
	assert.True(t, diff.Contains("x"))
	assert.False(t, diff.Contains("y"))
	assert.False(t, diff.Contains("z"))

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))
}

func TestDataflowResult_SetAndRead(t *testing.T) {
	r := lattice.NewDataflowResult[string, int](2)
	r.Set("n1", 1, 2)
	r.Set("n2", 3, 4)

	assert.Equal(t, 1, r.In("n1"))
	assert.Equal(t, 2, r.Out("n1"))
	assert.Equal(t, 0, r.In("missing"))
	assert.ElementsMatch(t, []string{"n1", "n2"}, r.Nodes())
}
