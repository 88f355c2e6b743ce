package worklist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taclab/tacflow/internal/worklist"
)

func TestQueue_FIFOAndDedup(t *testing.T) {
	q := worklist.New[string]()
	assert.Equal(t, 0, q.Len())

	assert.True(t, q.Push("a"))
	assert.True(t, q.Push("b"))
	assert.False(t, q.Push("a")) // already queued
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, "a", q.Pop())
	assert.Equal(t, "b", q.Pop())
	assert.Equal(t, 0, q.Len())

	// After popping, re-pushing the same item is allowed again.
	assert.True(t, q.Push("a"))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_PushAllPreservesOrder(t *testing.T) {
	q := worklist.New[int]()
	q.PushAll([]int{3, 1, 2, 1, 3})
	var got []int
	for q.Len() > 0 {
		got = append(got, q.Pop())
	}
	assert.Equal(t, []int{3, 1, 2}, got)
}
