package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Run("fifo order", func(t *testing.T) {
		q := NewQueue[int]()
		for i := 1; i <= 5; i++ {
			q.Push(i)
		}
		require.Equal(t, 5, q.Len())
		assert.Equal(t, 1, q.First())

		var got []int
		for !q.IsEmpty() {
			got = append(got, q.Pop())
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
		assert.Equal(t, 0, q.Len())
	})

	t.Run("reuse after drain", func(t *testing.T) {
		q := NewQueue[string]()
		q.Push("a")
		q.Pop()
		q.Push("b")
		q.Push("c")
		assert.Equal(t, "b", q.Pop())
		assert.Equal(t, "c", q.Pop())
		assert.True(t, q.IsEmpty())
	})

	t.Run("clear", func(t *testing.T) {
		q := NewQueue[int]()
		q.Push(1)
		q.Push(2)
		q.Clear()
		assert.True(t, q.IsEmpty())
		q.Push(3)
		assert.Equal(t, 3, q.First())
	})
}

func TestQueueContractViolations(t *testing.T) {
	var nilQueue *Queue[int]

	tests := []struct {
		name string
		fn   func()
	}{
		{"pop empty", func() { NewQueue[int]().Pop() }},
		{"first empty", func() { NewQueue[int]().First() }},
		{"push nil", func() { nilQueue.Push(1) }},
		{"pop nil", func() { nilQueue.Pop() }},
		{"len nil", func() { nilQueue.Len() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}
