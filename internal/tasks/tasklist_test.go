package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/vec"
)

func newStore() *grid.GridMap {
	return grid.NewGridMap(vec.Vec3{X: 32, Y: 32, Z: 4})
}

// TestAddActivatesDesignation проверяет, что создание задачи переводит
// разметку тайла в активную форму.
func TestAddActivatesDesignation(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	pos := vec.Vec3{X: 5, Y: 5, Z: 2}

	store.SetDesignation(pos, grid.DesignationChannel)
	task := tl.Add(TaskChannel, pos)

	require.NotNil(t, task)
	assert.Equal(t, grid.DesignationChannelActive, store.Designation(pos))
	assert.Equal(t, 1, tl.Len())

	// Повторный Add на той же позиции возвращает ту же задачу
	again := tl.Add(TaskChannel, pos)
	assert.Same(t, task, again)
	assert.Equal(t, 1, tl.Len())
}

// TestRemoveRevertsDesignation проверяет, что снятие задачи возвращает
// разметке неактивную форму — данные разметки сохраняются.
func TestRemoveRevertsDesignation(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	pos := vec.Vec3{X: 3, Y: 3, Z: 1}

	store.SetDesignation(pos, grid.DesignationChannel)
	task := tl.Add(TaskChannel, pos)

	assert.True(t, tl.Remove(task))
	assert.Equal(t, grid.DesignationChannel, store.Designation(pos))
	assert.Equal(t, 0, tl.Len())

	// Stale reference: повторное снятие — no-op
	assert.False(t, tl.Remove(task))
}

// TestCompleteClearsDesignation: завершение убирает разметку совсем.
func TestCompleteClearsDesignation(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	pos := vec.Vec3{X: 8, Y: 8, Z: 0}

	store.SetDesignation(pos, grid.DesignationDig)
	task := tl.Add(TaskDig, pos)

	assert.True(t, tl.Complete(task))
	assert.Equal(t, grid.DesignationNone, store.Designation(pos))
	assert.False(t, tl.Complete(task), "повторное завершение — no-op")
}

func TestSnapshotAndAt(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)

	p1 := vec.Vec3{X: 1, Y: 1, Z: 0}
	p2 := vec.Vec3{X: 2, Y: 2, Z: 0}
	tl.Add(TaskChannel, p1)
	tl.Add(TaskDig, p2)

	assert.Len(t, tl.Snapshot(), 2)
	require.NotNil(t, tl.At(p1))
	assert.Equal(t, TaskChannel, tl.At(p1).Kind)
	assert.Nil(t, tl.At(vec.Vec3{X: 9, Y: 9, Z: 0}))
}
