package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/vec"
)

// TestIndexRefreshSeparatesKinds: проходки и выемки индексируются раздельно.
func TestIndexRefreshSeparatesKinds(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	ix := NewIndex(tl, store)

	chPos := vec.Vec3{X: 1, Y: 1, Z: 1}
	digPos := vec.Vec3{X: 2, Y: 2, Z: 1}
	store.SetDesignation(chPos, grid.DesignationChannel)
	store.SetDesignation(digPos, grid.DesignationDig)
	tl.Add(TaskChannel, chPos)
	tl.Add(TaskDig, digPos)

	ix.Refresh()

	require.NotNil(t, ix.ChannelAt(chPos))
	assert.Nil(t, ix.DigAt(chPos))
	require.NotNil(t, ix.DigAt(digPos))
	assert.Nil(t, ix.ChannelAt(digPos))
}

// TestCancelRevertsDesignation: отмена понижает разметку до неактивной
// формы и снимает задачу у хоста.
func TestCancelRevertsDesignation(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	ix := NewIndex(tl, store)

	pos := vec.Vec3{X: 4, Y: 4, Z: 2}
	store.SetDesignation(pos, grid.DesignationChannel)
	task := tl.Add(TaskChannel, pos)
	ix.Refresh()

	ix.Cancel(task)

	assert.Equal(t, grid.DesignationChannel, store.Designation(pos), "разметка сохраняется как данные")
	assert.Equal(t, 0, tl.Len(), "задача снята у хоста")
	assert.Nil(t, ix.ChannelAt(pos))

	// Stale reference — no-op
	ix.Cancel(task)
	assert.Equal(t, grid.DesignationChannel, store.Designation(pos))
}

func TestCancelAt(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	ix := NewIndex(tl, store)

	pos := vec.Vec3{X: 6, Y: 6, Z: 0}
	store.SetDesignation(pos, grid.DesignationDig)
	tl.Add(TaskDig, pos)
	ix.Refresh()

	assert.True(t, ix.CancelAt(pos))
	assert.Equal(t, grid.DesignationDig, store.Designation(pos))

	// Пустая позиция — false
	assert.False(t, ix.CancelAt(vec.Vec3{X: 9, Y: 9, Z: 0}))
}

func TestIndexReset(t *testing.T) {
	store := newStore()
	tl := NewTaskList(store)
	ix := NewIndex(tl, store)

	pos := vec.Vec3{X: 7, Y: 7, Z: 1}
	tl.Add(TaskChannel, pos)
	ix.Refresh()
	require.NotNil(t, ix.ChannelAt(pos))

	ix.Reset()
	assert.Nil(t, ix.ChannelAt(pos))
}
