package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/digsafe/internal/vec"
)

func TestGridMapBounds(t *testing.T) {
	g := NewGridMap(vec.Vec3{X: 32, Y: 32, Z: 4})

	assert.True(t, g.InBounds(vec.Vec3{X: 0, Y: 0, Z: 0}))
	assert.True(t, g.InBounds(vec.Vec3{X: 31, Y: 31, Z: 3}))
	assert.False(t, g.InBounds(vec.Vec3{X: 32, Y: 0, Z: 0}))
	assert.False(t, g.InBounds(vec.Vec3{X: 0, Y: -1, Z: 0}))
	assert.False(t, g.InBounds(vec.Vec3{X: 0, Y: 0, Z: 4}))

	// Чтение за границей — нулевые значения, запись — no-op
	out := vec.Vec3{X: 100, Y: 100, Z: 100}
	assert.Equal(t, DesignationNone, g.Designation(out))
	assert.False(t, g.Unsafe(out))
	g.SetDesignation(out, DesignationChannel)
	assert.Equal(t, DesignationNone, g.Designation(out))
}

func TestGridMapDesignationRoundtrip(t *testing.T) {
	g := NewGridMap(vec.Vec3{X: 32, Y: 32, Z: 4})
	pos := vec.Vec3{X: 17, Y: 5, Z: 2}

	assert.Equal(t, DesignationNone, g.Designation(pos))

	g.SetDesignation(pos, DesignationChannel)
	assert.Equal(t, DesignationChannel, g.Designation(pos))

	g.SetDesignation(pos, DesignationChannelActive)
	assert.Equal(t, DesignationChannelActive, g.Designation(pos))

	// Соседний тайл того же блока не задет
	assert.Equal(t, DesignationNone, g.Designation(vec.Vec3{X: 18, Y: 5, Z: 2}))
}

func TestGridMapUnsafeMark(t *testing.T) {
	g := NewGridMap(vec.Vec3{X: 16, Y: 16, Z: 2})
	pos := vec.Vec3{X: 3, Y: 3, Z: 1}

	assert.False(t, g.Unsafe(pos))
	g.SetUnsafe(pos, true)
	assert.True(t, g.Unsafe(pos))
	g.SetUnsafe(pos, false)
	assert.False(t, g.Unsafe(pos))
}

// TestPriorityMetadata проверяет, что метаданные приоритета появляются
// при первой разметке тайла, а не раньше.
func TestPriorityMetadata(t *testing.T) {
	g := NewGridMap(vec.Vec3{X: 16, Y: 16, Z: 2})
	pos := vec.Vec3{X: 4, Y: 4, Z: 0}

	_, ok := g.Priority(pos)
	assert.False(t, ok, "неразмеченный тайл не имеет метаданных приоритета")

	g.SetDesignation(pos, DesignationDig)
	prio, ok := g.Priority(pos)
	require.True(t, ok, "разметка создаёт метаданные приоритета")
	assert.Equal(t, 0, prio)

	g.SetPriority(pos, 7)
	prio, ok = g.Priority(pos)
	require.True(t, ok)
	assert.Equal(t, 7, prio)

	// Повторная разметка приоритет не сбрасывает
	g.SetDesignation(pos, DesignationDigActive)
	prio, _ = g.Priority(pos)
	assert.Equal(t, 7, prio)
}

func TestGridMapLazyBlocks(t *testing.T) {
	g := NewGridMap(vec.Vec3{X: 48, Y: 48, Z: 4})

	assert.Nil(t, g.BlockAt(vec.Vec3{X: 20, Y: 20, Z: 1}), "блок не материализован до первой записи")

	g.SetDesignation(vec.Vec3{X: 20, Y: 20, Z: 1}, DesignationChannel)
	b := g.BlockAt(vec.Vec3{X: 20, Y: 20, Z: 1})
	require.NotNil(t, b)
	assert.Equal(t, vec.Vec3{X: 1, Y: 1, Z: 1}, b.Coords)

	// Тот же блок накрывает соседний тайл
	assert.Same(t, b, g.BlockAt(vec.Vec3{X: 25, Y: 30, Z: 1}))
	// Другой слой — другой блок
	assert.Nil(t, g.BlockAt(vec.Vec3{X: 20, Y: 20, Z: 2}))
}

func TestBlockDesignatedFlag(t *testing.T) {
	b := NewBlock(vec.Vec3{X: 0, Y: 0, Z: 0})

	assert.False(t, b.Designated())
	b.SetDesignated(true)
	assert.True(t, b.Designated())
}

func TestDesignationTransitions(t *testing.T) {
	assert.Equal(t, DesignationChannel, DesignationChannelActive.Pending())
	assert.Equal(t, DesignationDig, DesignationDigActive.Pending())
	assert.Equal(t, DesignationChannel, DesignationChannel.Pending())

	assert.Equal(t, DesignationChannelActive, DesignationChannel.Active())
	assert.Equal(t, DesignationDigActive, DesignationDig.Active())
	assert.Equal(t, DesignationNone, DesignationNone.Active())

	assert.True(t, DesignationChannel.IsChannel())
	assert.True(t, DesignationChannelActive.IsChannel())
	assert.False(t, DesignationDig.IsChannel())
	assert.False(t, DesignationNone.Designated())
}
