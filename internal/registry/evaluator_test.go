package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/digsafe/internal/vec"
)

// TestReadyNoComponentAbove: компонент без проходок над собой готов.
func TestReadyNoComponentAbove(t *testing.T) {
	r := NewRegistry()
	e := NewEvaluator(r)

	slot := r.Add(vec.Vec3{X: 1, Y: 1, Z: 0})
	r.Add(vec.Vec3{X: 2, Y: 1, Z: 0})

	assert.True(t, e.Ready(slot))
	assert.True(t, e.TileReady(vec.Vec3{X: 1, Y: 1, Z: 0}))
}

// TestNotReadyBlockedColumn: одной заблокированной колонны достаточно,
// чтобы отложить весь компонент.
func TestNotReadyBlockedColumn(t *testing.T) {
	r := NewRegistry()
	e := NewEvaluator(r)

	slot := r.Add(vec.Vec3{X: 1, Y: 1, Z: 0})
	r.Add(vec.Vec3{X: 2, Y: 1, Z: 0})
	r.Add(vec.Vec3{X: 3, Y: 1, Z: 0})

	// Проходка над одним тайлом из трёх
	upper := r.Add(vec.Vec3{X: 2, Y: 1, Z: 1})

	assert.False(t, e.Ready(slot))
	assert.True(t, e.TileReady(vec.Vec3{X: 1, Y: 1, Z: 0}), "колонна без проходки сверху свободна")
	assert.False(t, e.TileReady(vec.Vec3{X: 2, Y: 1, Z: 0}))
	assert.True(t, e.Ready(upper), "верхний компонент сам по себе готов")
}

// TestReadyAfterDiscard: опустевший компонент сверху перестаёт блокировать.
func TestReadyAfterDiscard(t *testing.T) {
	r := NewRegistry()
	e := NewEvaluator(r)

	lower := r.Add(vec.Vec3{X: 1, Y: 1, Z: 0})
	abovePos := vec.Vec3{X: 1, Y: 1, Z: 1}
	r.Add(abovePos)

	require.False(t, e.Ready(lower))

	r.Discard(abovePos)
	assert.True(t, e.Ready(lower), "пустой компонент сверху не блокирует")
}

func TestReadyEmptySlot(t *testing.T) {
	r := NewRegistry()
	e := NewEvaluator(r)

	assert.True(t, e.Ready(0), "несуществующий слот тривиально готов")
}
