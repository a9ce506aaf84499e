package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNeighbors8 проверяет, что все 8 соседей лежат в том же слое
// и отличаются от центра не больше чем на 1 по каждой оси.
func TestNeighbors8(t *testing.T) {
	center := Vec3{X: 5, Y: 5, Z: 3}
	neighbors := center.Neighbors8()

	assert.Len(t, neighbors, 8)

	seen := make(map[Vec3]struct{})
	for _, n := range neighbors {
		assert.Equal(t, center.Z, n.Z, "сосед должен быть в том же слое")
		assert.False(t, n.Equals(center), "центр не является собственным соседом")
		assert.LessOrEqual(t, abs(n.X-center.X), 1)
		assert.LessOrEqual(t, abs(n.Y-center.Y), 1)
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, 8, "соседи не должны повторяться")
}

func TestAboveBelow(t *testing.T) {
	p := Vec3{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 4}, p.Above())
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 2}, p.Below())
	assert.True(t, p.Above().Below().Equals(p))
}

func TestFlat(t *testing.T) {
	p := Vec3{X: 7, Y: 9, Z: 4}
	assert.Equal(t, Vec2{X: 7, Y: 9}, p.Flat())
}

func TestBlockCoords(t *testing.T) {
	assert.Equal(t, Vec2{X: 0, Y: 0}, Vec2{X: 15, Y: 15}.ToBlockCoords())
	assert.Equal(t, Vec2{X: 1, Y: 1}, Vec2{X: 16, Y: 16}.ToBlockCoords())
	assert.Equal(t, Vec2{X: 2, Y: 0}, Vec2{X: 47, Y: 3}.ToBlockCoords())

	assert.Equal(t, Vec2{X: 15, Y: 0}, Vec2{X: 31, Y: 16}.LocalInBlock())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
