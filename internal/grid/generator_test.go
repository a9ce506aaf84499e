package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/digsafe/internal/vec"
)

// TestGeneratorDeterminism проверяет, что один и тот же сид даёт
// одну и ту же картину разметки.
func TestGeneratorDeterminism(t *testing.T) {
	size := vec.Vec3{X: 32, Y: 32, Z: 8}

	a := NewGridMap(size)
	b := NewGridMap(size)
	NewGenerator(42).Populate(a)
	NewGenerator(42).Populate(b)

	for z := 0; z < size.Z; z++ {
		for x := 0; x < size.X; x++ {
			for y := 0; y < size.Y; y++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				require.Equal(t, a.Designation(pos), b.Designation(pos), "расхождение на %v", pos)
			}
		}
	}
}

// TestGeneratorColumnsTopDown проверяет, что проходки в колонне идут
// сверху вниз без разрывов: если тайл размечен, размечен и тайл над ним.
func TestGeneratorColumnsTopDown(t *testing.T) {
	size := vec.Vec3{X: 48, Y: 48, Z: 8}
	g := NewGridMap(size)
	NewGenerator(7).Populate(g)

	designated := 0
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			for z := 0; z < size.Z-1; z++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				if g.Designation(pos).IsChannel() {
					designated++
					assert.True(t, g.Designation(pos.Above()).IsChannel(),
						"разрыв в колонне (%d,%d) на слое %d", x, y, z)
				}
			}
		}
	}
	assert.Greater(t, designated, 0, "генератор должен разметить хотя бы одну глубокую колонну")
}
