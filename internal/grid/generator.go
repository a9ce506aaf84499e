package grid

import (
	"github.com/aquilax/go-perlin"

	"github.com/annel0/digsafe/internal/vec"
)

// Generator размечает сетку полем проходок на основе шума Перлина.
// Используется демо-сервером и бенчмарками: детерминированная картина
// «карьеров» — колонны проходок разной глубины, сгруппированные в пятна.
type Generator struct {
	Seed       int64   // Сид для генерации шума
	NoiseScale float64 // Масштаб шума (размер пятен)
	Threshold  float64 // Порог шума, выше которого колонна размечается

	noise *perlin.Perlin
}

// NewGenerator создаёт генератор разметки с указанным сидом
func NewGenerator(seed int64) *Generator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав

	return &Generator{
		Seed:       seed,
		NoiseScale: 0.05,
		Threshold:  0.55,
		noise:      perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// noise2D возвращает значение шума в диапазоне от 0 до 1
func (g *Generator) noise2D(x, y float64) float64 {
	return (g.noise.Noise2D(x, y) + 1.0) / 2.0
}

// Populate размечает хранилище колоннами проходок.
// Для каждой колонны (x, y) с шумом выше порога проходки назначаются
// сверху вниз; глубина пропорциональна величине шума.
func (g *Generator) Populate(store TileStore) {
	size := store.Size()

	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			v := g.noise2D(float64(x)*g.NoiseScale, float64(y)*g.NoiseScale)
			if v < g.Threshold {
				continue
			}

			// Глубина колонны: от 1 слоя на пороге до всей сетки на максимуме
			depth := 1 + int(float64(size.Z-1)*(v-g.Threshold)/(1.0-g.Threshold))
			if depth > size.Z {
				depth = size.Z
			}

			for i := 0; i < depth; i++ {
				pos := vec.Vec3{X: x, Y: y, Z: size.Z - 1 - i}
				store.SetDesignation(pos, DesignationChannel)
			}
		}
	}
}
