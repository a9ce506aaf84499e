package grid

import (
	"sync"

	"github.com/annel0/digsafe/internal/vec"
)

// GridMap — in-memory реализация TileStore.
// Блоки 16x16 создаются лениво при первой записи; чтение
// несуществующего блока возвращает нулевые значения.
type GridMap struct {
	size   vec.Vec3
	blocks map[vec.Vec3]*Block
	mu     sync.RWMutex
}

// NewGridMap создаёт пустую сетку указанных размеров
func NewGridMap(size vec.Vec3) *GridMap {
	return &GridMap{
		size:   size,
		blocks: make(map[vec.Vec3]*Block),
	}
}

// Size возвращает размеры сетки
func (g *GridMap) Size() vec.Vec3 {
	return g.size
}

// InBounds проверяет принадлежность позиции сетке
func (g *GridMap) InBounds(pos vec.Vec3) bool {
	return pos.X >= 0 && pos.X < g.size.X &&
		pos.Y >= 0 && pos.Y < g.size.Y &&
		pos.Z >= 0 && pos.Z < g.size.Z
}

// blockCoords возвращает координаты блока, накрывающего позицию
func blockCoords(pos vec.Vec3) vec.Vec3 {
	bc := pos.Flat().ToBlockCoords()
	return vec.Vec3{X: bc.X, Y: bc.Y, Z: pos.Z}
}

// BlockAt возвращает блок, накрывающий позицию, без создания
func (g *GridMap) BlockAt(pos vec.Vec3) *Block {
	if !g.InBounds(pos) {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.blocks[blockCoords(pos)]
}

// blockFor возвращает блок для записи, создавая его при необходимости
func (g *GridMap) blockFor(pos vec.Vec3) *Block {
	coords := blockCoords(pos)

	g.mu.RLock()
	b, exists := g.blocks[coords]
	g.mu.RUnlock()
	if exists {
		return b
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	// Проверяем еще раз под блокировкой записи
	if b, exists = g.blocks[coords]; !exists {
		b = NewBlock(coords)
		g.blocks[coords] = b
	}
	return b
}

// Designation возвращает разметку тайла
func (g *GridMap) Designation(pos vec.Vec3) Designation {
	b := g.BlockAt(pos)
	if b == nil {
		return DesignationNone
	}
	return b.Designation(pos.Flat().LocalInBlock())
}

// SetDesignation переписывает разметку тайла
func (g *GridMap) SetDesignation(pos vec.Vec3, d Designation) {
	if !g.InBounds(pos) {
		return
	}
	g.blockFor(pos).SetDesignation(pos.Flat().LocalInBlock(), d)
}

// Unsafe возвращает метку небезопасности тайла
func (g *GridMap) Unsafe(pos vec.Vec3) bool {
	b := g.BlockAt(pos)
	if b == nil {
		return false
	}
	return b.Unsafe(pos.Flat().LocalInBlock())
}

// SetUnsafe устанавливает метку небезопасности тайла
func (g *GridMap) SetUnsafe(pos vec.Vec3, unsafe bool) {
	if !g.InBounds(pos) {
		return
	}
	g.blockFor(pos).SetUnsafe(pos.Flat().LocalInBlock(), unsafe)
}

// Priority возвращает приоритет тайла; ok == false — метаданных нет
func (g *GridMap) Priority(pos vec.Vec3) (int, bool) {
	b := g.BlockAt(pos)
	if b == nil {
		return 0, false
	}
	return b.Priority(pos.Flat().LocalInBlock())
}

// SetPriority устанавливает приоритет тайла
func (g *GridMap) SetPriority(pos vec.Vec3, priority int) {
	if !g.InBounds(pos) {
		return
	}
	g.blockFor(pos).SetPriority(pos.Flat().LocalInBlock(), priority)
}
