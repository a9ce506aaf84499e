package grid

import (
	"sync"

	"github.com/annel0/digsafe/internal/vec"
)

// BlockSize размер стороны блока в тайлах
const BlockSize = 16

// Block представляет участок слоя размером 16x16 тайлов.
// Хранит разметку, метку небезопасности и приоритет каждого тайла.
type Block struct {
	Coords vec.Vec3 // Координаты блока: (x>>4, y>>4, слой)

	designations [BlockSize][BlockSize]Designation
	unsafeMarks  [BlockSize][BlockSize]bool
	priorities   [BlockSize][BlockSize]int
	hasPriority  [BlockSize][BlockSize]bool

	// Designated выставляется контроллером, когда в блоке есть
	// активная разметка — хост использует флаг для батчевого обхода.
	designated bool

	mu sync.RWMutex
}

// NewBlock создаёт пустой блок с указанными координатами
func NewBlock(coords vec.Vec3) *Block {
	return &Block{Coords: coords}
}

// Designation возвращает разметку тайла по локальным координатам
func (b *Block) Designation(local vec.Vec2) Designation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.designations[local.X][local.Y]
}

// SetDesignation устанавливает разметку тайла.
// Первая разметка тайла инициализирует метаданные приоритета нулём:
// тайл без этих метаданных автоматикой не управляется.
func (b *Block) SetDesignation(local vec.Vec2, d Designation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.designations[local.X][local.Y] = d
	if d != DesignationNone && !b.hasPriority[local.X][local.Y] {
		b.hasPriority[local.X][local.Y] = true
		b.priorities[local.X][local.Y] = 0
	}
}

// Unsafe возвращает метку небезопасности тайла
func (b *Block) Unsafe(local vec.Vec2) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.unsafeMarks[local.X][local.Y]
}

// SetUnsafe устанавливает метку небезопасности тайла
func (b *Block) SetUnsafe(local vec.Vec2, unsafe bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unsafeMarks[local.X][local.Y] = unsafe
}

// Priority возвращает приоритет тайла.
// ok == false — у тайла нет метаданных приоритета (UNMANAGED).
func (b *Block) Priority(local vec.Vec2) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.hasPriority[local.X][local.Y] {
		return 0, false
	}
	return b.priorities[local.X][local.Y], true
}

// SetPriority устанавливает приоритет тайла и создаёт метаданные
func (b *Block) SetPriority(local vec.Vec2, priority int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.priorities[local.X][local.Y] = priority
	b.hasPriority[local.X][local.Y] = true
}

// Designated возвращает флаг активной разметки блока
func (b *Block) Designated() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.designated
}

// SetDesignated устанавливает флаг активной разметки блока
func (b *Block) SetDesignated(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.designated = v
}
