package grid

import (
	"github.com/annel0/digsafe/internal/vec"
)

// TileStore — интерфейс доступа к хранилищу тайлов хоста.
// Контроллер безопасности читает и пишет состояние тайлов только
// через этот интерфейс; само хранилище принадлежит хосту.
type TileStore interface {
	// Size возвращает размеры сетки (ширина, глубина, число слоёв)
	Size() vec.Vec3
	// InBounds проверяет, лежит ли позиция внутри сетки
	InBounds(pos vec.Vec3) bool

	// Designation возвращает разметку тайла; вне сетки — DesignationNone
	Designation(pos vec.Vec3) Designation
	// SetDesignation переписывает разметку тайла; вне сетки — no-op
	SetDesignation(pos vec.Vec3, d Designation)

	// Unsafe возвращает метку небезопасности тайла
	Unsafe(pos vec.Vec3) bool
	// SetUnsafe устанавливает метку небезопасности тайла
	SetUnsafe(pos vec.Vec3, unsafe bool)

	// Priority возвращает приоритет тайла; ok == false — метаданных нет
	Priority(pos vec.Vec3) (int, bool)
	// SetPriority устанавливает приоритет тайла
	SetPriority(pos vec.Vec3, priority int)

	// BlockAt возвращает блок 16x16, накрывающий позицию (для батчевого
	// послойного доступа); вне сетки — nil
	BlockAt(pos vec.Vec3) *Block
}
