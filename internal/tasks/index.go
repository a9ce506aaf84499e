package tasks

import (
	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/vec"
)

// Index — снимок живых операций раскопки по позициям.
// Перестраивается пересканированием списка задач хоста; это снимок,
// а не живая подписка. Задачи проходки индексируются для отмены,
// обычные выемки — отдельно, только для инкрементального пути.
type Index struct {
	system   TaskSystem
	store    grid.TileStore
	channels map[vec.Vec3]*Task
	digs     map[vec.Vec3]*Task
}

// NewIndex создаёт пустой индекс поверх подсистемы задач хоста
func NewIndex(system TaskSystem, store grid.TileStore) *Index {
	return &Index{
		system:   system,
		store:    store,
		channels: make(map[vec.Vec3]*Task),
		digs:     make(map[vec.Vec3]*Task),
	}
}

// Refresh пересканирует живой список задач и перестраивает снимок
func (ix *Index) Refresh() {
	ix.channels = make(map[vec.Vec3]*Task)
	ix.digs = make(map[vec.Vec3]*Task)

	for _, t := range ix.system.Snapshot() {
		switch t.Kind {
		case TaskChannel:
			ix.channels[t.Pos] = t
		case TaskDig:
			ix.digs[t.Pos] = t
		}
	}
}

// Reset очищает снимок
func (ix *Index) Reset() {
	ix.channels = make(map[vec.Vec3]*Task)
	ix.digs = make(map[vec.Vec3]*Task)
}

// ChannelAt возвращает задачу проходки на позиции или nil
func (ix *Index) ChannelAt(pos vec.Vec3) *Task {
	return ix.channels[pos]
}

// DigAt возвращает задачу выемки на позиции или nil
func (ix *Index) DigAt(pos vec.Vec3) *Task {
	return ix.digs[pos]
}

// CancelAt отменяет живую операцию на позиции, если она есть.
// Возвращает true, если операция была снята.
func (ix *Index) CancelAt(pos vec.Vec3) bool {
	t := ix.channels[pos]
	if t == nil {
		t = ix.digs[pos]
	}
	if t == nil {
		return false
	}
	ix.Cancel(t)
	return true
}

// Cancel снимает операцию у хоста, сохранив разметку тайла как данные:
// активная форма понижается до соответствующей неактивной.
// Stale reference (задача уже завершена или снята) — просто no-op.
func (ix *Index) Cancel(t *Task) {
	if t == nil {
		return
	}

	ix.store.SetDesignation(t.Pos, ix.store.Designation(t.Pos).Pending())
	ix.system.Remove(t)

	delete(ix.channels, t.Pos)
	delete(ix.digs, t.Pos)
}
