package tasks

import (
	"sync"

	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/vec"
)

// TaskList — in-memory реализация TaskSystem.
// Держит разметку хранилища тайлов в согласии со списком задач:
// создание задачи переводит разметку в активную форму, снятие —
// обратно в неактивную, завершение — убирает разметку совсем.
type TaskList struct {
	mu     sync.RWMutex
	nextID uint64
	tasks  map[uint64]*Task
	byPos  map[vec.Vec3]*Task
	store  grid.TileStore
}

// NewTaskList создаёт пустой список задач поверх хранилища тайлов
func NewTaskList(store grid.TileStore) *TaskList {
	return &TaskList{
		nextID: 1,
		tasks:  make(map[uint64]*Task),
		byPos:  make(map[vec.Vec3]*Task),
		store:  store,
	}
}

// Add создаёт задачу на тайле и переводит его разметку в активную форму.
// Повторный Add на той же позиции возвращает существующую задачу.
func (tl *TaskList) Add(kind TaskKind, pos vec.Vec3) *Task {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if t, exists := tl.byPos[pos]; exists {
		return t
	}

	t := &Task{ID: tl.nextID, Kind: kind, Pos: pos}
	tl.nextID++
	tl.tasks[t.ID] = t
	tl.byPos[pos] = t

	tl.store.SetDesignation(pos, tl.store.Designation(pos).Active())
	return t
}

// Remove снимает задачу и возвращает разметке тайла неактивную форму.
// Возвращает false, если задача уже не живая (stale reference).
func (tl *TaskList) Remove(t *Task) bool {
	if t == nil {
		return false
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	if _, exists := tl.tasks[t.ID]; !exists {
		return false
	}
	delete(tl.tasks, t.ID)
	delete(tl.byPos, t.Pos)

	tl.store.SetDesignation(t.Pos, tl.store.Designation(t.Pos).Pending())
	return true
}

// Complete завершает задачу: тайл выкопан, разметка снимается.
func (tl *TaskList) Complete(t *Task) bool {
	if t == nil {
		return false
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()

	if _, exists := tl.tasks[t.ID]; !exists {
		return false
	}
	delete(tl.tasks, t.ID)
	delete(tl.byPos, t.Pos)

	tl.store.SetDesignation(t.Pos, grid.DesignationNone)
	return true
}

// Snapshot возвращает все живые задачи на момент вызова
func (tl *TaskList) Snapshot() []*Task {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	result := make([]*Task, 0, len(tl.tasks))
	for _, t := range tl.tasks {
		result = append(result, t)
	}
	return result
}

// At возвращает живую задачу на позиции или nil
func (tl *TaskList) At(pos vec.Vec3) *Task {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return tl.byPos[pos]
}

// Len возвращает количество живых задач
func (tl *TaskList) Len() int {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	return len(tl.tasks)
}
